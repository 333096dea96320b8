package manifest

import (
	"github.com/BurntSushi/toml"

	"github.com/cloudgram/cloudgram/pkg/errors"
)

// TOML manifests are flat: clusters name their parent, nodes name their
// cluster. A parent must be declared before any child that references it,
// which keeps the containment tree unambiguous.
//
//	[diagram]
//	title = "OpenClaw Security Architecture"
//	direction = "TB"
//
//	[[clusters]]
//	name = "aws"
//	title = "AWS Cloud"
//
//	[[clusters]]
//	name = "ingress"
//	title = "Ingress Layer"
//	parent = "aws"
//
//	[[nodes]]
//	name = "waf"
//	label = "WAF\nRate Limit + Rules"
//	icon = "aws/security/waf"
//	cluster = "ingress"
//
//	[[edges]]
//	from = "user"
//	to = "waf"
//	label = "HTTPS"

type tomlFile struct {
	Diagram  tomlDiagram   `toml:"diagram"`
	Nodes    []tomlNode    `toml:"nodes"`
	Clusters []tomlCluster `toml:"clusters"`
	Edges    []tomlEdge    `toml:"edges"`
}

type tomlDiagram struct {
	Title      string `toml:"title"`
	Direction  string `toml:"direction"`
	FontSize   int    `toml:"font_size"`
	Background string `toml:"background"`
	Splines    string `toml:"splines"`
	Output     string `toml:"output"`
}

type tomlNode struct {
	Name    string `toml:"name"`
	Label   string `toml:"label"`
	Icon    string `toml:"icon"`
	Cluster string `toml:"cluster"`
}

type tomlCluster struct {
	Name       string `toml:"name"`
	Title      string `toml:"title"`
	Parent     string `toml:"parent"`
	Background string `toml:"background"`
}

type tomlEdge struct {
	From      string `toml:"from"`
	To        string `toml:"to"`
	Label     string `toml:"label"`
	Color     string `toml:"color"`
	Style     string `toml:"style"`
	Direction string `toml:"direction"`
}

func loadTOML(path string) (*Spec, error) {
	var f tomlFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode %s", path)
	}
	return f.toSpec()
}

// toSpec resolves the flat parent references into the nested Spec tree.
func (f *tomlFile) toSpec() (*Spec, error) {
	spec := &Spec{
		Title:      f.Diagram.Title,
		Direction:  f.Diagram.Direction,
		FontSize:   f.Diagram.FontSize,
		Background: f.Diagram.Background,
		Splines:    f.Diagram.Splines,
		Output:     f.Diagram.Output,
	}

	// Clusters first: a parent must precede its children in the file so the
	// reference can resolve. The tree is linked through pointers and copied
	// into the value-based Spec once complete.
	type clusterTree struct {
		spec     ClusterSpec
		children []*clusterTree
	}

	byName := map[string]*clusterTree{}
	var roots []*clusterTree
	for _, tc := range f.Clusters {
		if tc.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "cluster without a name")
		}
		if _, dup := byName[tc.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "duplicate cluster name %q", tc.Name)
		}

		ct := &clusterTree{spec: ClusterSpec{Name: tc.Name, Title: tc.Title, Background: tc.Background}}
		byName[tc.Name] = ct
		if tc.Parent == "" {
			roots = append(roots, ct)
			continue
		}
		parent, ok := byName[tc.Parent]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "cluster %q references undeclared parent %q", tc.Name, tc.Parent)
		}
		parent.children = append(parent.children, ct)
	}

	for _, tn := range f.Nodes {
		ns := NodeSpec{Name: tn.Name, Label: tn.Label, Icon: tn.Icon}
		if tn.Cluster == "" {
			spec.Nodes = append(spec.Nodes, ns)
			continue
		}
		parent, ok := byName[tn.Cluster]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "node %q references undeclared cluster %q", tn.Name, tn.Cluster)
		}
		parent.spec.Nodes = append(parent.spec.Nodes, ns)
	}

	var materialize func(ct *clusterTree) ClusterSpec
	materialize = func(ct *clusterTree) ClusterSpec {
		out := ct.spec
		for _, child := range ct.children {
			out.Clusters = append(out.Clusters, materialize(child))
		}
		return out
	}
	for _, root := range roots {
		spec.Clusters = append(spec.Clusters, materialize(root))
	}

	for _, te := range f.Edges {
		spec.Edges = append(spec.Edges, EdgeSpec{
			From:      te.From,
			To:        te.To,
			Label:     te.Label,
			Color:     te.Color,
			Style:     te.Style,
			Direction: te.Direction,
		})
	}

	return spec, nil
}
