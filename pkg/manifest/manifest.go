// Package manifest loads declarative diagram descriptions from files.
//
// Two formats are supported, chosen by file extension:
//   - .toml: flat tables with parent references ([[clusters]], [[nodes]], [[edges]])
//   - .hcl: nested blocks mirroring the containment tree
//
// Both decode into the same [Spec], which is then built into a
// [diagram.Diagram] with the same validation the library applies to
// hand-written declarations: unknown node references, duplicate names, and
// malformed icons reject the whole manifest.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudgram/cloudgram/pkg/diagram"
	"github.com/cloudgram/cloudgram/pkg/errors"
	"github.com/cloudgram/cloudgram/pkg/icons"
)

// Spec is the format-independent description of one diagram.
type Spec struct {
	Title      string
	Direction  string
	FontSize   int
	Background string
	Splines    string
	Output     string

	Nodes    []NodeSpec    // top-level nodes
	Clusters []ClusterSpec // top-level clusters
	Edges    []EdgeSpec
}

// NodeSpec describes one node. Name is the manifest-local handle used by
// edges; Label defaults to Name when empty.
type NodeSpec struct {
	Name  string
	Label string
	Icon  string
}

// ClusterSpec describes one cluster and its subtree.
type ClusterSpec struct {
	Name       string
	Title      string
	Background string
	Nodes      []NodeSpec
	Clusters   []ClusterSpec
}

// EdgeSpec describes one edge between named nodes.
type EdgeSpec struct {
	From      string
	To        string
	Label     string
	Color     string
	Style     string
	Direction string
}

// Load reads and builds a diagram from a manifest file.
func Load(path string) (*diagram.Diagram, error) {
	spec, err := LoadSpec(path)
	if err != nil {
		return nil, err
	}
	return Build(spec)
}

// LoadSpec reads a manifest file into a Spec without building it.
func LoadSpec(path string) (*Spec, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "manifest %s does not exist", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return loadTOML(path)
	case ".hcl":
		return loadHCL(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unsupported manifest extension %q (want .toml or .hcl)", filepath.Ext(path))
	}
}

// Build constructs a diagram from a Spec.
func Build(spec *Spec) (*diagram.Diagram, error) {
	opts, err := diagramOptions(spec)
	if err != nil {
		return nil, err
	}

	d, err := diagram.New(spec.Title, opts...)
	if err != nil {
		return nil, err
	}

	b := &builder{byName: map[string]*diagram.Node{}}
	for _, ns := range spec.Nodes {
		if err := b.addNode(d, nil, ns); err != nil {
			return nil, err
		}
	}
	for _, cs := range spec.Clusters {
		if err := b.addCluster(d, nil, cs); err != nil {
			return nil, err
		}
	}
	for _, es := range spec.Edges {
		if err := b.addEdge(d, es); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func diagramOptions(spec *Spec) ([]diagram.Option, error) {
	var opts []diagram.Option
	if spec.Direction != "" {
		opts = append(opts, diagram.WithDirection(diagram.Direction(spec.Direction)))
	}
	if spec.FontSize != 0 {
		opts = append(opts, diagram.WithFontSize(spec.FontSize))
	}
	if spec.Background != "" {
		opts = append(opts, diagram.WithBackground(spec.Background))
	}
	if spec.Splines != "" {
		opts = append(opts, diagram.WithSplines(diagram.Splines(spec.Splines)))
	}
	if spec.Output != "" {
		opts = append(opts, diagram.WithOutputName(spec.Output))
	}
	return opts, nil
}

// builder tracks the name -> node mapping while walking the spec tree.
type builder struct {
	byName map[string]*diagram.Node
}

// container is the common attach surface of Diagram and Cluster.
type container interface {
	Add(elems ...diagram.Element) error
}

func (b *builder) addNode(d *diagram.Diagram, parent *diagram.Cluster, ns NodeSpec) error {
	if ns.Name == "" {
		return errors.New(errors.ErrCodeInvalidManifest, "node without a name")
	}
	if _, dup := b.byName[ns.Name]; dup {
		return errors.New(errors.ErrCodeInvalidManifest, "duplicate node name %q", ns.Name)
	}

	icon, err := icons.Parse(ns.Icon)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "node %q", ns.Name)
	}

	label := ns.Label
	if label == "" {
		label = ns.Name
	}
	n := diagram.NewNode(label, icon)

	var target container = d
	if parent != nil {
		target = parent
	}
	if err := target.Add(n); err != nil {
		return err
	}
	b.byName[ns.Name] = n
	return nil
}

func (b *builder) addCluster(d *diagram.Diagram, parent *diagram.Cluster, cs ClusterSpec) error {
	title := cs.Title
	if title == "" {
		title = cs.Name
	}

	var copts []diagram.ClusterOption
	if cs.Background != "" {
		copts = append(copts, diagram.WithClusterBackground(cs.Background))
	}

	var (
		c   *diagram.Cluster
		err error
	)
	if parent == nil {
		c, err = d.Cluster(title, copts...)
	} else {
		c, err = parent.Cluster(title, copts...)
	}
	if err != nil {
		return err
	}

	for _, ns := range cs.Nodes {
		if err := b.addNode(d, c, ns); err != nil {
			return err
		}
	}
	for _, child := range cs.Clusters {
		if err := b.addCluster(d, c, child); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addEdge(d *diagram.Diagram, es EdgeSpec) error {
	from, ok := b.byName[es.From]
	if !ok {
		return errors.New(errors.ErrCodeInvalidManifest, "edge references unknown node %q", es.From)
	}
	to, ok := b.byName[es.To]
	if !ok {
		return errors.New(errors.ErrCodeInvalidManifest, "edge references unknown node %q", es.To)
	}

	var opts []diagram.EdgeOption
	if es.Label != "" {
		opts = append(opts, diagram.Label(es.Label))
	}
	if es.Color != "" {
		opts = append(opts, diagram.Color(es.Color))
	}
	if es.Style != "" {
		opts = append(opts, diagram.Style(diagram.LineStyle(es.Style)))
	}
	switch es.Direction {
	case "", string(diagram.DirForward):
	case string(diagram.DirReverse):
		opts = append(opts, diagram.Reverse())
	case string(diagram.DirBoth):
		opts = append(opts, diagram.Bidirectional())
	case string(diagram.DirNone):
		opts = append(opts, diagram.Undirected())
	default:
		return errors.New(errors.ErrCodeInvalidManifest, "edge %s -> %s: invalid direction %q", es.From, es.To, es.Direction)
	}

	_, err := d.Connect(from, to, opts...)
	return err
}
