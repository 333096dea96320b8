package manifest

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/cloudgram/cloudgram/pkg/errors"
)

// HCL manifests nest blocks the way the containment tree nests, so no parent
// references are needed:
//
//	diagram {
//	  title     = "OpenClaw Security Architecture"
//	  direction = "TB"
//
//	  node "user" {
//	    label = "User"
//	    icon  = "onprem/client/user"
//	  }
//
//	  cluster "aws" {
//	    title = "AWS Cloud"
//
//	    cluster "ingress" {
//	      title = "Ingress Layer"
//	      node "waf" {
//	        label = "WAF\nRate Limit + Rules"
//	        icon  = "aws/security/waf"
//	      }
//	    }
//	  }
//
//	  edge {
//	    from  = "user"
//	    to    = "waf"
//	    label = "HTTPS"
//	  }
//	}

type hclFile struct {
	Diagram hclDiagram `hcl:"diagram,block"`
}

type hclDiagram struct {
	Title      string `hcl:"title"`
	Direction  string `hcl:"direction,optional"`
	FontSize   int    `hcl:"font_size,optional"`
	Background string `hcl:"background,optional"`
	Splines    string `hcl:"splines,optional"`
	Output     string `hcl:"output,optional"`

	Nodes    []hclNode    `hcl:"node,block"`
	Clusters []hclCluster `hcl:"cluster,block"`
	Edges    []hclEdge    `hcl:"edge,block"`
}

type hclNode struct {
	Name  string `hcl:"name,label"`
	Label string `hcl:"label,optional"`
	Icon  string `hcl:"icon"`
}

type hclCluster struct {
	Name       string       `hcl:"name,label"`
	Title      string       `hcl:"title,optional"`
	Background string       `hcl:"background,optional"`
	Nodes      []hclNode    `hcl:"node,block"`
	Clusters   []hclCluster `hcl:"cluster,block"`
}

type hclEdge struct {
	From      string `hcl:"from"`
	To        string `hcl:"to"`
	Label     string `hcl:"label,optional"`
	Color     string `hcl:"color,optional"`
	Style     string `hcl:"style,optional"`
	Direction string `hcl:"direction,optional"`
}

func loadHCL(path string) (*Spec, error) {
	var f hclFile
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		// hcl diagnostics already carry file/position context
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode %s", path)
	}
	return f.toSpec(), nil
}

func (f *hclFile) toSpec() *Spec {
	d := f.Diagram
	spec := &Spec{
		Title:      d.Title,
		Direction:  d.Direction,
		FontSize:   d.FontSize,
		Background: d.Background,
		Splines:    d.Splines,
		Output:     d.Output,
	}

	for _, n := range d.Nodes {
		spec.Nodes = append(spec.Nodes, NodeSpec{Name: n.Name, Label: n.Label, Icon: n.Icon})
	}
	for _, c := range d.Clusters {
		spec.Clusters = append(spec.Clusters, hclClusterSpec(c))
	}
	for _, e := range d.Edges {
		spec.Edges = append(spec.Edges, EdgeSpec{
			From:      e.From,
			To:        e.To,
			Label:     e.Label,
			Color:     e.Color,
			Style:     e.Style,
			Direction: e.Direction,
		})
	}
	return spec
}

func hclClusterSpec(c hclCluster) ClusterSpec {
	cs := ClusterSpec{Name: c.Name, Title: c.Title, Background: c.Background}
	for _, n := range c.Nodes {
		cs.Nodes = append(cs.Nodes, NodeSpec{Name: n.Name, Label: n.Label, Icon: n.Icon})
	}
	for _, child := range c.Clusters {
		cs.Clusters = append(cs.Clusters, hclClusterSpec(child))
	}
	return cs
}
