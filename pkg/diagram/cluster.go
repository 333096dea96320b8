package diagram

import (
	"github.com/cloudgram/cloudgram/pkg/errors"
)

// clusterPalette holds the background colors cycled by nesting depth,
// matching the defaults of the original diagramming tool.
var clusterPalette = []string{"#E5F5FD", "#EBF3E7", "#ECE8F6", "#FDF7E3"}

// Element is a member of a diagram's containment tree: a [Node] or a [Cluster].
type Element interface {
	element()
}

// Cluster is a named visual grouping of nodes and nested clusters.
//
// Clusters form a strict tree: each cluster and node has at most one parent.
// Clusters affect only visual containment; edges ignore cluster boundaries.
type Cluster struct {
	title      string
	background string

	owner    *Diagram
	parent   *Cluster
	depth    int
	seq      int // per-diagram cluster index, used for stable subgraph naming
	children []Element
}

// Title returns the cluster's display title.
func (c *Cluster) Title() string { return c.title }

// Background returns the cluster's background color.
func (c *Cluster) Background() string { return c.background }

// Depth returns the nesting depth (0 for top-level clusters).
func (c *Cluster) Depth() int { return c.depth }

// Index returns the diagram-wide cluster index in declaration order.
func (c *Cluster) Index() int { return c.seq }

// Children returns the direct children in declaration order.
func (c *Cluster) Children() []Element {
	out := make([]Element, len(c.children))
	copy(out, c.children)
	return out
}

// Parent returns the enclosing cluster, or nil for top-level clusters.
func (c *Cluster) Parent() *Cluster { return c.parent }

func (c *Cluster) element() {}

// Cluster creates a nested cluster inside c.
func (c *Cluster) Cluster(title string, opts ...ClusterOption) (*Cluster, error) {
	return c.owner.newCluster(title, c, opts...)
}

// Add attaches nodes or clusters as direct children of c.
//
// Adding an element that already belongs to a parent (in this diagram or any
// other) fails with CLUSTER_OWNED and leaves earlier elements of the same
// call attached.
func (c *Cluster) Add(elems ...Element) error {
	for _, e := range elems {
		if err := c.owner.attach(e, c); err != nil {
			return err
		}
	}
	return nil
}

// ClusterOption configures a cluster at construction time.
type ClusterOption func(*Cluster) error

// WithClusterBackground overrides the depth-derived background color.
func WithClusterBackground(color string) ClusterOption {
	return func(c *Cluster) error {
		if err := errors.ValidateColor(color); err != nil {
			return err
		}
		c.background = color
		return nil
	}
}
