package diagram

import (
	"github.com/cloudgram/cloudgram/pkg/icons"
)

// Node is a single labeled, iconified leaf entity in a diagram.
//
// Nodes are constructed detached (typically via the providers packages) and
// become part of a diagram through [Diagram.Add] or [Cluster.Add]. A node
// belongs to at most one parent; identity is by reference, not by label.
type Node struct {
	id    string
	label string
	icon  icons.Icon

	owner  *Diagram
	parent *Cluster
}

// NewNode creates a detached node with the given display label and icon.
// The label may contain newlines for multi-line display. Validation happens
// when the node is attached to a diagram.
func NewNode(label string, icon icons.Icon) *Node {
	return &Node{label: label, icon: icon}
}

// ID returns the node's unique id. Empty until the node is attached.
func (n *Node) ID() string { return n.id }

// Label returns the display label.
func (n *Node) Label() string { return n.label }

// Icon returns the node's icon identifier.
func (n *Node) Icon() icons.Icon { return n.icon }

// Parent returns the enclosing cluster, or nil for top-level nodes.
func (n *Node) Parent() *Cluster { return n.parent }

// Attached reports whether the node belongs to a diagram.
func (n *Node) Attached() bool { return n.owner != nil }

func (n *Node) element() {}
