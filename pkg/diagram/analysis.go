package diagram

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Stats summarizes a diagram's structure.
type Stats struct {
	Nodes      int // attached leaf nodes
	Edges      int // declared edges, parallel edges counted separately
	Clusters   int // clusters at any depth
	MaxDepth   int // deepest cluster nesting (0 = no clusters)
	Components int // connected components, ignoring edge direction
}

// Stats computes structural statistics for the diagram. Connectivity is
// computed on the undirected view of the edge list; containment does not
// contribute edges.
func (d *Diagram) Stats() Stats {
	s := Stats{
		Nodes:    len(d.nodes),
		Edges:    len(d.edges),
		Clusters: d.clusterSeq,
	}

	var walk func(elems []Element, depth int)
	walk = func(elems []Element, depth int) {
		for _, e := range elems {
			if c, ok := e.(*Cluster); ok {
				if depth+1 > s.MaxDepth {
					s.MaxDepth = depth + 1
				}
				walk(c.children, depth+1)
			}
		}
	}
	walk(d.children, 0)

	s.Components = len(d.components())
	return s
}

// Isolated returns nodes that are not an endpoint of any edge, in attachment
// order. Isolated nodes usually indicate a forgotten connection in the
// declaration.
func (d *Diagram) Isolated() []*Node {
	connected := make(map[*Node]bool, len(d.nodes))
	for _, e := range d.edges {
		connected[e.from] = true
		connected[e.to] = true
	}

	var out []*Node
	for _, n := range d.nodes {
		if !connected[n] {
			out = append(out, n)
		}
	}
	return out
}

// components returns the connected components of the undirected edge graph.
func (d *Diagram) components() [][]*Node {
	if len(d.nodes) == 0 {
		return nil
	}

	g := simple.NewUndirectedGraph()
	byID := make(map[int64]*Node, len(d.nodes))
	toID := make(map[*Node]int64, len(d.nodes))
	for i, n := range d.nodes {
		id := int64(i)
		g.AddNode(simple.Node(id))
		byID[id] = n
		toID[n] = id
	}
	for _, e := range d.edges {
		u, v := toID[e.from], toID[e.to]
		if u == v {
			continue // self edges carry no connectivity
		}
		g.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
	}

	var out [][]*Node
	for _, comp := range topo.ConnectedComponents(g) {
		nodes := make([]*Node, len(comp))
		for i, gn := range comp {
			nodes[i] = byID[gn.ID()]
		}
		out = append(out, nodes)
	}
	return out
}
