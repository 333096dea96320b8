// Package diagram provides the declarative model for architecture diagrams.
//
// A [Diagram] is a tree of [Cluster] groupings containing icon [Node] leaves,
// plus a flat list of styled directed [Edge] connections. The model is pure
// data: building a diagram performs no layout and touches no external
// dependency, so structural properties can be asserted in tests without a
// layout engine. Rendering lives in the render package.
//
// # Building a diagram
//
//	d, err := diagram.New("OpenClaw Security Architecture",
//	    diagram.WithDirection(diagram.TopBottom),
//	    diagram.WithSplines(diagram.SplinesOrtho),
//	)
//	user := onprem.User("User")
//	d.Add(user)
//
//	ingress, _ := d.Cluster("Ingress Layer")
//	waf := aws.WAF("WAF\nRate Limit + Rules")
//	cdn := aws.CloudFront("CloudFront\nHTTPS Only")
//	ingress.Add(waf, cdn)
//
//	d.Connect(user, waf, diagram.Label("HTTPS"))
//	d.Chain(waf, cdn)
//
// # Invariants
//
// Cluster containment is strictly tree-shaped: adding a node or cluster that
// already belongs to another parent fails with CLUSTER_OWNED. Edges may only
// connect nodes attached to the same diagram (NODE_NOT_ATTACHED otherwise)
// and may cross cluster boundaries freely. Parallel edges between the same
// pair of nodes are permitted and render separately.
//
// Node identity is by reference: two nodes may share a label. Each node gets
// a unique internal id (UUID by default) used only for wiring edges in the
// emitted graph description.
package diagram
