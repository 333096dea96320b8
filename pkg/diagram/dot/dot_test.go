package dot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cloudgram/cloudgram/pkg/diagram"
	"github.com/cloudgram/cloudgram/pkg/icons"
)

func seqIDs() func() string {
	i := 0
	return func() string {
		i++
		return fmt.Sprintf("n%d", i)
	}
}

func node(label string) *diagram.Node {
	return diagram.NewNode(label, icons.New("aws", "compute", "ec2"))
}

func TestToDOTDeterministic(t *testing.T) {
	build := func() *diagram.Diagram {
		d, _ := diagram.New("Deterministic", diagram.WithIDGenerator(seqIDs()), diagram.WithGraphAttr("compound", "true"))
		c, _ := d.Cluster("Group")
		a, b := node("a"), node("b")
		if err := c.Add(a, b); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
		if _, err := d.Connect(a, b, diagram.Label("x"), diagram.Color("gray")); err != nil {
			t.Fatalf("Connect() error: %v", err)
		}
		return d
	}

	first := ToDOT(build(), Options{})
	for i := 0; i < 5; i++ {
		if got := ToDOT(build(), Options{}); got != first {
			t.Fatalf("emission %d differs:\n%s\n---\n%s", i, first, got)
		}
	}
}

func TestToDOTGraphAttrs(t *testing.T) {
	d, _ := diagram.New("My Title",
		diagram.WithIDGenerator(seqIDs()),
		diagram.WithDirection(diagram.LeftRight),
		diagram.WithFontSize(16),
		diagram.WithBackground("transparent"),
		diagram.WithSplines(diagram.SplinesCurved),
	)

	out := ToDOT(d, Options{})

	for _, want := range []string{
		"digraph {",
		`label="My Title";`,
		`labelloc="t";`,
		`fontsize="16";`,
		`bgcolor="transparent";`,
		`rankdir="LR";`,
		`splines="curved";`,
		`nodesep="0.60";`,
		`ranksep="0.75";`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestToDOTCustomAttrOverrides(t *testing.T) {
	d, _ := diagram.New("d", diagram.WithGraphAttr("nodesep", "2.0"))
	out := ToDOT(d, Options{})

	if !strings.Contains(out, `nodesep="2.0";`) {
		t.Errorf("custom nodesep not applied:\n%s", out)
	}
	if strings.Contains(out, `nodesep="0.60";`) {
		t.Errorf("default nodesep survived override:\n%s", out)
	}
}

func TestToDOTNodes(t *testing.T) {
	d, _ := diagram.New("d", diagram.WithIDGenerator(seqIDs()))
	a := node("Web\nServer")
	if err := d.Add(a); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	out := ToDOT(d, Options{})

	// Identity comes from the generated id, never the label.
	if !strings.Contains(out, `"n1" [`) {
		t.Errorf("node id missing:\n%s", out)
	}
	if !strings.Contains(out, `label="Web\nServer"`) {
		t.Errorf("multi-line label missing:\n%s", out)
	}
	// Without assets the icon renders as a colored box.
	if !strings.Contains(out, `fillcolor="#ED7100"`) {
		t.Errorf("icon category color missing:\n%s", out)
	}
}

func TestToDOTDuplicateLabels(t *testing.T) {
	d, _ := diagram.New("d", diagram.WithIDGenerator(seqIDs()))
	a, b := node("same"), node("same")
	if err := d.Add(a, b); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := d.Connect(a, b); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	out := ToDOT(d, Options{})
	if !strings.Contains(out, `"n1"`) || !strings.Contains(out, `"n2"`) {
		t.Errorf("duplicate labels must yield distinct ids:\n%s", out)
	}
	if !strings.Contains(out, `"n1" -> "n2";`) {
		t.Errorf("edge between duplicate labels missing:\n%s", out)
	}
}

func TestToDOTClusters(t *testing.T) {
	d, _ := diagram.New("d", diagram.WithIDGenerator(seqIDs()))
	outer, _ := d.Cluster("Outer Group")
	inner, _ := outer.Cluster("Inner Group")
	n := node("leaf")
	if err := inner.Add(n); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	out := ToDOT(d, Options{})

	for _, want := range []string{
		`subgraph "cluster_0" {`,
		`label="Outer Group";`,
		`subgraph "cluster_1" {`,
		`label="Inner Group";`,
		`bgcolor="#E5F5FD";`,
		`bgcolor="#EBF3E7";`,
		`pencolor="#AEB6BE";`,
		`labeljust="l";`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// The node declaration must sit inside the inner subgraph.
	innerStart := strings.Index(out, `subgraph "cluster_1"`)
	nodePos := strings.Index(out, `"n1" [`)
	if innerStart == -1 || nodePos < innerStart {
		t.Errorf("node emitted outside its cluster:\n%s", out)
	}
}

func TestToDOTEdges(t *testing.T) {
	tests := []struct {
		name string
		opts []diagram.EdgeOption
		want string
	}{
		{"plain", nil, `"n1" -> "n2";`},
		{"label", []diagram.EdgeOption{diagram.Label("HTTPS")}, `"n1" -> "n2" [label="HTTPS"];`},
		{"color", []diagram.EdgeOption{diagram.Color("darkgreen")}, `"n1" -> "n2" [color="darkgreen", fontcolor="darkgreen"];`},
		{"dashed", []diagram.EdgeOption{diagram.Dashed()}, `"n1" -> "n2" [style="dashed"];`},
		{"dotted", []diagram.EdgeOption{diagram.Dotted()}, `"n1" -> "n2" [style="dotted"];`},
		{"reverse", []diagram.EdgeOption{diagram.Reverse()}, `"n1" -> "n2" [dir="back"];`},
		{"undirected", []diagram.EdgeOption{diagram.Undirected()}, `"n1" -> "n2" [dir="none"];`},
		{
			"combined",
			[]diagram.EdgeOption{diagram.Label("x"), diagram.Color("gray"), diagram.Dashed()},
			`"n1" -> "n2" [color="gray", fontcolor="gray", label="x", style="dashed"];`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := diagram.New("d", diagram.WithIDGenerator(seqIDs()))
			a, b := node("a"), node("b")
			if err := d.Add(a, b); err != nil {
				t.Fatalf("Add() error: %v", err)
			}
			if _, err := d.Connect(a, b, tt.opts...); err != nil {
				t.Fatalf("Connect() error: %v", err)
			}

			out := ToDOT(d, Options{})
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestToDOTParallelEdges(t *testing.T) {
	d, _ := diagram.New("d", diagram.WithIDGenerator(seqIDs()))
	a, b := node("a"), node("b")
	if err := d.Add(a, b); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := d.Connect(a, b, diagram.Label("one")); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if _, err := d.Connect(a, b, diagram.Label("two")); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	out := ToDOT(d, Options{})
	if got := strings.Count(out, `"n1" -> "n2"`); got != 2 {
		t.Errorf("parallel edge count = %d, want 2:\n%s", got, out)
	}
}

// A layered topology with styled edges, checking counts rather than exact
// bytes: every node, cluster, and edge must appear exactly once.
func TestToDOTTopology(t *testing.T) {
	d, _ := diagram.New("Edge Architecture", diagram.WithIDGenerator(seqIDs()))

	user := node("User")
	if err := d.Add(user); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	ingress, _ := d.Cluster("Ingress")
	waf := diagram.NewNode("WAF", icons.New("aws", "security", "waf"))
	cdn := diagram.NewNode("CDN", icons.New("aws", "network", "cloudfront"))
	if err := ingress.Add(waf, cdn); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	app, _ := d.Cluster("Application")
	srv := node("Server")
	if err := app.Add(srv); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if _, err := d.Connect(user, waf, diagram.Label("HTTPS")); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := d.Chain(waf, cdn, srv); err != nil {
		t.Fatalf("Chain() error: %v", err)
	}

	out := ToDOT(d, Options{})

	if got := strings.Count(out, "subgraph"); got != 2 {
		t.Errorf("subgraph count = %d, want 2", got)
	}
	if got := strings.Count(out, " -> "); got != 3 {
		t.Errorf("edge count = %d, want 3", got)
	}
	for i := 1; i <= 4; i++ {
		id := fmt.Sprintf(`"n%d"`, i)
		if !strings.Contains(out, id+" [") {
			t.Errorf("node %s not declared", id)
		}
	}
}
