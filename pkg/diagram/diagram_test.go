package diagram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cloudgram/cloudgram/pkg/errors"
	"github.com/cloudgram/cloudgram/pkg/icons"
)

func testIcon() icons.Icon {
	return icons.New("aws", "compute", "ec2")
}

// seqIDs returns an id generator producing n1, n2, n3, ...
func seqIDs() func() string {
	i := 0
	return func() string {
		i++
		return fmt.Sprintf("n%d", i)
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New("Test Diagram")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if d.Title() != "Test Diagram" {
		t.Errorf("Title() = %q, want %q", d.Title(), "Test Diagram")
	}
	if d.Direction() != TopBottom {
		t.Errorf("Direction() = %q, want %q", d.Direction(), TopBottom)
	}
	if d.FontSize() != DefaultFontSize {
		t.Errorf("FontSize() = %d, want %d", d.FontSize(), DefaultFontSize)
	}
	if d.Background() != DefaultBackground {
		t.Errorf("Background() = %q, want %q", d.Background(), DefaultBackground)
	}
	if d.Splines() != SplinesOrtho {
		t.Errorf("Splines() = %q, want %q", d.Splines(), SplinesOrtho)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		opts     []Option
		wantCode errors.Code
	}{
		{"empty title", "", nil, errors.ErrCodeInvalidLabel},
		{"long title", strings.Repeat("x", 257), nil, errors.ErrCodeInvalidLabel},
		{"bad direction", "d", []Option{WithDirection("XX")}, errors.ErrCodeInvalidDirection},
		{"zero font size", "d", []Option{WithFontSize(0)}, errors.ErrCodeInvalidStyle},
		{"negative font size", "d", []Option{WithFontSize(-3)}, errors.ErrCodeInvalidStyle},
		{"bad splines", "d", []Option{WithSplines("zigzag")}, errors.ErrCodeInvalidStyle},
		{"bad background", "d", []Option{WithBackground("#12")}, errors.ErrCodeInvalidStyle},
		{"empty attr key", "d", []Option{WithGraphAttr("", "v")}, errors.ErrCodeInvalidStyle},
		{"traversal output", "d", []Option{WithOutputName("../evil")}, errors.ErrCodeInvalidPath},
		{"nil id generator", "d", []Option{WithIDGenerator(nil)}, errors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.title, tt.opts...)
			if err == nil {
				t.Fatal("New() succeeded, want error")
			}
			if code := errors.GetCode(err); code != tt.wantCode {
				t.Errorf("error code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestAddAssignsIDs(t *testing.T) {
	d, err := New("d", WithIDGenerator(seqIDs()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	a := NewNode("a", testIcon())
	b := NewNode("b", testIcon())

	if a.Attached() {
		t.Error("detached node reports Attached() = true")
	}
	if a.ID() != "" {
		t.Errorf("detached node ID() = %q, want empty", a.ID())
	}

	if err := d.Add(a, b); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if a.ID() != "n1" || b.ID() != "n2" {
		t.Errorf("ids = %q, %q, want n1, n2", a.ID(), b.ID())
	}
	if !a.Attached() {
		t.Error("attached node reports Attached() = false")
	}
	if got := len(d.Nodes()); got != 2 {
		t.Errorf("len(Nodes()) = %d, want 2", got)
	}
}

func TestAddRejectsInvalidLabel(t *testing.T) {
	d, _ := New("d")

	if err := d.Add(NewNode("", testIcon())); errors.GetCode(err) != errors.ErrCodeInvalidLabel {
		t.Errorf("Add(empty label) code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidLabel)
	}

	// Newlines are display line breaks, not control characters.
	if err := d.Add(NewNode("two\nlines", testIcon())); err != nil {
		t.Errorf("Add(multi-line label) error: %v", err)
	}
}

func TestTreeProperty(t *testing.T) {
	d, _ := New("d", WithIDGenerator(seqIDs()))

	c1, err := d.Cluster("first")
	if err != nil {
		t.Fatalf("Cluster() error: %v", err)
	}
	c2, err := d.Cluster("second")
	if err != nil {
		t.Fatalf("Cluster() error: %v", err)
	}

	n := NewNode("shared", testIcon())
	if err := c1.Add(n); err != nil {
		t.Fatalf("first Add() error: %v", err)
	}

	// Same node in a second cluster violates the containment tree.
	err = c2.Add(n)
	if errors.GetCode(err) != errors.ErrCodeClusterOwned {
		t.Errorf("re-parent code = %q, want %q", errors.GetCode(err), errors.ErrCodeClusterOwned)
	}
	if n.Parent() != c1 {
		t.Error("failed re-parent moved the node")
	}

	// Same for the diagram top level.
	if err := d.Add(n); errors.GetCode(err) != errors.ErrCodeClusterOwned {
		t.Errorf("top-level re-add code = %q, want %q", errors.GetCode(err), errors.ErrCodeClusterOwned)
	}

	// A cluster cannot be re-added either.
	if err := c2.Add(c1); errors.GetCode(err) != errors.ErrCodeClusterOwned {
		t.Errorf("cluster re-add code = %q, want %q", errors.GetCode(err), errors.ErrCodeClusterOwned)
	}
}

func TestCrossDiagramAttach(t *testing.T) {
	d1, _ := New("one", WithIDGenerator(seqIDs()))
	d2, _ := New("two", WithIDGenerator(seqIDs()))

	n := NewNode("n", testIcon())
	if err := d1.Add(n); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if err := d2.Add(n); errors.GetCode(err) != errors.ErrCodeClusterOwned {
		t.Errorf("cross-diagram Add() code = %q, want %q", errors.GetCode(err), errors.ErrCodeClusterOwned)
	}
}

func TestClusterNesting(t *testing.T) {
	d, _ := New("d")

	outer, _ := d.Cluster("outer")
	middle, _ := outer.Cluster("middle")
	inner, _ := middle.Cluster("inner")

	if outer.Depth() != 0 || middle.Depth() != 1 || inner.Depth() != 2 {
		t.Errorf("depths = %d, %d, %d, want 0, 1, 2", outer.Depth(), middle.Depth(), inner.Depth())
	}
	if inner.Parent() != middle || middle.Parent() != outer || outer.Parent() != nil {
		t.Error("parent links do not form the declared chain")
	}

	// Backgrounds cycle through the depth palette.
	want := []string{"#E5F5FD", "#EBF3E7", "#ECE8F6"}
	got := []string{outer.Background(), middle.Background(), inner.Background()}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("background[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClusterBackgroundOverride(t *testing.T) {
	d, _ := New("d")

	c, err := d.Cluster("c", WithClusterBackground("#FF0000"))
	if err != nil {
		t.Fatalf("Cluster() error: %v", err)
	}
	if c.Background() != "#FF0000" {
		t.Errorf("Background() = %q, want #FF0000", c.Background())
	}

	if _, err := d.Cluster("bad", WithClusterBackground("#XYZ")); errors.GetCode(err) != errors.ErrCodeInvalidStyle {
		t.Errorf("invalid color code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidStyle)
	}
}

func TestConnect(t *testing.T) {
	d, _ := New("d", WithIDGenerator(seqIDs()))
	a := NewNode("a", testIcon())
	b := NewNode("b", testIcon())
	if err := d.Add(a, b); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	e, err := d.Connect(a, b, Label("link"), Color("gray"), Dashed())
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if e.From() != a || e.To() != b {
		t.Error("edge endpoints do not match arguments")
	}
	if e.Label() != "link" || e.Color() != "gray" || e.Style() != StyleDashed {
		t.Errorf("edge = %q/%q/%q, want link/gray/dashed", e.Label(), e.Color(), e.Style())
	}
	if e.Direction() != DirForward {
		t.Errorf("Direction() = %q, want %q", e.Direction(), DirForward)
	}
}

func TestConnectRejectsDetached(t *testing.T) {
	d, _ := New("d", WithIDGenerator(seqIDs()))
	attached := NewNode("in", testIcon())
	if err := d.Add(attached); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	loose := NewNode("out", testIcon())

	if _, err := d.Connect(attached, loose); errors.GetCode(err) != errors.ErrCodeNodeNotAttached {
		t.Errorf("detached target code = %q, want %q", errors.GetCode(err), errors.ErrCodeNodeNotAttached)
	}
	if _, err := d.Connect(loose, attached); errors.GetCode(err) != errors.ErrCodeNodeNotAttached {
		t.Errorf("detached source code = %q, want %q", errors.GetCode(err), errors.ErrCodeNodeNotAttached)
	}
	if _, err := d.Connect(attached, nil); errors.GetCode(err) != errors.ErrCodeNodeNotAttached {
		t.Errorf("nil target code = %q, want %q", errors.GetCode(err), errors.ErrCodeNodeNotAttached)
	}
	if got := len(d.Edges()); got != 0 {
		t.Errorf("failed Connect() left %d edges", got)
	}

	other, _ := New("other", WithIDGenerator(seqIDs()))
	foreign := NewNode("foreign", testIcon())
	if err := other.Add(foreign); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := d.Connect(attached, foreign); errors.GetCode(err) != errors.ErrCodeNodeNotAttached {
		t.Errorf("foreign node code = %q, want %q", errors.GetCode(err), errors.ErrCodeNodeNotAttached)
	}
}

func TestParallelEdges(t *testing.T) {
	d, _ := New("d", WithIDGenerator(seqIDs()))
	a := NewNode("a", testIcon())
	b := NewNode("b", testIcon())
	if err := d.Add(a, b); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if _, err := d.Connect(a, b, Label("first")); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if _, err := d.Connect(a, b, Label("second")); err != nil {
		t.Fatalf("parallel Connect() error: %v", err)
	}
	if _, err := d.Connect(a, a); err != nil {
		t.Fatalf("self Connect() error: %v", err)
	}

	if got := len(d.Edges()); got != 3 {
		t.Errorf("len(Edges()) = %d, want 3", got)
	}
}

func TestChain(t *testing.T) {
	d, _ := New("d", WithIDGenerator(seqIDs()))
	a := NewNode("a", testIcon())
	b := NewNode("b", testIcon())
	c := NewNode("c", testIcon())
	if err := d.Add(a, b, c); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if err := d.Chain(a, b, c); err != nil {
		t.Fatalf("Chain() error: %v", err)
	}

	edges := d.Edges()
	if len(edges) != 2 {
		t.Fatalf("len(Edges()) = %d, want 2", len(edges))
	}
	if edges[0].From() != a || edges[0].To() != b || edges[1].From() != b || edges[1].To() != c {
		t.Error("chain edges do not follow argument order")
	}

	// Degenerate chains are no-ops.
	if err := d.Chain(a); err != nil {
		t.Errorf("Chain(one) error: %v", err)
	}
	if err := d.Chain(); err != nil {
		t.Errorf("Chain() error: %v", err)
	}
}

func TestEdgeDirections(t *testing.T) {
	tests := []struct {
		name string
		opts []EdgeOption
		want ArrowDirection
	}{
		{"default", nil, DirForward},
		{"reverse", []EdgeOption{Reverse()}, DirReverse},
		{"bidirectional", []EdgeOption{Bidirectional()}, DirBoth},
		{"undirected", []EdgeOption{Undirected()}, DirNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := New("d", WithIDGenerator(seqIDs()))
			a := NewNode("a", testIcon())
			b := NewNode("b", testIcon())
			if err := d.Add(a, b); err != nil {
				t.Fatalf("Add() error: %v", err)
			}
			e, err := d.Connect(a, b, tt.opts...)
			if err != nil {
				t.Fatalf("Connect() error: %v", err)
			}
			if e.Direction() != tt.want {
				t.Errorf("Direction() = %q, want %q", e.Direction(), tt.want)
			}
		})
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"OpenClaw Security Architecture", "openclaw_security_architecture"},
		{"Hello, World!", "hello_world"},
		{"  spaces  ", "spaces"},
		{"already_slugged", "already_slugged"},
		{"MiXeD CaSe 123", "mixed_case_123"},
	}

	for _, tt := range tests {
		d, err := New(tt.title)
		if err != nil {
			t.Fatalf("New(%q) error: %v", tt.title, err)
		}
		if got := d.OutputName(); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestOutputNameOverride(t *testing.T) {
	d, err := New("Some Title", WithOutputName("custom/name"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := d.OutputName(); got != "custom/name" {
		t.Errorf("OutputName() = %q, want custom/name", got)
	}
}

func TestGraphAttrOverride(t *testing.T) {
	d, err := New("d", WithGraphAttr("nodesep", "1.5"), WithGraphAttr("compound", "true"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	attrs := d.GraphAttrs()
	if attrs["nodesep"] != "1.5" || attrs["compound"] != "true" {
		t.Errorf("GraphAttrs() = %v", attrs)
	}

	// Returned map is a copy.
	attrs["nodesep"] = "9"
	if d.GraphAttrs()["nodesep"] != "1.5" {
		t.Error("GraphAttrs() exposed internal map")
	}
}
