package diagram

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/cloudgram/cloudgram/pkg/errors"
)

// Direction is the primary layout direction of a diagram.
type Direction string

// Supported layout directions.
const (
	TopBottom Direction = "TB"
	BottomTop Direction = "BT"
	LeftRight Direction = "LR"
	RightLeft Direction = "RL"
)

// Splines is the edge routing style.
type Splines string

// Supported routing styles.
const (
	SplinesOrtho    Splines = "ortho"
	SplinesSpline   Splines = "spline"
	SplinesCurved   Splines = "curved"
	SplinesLine     Splines = "line"
	SplinesPolyline Splines = "polyline"
)

// Defaults applied by New.
const (
	DefaultFontSize   = 15
	DefaultBackground = "white"
)

// Diagram is the root container: global render attributes plus the top-level
// containment tree and the full edge list.
//
// A diagram is built in one pass by a single goroutine and then handed to the
// renderer; it is not safe for concurrent mutation and is not mutated after
// rendering.
type Diagram struct {
	title      string
	direction  Direction
	fontSize   int
	background string
	splines    Splines
	graphAttrs map[string]string
	outName    string

	newID func() string

	children   []Element
	nodes      []*Node
	edges      []*Edge
	clusterSeq int
}

// Option configures a diagram at construction time.
type Option func(*Diagram) error

// WithDirection sets the layout direction (default [TopBottom]).
func WithDirection(dir Direction) Option {
	return func(d *Diagram) error {
		switch dir {
		case TopBottom, BottomTop, LeftRight, RightLeft:
			d.direction = dir
			return nil
		}
		return errors.New(errors.ErrCodeInvalidDirection, "invalid direction %q", dir)
	}
}

// WithFontSize sets the global font size in points (default 15).
func WithFontSize(size int) Option {
	return func(d *Diagram) error {
		if size < 1 {
			return errors.New(errors.ErrCodeInvalidStyle, "font size must be positive, got %d", size)
		}
		d.fontSize = size
		return nil
	}
}

// WithBackground sets the diagram background color (default "white").
func WithBackground(color string) Option {
	return func(d *Diagram) error {
		if err := errors.ValidateColor(color); err != nil {
			return err
		}
		d.background = color
		return nil
	}
}

// WithSplines sets the edge routing style (default [SplinesOrtho]).
func WithSplines(s Splines) Option {
	return func(d *Diagram) error {
		switch s {
		case SplinesOrtho, SplinesSpline, SplinesCurved, SplinesLine, SplinesPolyline:
			d.splines = s
			return nil
		}
		return errors.New(errors.ErrCodeInvalidStyle, "invalid splines style %q", s)
	}
}

// WithGraphAttr sets an additional raw graph attribute passed through to the
// layout engine. Attributes set here override the built-in defaults.
func WithGraphAttr(key, value string) Option {
	return func(d *Diagram) error {
		if key == "" {
			return errors.New(errors.ErrCodeInvalidStyle, "graph attribute key cannot be empty")
		}
		d.graphAttrs[key] = value
		return nil
	}
}

// WithOutputName overrides the output file base name derived from the title.
func WithOutputName(name string) Option {
	return func(d *Diagram) error {
		if err := errors.ValidateOutputPath(name); err != nil {
			return err
		}
		d.outName = name
		return nil
	}
}

// WithIDGenerator replaces the UUID node-id generator, chiefly so tests can
// produce deterministic graph descriptions.
func WithIDGenerator(gen func() string) Option {
	return func(d *Diagram) error {
		if gen == nil {
			return errors.New(errors.ErrCodeInternal, "id generator cannot be nil")
		}
		d.newID = gen
		return nil
	}
}

// New creates an empty diagram with the given title.
func New(title string, opts ...Option) (*Diagram, error) {
	if err := errors.ValidateLabel(title); err != nil {
		return nil, err
	}

	d := &Diagram{
		title:      title,
		direction:  TopBottom,
		fontSize:   DefaultFontSize,
		background: DefaultBackground,
		splines:    SplinesOrtho,
		graphAttrs: map[string]string{},
		newID:      uuid.NewString,
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Title returns the diagram title.
func (d *Diagram) Title() string { return d.title }

// Direction returns the layout direction.
func (d *Diagram) Direction() Direction { return d.direction }

// FontSize returns the global font size.
func (d *Diagram) FontSize() int { return d.fontSize }

// Background returns the background color.
func (d *Diagram) Background() string { return d.background }

// Splines returns the edge routing style.
func (d *Diagram) Splines() Splines { return d.splines }

// GraphAttrs returns a copy of the extra graph attributes.
func (d *Diagram) GraphAttrs() map[string]string {
	out := make(map[string]string, len(d.graphAttrs))
	for k, v := range d.graphAttrs {
		out[k] = v
	}
	return out
}

// Children returns the top-level elements in declaration order.
func (d *Diagram) Children() []Element {
	out := make([]Element, len(d.children))
	copy(out, d.children)
	return out
}

// Nodes returns all attached nodes in attachment order.
func (d *Diagram) Nodes() []*Node {
	out := make([]*Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// Edges returns all edges in declaration order.
func (d *Diagram) Edges() []*Edge {
	out := make([]*Edge, len(d.edges))
	copy(out, d.edges)
	return out
}

// Add attaches nodes or clusters at the diagram's top level.
func (d *Diagram) Add(elems ...Element) error {
	for _, e := range elems {
		if err := d.attach(e, nil); err != nil {
			return err
		}
	}
	return nil
}

// Cluster creates a top-level cluster.
func (d *Diagram) Cluster(title string, opts ...ClusterOption) (*Cluster, error) {
	return d.newCluster(title, nil, opts...)
}

// Connect creates an edge from one node to another.
//
// Both endpoints must already be attached to this diagram; connecting a
// detached or foreign node fails with NODE_NOT_ATTACHED. Parallel edges
// between the same pair are permitted and each renders separately.
func (d *Diagram) Connect(from, to *Node, opts ...EdgeOption) (*Edge, error) {
	if err := d.checkAttached(from); err != nil {
		return nil, err
	}
	if err := d.checkAttached(to); err != nil {
		return nil, err
	}

	e := &Edge{from: from, to: to, style: StyleSolid, direction: DirForward}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	d.edges = append(d.edges, e)
	return e, nil
}

// Chain connects consecutive nodes with default edges, mirroring the
// a >> b >> c chaining of the original tool.
func (d *Diagram) Chain(nodes ...*Node) error {
	for i := 0; i+1 < len(nodes); i++ {
		if _, err := d.Connect(nodes[i], nodes[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// OutputName returns the output file base name: the explicit override if set,
// otherwise the slugified title (lowercased, non-alphanumerics collapsed to
// underscores), matching the original tool's file naming.
func (d *Diagram) OutputName() string {
	if d.outName != "" {
		return d.outName
	}
	return Slugify(d.title)
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title to a file-safe base name.
func Slugify(title string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(title), "_")
	return strings.Trim(s, "_")
}

// attach wires an element into the containment tree under parent (nil means
// the diagram's top level). This is the single enforcement point for the
// tree property.
func (d *Diagram) attach(e Element, parent *Cluster) error {
	switch v := e.(type) {
	case *Node:
		if v.owner != nil {
			return errors.New(errors.ErrCodeClusterOwned, "node %q already belongs to a parent", v.label)
		}
		if err := errors.ValidateLabel(v.label); err != nil {
			return err
		}
		v.owner = d
		v.parent = parent
		v.id = d.newID()
		d.nodes = append(d.nodes, v)
		d.appendChild(v, parent)
		return nil
	case *Cluster:
		// Clusters are created attached via newCluster; re-adding one is
		// always a tree violation.
		return errors.New(errors.ErrCodeClusterOwned, "cluster %q already belongs to a parent", v.title)
	default:
		return errors.New(errors.ErrCodeInternal, "unknown element type %T", e)
	}
}

func (d *Diagram) newCluster(title string, parent *Cluster, opts ...ClusterOption) (*Cluster, error) {
	if err := errors.ValidateLabel(title); err != nil {
		return nil, err
	}

	c := &Cluster{
		title: title,
		owner: d,
		seq:   d.clusterSeq,
	}
	d.clusterSeq++
	if parent != nil {
		c.parent = parent
		c.depth = parent.depth + 1
	}
	c.background = clusterPalette[c.depth%len(clusterPalette)]

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	d.appendChild(c, parent)
	return c, nil
}

func (d *Diagram) appendChild(e Element, parent *Cluster) {
	if parent == nil {
		d.children = append(d.children, e)
	} else {
		parent.children = append(parent.children, e)
	}
}

func (d *Diagram) checkAttached(n *Node) error {
	if n == nil {
		return errors.New(errors.ErrCodeNodeNotAttached, "edge endpoint is nil")
	}
	if n.owner != d {
		return errors.New(errors.ErrCodeNodeNotAttached, "node %q is not attached to this diagram", n.label)
	}
	return nil
}
