// Package dot converts a diagram to Graphviz DOT text.
//
// The emitter is a pure function of the diagram: no layout is performed and
// no external dependency is touched, so the graph description can be tested
// independently of the layout engine. Emission is deterministic for a given
// diagram; clusters, nodes, and edges appear in declaration order and
// attribute maps are emitted in sorted key order.
package dot

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cloudgram/cloudgram/pkg/diagram"
)

// Options configures DOT emission.
type Options struct {
	// AssetDir is the icon asset directory. When set, nodes whose icon has
	// an asset render as images; otherwise they render as colored boxes.
	AssetDir string
}

// ToDOT converts a diagram to Graphviz DOT format.
// The resulting string can be rendered with the render package.
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph {\n")

	writeGraphAttrs(&buf, d)
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded\", fontname=\"Sans-Serif\", fontsize=%d];\n", nodeFontSize)
	buf.WriteString("\n")

	for _, e := range d.Children() {
		writeElement(&buf, e, opts, 1)
	}

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		writeEdge(&buf, e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Font sizes below the diagram-level size, matching the original tool.
const (
	nodeFontSize    = 13
	clusterFontSize = 12
)

// clusterBorder is the bounding-box pen color for all clusters.
const clusterBorder = "#AEB6BE"

func writeGraphAttrs(buf *bytes.Buffer, d *diagram.Diagram) {
	attrs := map[string]string{
		"label":    d.Title(),
		"labelloc": "t",
		"fontname": "Sans-Serif",
		"fontsize": fmt.Sprintf("%d", d.FontSize()),
		"bgcolor":  d.Background(),
		"rankdir":  string(d.Direction()),
		"splines":  string(d.Splines()),
		"nodesep":  "0.60",
		"ranksep":  "0.75",
		"pad":      "1.0",
	}
	// Custom attributes override the defaults.
	maps.Copy(attrs, d.GraphAttrs())

	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		fmt.Fprintf(buf, "  %s=%q;\n", k, attrs[k])
	}
}

func writeElement(buf *bytes.Buffer, e diagram.Element, opts Options, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := e.(type) {
	case *diagram.Node:
		fmt.Fprintf(buf, "%s%q [%s];\n", indent, v.ID(), nodeAttrs(v, opts))
	case *diagram.Cluster:
		fmt.Fprintf(buf, "%ssubgraph \"cluster_%d\" {\n", indent, v.Index())
		fmt.Fprintf(buf, "%s  label=%q;\n", indent, v.Title())
		fmt.Fprintf(buf, "%s  labeljust=\"l\";\n", indent)
		fmt.Fprintf(buf, "%s  fontsize=%d;\n", indent, clusterFontSize)
		fmt.Fprintf(buf, "%s  style=\"rounded\";\n", indent)
		fmt.Fprintf(buf, "%s  bgcolor=%q;\n", indent, v.Background())
		fmt.Fprintf(buf, "%s  pencolor=%q;\n", indent, clusterBorder)
		for _, child := range v.Children() {
			writeElement(buf, child, opts, depth+1)
		}
		fmt.Fprintf(buf, "%s}\n", indent)
	}
}

func nodeAttrs(n *diagram.Node, opts Options) string {
	attrs := n.Icon().Attrs(opts.AssetDir)
	attrs["label"] = n.Label()

	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, fmt.Sprintf("%s=%q", k, attrs[k]))
	}
	return strings.Join(parts, ", ")
}

func writeEdge(buf *bytes.Buffer, e *diagram.Edge) {
	attrs := map[string]string{}
	if e.Label() != "" {
		attrs["label"] = e.Label()
	}
	if e.Color() != "" {
		attrs["color"] = e.Color()
		attrs["fontcolor"] = e.Color()
	}
	if e.Style() != diagram.StyleSolid {
		attrs["style"] = string(e.Style())
	}
	if e.Direction() != diagram.DirForward {
		attrs["dir"] = string(e.Direction())
	}

	if len(attrs) == 0 {
		fmt.Fprintf(buf, "  %q -> %q;\n", e.From().ID(), e.To().ID())
		return
	}

	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, fmt.Sprintf("%s=%q", k, attrs[k]))
	}
	fmt.Fprintf(buf, "  %q -> %q [%s];\n", e.From().ID(), e.To().ID(), strings.Join(parts, ", "))
}
