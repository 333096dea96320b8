package diagram

import (
	"github.com/cloudgram/cloudgram/pkg/errors"
)

// LineStyle is the stroke style of an edge.
type LineStyle string

// Supported line styles.
const (
	StyleSolid  LineStyle = "solid"
	StyleDashed LineStyle = "dashed"
	StyleDotted LineStyle = "dotted"
	StyleBold   LineStyle = "bold"
)

// ArrowDirection controls which ends of an edge carry arrowheads.
type ArrowDirection string

// Supported arrow directions.
const (
	DirForward ArrowDirection = "forward"
	DirReverse ArrowDirection = "back"
	DirBoth    ArrowDirection = "both"
	DirNone    ArrowDirection = "none"
)

// Edge is a styled connection between two nodes of the same diagram.
// Edges are created with [Diagram.Connect] and are immutable afterwards.
type Edge struct {
	from, to *Node

	label     string
	color     string
	style     LineStyle
	direction ArrowDirection
}

// From returns the source node.
func (e *Edge) From() *Node { return e.from }

// To returns the destination node.
func (e *Edge) To() *Node { return e.to }

// Label returns the edge label, possibly empty.
func (e *Edge) Label() string { return e.label }

// Color returns the edge color, possibly empty (renderer default).
func (e *Edge) Color() string { return e.color }

// Style returns the line style.
func (e *Edge) Style() LineStyle { return e.style }

// Direction returns the arrow direction.
func (e *Edge) Direction() ArrowDirection { return e.direction }

// EdgeOption configures an edge at construction time.
type EdgeOption func(*Edge) error

// Label sets the edge's display label.
func Label(label string) EdgeOption {
	return func(e *Edge) error {
		e.label = label
		return nil
	}
}

// Color sets the edge's stroke (and label) color.
func Color(color string) EdgeOption {
	return func(e *Edge) error {
		if err := errors.ValidateColor(color); err != nil {
			return err
		}
		e.color = color
		return nil
	}
}

// Style sets the edge's line style.
func Style(s LineStyle) EdgeOption {
	return func(e *Edge) error {
		switch s {
		case StyleSolid, StyleDashed, StyleDotted, StyleBold:
			e.style = s
			return nil
		}
		return errors.New(errors.ErrCodeInvalidStyle, "invalid line style %q", s)
	}
}

// Dashed is shorthand for Style(StyleDashed).
func Dashed() EdgeOption { return Style(StyleDashed) }

// Dotted is shorthand for Style(StyleDotted).
func Dotted() EdgeOption { return Style(StyleDotted) }

// Bold is shorthand for Style(StyleBold).
func Bold() EdgeOption { return Style(StyleBold) }

// Reverse puts the arrowhead on the source end (b ← a becomes a pointing
// back), matching the original tool's << operator.
func Reverse() EdgeOption {
	return func(e *Edge) error {
		e.direction = DirReverse
		return nil
	}
}

// Bidirectional puts arrowheads on both ends.
func Bidirectional() EdgeOption {
	return func(e *Edge) error {
		e.direction = DirBoth
		return nil
	}
}

// Undirected removes both arrowheads.
func Undirected() EdgeOption {
	return func(e *Edge) error {
		e.direction = DirNone
		return nil
	}
}
