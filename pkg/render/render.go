// Package render turns diagrams into image files using the Graphviz layout
// engine.
//
// Layout and SVG/PNG rasterization run in-process through goccy/go-graphviz.
// PDF output additionally shells out to rsvg-convert (librsvg). A missing or
// broken backend is a setup failure: it is reported once, naming the
// dependency, and never retried.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-graphviz"

	"github.com/cloudgram/cloudgram/pkg/diagram"
	"github.com/cloudgram/cloudgram/pkg/diagram/dot"
	"github.com/cloudgram/cloudgram/pkg/errors"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// DefaultFormat is used when the caller does not specify one, matching the
// original tool's default raster output.
const DefaultFormat = FormatPNG

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{FormatPNG: true, FormatSVG: true, FormatPDF: true, FormatDOT: true}

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'png', 'svg', 'pdf', or 'dot')", f)
		}
	}
	return nil
}

// Options configures rendering.
type Options struct {
	// AssetDir is the icon asset directory passed through to DOT emission.
	AssetDir string
}

// Render lays out the diagram and encodes it in the given format.
//
// FormatDOT returns the graph description without invoking the layout
// engine. All other formats run Graphviz; PDF converts the SVG result with
// rsvg-convert.
func Render(ctx context.Context, d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	dotText := dot.ToDOT(d, dot.Options{AssetDir: opts.AssetDir})
	return RenderDOT(ctx, dotText, format)
}

// RenderDOT renders already-emitted DOT text. Callers that need the DOT text
// anyway (for cache keys) use this to avoid emitting twice.
func RenderDOT(ctx context.Context, dotText string, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dotText), nil
	case FormatPNG:
		return renderGraphviz(ctx, dotText, graphviz.PNG)
	case FormatSVG:
		return renderGraphviz(ctx, dotText, graphviz.SVG)
	case FormatPDF:
		svg, err := renderGraphviz(ctx, dotText, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return ToPDF(svg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s", format)
	}
}

// renderGraphviz runs the DOT text through the Graphviz layout engine.
func renderGraphviz(ctx context.Context, dotText string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderBackend, err, "initialize graphviz layout engine")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dotText))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse generated DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderBackend, err, "graphviz render")
	}
	return buf.Bytes(), nil
}

// OutputPath derives the output file path for a diagram and format.
// An explicit output overrides the name; a directory output keeps the
// derived base name inside that directory.
func OutputPath(d *diagram.Diagram, format, output string) string {
	base := d.OutputName() + "." + format
	if output == "" {
		return base
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, base)
	}
	return output
}

// WriteFile writes rendered bytes to path atomically (temp file + rename),
// creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	return os.Rename(tmp.Name(), path)
}
