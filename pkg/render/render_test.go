package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudgram/cloudgram/pkg/diagram"
	"github.com/cloudgram/cloudgram/pkg/errors"
	"github.com/cloudgram/cloudgram/pkg/icons"
)

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"png", "svg", "pdf", "dot"}); err != nil {
		t.Errorf("ValidateFormats(all) error: %v", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("ValidateFormats(none) error: %v", err)
	}

	err := ValidateFormats([]string{"png", "webp"})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	// The dot format must not touch the layout engine.
	out, err := RenderDOT(context.Background(), "digraph {}\n", FormatDOT)
	if err != nil {
		t.Fatalf("RenderDOT() error: %v", err)
	}
	if string(out) != "digraph {}\n" {
		t.Errorf("RenderDOT() = %q, want passthrough", out)
	}
}

func TestRenderDOTInvalidFormat(t *testing.T) {
	_, err := RenderDOT(context.Background(), "digraph {}", "webp")
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRenderSVG(t *testing.T) {
	d, err := diagram.New("Render Test")
	if err != nil {
		t.Fatal(err)
	}
	a := diagram.NewNode("a", icons.New("aws", "compute", "ec2"))
	b := diagram.NewNode("b", icons.New("aws", "compute", "ec2"))
	if err := d.Add(a, b); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Connect(a, b); err != nil {
		t.Fatal(err)
	}

	svg, err := Render(context.Background(), d, FormatSVG, Options{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output does not look like SVG: %.80s", svg)
	}
	if !strings.Contains(string(svg), "Render Test") {
		t.Error("SVG missing the diagram title")
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	d, err := diagram.New("My Diagram")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		format string
		output string
		want   string
	}{
		{"derived", "png", "", "my_diagram.png"},
		{"explicit file", "png", "custom.png", "custom.png"},
		{"directory", "svg", dir, filepath.Join(dir, "my_diagram.svg")},
		{"nonexistent path is a file", "png", filepath.Join(dir, "sub", "x.png"), filepath.Join(dir, "sub", "x.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(d, tt.format, tt.output); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")

	if err := WriteFile(path, []byte("data")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("file content = %q, want data", got)
	}

	// Overwrite must not leave temp files behind.
	if err := WriteFile(path, []byte("newer")); err != nil {
		t.Fatalf("second WriteFile() error: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}

func TestWriteFileRejectsTraversal(t *testing.T) {
	err := WriteFile("../escape.png", []byte("x"))
	if errors.GetCode(err) != errors.ErrCodeInvalidPath {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}
