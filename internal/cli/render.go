package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudgram/cloudgram/pkg/cache"
	"github.com/cloudgram/cloudgram/pkg/diagram"
	"github.com/cloudgram/cloudgram/pkg/diagram/dot"
	"github.com/cloudgram/cloudgram/pkg/manifest"
	"github.com/cloudgram/cloudgram/pkg/render"
)

// renderCommand creates the render command for generating diagram images.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Render a diagram manifest to an image",
		Long: `Render a diagram manifest to an image.

The render command reads a declarative diagram description (.toml or .hcl),
lays it out with Graphviz, and writes the result next to the manifest (or to
--output). The output base name defaults to the slugified diagram title.

Results are cached by content, so re-rendering an unchanged manifest is
instant. Use --no-cache to force a fresh layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			formats := parseFormats(formatsStr, cfg.Format)
			if err := render.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, output, cfg, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, pdf, dot (comma-separated)")
	cmd.Flags().String("assets", "", "icon asset directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

// runRender loads the manifest, renders each requested format, and writes the
// artifacts.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, output string, cfg *Config, noCache bool) error {
	prog := newProgress(c.Logger)
	ctx = withLogger(ctx, c.Logger)

	d, err := manifest.Load(input)
	if err != nil {
		return fmt.Errorf("load manifest %s: %w", input, err)
	}
	c.Logger.Debug("manifest loaded", "title", d.Title(), "nodes", len(d.Nodes()), "edges", len(d.Edges()))

	for _, n := range d.Isolated() {
		printWarning("node %q has no connections", strings.ReplaceAll(n.Label(), "\n", " "))
	}
	if s := d.Stats(); s.Components > 1 {
		printWarning("diagram splits into %d disconnected parts", s.Components)
	}

	store := c.newCache(ctx, cfg, noCache)
	defer store.Close()

	dotText := dot.ToDOT(d, dot.Options{AssetDir: cfg.Assets})

	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	anyCached := false
	written := make([]string, 0, len(formats))
	for _, format := range formats {
		data, hit, err := renderCached(ctx, store, dotText, format)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return err
		}
		anyCached = anyCached || hit

		path := outputPath(d, format, output, len(formats) > 1)
		if err := render.WriteFile(path, data); err != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	spinner.Stop()

	printSuccess("Rendered %s", d.Title())
	stats := d.Stats()
	printStats(stats.Nodes, stats.Edges, stats.Clusters, anyCached)
	for _, path := range written {
		printFile(path)
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(written)))
	return nil
}

// renderCached renders one format through the artifact cache. DOT output is
// never cached since it is the cache key's own input.
func renderCached(ctx context.Context, store cache.Cache, dotText, format string) ([]byte, bool, error) {
	if format == render.FormatDOT {
		return []byte(dotText), false, nil
	}

	key := cache.RenderKey([]byte(dotText), format)
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	data, err := render.RenderDOT(ctx, dotText, format)
	if err != nil {
		return nil, false, err
	}
	if err := store.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		// Cache failures must not fail the render.
		loggerFromContext(ctx).Debug("cache write failed", "err", err)
	}
	return data, false, nil
}

// outputPath resolves where one artifact goes. With multiple formats an
// explicit --output acts as a base path and gains the format extension.
func outputPath(d *diagram.Diagram, format, output string, multi bool) string {
	if output != "" && multi {
		return strings.TrimSuffix(output, "."+format) + "." + format
	}
	return render.OutputPath(d, format, output)
}

// parseFormats parses a comma-separated format string, falling back to the
// configured default.
func parseFormats(s, fallback string) []string {
	if s == "" {
		if fallback == "" {
			fallback = render.DefaultFormat
		}
		return []string{fallback}
	}
	return strings.Split(s, ",")
}
