package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/cloudgram/cloudgram/pkg/diagram/dot"
	"github.com/cloudgram/cloudgram/pkg/manifest"
	"github.com/cloudgram/cloudgram/pkg/render"
)

// debounceDelay coalesces bursts of filesystem events (editors often write a
// file several times per save).
const debounceDelay = 200 * time.Millisecond

// previewCommand creates the preview command, a live-reloading local server.
func (c *CLI) previewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [manifest]",
		Short: "Serve a live-reloading preview of a diagram manifest",
		Long: `Serve a live-reloading preview of a diagram manifest.

The preview command renders the manifest to SVG, serves it over HTTP, and
watches the manifest for changes. The page polls for new revisions and
reloads itself, so the browser tracks your edits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), args[0], cfg)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default localhost:8321)")
	cmd.Flags().String("assets", "", "icon asset directory")

	return cmd
}

// previewState holds the latest rendered SVG, guarded for concurrent reads by
// HTTP handlers while the watcher replaces it.
type previewState struct {
	mu       sync.RWMutex
	svg      []byte
	revision int
	title    string
	lastErr  error
}

func (s *previewState) set(title string, svg []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	s.lastErr = err
	if err == nil {
		s.title = title
		s.svg = svg
	}
}

func (s *previewState) get() ([]byte, int, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.svg, s.revision, s.title, s.lastErr
}

// runPreview renders the manifest, starts the file watcher and the HTTP
// server, and blocks until the context is cancelled.
func (c *CLI) runPreview(ctx context.Context, input string, cfg *Config) error {
	state := &previewState{}
	state.set(c.renderPreview(ctx, input, cfg))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: many editors replace the
	// file on save, which drops a watch on the file itself.
	dir := filepath.Dir(input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go c.watchLoop(ctx, watcher, input, cfg, state)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           c.previewRouter(state),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	printSuccess("Preview running")
	printDetail("watching %s", input)
	printFile("http://" + cfg.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview server: %w", err)
	}
	return nil
}

// renderPreview loads and renders the manifest to SVG.
func (c *CLI) renderPreview(ctx context.Context, input string, cfg *Config) (string, []byte, error) {
	d, err := manifest.Load(input)
	if err != nil {
		return "", nil, err
	}
	dotText := dot.ToDOT(d, dot.Options{AssetDir: cfg.Assets})
	svg, err := render.RenderDOT(ctx, dotText, render.FormatSVG)
	if err != nil {
		return "", nil, err
	}
	return d.Title(), svg, nil
}

// watchLoop re-renders on manifest changes, with debouncing.
func (c *CLI) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, input string, cfg *Config, state *previewState) {
	var timer *time.Timer
	target, _ := filepath.Abs(input)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			name, _ := filepath.Abs(event.Name)
			if name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				c.Logger.Info("manifest changed, re-rendering", "file", input)
				title, svg, err := c.renderPreview(ctx, input, cfg)
				if err != nil {
					c.Logger.Error("re-render failed", "err", err)
				}
				state.set(title, svg, err)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.Logger.Warn("watch error", "err", err)
		}
	}
}

// previewRouter builds the HTTP routes for the preview server.
func (c *CLI) previewRouter(state *previewState) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		_, rev, title, _ := state.get()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, previewPage, title, rev)
	})

	r.Get("/diagram.svg", func(w http.ResponseWriter, req *http.Request) {
		svg, _, _, err := state.get()
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if svg == nil {
			http.Error(w, "no diagram rendered yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	})

	r.Get("/revision", func(w http.ResponseWriter, req *http.Request) {
		_, rev, _, _ := state.get()
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strconv.Itoa(rev)))
	})

	return r
}

// previewPage is the single HTML page served at /. It reloads whenever the
// revision endpoint reports a change.
const previewPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s · cloudgram preview</title>
<style>
  body { margin: 0; background: #f4f4f5; font-family: sans-serif; text-align: center; }
  img { max-width: 96vw; max-height: 96vh; margin: 2vh auto; background: white;
        box-shadow: 0 1px 4px rgba(0,0,0,.15); }
</style>
</head>
<body>
<img src="/diagram.svg" alt="diagram">
<script>
  const rev = %d;
  setInterval(async () => {
    const r = await fetch('/revision');
    if (parseInt(await r.text(), 10) !== rev) location.reload();
  }, 1000);
</script>
</body>
</html>
`
