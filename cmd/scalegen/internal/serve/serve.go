// Package serve implements `scalegen serve`: it decodes a metadata snapshot
// once and renders it over HTTP for each request.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/broady/scalegen"
	"github.com/broady/scalegen/cmd/scalegen/internal/config"
	"github.com/broady/scalegen/metadata"
	"github.com/broady/scalegen/middleware"
)

type Cmd struct {
	Flags       config.Flags `embed:""`
	Addr        string       `help:"Address to listen on." default:"localhost:9000"`
	AllowOrigin []string     `help:"Origins allowed to fetch output (default: any)." name:"allow-origin"`
}

func (c *Cmd) Run(g *config.Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return c.serve(ctx, g, ln)
}

// Handler loads and validates the snapshot named by the flags and returns
// the wrapped HTTP handler.
func (c *Cmd) Handler(g *config.Globals) (http.Handler, error) {
	cfg := c.Flags.Config(g.File, g.Logger)
	if cfg.Input == "" {
		return nil, scalegen.NewError(scalegen.CodeInvalidMetadata, "no metadata input given")
	}
	p, err := metadata.ReadFile(cfg.Input)
	if err != nil {
		return nil, err
	}
	if !cfg.SkipValidation {
		if err := metadata.Validate(p); err != nil {
			return nil, err
		}
	}

	var h http.Handler = NewServer(p, cfg).Handler()
	h = middleware.CORS(&middleware.CORSConfig{AllowOrigins: c.AllowOrigin, MaxAge: 600})(h)
	h = middleware.Logging(g.Logger)(h)
	return h, nil
}

func (c *Cmd) serve(ctx context.Context, g *config.Globals, ln net.Listener) error {
	h, err := c.Handler(g)
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(g.Stdout, "%s scalegen serving on http://%s/generate\n", color.GreenString("✓"), ln.Addr())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	g.Logger.Info("shutting down", slog.String("addr", ln.Addr().String()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
