// Package cmd defines the service's CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-stac-search/api"
	"github.com/robert-malhotra/go-stac-search/pkg/config"
	"github.com/robert-malhotra/go-stac-search/pkg/stac"
	"github.com/robert-malhotra/go-stac-search/provider"
	"github.com/robert-malhotra/go-stac-search/provider/filesystem"
	"github.com/robert-malhotra/go-stac-search/provider/remote"
	"github.com/robert-malhotra/go-stac-search/search"
)

// providerRegistry is the immutable provider dispatch table, built once at
// process start.
var providerRegistry = provider.NewRegistry(map[string]provider.Factory{
	"filesystem": filesystem.New,
	"remote":     remote.New,
})

// NewServeCommand returns the serve command.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the STAC search service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the TOML configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "bind",
				Usage: "Override the configured bind address",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if bind := cmd.String("bind"); bind != "" {
		cfg.Bind = bind
	}

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	mux := http.NewServeMux()
	server := api.NewServer(engine, logger)
	server.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.Bind,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving STAC search", "addr", cfg.Bind, "collections", len(cfg.Collections))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

// buildEngine wires the configured collections and their providers into a
// search engine.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*search.Engine, error) {
	collections := make([]search.Collection, 0, len(cfg.Collections))
	for _, id := range cfg.CollectionIDs() {
		info := cfg.Collections[id]

		p, err := providerRegistry.New(provider.Settings{
			Type: info.Provider.Type,
			Dir:  info.Provider.Dir,
			URL:  info.Provider.URL,
		})
		if err != nil {
			return nil, fmt.Errorf("collection %q: %w", id, err)
		}

		links := make([]*stac.Link, 0, len(info.Links))
		for _, l := range info.Links {
			links = append(links, &stac.Link{Rel: l.Rel, Href: l.Href, Type: l.Type, Title: l.Title})
		}

		collections = append(collections, search.Collection{
			ID:          id,
			Title:       info.Title,
			Description: info.Description,
			Links:       links,
			Provider:    p,
		})
	}

	return search.NewEngine(cfg.StacBaseURL(), collections,
		search.WithLogger(logger.With("component", "search")),
		search.WithServiceMetadata(cfg.ID, cfg.Title, cfg.Description),
		search.WithMaxDepth(cfg.MaxDepth),
		search.WithSearchTimeout(cfg.SearchTimeout.Duration),
		search.WithWorkers(cfg.Workers),
	)
}
