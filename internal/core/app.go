package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chess10kp/tuicher/internal/apps"
	"github.com/chess10kp/tuicher/internal/config"
	"github.com/chess10kp/tuicher/internal/launcher"
	"github.com/chess10kp/tuicher/internal/watch"
)

// App wires the coordinator, the app index and the router together.
type App struct {
	config      *config.Config
	indexer     *apps.Indexer
	router      *launcher.Router
	coordinator *Coordinator
}

type AppOptions struct {
	Window   Window
	Notifier Notifier
	// Indexer overrides the indexer built from the config.
	Indexer  *apps.Indexer
	Relaunch func() error
}

// NewApp creates a new application
func NewApp(cfg *config.Config, opts AppOptions) (*App, error) {
	indexer := opts.Indexer
	if indexer == nil {
		var err error
		indexer, err = apps.NewIndexerFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create indexer: %w", err)
		}
	}

	return &App{
		config:  cfg,
		indexer: indexer,
		router:  launcher.NewRouter(cfg, launcher.RouterOptions{Index: indexer}),
		coordinator: NewCoordinator(CoordinatorOptions{
			SocketPath: cfg.SocketPath,
			Window:     opts.Window,
			Notifier:   opts.Notifier,
			Relaunch:   opts.Relaunch,
		}),
	}, nil
}

func (a *App) Router() *launcher.Router {
	return a.router
}

func (a *App) Indexer() *apps.Indexer {
	return a.indexer
}

// Run acquires the activation socket. When this process is the primary
// instance it builds the index, watches the source directories and serves
// activations until ctx is cancelled or the socket fails.
func (a *App) Run(ctx context.Context) (Role, error) {
	role, err := a.coordinator.Acquire()
	if err != nil {
		return role, err
	}
	if role != RolePrimary {
		log.Printf("Another instance handles activation (%s), exiting", role)
		return role, nil
	}
	defer a.coordinator.Close()

	log.Println("Tuicher starting...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.indexer.Build(gctx); err != nil {
			log.Printf("[INDEXER] Initial build failed: %v", err)
		}
		return nil
	})

	w, err := watch.New(a.indexer.SourceDirs(), watch.Options{
		Debounce:    time.Duration(a.config.Index.RebuildDebounceMs) * time.Millisecond,
		MinInterval: time.Duration(a.config.Index.MinRebuildIntervalMs) * time.Millisecond,
		Rebuild:     a.indexer.Build,
	})
	if err != nil {
		log.Printf("[WATCHER] Disabled: %v", err)
	} else {
		defer w.Close()
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	g.Go(func() error {
		return a.coordinator.Serve(gctx)
	})

	err = g.Wait()
	log.Println("Shutting down...")
	return RolePrimary, err
}
