// Package watch triggers app index rebuilds when desktop entry directories change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

type Options struct {
	// Debounce is the quiet period after the last event before a rebuild.
	Debounce time.Duration
	// MinInterval is the minimum time between two rebuilds.
	MinInterval time.Duration
	Rebuild     func(ctx context.Context) error
}

type Watcher struct {
	dirs      []string
	rebuild   func(ctx context.Context) error
	debouncer *Debouncer
	limiter   *rate.Limiter

	watcher   *fsnotify.Watcher
	trigger   chan struct{}
	closeOnce sync.Once
	closed    chan struct{}
}

// New watches every existing directory in dirs, recursively. Directories
// that do not exist are skipped.
func New(dirs []string, opts Options) (*Watcher, error) {
	if opts.Rebuild == nil {
		return nil, fmt.Errorf("rebuild func is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}

	w := &Watcher{
		dirs:      append([]string(nil), dirs...),
		rebuild:   opts.Rebuild,
		debouncer: NewDebouncer(opts.Debounce),
		limiter:   rate.NewLimiter(limit, 1),
		watcher:   fsw,
		trigger:   make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}
	w.debouncer.OnFire(func(paths []string) {
		log.Printf("[WATCHER] %d path(s) changed, scheduling rebuild", len(paths))
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})

	watched := 0
	for _, dir := range w.dirs {
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			continue
		}
		if err := w.addDirRecursive(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched++
	}
	log.Printf("[WATCHER] Watching %d of %d source directories", watched, len(w.dirs))

	return w, nil
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	w.closeOnce.Do(func() { close(w.closed) })
	w.debouncer.Stop()
	return w.watcher.Close()
}

// Run handles filesystem events until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.watcher == nil {
		return fmt.Errorf("watcher is not initialized")
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.rebuildLoop(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.closed:
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WATCHER] Watch error: %v", err)
		}
	}
}

func (w *Watcher) rebuildLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.trigger:
		}

		if err := w.limiter.Wait(ctx); err != nil {
			return
		}

		start := time.Now()
		if err := w.rebuild(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("[WATCHER] Rebuild failed: %v", err)
			continue
		}
		log.Printf("[WATCHER] Rebuild finished in %v", time.Since(start))
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Remove) {
		return
	}

	if ev.Op.Has(fsnotify.Create) {
		if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
			if err := w.addDirRecursive(ev.Name); err != nil {
				log.Printf("[WATCHER] Failed to watch new directory %s: %v", ev.Name, err)
			}
		}
	}

	w.debouncer.Push(ev.Name)
}

func (w *Watcher) addDirRecursive(root string) error {
	return filepath.WalkDir(filepath.Clean(root), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(p)
	})
}
