package apps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chess10kp/tuicher/internal/config"
)

// ErrNoCacheDir is returned when the index has nowhere to be written.
var ErrNoCacheDir = errors.New("no cache directory for app index")

type Options struct {
	SourceDirs []string
	CachePath  string
	Languages  []string
	Icons      IconResolver
	Workers    int
}

// Indexer scans desktop entries and keeps the serialized app index up to date.
type Indexer struct {
	opts Options
	mu   sync.Mutex
}

func NewIndexer(opts Options) *Indexer {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.SourceDirs == nil {
		opts.SourceDirs = DefaultSourceDirs()
	}
	return &Indexer{opts: opts}
}

// NewIndexerFromConfig wires the indexer to the configured paths, the
// process language preferences and a theme icon resolver.
func NewIndexerFromConfig(cfg *config.Config) (*Indexer, error) {
	cachePath, err := cfg.IndexPath()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCacheDir, err)
	}

	icons, err := NewThemeIconResolver(cfg.Icons.Theme, cfg.Icons.CacheSize)
	if err != nil {
		return nil, err
	}

	var dirs []string
	if len(cfg.Index.SourceDirs) > 0 {
		dirs = cfg.Index.SourceDirs
	}

	return NewIndexer(Options{
		SourceDirs: dirs,
		CachePath:  cachePath,
		Languages:  Languages(),
		Icons:      icons,
		Workers:    cfg.Index.ParseWorkers,
	}), nil
}

// DefaultSourceDirs lists the XDG application directories, user first.
func DefaultSourceDirs() []string {
	dirs := make([]string, 0, 4)
	for _, dir := range dataDirs() {
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}
	return dirs
}

// dataDirs returns $XDG_DATA_HOME followed by $XDG_DATA_DIRS.
func dataDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, dataHome)
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range filepath.SplitList(dataDirs) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (ix *Indexer) SourceDirs() []string {
	return append([]string(nil), ix.opts.SourceDirs...)
}

func (ix *Indexer) CachePath() string {
	return ix.opts.CachePath
}

// Build rescans every source directory and replaces the cache file.
// On failure the previous cache file is left untouched.
func (ix *Indexer) Build(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	start := time.Now()
	if ix.opts.CachePath == "" {
		return ErrNoCacheDir
	}

	files := ix.desktopFiles()
	log.Printf("[INDEXER] Found %d .desktop files, parsing with %d workers", len(files), ix.opts.Workers)

	entries, err := ix.parseAll(ctx, files)
	if err != nil {
		return err
	}

	data, err := EncodeIndex(entries)
	if err != nil {
		return err
	}
	if err := writeAtomic(ix.opts.CachePath, data); err != nil {
		return err
	}

	log.Printf("[INDEXER] Indexed %d applications in %v", len(entries), time.Since(start))
	return nil
}

// desktopFiles enumerates *.desktop files in lexical order per directory.
// A path reached twice is only kept once.
func (ix *Indexer) desktopFiles() []string {
	var files []string
	seen := make(map[string]bool)

	for _, root := range ix.opts.SourceDirs {
		if _, err := os.Stat(root); err != nil {
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(path, ".desktop") {
				return nil
			}
			if seen[path] {
				return nil
			}
			seen[path] = true
			files = append(files, path)
			return nil
		})
		if err != nil {
			log.Printf("[INDEXER] Failed to walk %s: %v", root, err)
		}
	}
	return files
}

func (ix *Indexer) parseAll(ctx context.Context, files []string) ([]AppEntry, error) {
	slots := make([]*AppEntry, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.opts.Workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			entry, err := ix.parseFile(path)
			if err != nil {
				if !errors.Is(err, errNotApplication) {
					log.Printf("[INDEXER] Skipping %s: %v", path, err)
				}
				return nil
			}
			slots[i] = &entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("index build cancelled: %w", err)
	}

	entries := make([]AppEntry, 0, len(files))
	for _, entry := range slots {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (ix *Indexer) parseFile(path string) (AppEntry, error) {
	raw, err := readDesktopEntry(path, ix.opts.Languages)
	if err != nil {
		return AppEntry{}, err
	}

	entry, err := raw.toAppEntry(path)
	if err != nil {
		return AppEntry{}, err
	}

	if ix.opts.Icons != nil && raw.Icon != "" {
		entry.IconPath = ix.opts.Icons.Resolve(raw.Icon)
	}
	return entry, nil
}

// Load reads and decodes the cache file.
func (ix *Indexer) Load() ([]AppEntry, error) {
	return LoadIndex(ix.opts.CachePath)
}

func LoadIndex(path string) ([]AppEntry, error) {
	if path == "" {
		return nil, ErrNoCacheDir
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app index: %w", err)
	}
	return DecodeIndex(data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp index file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp index file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp index file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp index file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp index file: %w", err)
	}
	return nil
}
