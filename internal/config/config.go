package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	AppName    string `toml:"app_name"`
	SocketPath string `toml:"socket_path"`
	CacheDir   string `toml:"cache_dir"`
	ConfigDir  string `toml:"config_dir"`

	Index IndexConfig `toml:"index"`
	Icons IconsConfig `toml:"icons"`

	Bookmarks           []BookmarkConfig `toml:"bookmarks"`
	SearchEngines       []SearchEngine   `toml:"search_engines"`
	DefaultSearchEngine int              `toml:"default_search_engine"`

	EnableEmojis          bool   `toml:"enable_emojis"`
	EmojisKeyword         string `toml:"emojis_keyword"`
	EnableBookmarks       bool   `toml:"enable_bookmarks"`
	BookmarksKeyword      string `toml:"bookmarks_keyword"`
	EnableSessionManager  bool   `toml:"enable_session_manager"`
	SessionManagerKeyword string `toml:"session_manager_keyword"`
}

type IndexConfig struct {
	SourceDirs           []string `toml:"source_dirs"`
	CacheFile            string   `toml:"cache_file"`
	RebuildDebounceMs    int      `toml:"rebuild_debounce_ms"`
	MinRebuildIntervalMs int      `toml:"min_rebuild_interval_ms"`
	ParseWorkers         int      `toml:"parse_workers"`
}

type IconsConfig struct {
	Theme     string `toml:"theme"`
	CacheSize int    `toml:"cache_size"`
}

type BookmarkConfig struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// SearchEngine url templates carry a %s placeholder for the search text.
type SearchEngine struct {
	ID      int    `toml:"id"`
	Keyword string `toml:"keyword"`
	Name    string `toml:"name"`
	URL     string `toml:"url"`
}

var DefaultConfig = Config{
	AppName:    "tuicher",
	SocketPath: "/tmp/tuicher.sock",
	CacheDir:   "~/.cache/tuicher",
	ConfigDir:  "~/.config/tuicher",
	Index: IndexConfig{
		SourceDirs:           []string{},
		CacheFile:            "apps.bin",
		RebuildDebounceMs:    250,
		MinRebuildIntervalMs: 1000,
		ParseWorkers:         8,
	},
	Icons: IconsConfig{
		Theme:     "hicolor",
		CacheSize: 500,
	},
	Bookmarks: []BookmarkConfig{},
	SearchEngines: []SearchEngine{
		{ID: 1, Keyword: "d", Name: "DuckDuckGo", URL: "https://duckduckgo.com/?q=%s"},
		{ID: 2, Keyword: "g", Name: "Google", URL: "https://www.google.com/search?q=%s"},
		{ID: 3, Keyword: "yt", Name: "YouTube", URL: "https://www.youtube.com/results?search_query=%s"},
	},
	DefaultSearchEngine:   1,
	EnableEmojis:          true,
	EmojisKeyword:         "e",
	EnableBookmarks:       true,
	BookmarksKeyword:      "b",
	EnableSessionManager:  true,
	SessionManagerKeyword: "s",
}

// Default returns a deep copy of DefaultConfig.
func Default() *Config {
	cfg := DefaultConfig
	cfg.Index.SourceDirs = append([]string{}, DefaultConfig.Index.SourceDirs...)
	cfg.Bookmarks = append([]BookmarkConfig{}, DefaultConfig.Bookmarks...)
	cfg.SearchEngines = append([]SearchEngine{}, DefaultConfig.SearchEngines...)
	cfg.expandPaths()
	return &cfg
}

// LoadConfig reads a TOML file on top of the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	expandedPath := expandPath(path)

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	// Lists in the file replace the defaults instead of extending them.
	cfg.Index.SourceDirs = nil
	cfg.Bookmarks = nil
	cfg.SearchEngines = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", expandedPath, err)
	}

	defaults := Default()
	if cfg.Index.SourceDirs == nil {
		cfg.Index.SourceDirs = defaults.Index.SourceDirs
	}
	if cfg.Bookmarks == nil {
		cfg.Bookmarks = defaults.Bookmarks
	}
	if cfg.SearchEngines == nil {
		cfg.SearchEngines = defaults.SearchEngines
	}

	cfg.expandPaths()
	return cfg, nil
}

func LoadAndValidateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays path settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TUICHER_SOCKET_PATH"); v != "" {
		c.SocketPath = v
	}
	if v := os.Getenv("TUICHER_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("TUICHER_CONFIG_DIR"); v != "" {
		c.ConfigDir = v
	}
	c.expandPaths()
}

// IndexPath is the location of the serialized app index.
func (c *Config) IndexPath() (string, error) {
	dir := c.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "tuicher")
	}

	file := c.Index.CacheFile
	if file == "" {
		file = DefaultConfig.Index.CacheFile
	}
	return filepath.Join(dir, file), nil
}

// DefaultEngine returns the engine whose id equals DefaultSearchEngine.
func (c *Config) DefaultEngine() (SearchEngine, bool) {
	for _, engine := range c.SearchEngines {
		if engine.ID == c.DefaultSearchEngine {
			return engine, true
		}
	}
	return SearchEngine{}, false
}

// EngineByKeyword returns the first engine registered under keyword.
func (c *Config) EngineByKeyword(keyword string) (SearchEngine, bool) {
	for _, engine := range c.SearchEngines {
		if engine.Keyword == keyword {
			return engine, true
		}
	}
	return SearchEngine{}, false
}

func (c *Config) expandPaths() {
	c.CacheDir = expandPath(c.CacheDir)
	c.ConfigDir = expandPath(c.ConfigDir)
	c.SocketPath = expandPath(c.SocketPath)
	for i, dir := range c.Index.SourceDirs {
		c.Index.SourceDirs[i] = expandPath(dir)
	}
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		usr, err := user.Current()
		if err == nil {
			return filepath.Join(usr.HomeDir, path[1:])
		}
	}
	return path
}

func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateIndex(); err != nil {
		return err
	}
	if err := c.validateSearchEngines(); err != nil {
		return err
	}
	if err := c.validateFeatures(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.SocketPath) == "" {
		return fmt.Errorf("%w: socket_path is empty", ErrInvalid)
	}
	return nil
}

func (c *Config) validateIndex() error {
	i := c.Index
	if i.RebuildDebounceMs < 0 || i.RebuildDebounceMs > 60000 {
		return fmt.Errorf("%w: rebuild_debounce_ms %d (must be 0-60000)", ErrInvalid, i.RebuildDebounceMs)
	}
	if i.MinRebuildIntervalMs < 0 || i.MinRebuildIntervalMs > 600000 {
		return fmt.Errorf("%w: min_rebuild_interval_ms %d (must be 0-600000)", ErrInvalid, i.MinRebuildIntervalMs)
	}
	if i.ParseWorkers < 0 || i.ParseWorkers > 256 {
		return fmt.Errorf("%w: parse_workers %d (must be 0-256)", ErrInvalid, i.ParseWorkers)
	}
	if strings.ContainsRune(i.CacheFile, filepath.Separator) {
		return fmt.Errorf("%w: cache_file %q must be a bare file name", ErrInvalid, i.CacheFile)
	}
	if c.Icons.CacheSize < 0 || c.Icons.CacheSize > 100000 {
		return fmt.Errorf("%w: icons.cache_size %d (must be 0-100000)", ErrInvalid, c.Icons.CacheSize)
	}
	return nil
}

func (c *Config) validateSearchEngines() error {
	ids := make(map[int]bool)
	for _, engine := range c.SearchEngines {
		if ids[engine.ID] {
			return fmt.Errorf("%w: duplicate search engine id %d", ErrInvalid, engine.ID)
		}
		ids[engine.ID] = true

		if strings.TrimSpace(engine.Keyword) == "" || strings.ContainsAny(engine.Keyword, " \t\n") {
			return fmt.Errorf("%w: search engine %q needs a single-token keyword", ErrInvalid, engine.Name)
		}
		if !strings.Contains(engine.URL, "%s") {
			return fmt.Errorf("%w: search engine %q url has no %%s placeholder", ErrInvalid, engine.Name)
		}
	}

	if c.DefaultSearchEngine != 0 && !ids[c.DefaultSearchEngine] {
		return fmt.Errorf("%w: default_search_engine %d does not match any engine", ErrInvalid, c.DefaultSearchEngine)
	}
	return nil
}

func (c *Config) validateFeatures() error {
	features := []struct {
		name    string
		enabled bool
		keyword string
	}{
		{"emojis", c.EnableEmojis, c.EmojisKeyword},
		{"bookmarks", c.EnableBookmarks, c.BookmarksKeyword},
		{"session_manager", c.EnableSessionManager, c.SessionManagerKeyword},
	}

	for _, f := range features {
		if !f.enabled {
			continue
		}
		if strings.TrimSpace(f.keyword) == "" || strings.ContainsAny(f.keyword, " \t\n") {
			return fmt.Errorf("%w: %s is enabled but its keyword %q is not a single token", ErrInvalid, f.name, f.keyword)
		}
	}
	return nil
}

func ValidateConfig(path string) error {
	_, err := LoadAndValidateConfig(path)
	return err
}
