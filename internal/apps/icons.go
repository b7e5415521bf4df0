package apps

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hashicorp/golang-lru/v2"
)

// IconResolver maps a desktop entry Icon value to a file path.
// An empty result means the icon could not be found.
type IconResolver interface {
	Resolve(icon string) string
}

var (
	iconSizes      = []string{"scalable", "512x512", "256x256", "192x192", "128x128", "96x96", "64x64", "48x48", "32x32", "24x24", "16x16"}
	iconExtensions = []string{".svg", ".png", ".xpm"}
)

// ThemeIconResolver looks icons up in icon theme directories and pixmaps,
// remembering both hits and misses.
type ThemeIconResolver struct {
	cache    *lru.Cache[string, string]
	iconDirs []string
	pixmaps  []string
	themes   []string
}

func NewThemeIconResolver(theme string, cacheSize int) (*ThemeIconResolver, error) {
	if cacheSize <= 0 {
		cacheSize = 500
	}

	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon cache: %w", err)
	}

	themes := []string{"hicolor"}
	if theme != "" && theme != "hicolor" {
		themes = []string{theme, "hicolor"}
	}

	var iconDirs, pixmaps []string
	if home, err := os.UserHomeDir(); err == nil {
		iconDirs = append(iconDirs, filepath.Join(home, ".icons"))
	}
	for _, dir := range dataDirs() {
		iconDirs = append(iconDirs, filepath.Join(dir, "icons"))
		pixmaps = append(pixmaps, filepath.Join(dir, "pixmaps"))
	}

	return &ThemeIconResolver{
		cache:    cache,
		iconDirs: iconDirs,
		pixmaps:  pixmaps,
		themes:   themes,
	}, nil
}

func (r *ThemeIconResolver) Resolve(icon string) string {
	if icon == "" {
		return ""
	}

	if path, hit := r.cache.Get(icon); hit {
		return path
	}

	path := r.lookup(icon)
	r.cache.Add(icon, path)
	if path == "" {
		log.Printf("[ICONS] No file for icon '%s'", icon)
	}
	return path
}

func (r *ThemeIconResolver) lookup(icon string) string {
	if filepath.IsAbs(icon) {
		if fileExists(icon) {
			return icon
		}
		return ""
	}

	for _, base := range r.iconDirs {
		for _, theme := range r.themes {
			for _, size := range iconSizes {
				dir := filepath.Join(base, theme, size, "apps")
				if path := firstWithExtension(dir, icon); path != "" {
					return path
				}
			}
		}
	}

	for _, dir := range r.pixmaps {
		if path := firstWithExtension(dir, icon); path != "" {
			return path
		}
	}
	return ""
}

func firstWithExtension(dir, name string) string {
	for _, ext := range iconExtensions {
		path := filepath.Join(dir, name+ext)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
