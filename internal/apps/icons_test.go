package apps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/golang-lru/v2"
)

func newTestResolver(t *testing.T, iconDirs, pixmaps []string, themes ...string) *ThemeIconResolver {
	t.Helper()
	cache, err := lru.New[string, string](16)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	return &ThemeIconResolver{cache: cache, iconDirs: iconDirs, pixmaps: pixmaps, themes: themes}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("icon"), 0644); err != nil {
		t.Fatalf("Failed to write icon: %v", err)
	}
}

func TestThemeIconResolverLookupOrder(t *testing.T) {
	root := t.TempDir()
	icons := filepath.Join(root, "icons")
	pixmaps := filepath.Join(root, "pixmaps")

	themed := filepath.Join(icons, "Papirus", "48x48", "apps", "editor.png")
	hicolor := filepath.Join(icons, "hicolor", "scalable", "apps", "editor.svg")
	pixmap := filepath.Join(pixmaps, "legacy.xpm")
	touch(t, themed)
	touch(t, hicolor)
	touch(t, pixmap)

	r := newTestResolver(t, []string{icons}, []string{pixmaps}, "Papirus", "hicolor")

	testCases := []struct {
		icon     string
		expected string
	}{
		{"editor", themed},
		{"legacy", pixmap},
		{hicolor, hicolor},
		{"/does/not/exist.png", ""},
		{"unknown", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := r.Resolve(tc.icon); got != tc.expected {
			t.Errorf("Resolve(%q): expected '%s', got '%s'", tc.icon, tc.expected, got)
		}
	}
}

func TestThemeIconResolverCachesMisses(t *testing.T) {
	icons := t.TempDir()
	r := newTestResolver(t, []string{icons}, nil, "hicolor")

	if got := r.Resolve("late"); got != "" {
		t.Fatalf("Expected miss, got '%s'", got)
	}

	touch(t, filepath.Join(icons, "hicolor", "32x32", "apps", "late.png"))

	if got := r.Resolve("late"); got != "" {
		t.Errorf("Expected cached miss, got '%s'", got)
	}
}
