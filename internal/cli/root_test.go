package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	sources := filepath.Join(dir, "applications")
	if err := os.MkdirAll(sources, 0755); err != nil {
		t.Fatalf("Failed to create sources: %v", err)
	}
	entry := "[Desktop Entry]\nType=Application\nName=Firefox\nComment=Web Browser\n"
	if err := os.WriteFile(filepath.Join(sources, "firefox.desktop"), []byte(entry), 0644); err != nil {
		t.Fatalf("Failed to write entry: %v", err)
	}

	configPath := filepath.Join(dir, "config.toml")
	data := fmt.Sprintf(`
socket_path = %q
cache_dir = %q

[index]
source_dirs = [%q]
`, filepath.Join(dir, "t.sock"), filepath.Join(dir, "cache"), sources)
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return dir, configPath
}

func TestHelpListsSubcommands(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, sub := range []string{"index", "search", "validate"} {
		if !strings.Contains(out, sub) {
			t.Errorf("Expected help to mention '%s', got: %s", sub, out)
		}
	}
}

func TestIndexThenSearch(t *testing.T) {
	dir, configPath := writeTestConfig(t)
	envFile := filepath.Join(dir, "missing.env")

	out, err := execute(t, "index", "--config", configPath, "--env-file", envFile)
	if err != nil {
		t.Fatalf("index failed: %v (%s)", err, out)
	}
	if !strings.Contains(out, "Indexed 1 applications") {
		t.Errorf("Expected index summary, got: %s", out)
	}

	out, err = execute(t, "search", "fire", "--config", configPath, "--env-file", envFile)
	if err != nil {
		t.Fatalf("search failed: %v (%s)", err, out)
	}

	var results []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("Expected JSON output, got %s: %v", out, err)
	}
	if len(results) != 1 || results[0]["text"] != "Firefox" || results[0]["info"] != "app" {
		t.Errorf("Expected Firefox app result, got %v", results)
	}
}

func TestEnvFileOverridesCacheDir(t *testing.T) {
	dir, configPath := writeTestConfig(t)
	envCache := filepath.Join(dir, "env-cache")
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("TUICHER_CACHE_DIR="+envCache+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv("TUICHER_CACHE_DIR", "")
	os.Unsetenv("TUICHER_CACHE_DIR")

	if out, err := execute(t, "index", "--config", configPath, "--env-file", envFile); err != nil {
		t.Fatalf("index failed: %v (%s)", err, out)
	}
	if _, err := os.Stat(filepath.Join(envCache, "apps.bin")); err != nil {
		t.Errorf("Expected index under env cache dir, got %v", err)
	}
}

func TestValidateCommand(t *testing.T) {
	_, configPath := writeTestConfig(t)
	out, err := execute(t, "validate", configPath)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "Config is valid") {
		t.Errorf("Expected success message, got: %s", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("default_search_engine = 42\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := execute(t, "validate", bad); err == nil {
		t.Error("Expected validation error, got none")
	}
}

func TestSearchRequiresText(t *testing.T) {
	if _, err := execute(t, "search"); err == nil {
		t.Error("Expected error without search text")
	}
}
