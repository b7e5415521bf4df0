package launcher

import (
	"encoding/json"
	"testing"
)

func TestResultJSONShape(t *testing.T) {
	result := &Result{
		Title:    "Firefox",
		Category: "app",
		IconPath: "/icons/firefox.svg",
		Action:   NewOpenAppAction("/apps/firefox.desktop"),
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal result: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if raw["text"] != "Firefox" {
		t.Errorf("Expected text 'Firefox', got '%v'", raw["text"])
	}
	if raw["info"] != "app" {
		t.Errorf("Expected info 'app', got '%v'", raw["info"])
	}
	if raw["secondary_text"] != nil {
		t.Errorf("Expected null secondary_text, got '%v'", raw["secondary_text"])
	}
	if raw["icon_path"] != "/icons/firefox.svg" {
		t.Errorf("Expected icon path, got '%v'", raw["icon_path"])
	}

	action, ok := raw["action"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected action object, got %T", raw["action"])
	}
	if action["type"] != "open_app" || action["path"] != "/apps/firefox.desktop" {
		t.Errorf("Unexpected action: %v", action)
	}
}

func TestResultUnmarshal(t *testing.T) {
	data := []byte(`{"text":"Example","secondary_text":"https://example.com","icon_path":null,"info":"bookmarks","action":{"type":"open_url","url":"https://example.com"}}`)

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Title != "Example" || result.Subtitle != "https://example.com" || result.Category != "bookmarks" {
		t.Errorf("Unexpected result: %+v", result)
	}
	action, ok := result.Action.(*OpenURLAction)
	if !ok || action.URL != "https://example.com" {
		t.Errorf("Expected open_url action, got %#v", result.Action)
	}
}
