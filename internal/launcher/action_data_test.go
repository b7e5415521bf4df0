package launcher

import (
	"encoding/json"
	"testing"
)

func TestOpenURLAction(t *testing.T) {
	action := NewOpenURLAction("https://example.com")

	if action.Type() != "open_url" {
		t.Errorf("Expected type 'open_url', got '%s'", action.Type())
	}

	data, err := action.ToJSON()
	if err != nil {
		t.Fatalf("Failed to marshal to JSON: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if raw["type"] != "open_url" {
		t.Errorf("Expected type in JSON to be 'open_url', got '%v'", raw["type"])
	}
	if raw["url"] != "https://example.com" {
		t.Errorf("Expected url in JSON to be 'https://example.com', got '%v'", raw["url"])
	}
}

func TestBookmarkAction(t *testing.T) {
	add := NewAddBookmarkAction("Example Site", "https://example.com")
	if add.Op != BookmarkOpAdd || add.Name != "Example Site" || add.URL != "https://example.com" {
		t.Errorf("Unexpected add action: %+v", add)
	}

	remove := NewRemoveBookmarkAction(4, "Example", "https://example.com")
	if remove.Op != BookmarkOpRemove || remove.ID != 4 {
		t.Errorf("Unexpected remove action: %+v", remove)
	}
}

func TestParseActionData(t *testing.T) {
	testCases := []struct {
		name   string
		action ActionData
	}{
		{"open app", NewOpenAppAction("/usr/share/applications/firefox.desktop")},
		{"open file", &OpenFileAction{Path: "/tmp/notes.txt"}},
		{"open url", NewOpenURLAction("https://example.com")},
		{"copy text", NewCopyTextAction("🚀")},
		{"copy image", &CopyImageAction{Path: "/tmp/shot.png"}},
		{"open settings", &OpenSettingsAction{}},
		{"session", NewSessionAction(SessionSuspend)},
		{"bookmark add", NewAddBookmarkAction("Example", "https://example.com")},
		{"bookmark remove", NewRemoveBookmarkAction(2, "Example", "https://example.com")},
		{"show results", &ShowResultsAction{Results: []*Result{
			{Title: "Example", Category: "bookmarks", Action: NewOpenURLAction("https://example.com")},
		}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.action.ToJSON()
			if err != nil {
				t.Fatalf("Failed to marshal action: %v", err)
			}

			parsed, err := ParseActionData(data)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if parsed.Type() != tc.action.Type() {
				t.Errorf("Expected type '%s', got '%s'", tc.action.Type(), parsed.Type())
			}

			again, err := parsed.ToJSON()
			if err != nil {
				t.Fatalf("Failed to marshal parsed action: %v", err)
			}
			if string(again) != string(data) {
				t.Errorf("Expected '%s', got '%s'", data, again)
			}
		})
	}
}

func TestParseActionDataRejects(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"invalid json", `{invalid json}`},
		{"missing type", `{"url": "https://example.com"}`},
		{"unknown type", `{"type": "shell", "command": "rm -rf /"}`},
		{"unknown session operation", `{"type": "session", "operation": "hibernate"}`},
		{"unknown bookmark op", `{"type": "bookmark", "op": "rename"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseActionData([]byte(tc.data)); err == nil {
				t.Error("Expected error, got none")
			}
		})
	}
}
