package launcher

import (
	"encoding/json"
	"fmt"
)

// ActionData describes what selecting a result should do. The set of
// implementations is closed; an external executor interprets them.
type ActionData interface {
	Type() string
	ToJSON() ([]byte, error)
}

// OpenAppAction launches the desktop entry at Path
type OpenAppAction struct {
	Path string `json:"path"`
}

func (a *OpenAppAction) Type() string {
	return "open_app"
}

func (a *OpenAppAction) ToJSON() ([]byte, error) {
	data := map[string]interface{}{
		"type": a.Type(),
		"path": a.Path,
	}
	return json.Marshal(data)
}

type OpenFileAction struct {
	Path string `json:"path"`
}

func (a *OpenFileAction) Type() string {
	return "open_file"
}

func (a *OpenFileAction) ToJSON() ([]byte, error) {
	data := map[string]interface{}{
		"type": a.Type(),
		"path": a.Path,
	}
	return json.Marshal(data)
}

type OpenURLAction struct {
	URL string `json:"url"`
}

func (a *OpenURLAction) Type() string {
	return "open_url"
}

func (a *OpenURLAction) ToJSON() ([]byte, error) {
	data := map[string]interface{}{
		"type": a.Type(),
		"url":  a.URL,
	}
	return json.Marshal(data)
}

type CopyTextAction struct {
	Text string `json:"text"`
}

func (a *CopyTextAction) Type() string {
	return "copy_text"
}

func (a *CopyTextAction) ToJSON() ([]byte, error) {
	data := map[string]interface{}{
		"type": a.Type(),
		"text": a.Text,
	}
	return json.Marshal(data)
}

// CopyImageAction copies the image file at Path to the clipboard
type CopyImageAction struct {
	Path string `json:"path"`
}

func (a *CopyImageAction) Type() string {
	return "copy_image"
}

func (a *CopyImageAction) ToJSON() ([]byte, error) {
	data := map[string]interface{}{
		"type": a.Type(),
		"path": a.Path,
	}
	return json.Marshal(data)
}

// ShowResultsAction replaces the visible list with Results
type ShowResultsAction struct {
	Results []*Result `json:"results"`
}

func (a *ShowResultsAction) Type() string {
	return "show_results"
}

func (a *ShowResultsAction) ToJSON() ([]byte, error) {
	results := a.Results
	if results == nil {
		results = []*Result{}
	}
	data := map[string]interface{}{
		"type":    a.Type(),
		"results": results,
	}
	return json.Marshal(data)
}

type OpenSettingsAction struct{}

func (a *OpenSettingsAction) Type() string {
	return "open_settings"
}

func (a *OpenSettingsAction) ToJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"type": a.Type()})
}

// SessionOperation is one of the power/session commands
type SessionOperation string

const (
	SessionShutdown SessionOperation = "shutdown"
	SessionRestart  SessionOperation = "restart"
	SessionSuspend  SessionOperation = "suspend"
	SessionLogout   SessionOperation = "logout"
)

func (o SessionOperation) valid() bool {
	switch o {
	case SessionShutdown, SessionRestart, SessionSuspend, SessionLogout:
		return true
	}
	return false
}

type SessionAction struct {
	Operation SessionOperation `json:"operation"`
}

func (a *SessionAction) Type() string {
	return "session"
}

func (a *SessionAction) ToJSON() ([]byte, error) {
	data := map[string]interface{}{
		"type":      a.Type(),
		"operation": a.Operation,
	}
	return json.Marshal(data)
}

type BookmarkOp string

const (
	BookmarkOpAdd    BookmarkOp = "add"
	BookmarkOpRemove BookmarkOp = "remove"
)

// BookmarkAction mutates the configured bookmarks. Add carries Name and URL,
// remove carries ID.
type BookmarkAction struct {
	Op   BookmarkOp `json:"op"`
	ID   int        `json:"id"`
	Name string     `json:"name"`
	URL  string     `json:"url"`
}

func (a *BookmarkAction) Type() string {
	return "bookmark"
}

func (a *BookmarkAction) ToJSON() ([]byte, error) {
	data := map[string]interface{}{
		"type": a.Type(),
		"op":   a.Op,
		"id":   a.ID,
		"name": a.Name,
		"url":  a.URL,
	}
	return json.Marshal(data)
}

// ParseActionData parses JSON data into the matching ActionData implementation.
// Unknown types are rejected.
func ParseActionData(data []byte) (ActionData, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal action data: %w", err)
	}

	actionType, ok := raw["type"].(string)
	if !ok {
		return nil, fmt.Errorf("action data missing type field")
	}

	var action ActionData
	switch actionType {
	case "open_app":
		action = &OpenAppAction{}
	case "open_file":
		action = &OpenFileAction{}
	case "open_url":
		action = &OpenURLAction{}
	case "copy_text":
		action = &CopyTextAction{}
	case "copy_image":
		action = &CopyImageAction{}
	case "show_results":
		action = &ShowResultsAction{}
	case "open_settings":
		return &OpenSettingsAction{}, nil
	case "session":
		action = &SessionAction{}
	case "bookmark":
		action = &BookmarkAction{}
	default:
		return nil, fmt.Errorf("unknown action type '%s'", actionType)
	}

	if err := json.Unmarshal(data, action); err != nil {
		return nil, fmt.Errorf("failed to parse %s action: %w", actionType, err)
	}

	switch a := action.(type) {
	case *SessionAction:
		if !a.Operation.valid() {
			return nil, fmt.Errorf("unknown session operation '%s'", a.Operation)
		}
	case *BookmarkAction:
		if a.Op != BookmarkOpAdd && a.Op != BookmarkOpRemove {
			return nil, fmt.Errorf("unknown bookmark op '%s'", a.Op)
		}
	}
	return action, nil
}

func NewOpenAppAction(path string) *OpenAppAction {
	return &OpenAppAction{Path: path}
}

func NewOpenURLAction(url string) *OpenURLAction {
	return &OpenURLAction{URL: url}
}

func NewCopyTextAction(text string) *CopyTextAction {
	return &CopyTextAction{Text: text}
}

func NewSessionAction(op SessionOperation) *SessionAction {
	return &SessionAction{Operation: op}
}

func NewAddBookmarkAction(name, url string) *BookmarkAction {
	return &BookmarkAction{Op: BookmarkOpAdd, Name: name, URL: url}
}

func NewRemoveBookmarkAction(id int, name, url string) *BookmarkAction {
	return &BookmarkAction{Op: BookmarkOpRemove, ID: id, Name: name, URL: url}
}
