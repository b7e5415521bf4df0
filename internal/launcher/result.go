package launcher

import (
	"encoding/json"
	"fmt"
)

// Result is a single search result candidate
type Result struct {
	Title    string
	Subtitle string
	// Category names the provider that produced the result
	Category string
	IconPath string
	Action   ActionData
}

type resultJSON struct {
	Text          string          `json:"text"`
	SecondaryText *string         `json:"secondary_text"`
	IconPath      *string         `json:"icon_path"`
	Info          string          `json:"info"`
	Action        json.RawMessage `json:"action"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *Result) MarshalJSON() ([]byte, error) {
	action := json.RawMessage("null")
	if r.Action != nil {
		data, err := r.Action.ToJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s action: %w", r.Action.Type(), err)
		}
		action = data
	}

	return json.Marshal(resultJSON{
		Text:          r.Title,
		SecondaryText: optional(r.Subtitle),
		IconPath:      optional(r.IconPath),
		Info:          r.Category,
		Action:        action,
	})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Result{Title: raw.Text, Category: raw.Info}
	if raw.SecondaryText != nil {
		r.Subtitle = *raw.SecondaryText
	}
	if raw.IconPath != nil {
		r.IconPath = *raw.IconPath
	}
	if len(raw.Action) > 0 && string(raw.Action) != "null" {
		action, err := ParseActionData(raw.Action)
		if err != nil {
			return err
		}
		r.Action = action
	}
	return nil
}
