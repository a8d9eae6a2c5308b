package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormInput is a single input field discovered inside an HTML form.
type FormInput struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}

// Form is an HTML form discovered by an external crawler. The injection
// scanner consumes these; it never discovers forms itself.
type Form struct {
	PageURL string      `json:"page_url,omitempty"`
	Action  string      `json:"action,omitempty"`
	Method  string      `json:"method,omitempty"`
	Inputs  []FormInput `json:"inputs"`
}

// UnmarshalJSON accepts both "action" and "action_url" keys, since crawlers
// disagree on the field name.
func (f *Form) UnmarshalJSON(data []byte) error {
	type alias Form
	aux := struct {
		*alias
		ActionURL string `json:"action_url,omitempty"`
	}{alias: (*alias)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if f.Action == "" {
		f.Action = aux.ActionURL
	}
	return nil
}

// ParseForms decodes a crawler-produced JSON document: either a bare array
// of forms or an object with a "forms" key.
func ParseForms(data []byte) ([]Form, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var forms []Form
		if err := json.Unmarshal(data, &forms); err != nil {
			return nil, fmt.Errorf("parsing forms array: %w", err)
		}
		return forms, nil
	}

	var wrapper struct {
		Forms []Form `json:"forms"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parsing forms document: %w", err)
	}
	return wrapper.Forms, nil
}
