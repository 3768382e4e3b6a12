package jira

import (
	"encoding/json"

	"github.com/DamianStefaniuk/Review/internal/sprint"
)

// User is an issue assignee as returned by the Jira API. Older server
// instances populate Name instead of DisplayName.
type User struct {
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
}

// Issue is a raw sprint issue with the fields the sync pipeline needs
// plucked from the wire representation. Status stays unmapped here;
// normalization happens during the transform step.
type Issue struct {
	Key      string
	Summary  string
	Status   *sprint.RawStatus
	Labels   []string
	Assignee *User
	EpicKey  string // Value of the epic-link custom field, empty if none
}

// wireSprint mirrors the Agile API sprint object.
type wireSprint struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Goal      string `json:"goal"`
	State     string `json:"state"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (w *wireSprint) meta() *sprint.Meta {
	return &sprint.Meta{
		ID:        w.ID,
		Name:      w.Name,
		Goal:      w.Goal,
		State:     w.State,
		StartDate: w.StartDate,
		EndDate:   w.EndDate,
	}
}

// wireIssue keeps fields as raw JSON so the epic-link custom field,
// whose key is instance-specific, can be plucked by configured name.
type wireIssue struct {
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

type wireStatus struct {
	Name           string `json:"name"`
	StatusCategory struct {
		Key string `json:"key"`
	} `json:"statusCategory"`
}

// issue converts a wire issue into the typed form.
func (w *wireIssue) issue(epicLinkField string) Issue {
	out := Issue{Key: w.Key, Labels: []string{}}

	stringField(w.Fields, "summary", &out.Summary)
	stringField(w.Fields, epicLinkField, &out.EpicKey)

	if raw, ok := w.Fields["labels"]; ok {
		var labels []string
		if err := json.Unmarshal(raw, &labels); err == nil && labels != nil {
			out.Labels = labels
		}
	}

	if raw, ok := w.Fields["status"]; ok {
		var status wireStatus
		if err := json.Unmarshal(raw, &status); err == nil && (status.Name != "" || status.StatusCategory.Key != "") {
			out.Status = &sprint.RawStatus{
				Name:        status.Name,
				CategoryKey: status.StatusCategory.Key,
			}
		}
	}

	if raw, ok := w.Fields["assignee"]; ok {
		var user User
		if err := json.Unmarshal(raw, &user); err == nil && (user.DisplayName != "" || user.Name != "") {
			out.Assignee = &user
		}
	}

	return out
}

// stringField decodes a string-valued field into dst, leaving dst
// untouched when the field is absent, null, or not a string.
func stringField(fields map[string]json.RawMessage, key string, dst *string) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*dst = s
	}
}
