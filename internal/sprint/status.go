package sprint

import "strings"

// RawStatus is the shape of a Jira issue's status field as far as the
// mapper cares: the display name and the built-in status category key.
type RawStatus struct {
	Name        string // Status display name (workflow-specific, any language)
	CategoryKey string // statusCategory.key: "done", "indeterminate", or "new"
}

// categoryStatus maps Jira's built-in statusCategory.key to the canonical
// status. The category is language-independent, so it is tried first.
var categoryStatus = map[string]Status{
	"done":          StatusDone,
	"indeterminate": StatusInProgress,
	"new":           StatusToDo,
}

// nameStatus is the fallback for Jira versions that do not expose a
// status category. Covers English and Polish workflow names.
var nameStatus = map[string]Status{
	"done":       StatusDone,
	"gotowe":     StatusDone,
	"closed":     StatusDone,
	"zamknięte":  StatusDone,
	"zamkniete":  StatusDone,
	"resolved":   StatusDone,
	"rozwiązane": StatusDone,
	"rozwiazane": StatusDone,
	"complete":   StatusDone,
	"completed":  StatusDone,
	"zakończone": StatusDone,
	"zakonczone": StatusDone,

	"in progress":    StatusInProgress,
	"w trakcie":      StatusInProgress,
	"w toku":         StatusInProgress,
	"in development": StatusInProgress,
	"in review":      StatusInProgress,
	"review":         StatusInProgress,
	"testing":        StatusInProgress,
	"testowanie":     StatusInProgress,
	"in testing":     StatusInProgress,
	"code review":    StatusInProgress,
	"przegląd kodu":  StatusInProgress,
	"przeglad kodu":  StatusInProgress,

	"to do":                    StatusToDo,
	"do zrobienia":             StatusToDo,
	"backlog":                  StatusToDo,
	"open":                     StatusToDo,
	"new":                      StatusToDo,
	"nowe":                     StatusToDo,
	"otwarte":                  StatusToDo,
	"selected for development": StatusToDo,
	"ready":                    StatusToDo,
	"gotowe do realizacji":     StatusToDo,
}

// MapStatus normalizes a Jira status field to a canonical status.
// It prefers statusCategory.key and falls back to the status name.
// Unknown or absent statuses map to "To Do". Total; never fails.
func MapStatus(raw *RawStatus) Status {
	if raw == nil {
		return StatusToDo
	}

	if key := strings.ToLower(raw.CategoryKey); key != "" {
		if status, ok := categoryStatus[key]; ok {
			return status
		}
	}

	if name := strings.ToLower(strings.TrimSpace(raw.Name)); name != "" {
		if status, ok := nameStatus[name]; ok {
			return status
		}
	}

	return StatusToDo
}
