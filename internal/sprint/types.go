// Package sprint defines the normalized sprint-review domain types and the
// core transformations over them: status normalization, sprint-description
// parsing, label-to-goal matching, progress aggregation, and assembly of the
// persisted sprint record.
package sprint

import "encoding/json"

// Status is the canonical task status used by the review frontend,
// independent of the Jira workflow the task came from.
type Status string

const (
	StatusDone       Status = "Done"
	StatusInProgress Status = "In Progress"
	StatusToDo       Status = "To Do"
)

// Meta holds the sprint-level fields fetched from the Jira Agile API.
type Meta struct {
	ID        int    // Jira sprint ID
	Name      string // Sprint name (e.g., "Sprint 42")
	Goal      string // Free-text sprint description with goals
	State     string // Jira sprint state ("active", "closed", "future")
	StartDate string // ISO8601 timestamp, may be empty
	EndDate   string // ISO8601 timestamp, may be empty
}

// Task is a normalized snapshot of a Jira issue for one sync run.
// It is created once per issue and never mutated afterwards.
type Task struct {
	Key      string   `json:"key"`      // Issue key (PROJ-123)
	Summary  string   `json:"summary"`  // Issue summary
	Status   Status   `json:"status"`   // Canonical status
	Labels   []string `json:"labels"`   // Jira labels (cel1, extra2, ...)
	Epic     *string  `json:"epic"`     // Resolved epic name, nil if none
	Assignee *string  `json:"assignee"` // Assignee display name, nil if unassigned
}

// Declaration is a single goal or side goal extracted from the sprint
// description. IDs are 1-based and sequential within their section.
type Declaration struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Client *string `json:"client"` // Bracketed client tag, nil if absent
	Tag    string  `json:"tag"`    // Matching label: prefix + ID (cel1, extra2, ...)
}

// TaskStats counts tasks per canonical status for one goal.
// Todo is derived as total minus done minus in progress, so statuses
// outside the three canonical values never inflate it independently.
type TaskStats struct {
	Done       int `json:"done"`
	InProgress int `json:"inProgress"`
	Todo       int `json:"todo"`
	Total      int `json:"total"`
}

// Progress is the aggregation result for one goal's task set.
type Progress struct {
	TaskStats
	Percent int // 0..100, rounded
}

// Goal is the persisted form of a goal or side goal: the parsed
// declaration enriched with task mapping and progress, plus comments
// entered by reviewers in the web UI. Comments are opaque to the sync
// pipeline and preserved verbatim across runs.
type Goal struct {
	ID                int               `json:"id"`
	Title             string            `json:"title"`
	Client            *string           `json:"client"`
	Tag               string            `json:"tag"`
	Completed         bool              `json:"completed"`
	CompletionPercent int               `json:"completionPercent"`
	TaskStats         TaskStats         `json:"taskStats"`
	Tasks             []string          `json:"tasks"` // Matched task keys, in task order
	Comments          []json.RawMessage `json:"comments"`
}

// StoredSprint is the root record persisted as sprint-<id>.json in the
// data repository and consumed by the sprint-review frontend.
//
// Once Status is "closed" the record is frozen: a sync run must not
// overwrite it, and only Achievements, NextSprintPlans, and per-goal
// Comments remain editable (through the web UI, not through sync).
type StoredSprint struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Status          string  `json:"status"` // "active" or "closed"
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Goals           []Goal  `json:"goals"`
	SideGoals       []Goal  `json:"sideGoals"`
	Achievements    string  `json:"achievements"` // Editable Markdown from the UI
	Tasks           []Task  `json:"tasks"`
	NextSprintPlans string  `json:"nextSprintPlans"` // Editable Markdown from the UI
	JiraBaseURL     string  `json:"jiraBaseUrl"`
	JiraTimelineURL string  `json:"jiraTimelineUrl"`
	ClosedAt        *string `json:"closedAt"`
}

// CurrentSprint is the pointer record persisted as current-sprint.json
// at the data repository root.
type CurrentSprint struct {
	CurrentSprintID int  `json:"currentSprintId"`
	IsActive        bool `json:"isActive"`
}

// Sprint status values for StoredSprint.Status.
const (
	SprintStatusActive = "active"
	SprintStatusClosed = "closed"
)
