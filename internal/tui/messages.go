// Package tui provides Bubble Tea models for the interactive sprint
// review viewer behind the `show` command.
package tui

import "github.com/DamianStefaniuk/Review/internal/sprint"

// SprintLoadedMsg is emitted when the stored sprint record has been
// fetched from the data repository.
type SprintLoadedMsg struct {
	Record *sprint.StoredSprint
}

// GoalSelectedMsg is emitted when the user opens a goal's detail view.
type GoalSelectedMsg struct {
	Goal    sprint.Goal
	Section string // "Goal" or "Side goal", for the detail header
}

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}
