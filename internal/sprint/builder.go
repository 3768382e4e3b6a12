package sprint

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Builder assembles the persisted sprint record from fetched Jira data
// and the previously stored record. The previous record is read-only
// input: it donates comments and the user-editable fields, nothing else.
//
// Callers must not invoke Build for a sprint whose stored record is
// already closed; closed records are frozen and the sync orchestrator
// skips them entirely.
type Builder struct {
	GoalPrefix     string // Label prefix for goals; empty means "cel"
	SideGoalPrefix string // Label prefix for side goals; empty means "extra"

	JiraBaseURL string // e.g. https://example.atlassian.net
	ProjectKey  string
	BoardID     string
}

// Build produces the full sprint record: it parses the sprint
// description, maps tasks to each declaration by label, aggregates
// progress, and carries over comments, achievements, next-sprint plans,
// and the closed timestamp from the existing record when present. A
// plans section found in the description seeds nextSprintPlans only
// when nothing was stored yet.
func (b *Builder) Build(meta Meta, tasks []Task, existing *StoredSprint) *StoredSprint {
	parsed := ParseDescription(meta.Goal, b.GoalPrefix, b.SideGoalPrefix)

	var existingGoals, existingSideGoals []Goal
	if existing != nil {
		existingGoals = existing.Goals
		existingSideGoals = existing.SideGoals
	}

	goals := b.buildGoals(parsed.Goals, tasks, existingGoals)
	sideGoals := b.buildGoals(parsed.SideGoals, tasks, existingSideGoals)

	status := SprintStatusActive
	if strings.EqualFold(meta.State, "closed") {
		status = SprintStatusClosed
	}

	name := meta.Name
	if name == "" {
		name = fmt.Sprintf("Sprint %d", meta.ID)
	}

	record := &StoredSprint{
		ID:              meta.ID,
		Name:            name,
		Status:          status,
		StartDate:       truncateDate(meta.StartDate),
		EndDate:         truncateDate(meta.EndDate),
		Goals:           goals,
		SideGoals:       sideGoals,
		Tasks:           tasks,
		JiraBaseURL:     b.JiraBaseURL,
		JiraTimelineURL: b.timelineURL(),
	}

	if existing != nil {
		record.Achievements = existing.Achievements
		record.NextSprintPlans = existing.NextSprintPlans
		record.ClosedAt = existing.ClosedAt
	}
	if record.NextSprintPlans == "" {
		record.NextSprintPlans = ExtractNextSprintPlans(meta.Goal)
	}

	return record
}

// buildGoals enriches each parsed declaration with its matched tasks,
// progress stats, and any comments already stored under the same ID.
func (b *Builder) buildGoals(decls []Declaration, tasks []Task, existing []Goal) []Goal {
	goals := make([]Goal, 0, len(decls))

	for _, decl := range decls {
		var keys []string
		var matched []Task
		for _, task := range tasks {
			tag, ok := MatchTag(task.Labels, []string{decl.Tag})
			if ok && tag == decl.Tag {
				keys = append(keys, task.Key)
				matched = append(matched, task)
			}
		}
		if keys == nil {
			keys = []string{}
		}

		progress := Aggregate(matched)

		comments := []json.RawMessage{}
		for _, prev := range existing {
			if prev.ID == decl.ID && prev.Comments != nil {
				comments = prev.Comments
				break
			}
		}

		goals = append(goals, Goal{
			ID:                decl.ID,
			Title:             decl.Title,
			Client:            decl.Client,
			Tag:               decl.Tag,
			Completed:         progress.Percent == 100,
			CompletionPercent: progress.Percent,
			TaskStats:         progress.TaskStats,
			Tasks:             keys,
			Comments:          comments,
		})
	}

	return goals
}

// timelineURL builds the Jira timeline link shown in the review UI.
func (b *Builder) timelineURL() string {
	base := strings.TrimRight(b.JiraBaseURL, "/")
	return fmt.Sprintf("%s/jira/software/c/projects/%s/boards/%s/timeline", base, b.ProjectKey, b.BoardID)
}

// truncateDate keeps only the date portion of an ISO8601 timestamp.
func truncateDate(ts string) string {
	if ts == "" {
		return ""
	}
	date, _, _ := strings.Cut(ts, "T")
	return date
}
