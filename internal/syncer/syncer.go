// Package syncer orchestrates one sync run: fetch the sprint and its
// issues from Jira, transform them into the normalized review format,
// merge with the previously stored record, and persist the result in the
// data repository.
package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DamianStefaniuk/Review/internal/jira"
	"github.com/DamianStefaniuk/Review/internal/sprint"
	"github.com/DamianStefaniuk/Review/internal/storage"
)

// Tracker is the issue-tracker surface a sync run needs.
type Tracker interface {
	ActiveSprint(ctx context.Context) (*sprint.Meta, error)
	Sprint(ctx context.Context, id int) (*sprint.Meta, error)
	SprintIssues(ctx context.Context, sprintID int) ([]jira.Issue, error)
	EpicName(ctx context.Context, epicKey string) (string, error)
}

// Storage is the data-repository surface a sync run needs.
type Storage interface {
	VerifyConnection(ctx context.Context) error
	GetFile(ctx context.Context, name string, inDataPath bool) (*storage.File, error)
	PutFile(ctx context.Context, name string, content []byte, sha string, inDataPath bool) error
}

// Syncer runs sprint syncs. It is single-threaded: one Run at a time.
type Syncer struct {
	tracker Tracker
	storage Storage
	builder *sprint.Builder
}

// New creates a syncer from its collaborators.
func New(tracker Tracker, store Storage, builder *sprint.Builder) *Syncer {
	return &Syncer{
		tracker: tracker,
		storage: store,
		builder: builder,
	}
}

// Run syncs one sprint. With sprintID zero the board's active sprint is
// synced; a board without an active sprint is a successful no-op, while
// an explicitly requested sprint that does not exist is an error.
//
// A stored record that is already closed freezes the sprint: the run
// logs and returns without building or writing anything, so manually
// curated historical data is never overwritten.
func (s *Syncer) Run(ctx context.Context, sprintID int) error {
	if err := s.storage.VerifyConnection(ctx); err != nil {
		return fmt.Errorf("data repository unreachable: %w", err)
	}

	meta, err := s.resolveSprint(ctx, sprintID)
	if err != nil {
		return err
	}
	if meta == nil {
		slog.Warn("no active sprint found, nothing to sync")
		return nil
	}

	slog.Info("syncing sprint", "id", meta.ID, "name", meta.Name)

	issues, err := s.tracker.SprintIssues(ctx, meta.ID)
	if err != nil {
		return fmt.Errorf("fetching sprint issues: %w", err)
	}
	slog.Info("fetched sprint issues", "count", len(issues))

	cache := newEpicCache(s.tracker)
	tasks := make([]sprint.Task, len(issues))
	for i, issue := range issues {
		tasks[i] = transformIssue(ctx, issue, cache)
	}

	existing, existingSHA := s.loadExisting(ctx, meta.ID)

	if existing != nil && existing.Status == sprint.SprintStatusClosed {
		slog.Info("sprint is closed locally, skipping sync to preserve historical data",
			"id", meta.ID, "closedAt", closedAt(existing))
		return nil
	}

	record := s.builder.Build(*meta, tasks, existing)

	content, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sprint record: %w", err)
	}

	recordName := fmt.Sprintf("sprint-%d.json", meta.ID)
	if err := s.storage.PutFile(ctx, recordName, content, existingSHA, true); err != nil {
		return fmt.Errorf("saving sprint record: %w", err)
	}
	slog.Info("saved sprint record", "file", recordName)

	if err := s.updateCurrentSprint(ctx, meta); err != nil {
		return err
	}

	slog.Info("sync completed", "id", meta.ID)
	return nil
}

// resolveSprint picks the sprint to sync: the requested one, or the
// board's active sprint when no ID was given.
func (s *Syncer) resolveSprint(ctx context.Context, sprintID int) (*sprint.Meta, error) {
	if sprintID == 0 {
		meta, err := s.tracker.ActiveSprint(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching active sprint: %w", err)
		}
		return meta, nil
	}

	meta, err := s.tracker.Sprint(ctx, sprintID)
	if err != nil {
		return nil, fmt.Errorf("fetching sprint %d: %w", sprintID, err)
	}
	if meta == nil {
		return nil, fmt.Errorf("sprint %d not found", sprintID)
	}
	return meta, nil
}

// loadExisting reads the previously stored record for the sprint. A
// missing file yields nil. A file that no longer parses as JSON is
// logged and treated as no existing record, but its SHA is still used
// so the subsequent write replaces it instead of conflicting.
func (s *Syncer) loadExisting(ctx context.Context, sprintID int) (*sprint.StoredSprint, string) {
	name := fmt.Sprintf("sprint-%d.json", sprintID)
	file, err := s.storage.GetFile(ctx, name, true)
	if err != nil {
		slog.Error("reading existing sprint record failed", "file", name, "error", err)
		return nil, ""
	}
	if file == nil {
		return nil, ""
	}

	var record sprint.StoredSprint
	if err := json.Unmarshal(file.Content, &record); err != nil {
		slog.Error("existing sprint record is not valid JSON, treating as new", "file", name, "error", err)
		return nil, file.SHA
	}
	return &record, file.SHA
}

// updateCurrentSprint rewrites the current-sprint pointer at the data
// repository root.
func (s *Syncer) updateCurrentSprint(ctx context.Context, meta *sprint.Meta) error {
	pointer := sprint.CurrentSprint{
		CurrentSprintID: meta.ID,
		IsActive:        meta.State == "active",
	}
	content, err := json.MarshalIndent(pointer, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding current-sprint pointer: %w", err)
	}

	sha := ""
	if file, err := s.storage.GetFile(ctx, "current-sprint.json", false); err != nil {
		slog.Error("reading current-sprint pointer failed", "error", err)
	} else if file != nil {
		sha = file.SHA
	}

	if err := s.storage.PutFile(ctx, "current-sprint.json", content, sha, false); err != nil {
		return fmt.Errorf("saving current-sprint pointer: %w", err)
	}
	return nil
}

// transformIssue converts a raw Jira issue into a normalized task,
// resolving the epic name through the per-run cache.
func transformIssue(ctx context.Context, issue jira.Issue, cache *epicCache) sprint.Task {
	task := sprint.Task{
		Key:     issue.Key,
		Summary: issue.Summary,
		Status:  sprint.MapStatus(issue.Status),
		Labels:  issue.Labels,
	}
	if task.Labels == nil {
		task.Labels = []string{}
	}

	if issue.EpicKey != "" {
		if name := cache.name(ctx, issue.EpicKey); name != "" {
			task.Epic = &name
		}
	}

	if issue.Assignee != nil {
		name := issue.Assignee.DisplayName
		if name == "" {
			name = issue.Assignee.Name
		}
		if name != "" {
			task.Assignee = &name
		}
	}

	return task
}

// epicCache memoizes epic-name lookups for the duration of one run, so
// issues sharing an epic cost a single API call.
type epicCache struct {
	tracker Tracker
	names   map[string]string
}

func newEpicCache(tracker Tracker) *epicCache {
	return &epicCache{
		tracker: tracker,
		names:   make(map[string]string),
	}
}

func (c *epicCache) name(ctx context.Context, epicKey string) string {
	if name, ok := c.names[epicKey]; ok {
		return name
	}

	name, err := c.tracker.EpicName(ctx, epicKey)
	if err != nil {
		slog.Warn("epic name lookup failed", "epic", epicKey, "error", err)
		name = ""
	}
	c.names[epicKey] = name
	return name
}

func closedAt(record *sprint.StoredSprint) string {
	if record.ClosedAt == nil {
		return ""
	}
	return *record.ClosedAt
}
