package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DamianStefaniuk/Review/internal/sprint"
)

func createTestRecord() *sprint.StoredSprint {
	client := "ACME"
	assignee := "Jan Kowalski"
	return &sprint.StoredSprint{
		ID:        42,
		Name:      "Sprint 42",
		Status:    sprint.SprintStatusActive,
		StartDate: "2025-01-06",
		EndDate:   "2025-01-17",
		Goals: []sprint.Goal{
			{
				ID: 1, Title: "Ship importer", Client: &client, Tag: "cel1",
				Completed: true, CompletionPercent: 100,
				TaskStats: sprint.TaskStats{Done: 2, Total: 2},
				Tasks:     []string{"PROJ-1", "PROJ-2"},
			},
			{
				ID: 2, Title: "Fix exporter", Tag: "cel2",
				CompletionPercent: 50,
				TaskStats:         sprint.TaskStats{Done: 1, InProgress: 1, Total: 2},
				Tasks:             []string{"PROJ-3"},
			},
		},
		SideGoals: []sprint.Goal{
			{ID: 1, Title: "Update docs", Tag: "extra1", Tasks: []string{}},
		},
		Tasks: []sprint.Task{
			{Key: "PROJ-1", Summary: "Importer core", Status: sprint.StatusDone, Assignee: &assignee},
			{Key: "PROJ-2", Summary: "Importer edge cases", Status: sprint.StatusDone},
			{Key: "PROJ-3", Summary: "Exporter", Status: sprint.StatusInProgress},
		},
		JiraTimelineURL: "https://example.atlassian.net/jira/software/c/projects/PROJ/boards/7/timeline",
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestReviewModelRows(t *testing.T) {
	m := NewReviewModel(createTestRecord())

	require.Len(t, m.rows, 3)
	assert.Equal(t, "Goal", m.rows[0].section)
	assert.Equal(t, "Side goal", m.rows[2].section)
	assert.Equal(t, 0, m.selected)
}

func TestReviewModelNavigation(t *testing.T) {
	m := NewReviewModel(createTestRecord())

	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 1, m.selected)

	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 2, m.selected, "selection stops at the last row")

	m, _ = m.Update(keyMsg("k"))
	assert.Equal(t, 1, m.selected)
}

func TestReviewModelSelectEmitsGoal(t *testing.T) {
	m := NewReviewModel(createTestRecord())
	m, _ = m.Update(keyMsg("j"))

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	msg := cmd()
	selected, ok := msg.(GoalSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, 2, selected.Goal.ID)
	assert.Equal(t, "Goal", selected.Section)
}

func TestReviewModelView(t *testing.T) {
	m := NewReviewModel(createTestRecord())
	view := m.View()

	assert.Contains(t, view, "Sprint 42")
	assert.Contains(t, view, "Ship importer")
	assert.Contains(t, view, "Update docs")
	assert.Contains(t, view, "100%")
	assert.Contains(t, view, "3 tasks: 2 done, 1 in progress, 0 to do")
}

func TestReviewModelViewEmptySections(t *testing.T) {
	record := createTestRecord()
	record.SideGoals = nil
	view := NewReviewModel(record).View()

	assert.Contains(t, view, "Side goals")
	assert.Contains(t, view, "(none)")
}

func TestDetailModelResolvesTasks(t *testing.T) {
	record := createTestRecord()
	m := NewDetailModel(record.Goals[0], "Goal", record)

	require.Len(t, m.tasks, 2)
	assert.Equal(t, "PROJ-1", m.tasks[0].Key)

	view := m.View()
	assert.Contains(t, view, "Goal 1 · cel1")
	assert.Contains(t, view, "Importer core")
	assert.Contains(t, view, "@Jan Kowalski")
}

func TestDetailModelBack(t *testing.T) {
	record := createTestRecord()
	m := NewDetailModel(record.Goals[0], "Goal", record)

	_, cmd := m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	_, ok := cmd().(backMsg)
	assert.True(t, ok)
}

func TestAppModelScreenFlow(t *testing.T) {
	record := createTestRecord()
	app := NewAppModel(context.Background(), func(ctx context.Context) (*sprint.StoredSprint, error) {
		return record, nil
	})
	assert.Equal(t, ScreenLoading, app.currentScreen)

	updated, _ := app.Update(SprintLoadedMsg{Record: record})
	app = updated.(AppModel)
	assert.Equal(t, ScreenReview, app.currentScreen)

	updated, _ = app.Update(GoalSelectedMsg{Goal: record.Goals[0], Section: "Goal"})
	app = updated.(AppModel)
	assert.Equal(t, ScreenDetail, app.currentScreen)

	updated, _ = app.Update(backMsg{})
	app = updated.(AppModel)
	assert.Equal(t, ScreenReview, app.currentScreen)
}

func TestAppModelLoaderError(t *testing.T) {
	app := NewAppModel(context.Background(), func(ctx context.Context) (*sprint.StoredSprint, error) {
		return nil, assert.AnError
	})

	msg := app.loadSprint()()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok)

	updated, _ := app.Update(errMsg)
	app = updated.(AppModel)
	view := app.View()
	assert.True(t, strings.Contains(view, "Error"))
}
