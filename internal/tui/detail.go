package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/browser"

	"github.com/DamianStefaniuk/Review/internal/sprint"
)

// backMsg returns from the detail screen to the overview.
type backMsg struct{}

// DetailModel shows one goal: its matched tasks with statuses, the task
// stats, and how many review comments are attached.
type DetailModel struct {
	goal    sprint.Goal
	section string
	record  *sprint.StoredSprint
	tasks   []sprint.Task

	keymap KeyMap
	width  int
}

// NewDetailModel builds the detail screen for a goal, resolving its task
// keys against the record's task list.
func NewDetailModel(goal sprint.Goal, section string, record *sprint.StoredSprint) DetailModel {
	byKey := make(map[string]sprint.Task, len(record.Tasks))
	for _, task := range record.Tasks {
		byKey[task.Key] = task
	}

	tasks := make([]sprint.Task, 0, len(goal.Tasks))
	for _, taskKey := range goal.Tasks {
		if task, ok := byKey[taskKey]; ok {
			tasks = append(tasks, task)
		}
	}

	return DetailModel{
		goal:    goal,
		section: section,
		record:  record,
		tasks:   tasks,
		keymap:  DefaultKeyMap(),
	}
}

// Update handles keys on the detail screen.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, func() tea.Msg { return QuitMsg{} }

		case key.Matches(msg, m.keymap.Back):
			return m, func() tea.Msg { return backMsg{} }

		case key.Matches(msg, m.keymap.Open):
			if m.record.JiraTimelineURL != "" {
				_ = browser.OpenURL(m.record.JiraTimelineURL)
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the detail screen.
func (m DetailModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder

	header := fmt.Sprintf("%s %d · %s", m.section, m.goal.ID, m.goal.Tag)
	b.WriteString(TitleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(wordwrap.String(m.goal.Title, width-2))
	if m.goal.Client != nil {
		b.WriteString(DimStyle.Render(fmt.Sprintf("  [%s]", *m.goal.Client)))
	}
	b.WriteString("\n\n")

	b.WriteString(renderProgressBar(m.goal.CompletionPercent, progressBarWidth))
	b.WriteString(fmt.Sprintf(" %d%%  ", m.goal.CompletionPercent))
	b.WriteString(DimStyle.Render(fmt.Sprintf("%d done · %d in progress · %d to do",
		m.goal.TaskStats.Done, m.goal.TaskStats.InProgress, m.goal.TaskStats.Todo)))
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Tasks"))
	b.WriteString("\n")
	if len(m.tasks) == 0 {
		b.WriteString(DimStyle.Render("  (no tasks matched this goal's label)"))
		b.WriteString("\n")
	}
	for _, task := range m.tasks {
		line := fmt.Sprintf("  %s %s  %s", statusGlyph(task.Status), task.Key,
			wordwrap.String(task.Summary, width-16))
		if task.Assignee != nil {
			line += DimStyle.Render("  @" + *task.Assignee)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if count := len(m.goal.Comments); count > 0 {
		b.WriteString(DimStyle.Render(fmt.Sprintf("%d review comment(s) attached\n\n", count)))
	}

	b.WriteString(DimStyle.Render("esc back · o timeline · q quit"))
	return b.String()
}

// statusGlyph renders a colored marker for a task's canonical status.
func statusGlyph(status sprint.Status) string {
	switch status {
	case sprint.StatusDone:
		return DoneStyle.Render("●")
	case sprint.StatusInProgress:
		return InProgressStyle.Render("◐")
	default:
		return DimStyle.Render("○")
	}
}
