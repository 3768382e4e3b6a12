package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/pkg/browser"

	"github.com/DamianStefaniuk/Review/internal/sprint"
)

// progressBarWidth is the character width of goal completion bars.
const progressBarWidth = 20

// reviewRow is one selectable goal row in the overview.
type reviewRow struct {
	goal    sprint.Goal
	section string
}

// ReviewModel is the sprint overview screen: goals and side goals with
// their completion bars, plus sprint-level stats.
type ReviewModel struct {
	record *sprint.StoredSprint
	keymap KeyMap
	help   HelpModel

	rows     []reviewRow
	selected int

	width    int
	height   int
	showHelp bool
}

// NewReviewModel builds the overview for a stored sprint record.
func NewReviewModel(record *sprint.StoredSprint) ReviewModel {
	rows := make([]reviewRow, 0, len(record.Goals)+len(record.SideGoals))
	for _, goal := range record.Goals {
		rows = append(rows, reviewRow{goal: goal, section: "Goal"})
	}
	for _, goal := range record.SideGoals {
		rows = append(rows, reviewRow{goal: goal, section: "Side goal"})
	}

	return ReviewModel{
		record: record,
		keymap: DefaultKeyMap(),
		help:   NewHelpModel(DefaultKeyMap()),
		rows:   rows,
	}
}

// Update handles navigation and actions on the overview.
func (m ReviewModel) Update(msg tea.Msg) (ReviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, func() tea.Msg { return QuitMsg{} }

		case key.Matches(msg, m.keymap.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keymap.Up):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case key.Matches(msg, m.keymap.Down):
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
			return m, nil

		case key.Matches(msg, m.keymap.Select):
			if len(m.rows) == 0 {
				return m, nil
			}
			row := m.rows[m.selected]
			return m, func() tea.Msg {
				return GoalSelectedMsg{Goal: row.goal, Section: row.section}
			}

		case key.Matches(msg, m.keymap.Open):
			if m.record.JiraTimelineURL != "" {
				_ = browser.OpenURL(m.record.JiraTimelineURL)
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the overview screen.
func (m ReviewModel) View() string {
	var b strings.Builder

	status := m.record.Status
	if m.record.Status == sprint.SprintStatusClosed {
		status = "closed (frozen)"
	}
	b.WriteString(TitleStyle.Render(m.record.Name))
	b.WriteString(DimStyle.Render(fmt.Sprintf("  %s – %s  [%s]", m.record.StartDate, m.record.EndDate, status)))
	b.WriteString("\n\n")

	index := 0
	index = m.renderSection(&b, "Goals", m.record.Goals, index)
	m.renderSection(&b, "Side goals", m.record.SideGoals, index)

	stats := sprint.Aggregate(m.record.Tasks)
	b.WriteString(DimStyle.Render(fmt.Sprintf(
		"%d tasks: %d done, %d in progress, %d to do",
		stats.Total, stats.Done, stats.InProgress, stats.Todo)))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.help.View(m.width))
	} else {
		b.WriteString(DimStyle.Render("\n? help · enter details · o timeline · q quit"))
	}

	return b.String()
}

// renderSection writes one goal section and returns the next row index.
func (m ReviewModel) renderSection(b *strings.Builder, name string, goals []sprint.Goal, index int) int {
	b.WriteString(SectionStyle.Render(name))
	b.WriteString("\n")

	if len(goals) == 0 {
		b.WriteString(DimStyle.Render("  (none)"))
		b.WriteString("\n")
	}

	for _, goal := range goals {
		line := fmt.Sprintf("  %s %s %3d%%  %s",
			completionGlyph(goal),
			renderProgressBar(goal.CompletionPercent, progressBarWidth),
			goal.CompletionPercent,
			goal.Title,
		)
		if goal.Client != nil {
			line += DimStyle.Render(fmt.Sprintf("  [%s]", *goal.Client))
		}

		if index == m.selected {
			b.WriteString(SelectedItemStyle.Render("▸") + line[1:])
		} else {
			b.WriteString(NormalItemStyle.Render(line))
		}
		b.WriteString("\n")
		index++
	}

	b.WriteString("\n")
	return index
}

// renderProgressBar draws a fixed-width completion bar.
func renderProgressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// completionGlyph marks completed goals.
func completionGlyph(goal sprint.Goal) string {
	if goal.Completed {
		return DoneStyle.Render("✓")
	}
	return " "
}
