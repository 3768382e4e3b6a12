package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DamianStefaniuk/Review/internal/sprint"
)

// Loader fetches the stored sprint record to display. It runs off the
// UI goroutine via a tea command.
type Loader func(ctx context.Context) (*sprint.StoredSprint, error)

// AppScreen represents the different screens in the viewer flow.
type AppScreen int

const (
	ScreenLoading AppScreen = iota
	ScreenReview
	ScreenDetail
)

// AppModel is the root Bubble Tea model. It loads the sprint record and
// switches between the review overview and the per-goal detail screen.
type AppModel struct {
	ctx    context.Context
	loader Loader

	currentScreen AppScreen
	spinner       spinner.Model
	err           error

	reviewModel *ReviewModel
	detailModel *DetailModel
}

// NewAppModel creates the root model for the review viewer.
func NewAppModel(ctx context.Context, loader Loader) AppModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return AppModel{
		ctx:           ctx,
		loader:        loader,
		currentScreen: ScreenLoading,
		spinner:       sp,
	}
}

// Init starts the spinner and the record load.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSprint())
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.err != nil && (msg.String() == "q" || msg.String() == "esc") {
			return m, tea.Quit
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case SprintLoadedMsg:
		review := NewReviewModel(msg.Record)
		m.reviewModel = &review
		m.currentScreen = ScreenReview
		return m, nil

	case GoalSelectedMsg:
		detail := NewDetailModel(msg.Goal, msg.Section, m.reviewModel.record)
		m.detailModel = &detail
		m.currentScreen = ScreenDetail
		return m, nil

	case backMsg:
		m.currentScreen = ScreenReview
		return m, nil

	case spinner.TickMsg:
		if m.currentScreen == ScreenLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.currentScreen {
	case ScreenReview:
		if m.reviewModel != nil {
			updated, cmd := m.reviewModel.Update(msg)
			m.reviewModel = &updated
			return m, cmd
		}
	case ScreenDetail:
		if m.detailModel != nil {
			updated, cmd := m.detailModel.Update(msg)
			m.detailModel = &updated
			return m, cmd
		}
	}

	return m, nil
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) +
			DimStyle.Render("\n\nPress q to quit.")
	}

	switch m.currentScreen {
	case ScreenLoading:
		return fmt.Sprintf("\n %s Loading sprint data...\n", m.spinner.View())
	case ScreenReview:
		if m.reviewModel != nil {
			return m.reviewModel.View()
		}
	case ScreenDetail:
		if m.detailModel != nil {
			return m.detailModel.View()
		}
	}
	return ""
}

// loadSprint fetches the stored record through the loader.
func (m AppModel) loadSprint() tea.Cmd {
	return func() tea.Msg {
		record, err := m.loader(m.ctx)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if record == nil {
			return ErrorMsg{Err: fmt.Errorf("no stored sprint data found")}
		}
		return SprintLoadedMsg{Record: record}
	}
}
