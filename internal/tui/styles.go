package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for the sprint header line.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")) // Purple

	// SectionStyle is used for the goal/side-goal section headers.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")) // Pink

	// SelectedItemStyle is used for the highlighted goal row.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected goal rows.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// DoneStyle marks completed goals and done tasks.
	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	// InProgressStyle marks in-progress tasks.
	InProgressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Orange

	// DimStyle is used for secondary text: dates, clients, counts.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// BarFilledStyle and BarEmptyStyle render the completion bar.
	BarFilledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)
