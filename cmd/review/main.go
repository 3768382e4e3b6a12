package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/DamianStefaniuk/Review/internal/config"
	"github.com/DamianStefaniuk/Review/internal/jira"
	"github.com/DamianStefaniuk/Review/internal/sprint"
	"github.com/DamianStefaniuk/Review/internal/storage"
	"github.com/DamianStefaniuk/Review/internal/syncer"
	"github.com/DamianStefaniuk/Review/internal/tui"
)

var (
	// CLI flags
	sprintIDFlag int
	verboseFlag  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "review",
		Short: "Sync Jira sprint data into the sprint-review data repository",
		Long: `review syncs the active (or a specific) Jira sprint into the data
repository consumed by the sprint-review presentation app, and can browse
the synced data in a terminal UI.

Configuration is read from the environment (a .env file is honored):
  JIRA_URL, JIRA_EMAIL, JIRA_API_TOKEN, JIRA_PROJECT_KEY, JIRA_BOARD_ID
  DATA_REPO_OWNER, DATA_REPO_NAME, DATA_REPO_TOKEN

DATA_REPO_TOKEN falls back to the GitHub CLI ('gh auth login').`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		// Running bare `review` syncs the active sprint.
		RunE: runSync,
	}
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().IntVar(&sprintIDFlag, "sprint-id", 0,
		"Sprint id to operate on. Defaults to the board's active sprint (sync) or the stored current-sprint pointer (show, open).")

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the sprint from Jira and update the data repository",
		RunE:  runSync,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Browse a synced sprint in a terminal UI",
		RunE:  runShow,
	}

	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Open the sprint's Jira timeline in the browser",
		RunE:  runOpen,
	}

	rootCmd.AddCommand(syncCmd, showCmd, openCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verboseFlag {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Jira.Complete() {
		slog.Warn("jira configuration is incomplete, the sync will fail on the first fetch")
	}

	builder := &sprint.Builder{
		JiraBaseURL: cfg.Jira.BaseURL,
		ProjectKey:  cfg.Jira.ProjectKey,
		BoardID:     cfg.Jira.BoardID,
	}
	s := syncer.New(jira.NewClient(cfg.Jira), storage.NewClient(cfg.Repo), builder)
	return s.Run(context.Background(), sprintIDFlag)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store := storage.NewClient(cfg.Repo)

	app := tui.NewAppModel(context.Background(), func(ctx context.Context) (*sprint.StoredSprint, error) {
		return loadRecord(ctx, store, sprintIDFlag)
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	record, err := loadRecord(context.Background(), storage.NewClient(cfg.Repo), sprintIDFlag)
	if err != nil {
		return err
	}
	if record.JiraTimelineURL == "" {
		return fmt.Errorf("sprint %d has no timeline URL", record.ID)
	}
	return browser.OpenURL(record.JiraTimelineURL)
}

// loadRecord fetches a stored sprint record from the data repository,
// resolving the current-sprint pointer when no explicit id is given.
func loadRecord(ctx context.Context, store *storage.Client, sprintID int) (*sprint.StoredSprint, error) {
	if sprintID == 0 {
		file, err := store.GetFile(ctx, "current-sprint.json", false)
		if err != nil {
			return nil, fmt.Errorf("reading current-sprint pointer: %w", err)
		}
		if file == nil {
			return nil, fmt.Errorf("no current-sprint pointer in the data repository, run 'review sync' first")
		}
		var pointer sprint.CurrentSprint
		if err := json.Unmarshal(file.Content, &pointer); err != nil {
			return nil, fmt.Errorf("decoding current-sprint pointer: %w", err)
		}
		sprintID = pointer.CurrentSprintID
	}

	name := fmt.Sprintf("sprint-%d.json", sprintID)
	file, err := store.GetFile(ctx, name, true)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if file == nil {
		return nil, fmt.Errorf("sprint %d has not been synced yet", sprintID)
	}

	var record sprint.StoredSprint
	if err := json.Unmarshal(file.Content, &record); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return &record, nil
}
