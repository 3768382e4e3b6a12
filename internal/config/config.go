// Package config loads the sync configuration from the environment,
// optionally seeded from a .env file. The loaded values are passed to the
// Jira and data-repository clients as explicit structs; nothing else in
// the codebase reads environment variables.
package config

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingRepoToken indicates that no data-repository token could be
// resolved. Without it nothing can be saved, so a sync run must abort.
var ErrMissingRepoToken = errors.New("missing data repository token: set DATA_REPO_TOKEN or authenticate with 'gh auth login'")

// Jira holds the issue-tracker client configuration.
type Jira struct {
	BaseURL       string // JIRA_URL, trailing slash stripped
	Email         string // JIRA_EMAIL
	APIToken      string // JIRA_API_TOKEN
	ProjectKey    string // JIRA_PROJECT_KEY
	BoardID       string // JIRA_BOARD_ID
	EpicLinkField string // JIRA_EPIC_LINK_FIELD, the epic-link custom field id
}

// Repo holds the data-repository (storage) client configuration.
type Repo struct {
	Owner string // DATA_REPO_OWNER
	Name  string // DATA_REPO_NAME
	Token string // DATA_REPO_TOKEN, falls back to gh CLI
}

// Config is the full application configuration.
type Config struct {
	Jira Jira
	Repo Repo
}

// Complete reports whether all Jira fields required for fetching are set.
// An incomplete Jira config is a warning, not an error: the run proceeds
// and fails on the first fetch instead.
func (j Jira) Complete() bool {
	return j.BaseURL != "" && j.Email != "" && j.APIToken != "" &&
		j.ProjectKey != "" && j.BoardID != ""
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present. Returns
// ErrMissingRepoToken if no storage token can be resolved.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Jira: Jira{
			BaseURL:       strings.TrimRight(os.Getenv("JIRA_URL"), "/"),
			Email:         os.Getenv("JIRA_EMAIL"),
			APIToken:      os.Getenv("JIRA_API_TOKEN"),
			ProjectKey:    os.Getenv("JIRA_PROJECT_KEY"),
			BoardID:       os.Getenv("JIRA_BOARD_ID"),
			EpicLinkField: getEnvWithDefault("JIRA_EPIC_LINK_FIELD", "customfield_10014"),
		},
		Repo: Repo{
			Owner: getEnvWithDefault("DATA_REPO_OWNER", "plumspzoo"),
			Name:  getEnvWithDefault("DATA_REPO_NAME", "Review-Data"),
			Token: os.Getenv("DATA_REPO_TOKEN"),
		},
	}

	if cfg.Repo.Token == "" {
		cfg.Repo.Token = ghCLIToken()
	}
	if cfg.Repo.Token == "" {
		return nil, ErrMissingRepoToken
	}

	return cfg, nil
}

// getEnvWithDefault returns the environment value or a default when unset.
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// ghCLIToken shells out to the GitHub CLI for a token. Returns an empty
// string if gh is not installed or not authenticated.
func ghCLIToken() string {
	out, err := exec.Command("gh", "auth", "token", "--hostname", "github.com").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
