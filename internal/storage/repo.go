// Package storage persists sprint-review JSON blobs in a private GitHub
// data repository through the Contents API. Each blob is a file; the
// file's blob SHA doubles as the optimistic-concurrency token for writes.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DamianStefaniuk/Review/internal/config"
)

const (
	// defaultAPIURL is the GitHub REST API endpoint.
	defaultAPIURL = "https://api.github.com"

	// dataPath is the directory inside the data repository that holds
	// per-sprint files. The current-sprint pointer lives at the root.
	dataPath = "sprints"

	// requestTimeout bounds a single Contents API call.
	requestTimeout = 30 * time.Second
)

// ErrConflict indicates the optimistic-concurrency token (blob SHA) no
// longer matches: someone else wrote the file since it was read. There
// is no retry logic; a conflict is fatal for the run that hit it.
var ErrConflict = errors.New("write conflict: file changed since it was read")

// File is a blob read from the data repository, together with the SHA
// needed to overwrite it.
type File struct {
	Content []byte
	SHA     string
}

// Client is a GitHub Contents API client scoped to one data repository.
type Client struct {
	cfg        config.Repo
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a storage client from the given configuration.
func NewClient(cfg config.Repo) *Client {
	return &Client{
		cfg:    cfg,
		apiURL: defaultAPIURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// VerifyConnection checks that the data repository exists and the token
// can read it.
func (c *Client) VerifyConnection(ctx context.Context) error {
	repoURL := fmt.Sprintf("%s/repos/%s/%s", c.apiURL, c.cfg.Owner, c.cfg.Name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, repoURL, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connecting to data repository: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("data repository %s/%s returned %s", c.cfg.Owner, c.cfg.Name, resp.Status)
	}
	return nil
}

// GetFile reads a file from the data repository. InDataPath selects the
// sprints directory versus the repository root. A missing file is not an
// error: the result is simply nil.
func (c *Client) GetFile(ctx context.Context, name string, inDataPath bool) (*File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileURL(name, inDataPath), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reading %s: got %s", name, resp.Status)
	}

	var payload struct {
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding contents response for %s: %w", name, err)
	}

	content, err := base64.StdEncoding.DecodeString(payload.Content)
	if err != nil {
		return nil, fmt.Errorf("decoding %s content: %w", name, err)
	}

	return &File{Content: content, SHA: payload.SHA}, nil
}

// PutFile creates or updates a file. Pass the SHA from a prior GetFile
// to overwrite; an empty SHA creates the file. Returns ErrConflict when
// the SHA is stale.
func (c *Client) PutFile(ctx context.Context, name string, content []byte, sha string, inDataPath bool) error {
	payload := map[string]string{
		"message": "Update " + name,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if sha != "" {
		payload["sha"] = sha
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.fileURL(name, inDataPath), bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("writing %s: %w", name, ErrConflict)
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("writing %s: got %s: %s", name, resp.Status, detail)
	}
}

// fileURL builds the Contents API URL for a file.
func (c *Client) fileURL(name string, inDataPath bool) string {
	path := name
	if inDataPath {
		path = dataPath + "/" + name
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiURL, c.cfg.Owner, c.cfg.Name, path)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}
