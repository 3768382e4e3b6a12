package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DamianStefaniuk/Review/internal/config"
)

func testStorageClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.Repo{Owner: "acme", Name: "Review-Data", Token: "ghp_test"})
	client.apiURL = server.URL
	return client
}

func TestGetFile(t *testing.T) {
	content := `{"id":42}`
	client := testStorageClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/Review-Data/contents/sprints/sprint-42.json", r.URL.Path)
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]string{
			"content": base64.StdEncoding.EncodeToString([]byte(content)),
			"sha":     "abc123",
		})
	}))

	file, err := client.GetFile(context.Background(), "sprint-42.json", true)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, content, string(file.Content))
	assert.Equal(t, "abc123", file.SHA)
}

func TestGetFileRootPath(t *testing.T) {
	client := testStorageClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/Review-Data/contents/current-sprint.json", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"content": "", "sha": "s"})
	}))

	_, err := client.GetFile(context.Background(), "current-sprint.json", false)
	require.NoError(t, err)
}

func TestGetFileMissing(t *testing.T) {
	client := testStorageClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	file, err := client.GetFile(context.Background(), "sprint-1.json", true)
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestPutFile(t *testing.T) {
	client := testStorageClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/repos/acme/Review-Data/contents/sprints/sprint-42.json", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "Update sprint-42.json", payload["message"])
		assert.Equal(t, "abc123", payload["sha"])

		decoded, err := base64.StdEncoding.DecodeString(payload["content"])
		require.NoError(t, err)
		assert.Equal(t, `{"id":42}`, string(decoded))

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{}`)
	}))

	err := client.PutFile(context.Background(), "sprint-42.json", []byte(`{"id":42}`), "abc123", true)
	require.NoError(t, err)
}

func TestPutFileCreateOmitsSHA(t *testing.T) {
	client := testStorageClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, hasSHA := payload["sha"]
		assert.False(t, hasSHA)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{}`)
	}))

	err := client.PutFile(context.Background(), "sprint-1.json", []byte(`{}`), "", true)
	require.NoError(t, err)
}

func TestPutFileConflict(t *testing.T) {
	client := testStorageClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sha mismatch", http.StatusConflict)
	}))

	err := client.PutFile(context.Background(), "sprint-1.json", []byte(`{}`), "stale", true)
	require.ErrorIs(t, err, ErrConflict)
}

func TestVerifyConnection(t *testing.T) {
	client := testStorageClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/Review-Data", r.URL.Path)
		fmt.Fprint(w, `{"full_name":"acme/Review-Data"}`)
	}))

	require.NoError(t, client.VerifyConnection(context.Background()))
}

func TestVerifyConnectionUnauthorized(t *testing.T) {
	client := testStorageClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))

	assert.Error(t, client.VerifyConnection(context.Background()))
}
