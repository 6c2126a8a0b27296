package askh

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askh-dev/askh/providers/contracts"
	"github.com/askh-dev/askh/providers/models"
)

var _ contracts.IHealthChecker = (*Provider)(nil)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ASKH API is running"})
	})
	mux.HandleFunc("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"name": "Software Testing", "type": "folder", "children": [
				{"name": "unit-test.md", "displayName": "Unit Testing", "type": "file", "path": "Software Testing/unit-test.md"}
			]},
			{"name": "intro.md", "type": "file", "path": "intro.md"}
		]`))
	})
	mux.HandleFunc("/api/docs/content", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("path") {
		case "Software Testing/unit-test.md":
			_ = json.NewEncoder(w).Encode(map[string]string{"content": "# Title\nHello"})
		case "broken.md":
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "boom"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "File not found"})
		}
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Message == "overload" {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Database belum siap"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "echo: " + req.Message})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchTree(t *testing.T) {
	server := newTestServer(t)
	provider := NewProvider(&Config{BaseURL: server.URL})

	snapshot, err := provider.FetchTree(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Software Testing", "intro.md"}, snapshot.Flatten())
	assert.Equal(t, "Unit Testing", snapshot.LookupTitle("Software Testing/unit-test.md"))
}

func TestFetchBody(t *testing.T) {
	server := newTestServer(t)
	provider := NewProvider(&Config{BaseURL: server.URL})

	body, err := provider.FetchBody(context.Background(), "Software Testing/unit-test.md")

	require.NoError(t, err)
	assert.Equal(t, "# Title\nHello", body)
}

func TestFetchBody_NotFound(t *testing.T) {
	server := newTestServer(t)
	provider := NewProvider(&Config{BaseURL: server.URL})

	_, err := provider.FetchBody(context.Background(), "missing/path.md")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFetchBody_ServerErrorIsUnavailable(t *testing.T) {
	server := newTestServer(t)
	provider := NewProvider(&Config{BaseURL: server.URL})

	_, err := provider.FetchBody(context.Background(), "broken.md")

	assert.ErrorIs(t, err, models.ErrUnavailable)
	assert.Contains(t, err.Error(), "boom")
}

func TestFetchTree_UnreachableBackend(t *testing.T) {
	provider := NewProvider(&Config{BaseURL: "http://127.0.0.1:1"})

	_, err := provider.FetchTree(context.Background())

	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestFetchTree_MalformedShapeIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a tree"}`))
	}))
	t.Cleanup(server.Close)
	provider := NewProvider(&Config{BaseURL: server.URL})

	_, err := provider.FetchTree(context.Background())

	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestConverse(t *testing.T) {
	server := newTestServer(t)
	provider := NewProvider(&Config{BaseURL: server.URL})

	reply, err := provider.Converse(context.Background(), "what is a unit test?")

	require.NoError(t, err)
	assert.Equal(t, "echo: what is a unit test?", reply)
}

func TestConverse_FailureIsUnavailable(t *testing.T) {
	server := newTestServer(t)
	provider := NewProvider(&Config{BaseURL: server.URL})

	_, err := provider.Converse(context.Background(), "overload")

	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)
	provider := NewProvider(&Config{BaseURL: server.URL})

	assert.NoError(t, provider.Health(context.Background()))
}

func TestHealth_DownBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "database not ready"})
	}))
	t.Cleanup(server.Close)
	provider := NewProvider(&Config{BaseURL: server.URL})

	err := provider.Health(context.Background())

	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestHealth_UnreachableBackend(t *testing.T) {
	provider := NewProvider(&Config{BaseURL: "http://127.0.0.1:1"})

	err := provider.Health(context.Background())

	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestAuthorizationHeaderSentWhenConfigured(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)
	provider := NewProvider(&Config{BaseURL: server.URL, APIKey: "secret"})

	_, err := provider.FetchTree(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
}
