package scraper

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"fanboxdl/pkg/config"
	"fanboxdl/pkg/fanbox"
	"fanboxdl/pkg/logger"
)

const testSession = "test-session-0123456789"

// mockFanboxServer simulates the listing, detail and media endpoints
type mockFanboxServer struct {
	server *httptest.Server

	mu          sync.Mutex
	listing     string
	details     map[string]string
	detailCodes map[string]int
	media       map[string]string
	requests    []string
}

func newMockFanboxServer(t *testing.T) *mockFanboxServer {
	t.Helper()

	m := &mockFanboxServer{
		details:     make(map[string]string),
		detailCodes: make(map[string]int),
		media:       make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(fanbox.ListCreatorEndpoint, m.handleList)
	mux.HandleFunc(fanbox.PostInfoEndpoint, m.handleInfo)
	mux.HandleFunc("/media/", m.handleMedia)

	m.server = httptest.NewServer(m.requireSession(mux))
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockFanboxServer) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.URL.RequestURI())
		m.mu.Unlock()

		c, err := r.Cookie(fanbox.SessionCookieName)
		if err != nil || c.Value != testSession || r.Header.Get("Origin") != fanbox.DefaultOrigin {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *mockFanboxServer) handleList(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.Write([]byte(m.listing))
}

func (m *mockFanboxServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := r.URL.Query().Get("postId")
	if code, ok := m.detailCodes[id]; ok {
		w.WriteHeader(code)
		return
	}
	detail, ok := m.details[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Write([]byte(strings.ReplaceAll(detail, "{{base}}", m.server.URL)))
}

func (m *mockFanboxServer) handleMedia(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	body, ok := m.media[strings.TrimPrefix(r.URL.Path, "/media/")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Write([]byte(body))
}

// setListing serves posts as the first listing page
func (m *mockFanboxServer) setListing(nextURL *string, posts ...fanbox.PostSummary) {
	if posts == nil {
		posts = []fanbox.PostSummary{}
	}
	body := map[string]interface{}{
		"body": map[string]interface{}{
			"items":   posts,
			"nextUrl": nextURL,
		},
	}
	data, _ := json.Marshal(body)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.listing = string(data)
}

func (m *mockFanboxServer) setRawListing(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listing = raw
}

// setDetail serves raw for postId id; {{base}} expands to the server URL
func (m *mockFanboxServer) setDetail(id, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details[id] = raw
}

func (m *mockFanboxServer) setDetailStatus(id string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailCodes[id] = code
}

func (m *mockFanboxServer) setMedia(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.media[name] = content
}

func (m *mockFanboxServer) mediaRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.requests {
		if strings.HasPrefix(r, "/media/") {
			n++
		}
	}
	return n
}

// fanboxConfigFor points the default configuration at the mock server
func fanboxConfigFor(m *mockFanboxServer) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Fanbox.APIBaseURL = m.server.URL
	return cfg
}

func (m *mockFanboxServer) client(log logger.Logger) *fanbox.Client {
	return fanbox.NewClient(&fanboxConfigFor(m).Fanbox, testSession, log)
}
