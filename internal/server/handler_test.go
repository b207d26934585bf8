package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfortier/talkingdict/internal/dictionary"
	"github.com/jfortier/talkingdict/internal/index"
	"github.com/jfortier/talkingdict/internal/report"
	"github.com/jfortier/talkingdict/internal/testutil"
)

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Send(_ context.Context, _, subject, _ string) error {
	m.sent = append(m.sent, subject)
	return nil
}

func newTestHandler(t *testing.T, mailer report.Mailer) (*Handler, string) {
	t.Helper()

	idx := index.New(testutil.Entries(), testutil.SiteConfig(), index.Options{})
	var relay *report.Relay
	if mailer != nil {
		relay = report.NewRelay(
			[]string{"https://dictionary.example.org"},
			"maintainer@example.org",
			mailer,
		)
	}
	handler := NewHandler(idx, 2, relay, t.TempDir())
	return handler, dictionary.Slug(testutil.SiteConfig().L1.Name)
}

func doRequest(handler *Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.Mux().ServeHTTP(w, r)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var body T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandler_Slug(t *testing.T) {
	handler, slug := newTestHandler(t, nil)
	assert.Equal(t, "michif", slug)

	t.Run("known slug", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet, "/api/v1/"+slug+"/config", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown slug", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet, "/api/v1/klingon/config", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody[map[string]string](t, w)
		assert.Contains(t, body["error"], "klingon")
	})
}

func TestHandler_Entries(t *testing.T) {
	handler, slug := newTestHandler(t, nil)

	w := doRequest(handler, httptest.NewRequest(http.MethodGet, "/api/v1/"+slug+"/entries", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	entries := decodeBody[[]dictionary.Entry](t, w)
	require.Len(t, entries, 3)
	// Collation order, not byte order: atim, bol, shiyaen.
	assert.Equal(t, "atim", entries[0].Word)
	assert.Equal(t, "bol", entries[1].Word)
	assert.Equal(t, "shiyaen", entries[2].Word)
}

func TestHandler_Categories(t *testing.T) {
	handler, slug := newTestHandler(t, nil)

	w := doRequest(handler, httptest.NewRequest(http.MethodGet, "/api/v1/"+slug+"/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)

	summaries := decodeBody[[]categorySummary](t, w)
	counts := make(map[string]int, len(summaries))
	for _, summary := range summaries {
		counts[summary.Name] = summary.Count
	}
	assert.Equal(t, map[string]int{
		"laverdure": 2,
		"elders":    1,
		"people":    1,
		"animals":   1,
		"audio":     1,
	}, counts)
}

func TestHandler_Browse(t *testing.T) {
	handler, slug := newTestHandler(t, nil)

	t.Run("first page", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet,
			"/api/v1/"+slug+"/browse?count=2", nil))
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody[browseResponse](t, w)
		assert.Equal(t, 3, body.Total)
		assert.Equal(t, 0, body.Start)
		assert.Len(t, body.Entries, 2)
		assert.NotEmpty(t, body.Letters)
	})

	t.Run("start clamps into range", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet,
			"/api/v1/"+slug+"/browse?start=99", nil))
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody[browseResponse](t, w)
		assert.Equal(t, 2, body.Start)
		require.Len(t, body.Entries, 1)
		assert.Equal(t, "shiyaen", body.Entries[0].Word)
	})

	t.Run("category filter", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet,
			"/api/v1/"+slug+"/browse?category=elders", nil))
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody[browseResponse](t, w)
		assert.Equal(t, "elders", body.Category)
		assert.Equal(t, 1, body.Total)
	})

	t.Run("letter seek", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet,
			"/api/v1/"+slug+"/browse?letter=sh&count=1", nil))
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody[browseResponse](t, w)
		require.Len(t, body.Entries, 1)
		assert.Equal(t, "shiyaen", body.Entries[0].Word)
	})
}

func TestHandler_Search(t *testing.T) {
	handler, slug := newTestHandler(t, nil)

	t.Run("missing query", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet, "/api/v1/"+slug+"/search", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("exact match with highlight", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet,
			"/api/v1/"+slug+"/search?q=atim", nil))
		require.Equal(t, http.StatusOK, w.Code)

		results := decodeBody[[]searchResult](t, w)
		require.NotEmpty(t, results)
		assert.Equal(t, "exact", results[0].Kind)
		assert.Equal(t, "<mark>atim</mark>", results[0].Word)
	})

	t.Run("misspelling matches fuzzily", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet,
			"/api/v1/"+slug+"/search?q=atmi", nil))
		require.Equal(t, http.StatusOK, w.Code)

		results := decodeBody[[]searchResult](t, w)
		require.NotEmpty(t, results)
		assert.Equal(t, "fuzzy", results[0].Kind)
		assert.Equal(t, "atim", results[0].Entry.Word)
	})

	t.Run("no match", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet,
			"/api/v1/"+slug+"/search?q=xylophone", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeBody[[]searchResult](t, w))
	})
}

func TestHandler_Random(t *testing.T) {
	handler, slug := newTestHandler(t, nil)

	w := doRequest(handler, httptest.NewRequest(http.MethodGet, "/api/v1/"+slug+"/random?count=2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	entries := decodeBody[[]dictionary.Entry](t, w)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestHandler_Audio(t *testing.T) {
	handler, slug := newTestHandler(t, nil)

	t.Run("missing file", func(t *testing.T) {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet,
			"/api/v1/"+slug+"/audio/missing.mp3", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("serves an existing file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(
			filepath.Join(handler.audioDirectory, "shiyaen.mp3"), []byte("RIFFdata"), 0o644))

		w := doRequest(handler, httptest.NewRequest(http.MethodGet,
			"/api/v1/"+slug+"/audio/shiyaen.mp3", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "RIFFdata", w.Body.String())
	})
}

func TestHandler_Report(t *testing.T) {
	newReportRequest := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/api/v1/report", strings.NewReader(body))
	}

	t.Run("not configured", func(t *testing.T) {
		handler, _ := newTestHandler(t, nil)
		w := doRequest(handler, newReportRequest(`{"entryID":"x","description":"d"}`))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing origin", func(t *testing.T) {
		mailer := &recordingMailer{}
		handler, _ := newTestHandler(t, mailer)

		w := doRequest(handler, newReportRequest(`{"entryID":"x","description":"d"}`))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, mailer.sent)
	})

	t.Run("disallowed origin", func(t *testing.T) {
		mailer := &recordingMailer{}
		handler, _ := newTestHandler(t, mailer)

		r := newReportRequest(`{"entryID":"x","description":"d"}`)
		r.Header.Set("Origin", "https://evil.example.org")
		w := doRequest(handler, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, mailer.sent)
	})

	t.Run("missing entry id", func(t *testing.T) {
		mailer := &recordingMailer{}
		handler, _ := newTestHandler(t, mailer)

		r := newReportRequest(`{"description":"d"}`)
		r.Header.Set("Origin", "https://dictionary.example.org")
		w := doRequest(handler, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, mailer.sent)
	})

	t.Run("invalid body", func(t *testing.T) {
		mailer := &recordingMailer{}
		handler, _ := newTestHandler(t, mailer)

		r := newReportRequest(`{not json`)
		r.Header.Set("Origin", "https://dictionary.example.org")
		w := doRequest(handler, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, mailer.sent)
	})

	t.Run("forwarded", func(t *testing.T) {
		mailer := &recordingMailer{}
		handler, _ := newTestHandler(t, mailer)

		r := newReportRequest(`{"entryID":"001-002-01","word":"atim","description":"bad audio"}`)
		r.Header.Set("Origin", "https://dictionary.example.org")
		w := doRequest(handler, r)
		assert.Equal(t, http.StatusAccepted, w.Code)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "Dictionary entry report: 001-002-01", mailer.sent[0])
	})
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := CORSMiddleware(next, []string{"https://dictionary.example.org"})

	t.Run("reflects an allowed origin", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Origin", "https://dictionary.example.org")
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, r)

		assert.Equal(t, "https://dictionary.example.org", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("omits the header for unknown origins", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Origin", "https://evil.example.org")
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, r)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight without calling the handler", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodOptions, "/", nil)
		r.Header.Set("Origin", "https://dictionary.example.org")
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})
}
