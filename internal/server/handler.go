// Package server exposes the dictionary views and the report relay as a
// JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jfortier/talkingdict/internal/dictionary"
	"github.com/jfortier/talkingdict/internal/index"
	"github.com/jfortier/talkingdict/internal/report"
	"github.com/jfortier/talkingdict/internal/search"
)

// Handler serves one dictionary dataset.
type Handler struct {
	index          *index.Index
	maxDistance    int
	relay          *report.Relay
	audioDirectory string
}

// NewHandler creates a Handler over the given index. relay may be nil
// when no report endpoint is configured.
func NewHandler(idx *index.Index, maxDistance int, relay *report.Relay, audioDirectory string) *Handler {
	return &Handler{
		index:          idx,
		maxDistance:    maxDistance,
		relay:          relay,
		audioDirectory: audioDirectory,
	}
}

// currentSlug identifies the served dictionary; recomputed per request
// since a replaced snapshot may rename the language.
func (h *Handler) currentSlug() string {
	return dictionary.Slug(h.index.Snapshot().SiteConfig.L1.Name)
}

// Mux returns the route table for this handler.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/{slug}/config", h.handleConfig)
	mux.HandleFunc("GET /api/v1/{slug}/entries", h.handleEntries)
	mux.HandleFunc("GET /api/v1/{slug}/categories", h.handleCategories)
	mux.HandleFunc("GET /api/v1/{slug}/browse", h.handleBrowse)
	mux.HandleFunc("GET /api/v1/{slug}/search", h.handleSearch)
	mux.HandleFunc("GET /api/v1/{slug}/random", h.handleRandom)
	mux.HandleFunc("GET /api/v1/{slug}/audio/{file}", h.handleAudio)
	mux.HandleFunc("POST /api/v1/report", h.handleReport)
	return mux
}

func (h *Handler) checkSlug(w http.ResponseWriter, r *http.Request) bool {
	if r.PathValue("slug") != h.currentSlug() {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown dictionary %q", r.PathValue("slug")))
		return false
	}
	return true
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !h.checkSlug(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.index.Snapshot().SiteConfig)
}

func (h *Handler) handleEntries(w http.ResponseWriter, r *http.Request) {
	if !h.checkSlug(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.index.SortedEntries())
}

type categorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !h.checkSlug(w, r) {
		return
	}
	categories := h.index.Categories()
	summaries := make([]categorySummary, 0, len(categories))
	for name, entries := range categories {
		summaries = append(summaries, categorySummary{Name: name, Count: len(entries)})
	}
	writeJSON(w, http.StatusOK, summaries)
}

type browseResponse struct {
	Category string               `json:"category"`
	Total    int                  `json:"total"`
	Start    int                  `json:"start"`
	Letters  []index.LetterAnchor `json:"letters"`
	Entries  []dictionary.Entry   `json:"entries"`
}

func (h *Handler) handleBrowse(w http.ResponseWriter, r *http.Request) {
	if !h.checkSlug(w, r) {
		return
	}

	browse := index.NewBrowse(h.index, intParam(r, "count", 20))
	browse.SelectCategory(r.URL.Query().Get("category"))

	var page []dictionary.Entry
	if letter := r.URL.Query().Get("letter"); letter != "" {
		page = browse.SeekLetter(letter)
	} else {
		page = browse.Seek(intParam(r, "start", 0))
	}

	writeJSON(w, http.StatusOK, browseResponse{
		Category: browse.Category(),
		Total:    len(browse.Selected()),
		Start:    browse.Cursor(),
		Letters:  browse.Anchors(),
		Entries:  page,
	})
}

type searchResult struct {
	Entry      dictionary.Entry `json:"entry"`
	Kind       string           `json:"kind"`
	Distance   int              `json:"distance,omitempty"`
	Word       string           `json:"word"`
	Definition string           `json:"definition"`
}

func matchKindName(kind search.MatchKind) string {
	switch kind {
	case search.MatchExact:
		return "exact"
	case search.MatchPrefix:
		return "prefix"
	case search.MatchSubstring:
		return "substring"
	default:
		return "fuzzy"
	}
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !h.checkSlug(w, r) {
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	// The matcher is rebuilt per request so transducer changes in a
	// replaced snapshot take effect immediately.
	matcher := search.NewMatcher(h.index.Snapshot().SiteConfig, h.maxDistance)
	matches := matcher.Search(query, h.index.SortedEntries())
	results := make([]searchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, searchResult{
			Entry:      match.Entry,
			Kind:       matchKindName(match.Kind),
			Distance:   match.Distance,
			Word:       match.Word,
			Definition: match.Definition,
		})
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) handleRandom(w http.ResponseWriter, r *http.Request) {
	if !h.checkSlug(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.index.RandomSample(intParam(r, "count", 10)))
}

func (h *Handler) handleAudio(w http.ResponseWriter, r *http.Request) {
	if !h.checkSlug(w, r) {
		return
	}
	filename := filepath.Base(r.PathValue("file"))
	path := filepath.Join(h.audioDirectory, filename)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("audio file not found: %s", filename))
		return
	}
	http.ServeFile(w, r, path)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if h.relay == nil {
		writeError(w, http.StatusNotFound, "report endpoint is not configured")
		return
	}

	if err := h.relay.CheckOrigin(r.Header.Get("Origin")); err != nil {
		status := http.StatusForbidden
		if errors.Is(err, report.ErrMissingOrigin) {
			status = http.StatusUnauthorized
		}
		writeError(w, status, err.Error())
		return
	}

	var submission report.Report
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.relay.Forward(r.Context(), submission); err != nil {
		if errors.Is(err, report.ErrMissingEntryID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Default().Error("failed to forward a report",
			slog.String("entryID", submission.EntryID),
			slog.Any("error", err),
		)
		writeError(w, http.StatusBadGateway, "failed to forward the report")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "forwarded"})
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to encode a response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
