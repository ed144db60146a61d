package handlers

import (
	"errors"
	"log"
	"net/http"

	"castbuzz/internal/feed"

	"github.com/gorilla/mux"
)

// GetRSSFeed serves a show's RSS document with downstream caching hints.
func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	rendered, err := h.feeds.GetFeed(slug)
	if err != nil {
		h.feedError(w, slug, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Last-Modified", rendered.LastModified.UTC().Format(http.TimeFormat))
	w.Write([]byte(rendered.XML))
}

// ValidateRSSFeed returns the validation report for a show's feed.
func (h *Handlers) ValidateRSSFeed(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	report, err := h.feeds.ValidateFeed(slug)
	if err != nil {
		h.feedError(w, slug, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// RegenerateFeed recomputes and stores a show's canonical feed URL.
func (h *Handlers) RegenerateFeed(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	feedURL, err := h.feeds.RegenerateFeedURL(slug)
	if err != nil {
		h.feedError(w, slug, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"feed_url": feedURL,
	})
}

// ListRSSFeeds serves the admin feed directory.
func (h *Handlers) ListRSSFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := h.feeds.ListFeeds()
	if err != nil {
		log.Printf("Error listing feeds: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feeds": feeds,
		"count": len(feeds),
	})
}

func (h *Handlers) feedError(w http.ResponseWriter, slug string, err error) {
	switch {
	case errors.Is(err, feed.ErrInvalidSlug):
		writeError(w, http.StatusBadRequest, "Invalid show slug")
	case errors.Is(err, feed.ErrNotFound):
		writeError(w, http.StatusNotFound, "Show not found")
	default:
		log.Printf("Error serving feed for %q: %v", slug, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
