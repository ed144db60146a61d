package feed

import (
	"fmt"

	"castbuzz/internal/models"
)

// ValidationReport collects everything wrong or questionable about a feed.
// Errors break the feed for podcast directories; warnings only hurt
// discoverability. Valid is false exactly when there is at least one error.
type ValidationReport struct {
	Valid        bool     `json:"valid"`
	Errors       []string `json:"errors"`
	Warnings     []string `json:"warnings"`
	ShowName     string   `json:"show_name"`
	EpisodeCount int      `json:"episode_count"`
	FeedURL      string   `json:"feed_url"`
}

// Validate inspects a show and its published episodes and accumulates every
// finding; no check short-circuits another. Messages follow input order, but
// the validity outcome does not depend on it.
func Validate(show *models.Show, episodes []models.Episode, feedURL string) *ValidationReport {
	report := &ValidationReport{
		Errors:       []string{},
		Warnings:     []string{},
		ShowName:     show.Name,
		EpisodeCount: len(episodes),
		FeedURL:      feedURL,
	}

	if show.Name == "" {
		report.Errors = append(report.Errors, "show has no name")
	}
	if show.Description == nil || *show.Description == "" {
		report.Warnings = append(report.Warnings, "show has no description")
	}
	if show.ImageURL == nil || *show.ImageURL == "" {
		report.Errors = append(report.Errors, "show has no cover artwork; podcast directories require one")
	}
	if len(episodes) == 0 {
		report.Warnings = append(report.Warnings, "show has no published episodes")
	}

	for i, ep := range episodes {
		label := ep.Title
		if label == "" {
			label = fmt.Sprintf("episode #%d", i+1)
		}

		if ep.Title == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: missing title", label))
		}
		if ep.AudioURL == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: missing audio URL", label))
		}
		switch {
		case ep.Duration == nil || *ep.Duration == "":
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: missing duration", label))
		case !wellFormedDuration(*ep.Duration):
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: unrecognized duration %q", label, *ep.Duration))
		}
		if ep.Description == nil || *ep.Description == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: missing description", label))
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}
