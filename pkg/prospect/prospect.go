// Package prospect defines the common types for prospect intelligence scoring.
package prospect

import (
	"errors"
	"time"
)

// Common errors returned by source packages.
var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrNoCookies       = errors.New("no cookies available")
	ErrProfileNotFound = errors.New("profile not found")
	ErrRateLimited     = errors.New("rate limited")
)

// Profile is a normalized snapshot of a person as supplied by the data layer.
// Scorers treat it as immutable.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Profile struct {
	// Identity
	Name     string `json:",omitempty"` // Display name
	Headline string `json:",omitempty"` // Title/headline, e.g. "VP of People at Acme"
	Company  string `json:",omitempty"` // Current employer
	About    string `json:",omitempty"` // Free-text about/summary section
	Location string `json:",omitempty"` // Geographic location
	URL      string `json:",omitempty"` // Canonical profile URL

	// Reach
	Followers   int `json:",omitempty"` // Follower count
	Connections int `json:",omitempty"` // Connection count

	// Tenure in the current role, in months. Zero means unknown.
	TenureMonths int `json:",omitempty"`
}

// ContentType distinguishes short-form posts from long-form articles.
// Articles carry more scoring weight than posts.
type ContentType string

// Content type constants.
const (
	ContentPost    ContentType = "post"
	ContentArticle ContentType = "article"
)

// ContentItem is a single post or article authored by (or shared by) a person.
// Produced by the data layer; read-only to the scoring core.
type ContentItem struct {
	Type      ContentType `json:"type"`
	Text      string      `json:"text"`
	URL       string      `json:"url,omitempty"`
	PostedAt  time.Time   `json:"postedAt,omitzero"`
	Reactions int         `json:"reactions,omitempty"`
	Comments  int         `json:"comments,omitempty"`
	Shares    int         `json:"shares,omitempty"`
	Original  bool        `json:"original,omitempty"` // authored, not reshared
}

// Engagement returns the combined engagement count for the item.
func (c ContentItem) Engagement() int {
	return c.Reactions + c.Comments + c.Shares
}

// SignalType classifies a detected authority signal.
type SignalType string

// Signal type constants.
const (
	SignalExperience  SignalType = "experience"
	SignalResults     SignalType = "results"
	SignalMethodology SignalType = "methodology"
	SignalCaseStudy   SignalType = "case_study"
	SignalSpeaking    SignalType = "speaking"
	SignalTeaching    SignalType = "teaching"
)

// Signal is a detected expertise or authority indicator in free text.
// Signals are ephemeral: created per scoring run and never persisted here.
type Signal struct {
	Type       SignalType `json:"type"`
	Text       string     `json:"text"`       // The matched text
	Confidence int        `json:"confidence"` // 0-100, fixed per detection rule
	Context    string     `json:"context"`    // Surrounding text for human review
}
