// Package fusion combines independently computed web-research and
// LinkedIn-analysis results for one person into a unified intelligence
// profile.
//
// The two source lookups run concurrently; the fusion math itself is
// deterministic and runs only after both resolve. Source weights, quality
// rubrics, and verification thresholds are fixed constants so repeated
// fusions of the same inputs always agree.
package fusion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/leadgauge/leadgauge/pkg/prospect"
)

// Source blend weights for axes scored by both sources. Web evidence is
// external and harder to fabricate, so it carries more weight.
const (
	webWeight      = 0.6
	linkedInWeight = 0.4
)

// Engine fuses the two sources. Construct with New; the zero value is not
// usable.
type Engine struct {
	web      WebResearcher
	linkedin LinkedInAnalyzer
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates a fusion engine over the two sources.
func New(web WebResearcher, linkedin LinkedInAnalyzer, opts ...Option) *Engine {
	e := &Engine{
		web:      web,
		linkedin: linkedin,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Research acquires both source results concurrently and fuses them.
// A failure in either source fails the whole fusion; the error names the
// source that failed. The caller decides retry policy.
func (e *Engine) Research(ctx context.Context, p prospect.Profile, content []prospect.ContentItem) (*IntelligenceProfile, error) {
	e.logger.InfoContext(ctx, "researching person", "name", p.Name, "url", p.URL)

	var (
		wg     sync.WaitGroup
		web    *WebResult
		webErr error
		li     *LinkedInResult
		liErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		web, webErr = e.web.Research(ctx, p)
	}()
	go func() {
		defer wg.Done()
		li, liErr = e.linkedin.Analyze(ctx, p, content)
	}()
	wg.Wait()

	if webErr != nil {
		return nil, fmt.Errorf("web research for %q: %w", p.Name, webErr)
	}
	if liErr != nil {
		return nil, fmt.Errorf("linkedin analysis for %q: %w", p.Name, liErr)
	}

	profile := Fuse(p, web, li, e.now())

	e.logger.InfoContext(ctx, "fusion complete",
		"name", p.Name,
		"overall", profile.OverallExpertise(),
		"quality", profile.Assessment.DataQuality,
		"status", profile.Assessment.VerificationStatus)

	return profile, nil
}

// Fuse deterministically combines two source results. Exposed separately
// from Research so pre-fetched results can be fused without an Engine.
func Fuse(p prospect.Profile, web *WebResult, li *LinkedInResult, at time.Time) *IntelligenceProfile {
	unified := unifyScores(web, li)
	quality := dataQuality(web, li)
	confidence := confidenceLevel(web, li, quality)
	verifications := verifyClaims(web, li)
	redFlags := redFlags(web, li, unified)

	return &IntelligenceProfile{
		Person:        p,
		Web:           *web,
		LinkedIn:      *li,
		UnifiedScores: unified,
		Assessment: Assessment{
			DataQuality:        quality,
			ConfidenceLevel:    confidence,
			VerificationStatus: verificationStatus(confidence, verifications, redFlags),
			Verifications:      verifications,
			RedFlags:           redFlags,
			Strengths:          strengths(web, li, unified),
			Recommendations:    recommendations(web, li, unified),
		},
		ResearchedAt:  at,
		LastUpdatedAt: at,
	}
}
