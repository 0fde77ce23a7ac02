// Package webresearch builds the web half of an intelligence fusion by
// probing publication sites for a person's external writing.
package webresearch

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/leadgauge/leadgauge/pkg/fusion"
	"github.com/leadgauge/leadgauge/pkg/htmlutil"
	"github.com/leadgauge/leadgauge/pkg/httpcache"
	"github.com/leadgauge/leadgauge/pkg/prospect"
	"github.com/leadgauge/leadgauge/pkg/signal"
)

// snippetLength bounds article snippets taken from page text.
const snippetLength = 200

// Researcher probes publication sites for a person's external writing and
// scores what it finds. Failed fetches reduce evidence; they never fail the
// lookup. Zero articles is a valid low-quality result.
type Researcher struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	extraURLs  []string
}

// Option configures a Researcher.
type Option func(*config)

type config struct {
	cache     httpcache.Cacher
	logger    *slog.Logger
	extraURLs []string
}

// WithCache sets the HTTP cache.
func WithCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithCandidateURLs adds explicit candidate article URLs to probe, e.g.
// from an external search step.
func WithCandidateURLs(urls ...string) Option {
	return func(c *config) { c.extraURLs = append(c.extraURLs, urls...) }
}

// New creates a Researcher.
func New(opts ...Option) *Researcher {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Researcher{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
		cache:     cfg.cache,
		logger:    cfg.logger,
		extraURLs: cfg.extraURLs,
	}
}

// Research probes candidate pages for the person and scores the results.
func (r *Researcher) Research(ctx context.Context, p prospect.Profile) (*fusion.WebResult, error) {
	urls := append(candidateURLs(p), r.extraURLs...)

	var (
		articles []fusion.Article
		signals  []prospect.Signal
		texts    []string
	)

	for _, u := range urls {
		article, text, err := r.fetchPage(ctx, u, p)
		if err != nil {
			r.logger.DebugContext(ctx, "candidate page skipped", "url", u, "error", err)
			continue
		}
		articles = append(articles, article)
		texts = append(texts, text)
		signals = append(signals, signal.Authority(text)...)
	}

	scores := axisScores(texts, signals)
	result := &fusion.WebResult{
		Articles:         articles,
		Signals:          signals,
		Scores:           scores,
		Quality:          quality(len(articles), len(signals)),
		OverallRelevance: scores[fusion.AxisOverall],
	}

	r.logger.InfoContext(ctx, "web research complete",
		"name", p.Name,
		"probed", len(urls),
		"articles", len(articles),
		"signals", len(signals),
		"overall", result.OverallRelevance)

	return result, nil
}

// fetchPage fetches one candidate URL and keeps it only if the page is
// plausibly about the person.
func (r *Researcher) fetchPage(ctx context.Context, u string, p prospect.Profile) (fusion.Article, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fusion.Article{}, "", err
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	body, err := httpcache.FetchURL(ctx, r.cache, r.httpClient, req, r.logger)
	if err != nil {
		return fusion.Article{}, "", err
	}

	content := string(body)
	text := htmlutil.StripTags(content)
	if htmlutil.IsNotFound(text) {
		return fusion.Article{}, "", fmt.Errorf("page not found at %s", u)
	}

	title := htmlutil.Title(content)
	if title == "" {
		return fusion.Article{}, "", fmt.Errorf("no title at %s", u)
	}

	if !aboutPerson(text, title, p) {
		return fusion.Article{}, "", fmt.Errorf("page at %s does not mention %q", u, p.Name)
	}

	snippet := htmlutil.Description(content)
	if snippet == "" && len(text) > 0 {
		end := min(len(text), snippetLength)
		snippet = text[:end]
	}

	return fusion.Article{Title: title, URL: u, Snippet: snippet}, text, nil
}

// aboutPerson checks that the page plausibly concerns the person: their
// name appears, or the page covers one of the expertise domains.
func aboutPerson(text, title string, p prospect.Profile) bool {
	if p.Name != "" {
		lower := strings.ToLower(text + " " + title)
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			return true
		}
	}
	return signal.HasKeyword(text, signal.TalentManagement) ||
		signal.HasKeyword(text, signal.PeopleDevelopment) ||
		signal.HasKeyword(text, signal.HRTechnology)
}

// candidateURLs derives publication URLs to probe from the person's name.
func candidateURLs(p prospect.Profile) []string {
	slug := nameSlug(p.Name)
	if slug == "" {
		return nil
	}
	return []string{
		"https://medium.com/@" + slug,
		"https://" + slug + ".substack.com",
		"https://dev.to/" + slug,
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func nameSlug(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// axisScores rates the three expertise domains by keyword presence across
// the collected page texts, then derives recognition and overall.
func axisScores(texts []string, signals []prospect.Signal) map[fusion.Axis]int {
	scores := map[fusion.Axis]int{
		fusion.AxisTalentManagement:  domainScore(texts, signal.TalentManagement),
		fusion.AxisPeopleDevelopment: domainScore(texts, signal.PeopleDevelopment),
		fusion.AxisHRTechnology:      domainScore(texts, signal.HRTechnology),
	}

	recognition := len(texts) * 25
	for _, s := range signals {
		if s.Type == prospect.SignalSpeaking {
			recognition += 15
		}
	}
	scores[fusion.AxisIndustryRecognition] = clamp(recognition)

	domain := float64(scores[fusion.AxisTalentManagement])*0.4 +
		float64(scores[fusion.AxisPeopleDevelopment])*0.3 +
		float64(scores[fusion.AxisHRTechnology])*0.3
	scores[fusion.AxisOverall] = clamp(int(math.Round(
		domain*0.7 + float64(scores[fusion.AxisIndustryRecognition])*0.3)))

	return scores
}

// domainScore gives each page with a keyword hit a fixed credit, plus a
// small bonus per additional distinct keyword.
func domainScore(texts []string, cat signal.Category) int {
	score := 0
	for _, text := range texts {
		hits := signal.Keywords(text)[cat]
		if len(hits) == 0 {
			continue
		}
		score += 30 + (len(hits)-1)*5
	}
	return clamp(score)
}

func quality(articles, signals int) string {
	switch {
	case articles >= 3 && signals >= 3:
		return fusion.QualityHigh
	case articles >= 1:
		return fusion.QualityMedium
	default:
		return fusion.QualityLow
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
