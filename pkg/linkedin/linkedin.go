// Package linkedin fetches and analyzes LinkedIn profiles using
// authenticated session cookies.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/leadgauge/leadgauge/pkg/auth"
	"github.com/leadgauge/leadgauge/pkg/htmlutil"
	"github.com/leadgauge/leadgauge/pkg/httpcache"
	"github.com/leadgauge/leadgauge/pkg/prospect"
)

// Match returns true if the URL is a LinkedIn profile URL.
func Match(urlStr string) bool {
	return strings.Contains(strings.ToLower(urlStr), "linkedin.com/in/")
}

// Client fetches LinkedIn profiles with authenticated cookies.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cookies        map[string]string
	cache          httpcache.Cacher
	logger         *slog.Logger
	now            func() time.Time
	browserCookies bool
}

// WithCookies sets explicit cookie values.
func WithCookies(cookies map[string]string) Option {
	return func(c *config) { c.cookies = cookies }
}

// WithCache sets the HTTP cache.
func WithCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithBrowserCookies enables reading cookies from browser stores.
func WithBrowserCookies() Option {
	return func(c *config) { c.browserCookies = true }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithClock overrides the time source used for tenure calculation.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// New creates a LinkedIn client.
// Cookie sources are checked in order: WithCookies > environment > browser.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	var sources []auth.Source
	if len(cfg.cookies) > 0 {
		sources = append(sources, auth.NewStaticSource(cfg.cookies))
	}
	sources = append(sources, auth.EnvSource{})
	if cfg.browserCookies {
		sources = append(sources, auth.NewBrowserSource(cfg.logger))
	}

	cookies, err := auth.ChainSources(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("cookie retrieval failed: %w", err)
	}
	if len(cookies) == 0 {
		return nil, fmt.Errorf("%w: set %v or use WithCookies/WithBrowserCookies",
			prospect.ErrNoCookies, auth.EnvVarNames())
	}

	jar, err := auth.NewCookieJar(cookies)
	if err != nil {
		return nil, fmt.Errorf("cookie jar creation failed: %w", err)
	}

	cfg.logger.InfoContext(ctx, "linkedin client created", "cookie_count", len(cookies))

	return &Client{
		httpClient: &http.Client{Jar: jar, Timeout: 10 * time.Second},
		cache:      cfg.cache,
		logger:     cfg.logger,
		now:        cfg.now,
	}, nil
}

// Fetch retrieves a LinkedIn profile.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*prospect.Profile, error) {
	if !strings.HasPrefix(urlStr, "http") {
		urlStr = "https://www.linkedin.com/in/" + urlStr
	}

	c.logger.InfoContext(ctx, "fetching linkedin profile", "url", urlStr)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}

	setHeaders(req)

	// Authwall pages are session failures, keep them out of the cache.
	body, err := httpcache.FetchURLWithValidator(ctx, c.cache, c.httpClient, req, c.logger,
		func(body []byte) bool { return !isAuthwall(body) })
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if isAuthwall(body) {
		return nil, fmt.Errorf("%w: session cookies rejected", prospect.ErrAuthRequired)
	}

	return parseProfile(body, urlStr, c.now())
}

func isAuthwall(body []byte) bool {
	s := string(body)
	return strings.Contains(s, "/authwall") || strings.Contains(s, "join now to see")
}

func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")
	req.Header.Set("Sec-GPC", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
}

func parseProfile(body []byte, profileURL string, now time.Time) (*prospect.Profile, error) {
	content := string(body)
	targetID := extractPublicID(profileURL)

	p := &prospect.Profile{URL: profileURL}

	// Profile data lives in embedded JSON inside <code> blocks.
	blocks := extractCodeBlocks(content)
	var fallback *profileData

	for _, code := range blocks {
		if !strings.Contains(code, `"publicIdentifier":`) {
			continue
		}

		var section string
		exact := false

		switch {
		case targetID != "" && strings.Contains(code, fmt.Sprintf(`"publicIdentifier":%q`, targetID)):
			exact = true
			section = extractProfileSection(code, targetID)
		case fallback == nil:
			section = code
		default:
			continue
		}

		data := extractProfileData(section)
		if data.name != "" {
			if exact {
				applyProfileData(p, data)
				break
			}
			if fallback == nil {
				fallback = &data
			}
		}
	}

	if p.Name == "" && fallback != nil {
		applyProfileData(p, *fallback)
	}

	// Fallback to meta tags.
	if p.Name == "" {
		p.Name = htmlutil.Title(content)
	}
	if p.About == "" {
		p.About = htmlutil.Description(content)
	}

	if p.Name == "" {
		return nil, fmt.Errorf("%w: no profile data in response", prospect.ErrProfileNotFound)
	}

	p.Followers = extractCount(content, "followerCount")
	p.Connections = extractCount(content, "connectionsCount")
	p.TenureMonths = extractTenureMonths(content, now)

	return p, nil
}

type profileData struct {
	name     string
	headline string
	location string
	employer string
	about    string
}

func extractProfileData(section string) profileData {
	first := extractJSONField(section, "firstName")
	last := extractJSONField(section, "lastName")

	data := profileData{
		headline: unescapeJSON(extractJSONField(section, "headline")),
		about:    unescapeJSON(extractJSONField(section, "summary")),
	}

	if first != "" {
		data.name = unescapeJSON(first)
		if last != "" {
			data.name += " " + unescapeJSON(last)
		}
	}

	if loc := extractJSONField(section, "geoLocationName"); loc != "" {
		data.location = unescapeJSON(loc)
	}

	// Current employer: company entity first, then flat fields, then headline.
	if m := companyURNPattern.FindStringSubmatch(section); len(m) > 1 {
		data.employer = unescapeJSON(m[1])
	} else if company := extractJSONField(section, "companyName"); company != "" {
		data.employer = unescapeJSON(company)
	} else if data.headline != "" {
		data.employer = parseCompanyFromHeadline(data.headline)
	}

	return data
}

func applyProfileData(p *prospect.Profile, data profileData) {
	p.Name = data.name
	p.Headline = data.headline
	p.Location = data.location
	p.About = data.about
	p.Company = data.employer
	if p.Company == "" && data.headline != "" {
		p.Company = parseCompanyFromHeadline(data.headline)
	}
}

func extractPublicID(urlStr string) string {
	if m := publicIDPattern.FindStringSubmatch(urlStr); len(m) > 1 {
		slug := m[1]
		if strings.Contains(slug, "%") {
			if decoded, err := url.QueryUnescape(slug); err == nil {
				return decoded
			}
		}
		return slug
	}
	return ""
}

func extractCodeBlocks(s string) []string {
	matches := codeBlockPattern.FindAllStringSubmatch(s, -1)

	var blocks []string
	for _, m := range matches {
		if len(m) > 1 {
			blocks = append(blocks, html.UnescapeString(m[1]))
		}
	}
	return blocks
}

func extractJSONField(s, field string) string {
	re := regexp.MustCompile(fmt.Sprintf(`%q\s*:\s*"([^"]*)"`, field))
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

func extractCount(s, field string) int {
	re := regexp.MustCompile(fmt.Sprintf(`%q\s*:\s*(\d+)`, field))
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	return 0
}

// extractTenureMonths derives months in the current role from the most
// recent position start date. Returns 0 when no start date is found.
func extractTenureMonths(s string, now time.Time) int {
	best := 0
	for _, m := range startDatePattern.FindAllStringSubmatch(s, -1) {
		year, err := strconv.Atoi(m[2])
		if err != nil || year < 1970 || year > now.Year() {
			continue
		}
		month := 1
		if m[1] != "" {
			if parsed, err := strconv.Atoi(m[1]); err == nil && parsed >= 1 && parsed <= 12 {
				month = parsed
			}
		}
		months := (now.Year()-year)*12 + int(now.Month()) - month
		if months < 0 {
			continue
		}
		// The most recent start is the current role.
		if best == 0 || months < best {
			best = months
		}
	}
	return best
}

func extractProfileSection(s, id string) string {
	search := fmt.Sprintf(`"publicIdentifier":%q`, id)
	idx := strings.Index(s, search)
	if idx == -1 {
		return s
	}
	start := max(0, idx-5000)
	end := min(len(s), idx+5000)
	return s[start:end]
}

func parseCompanyFromHeadline(headline string) string {
	var company string

	// "Position at Company", "Position @ Company", "Position @Company"
	if idx := strings.Index(headline, " at "); idx != -1 {
		company = headline[idx+4:]
	} else if idx := strings.Index(headline, " @ "); idx != -1 {
		company = headline[idx+3:]
	} else if idx := strings.Index(headline, "@"); idx != -1 {
		company = headline[idx+1:]
	} else {
		return ""
	}

	company = strings.TrimSpace(company)
	if idx := strings.IndexAny(company, ",;|"); idx != -1 {
		company = strings.TrimSpace(company[:idx])
	}
	return company
}

func unescapeJSON(s string) string {
	var unescaped string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &unescaped); err != nil {
		return s
	}
	return unescaped
}

var (
	publicIDPattern   = regexp.MustCompile(`/in/([^/?#]+)`)
	codeBlockPattern  = regexp.MustCompile(`(?s)<code[^>]*>(.*?)</code>`)
	companyURNPattern = regexp.MustCompile(`"entityUrn"\s*:\s*"[^"]*company[^"]*"[^}]*"name"\s*:\s*"([^"]+)"`)
	startDatePattern  = regexp.MustCompile(`"start"\s*:\s*\{\s*(?:"month"\s*:\s*(\d+)\s*,\s*)?"year"\s*:\s*(\d+)`)
)
