// Package htmlutil provides HTML processing utilities for web research pages.
package htmlutil

import (
	"html"
	"regexp"
	"strings"
)

// StripTags removes HTML tags and returns plain text.
func StripTags(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}
	content := scriptPattern.ReplaceAllString(htmlContent, " ")
	content = stylePattern.ReplaceAllString(content, " ")
	content = tagPattern.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	content = multiSpacePattern.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// Title extracts the page title from HTML content.
func Title(htmlContent string) string {
	if matches := titlePattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	if matches := ogTitlePattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	if matches := firstH1Pattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	return ""
}

// Description extracts the meta description from HTML content.
func Description(htmlContent string) string {
	if matches := descPattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	if matches := ogDescPattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	return ""
}

// ExtractMetaTag extracts a meta tag value by name or property, in either
// attribute order.
func ExtractMetaTag(htmlContent, nameOrProperty string) string {
	quoted := regexp.QuoteMeta(nameOrProperty)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)<meta[^>]+name=["']` + quoted + `["'][^>]+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+name=["']` + quoted + `["']`),
		regexp.MustCompile(`(?i)<meta[^>]+property=["']` + quoted + `["'][^>]+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']` + quoted + `["']`),
	}
	for _, p := range patterns {
		if matches := p.FindStringSubmatch(htmlContent); len(matches) > 1 {
			return html.UnescapeString(strings.TrimSpace(matches[1]))
		}
	}
	return ""
}

// ExtractJSONLD extracts JSON-LD structured data from HTML as a JSON string.
func ExtractJSONLD(htmlContent string) string {
	if matches := jsonLDPattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}

// IsNotFound detects common "404 Not Found" patterns in HTML content.
func IsNotFound(text string) bool {
	lower := strings.ToLower(text)
	patterns := []string{
		"404 not found",
		"page not found",
		"error 404",
		"the page you requested cannot be found",
		"profile not found",
		"this page doesn't exist",
		"couldn't find that page",
		"this profile is not available",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

var (
	scriptPattern     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	stylePattern      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
	titlePattern      = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	ogTitlePattern    = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	firstH1Pattern    = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)
	descPattern       = regexp.MustCompile(`(?i)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`)
	ogDescPattern     = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)
	jsonLDPattern     = regexp.MustCompile(`(?s)<script[^>]*type=["']application/ld\+json["'][^>]*>(.*?)</script>`)
)
