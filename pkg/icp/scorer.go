package icp

import (
	"math"
	"strings"

	"github.com/leadgauge/leadgauge/pkg/prospect"
)

// scorePatterns returns the maximum weight among table entries with at least
// one matching pattern. Best single signal wins; weights are not summed.
// Returns 0 when nothing matches.
func scorePatterns(text string, table []WeightedPatterns) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	best := 0
	for _, entry := range table {
		for _, p := range entry.Patterns {
			if strings.Contains(lower, p) {
				if entry.Weight > best {
					best = entry.Weight
				}
				break
			}
		}
	}
	return best
}

// RoleScore scores role fit from a headline. The exclude list is a hard
// veto evaluated before any role pattern: "Retired CEO" scores 0, not 100.
func RoleScore(headline string) int {
	lower := strings.ToLower(headline)
	for _, ex := range roleExcludes {
		if strings.Contains(lower, ex) {
			return 0
		}
	}
	return scorePatterns(headline, roleTable)
}

// IndustryScore scores industry fit from headline plus about text.
func IndustryScore(text string) int {
	return scorePatterns(text, industryTable)
}

// CompanySizeScore scores company-size fit. With no size keyword present it
// returns the fixed mid-size default, not 0.
func CompanySizeScore(text string) int {
	if s := scorePatterns(text, companySizeTable); s > 0 {
		return s
	}
	return companySizeDefault
}

// TenureScore buckets months-in-role into fixed bands. Zero or negative
// months means unknown.
func TenureScore(months int) int {
	switch {
	case months <= 0:
		return tenureUnknownScore
	case months <= 6:
		return tenureBand6
	case months <= 12:
		return tenureBand12
	case months <= 24:
		return tenureBand24
	default:
		return tenureBandLong
	}
}

// TransitionScore scores career-transition fit from transition language in
// the text, falling back to short tenure as an implicit transition marker.
func TransitionScore(text string, tenureMonths int) int {
	if s := scorePatterns(text, transitionTable); s > 0 {
		return s
	}
	if tenureMonths > 0 && tenureMonths <= 6 {
		return 80
	}
	return 0
}

// LeadershipScore scores leadership relevance from the headline.
func LeadershipScore(headline string) int {
	return scorePatterns(headline, leadershipTable)
}

// EngagementScore buckets average engagement per content item.
func EngagementScore(content []prospect.ContentItem) int {
	if len(content) == 0 {
		return 0
	}
	total := 0
	for _, c := range content {
		total += c.Engagement()
	}
	avg := total / len(content)
	switch {
	case avg >= 100:
		return 100
	case avg >= 50:
		return 80
	case avg >= 20:
		return 60
	case avg >= 5:
		return 40
	case avg > 0:
		return 20
	default:
		return 0
	}
}

// ProfileQualityScore scores how complete the profile snapshot is. This is
// an additive rubric over independent checks, not a pattern table.
func ProfileQualityScore(p prospect.Profile) int {
	score := 0
	if len(p.About) >= 200 {
		score += 40
	}
	if p.Headline != "" {
		score += 20
	}
	if p.Followers >= 1000 {
		score += 20
	}
	if p.Connections >= 500 {
		score += 20
	}
	return clamp(score)
}

// ExpertiseScore accumulates an expertise-area score across content items.
// Each item is scored with max-wins semantics against the area table, then
// damped: posts contribute 30% of their score, articles contribute in full.
// The damped sum is clamped to [0,100].
func ExpertiseScore(dim Dimension, content []prospect.ContentItem) int {
	table, ok := expertiseTables[dim]
	if !ok {
		return 0
	}

	var sum float64
	for _, c := range content {
		itemScore := scorePatterns(c.Text, table)
		if itemScore == 0 {
			continue
		}
		mult := postWeight
		if c.Type == prospect.ContentArticle {
			mult = articleWeight
		}
		sum += float64(itemScore) * mult
	}
	return clamp(int(math.Round(sum)))
}

// DataConfidence estimates how much of the profile we actually have to score
// against. Used by the enhanced variant's confidence-aware tiering.
func DataConfidence(p prospect.Profile, content []prospect.ContentItem) int {
	conf := 40
	if p.Headline != "" {
		conf += 15
	}
	if len(p.About) >= 100 {
		conf += 15
	}
	if p.Company != "" {
		conf += 10
	}
	if p.TenureMonths > 0 {
		conf += 10
	}
	if n := len(content); n >= 10 {
		conf += 10
	} else if n >= 5 {
		conf += 5
	}
	return clamp(conf)
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
