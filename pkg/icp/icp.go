// Package icp scores prospects against an Ideal Customer Profile.
//
// Scoring runs in two stages. Category scorers map profile fields and
// content to per-dimension scores in [0,100] using fixed keyword tables
// with best-match-wins semantics. The aggregator then combines a breakdown
// into one 0-100 total via a fixed convex weight table and maps the total
// to an ordinal tier.
//
// Two scoring variants exist and are deliberately kept separate: the
// standard variant tiers on score alone, the enhanced variant requires both
// a score and a confidence threshold per tier and applies a red-flag
// penalty. Callers choose explicitly via the Variant parameter.
package icp

import (
	"math"
	"strings"

	"github.com/leadgauge/leadgauge/pkg/prospect"
	"github.com/leadgauge/leadgauge/pkg/signal"
)

// Dimension names one axis of an ICP breakdown.
type Dimension string

// Breakdown dimensions.
const (
	DimRole              Dimension = "role_match"
	DimIndustry          Dimension = "industry"
	DimCompanySize       Dimension = "company_size"
	DimTenure            Dimension = "tenure"
	DimTransition        Dimension = "career_transition"
	DimLeadership        Dimension = "leadership"
	DimEngagement        Dimension = "engagement"
	DimProfileQuality    Dimension = "profile_quality"
	DimTalentManagement  Dimension = "talent_management"
	DimPeopleDevelopment Dimension = "people_development"
	DimHRTechnology      Dimension = "hr_technology"
)

// Variant selects one of the two scoring profiles.
type Variant string

// Scoring variants.
const (
	VariantStandard Variant = "standard"
	VariantEnhanced Variant = "enhanced"
)

// Tier is the ordinal lead category derived from the total score.
type Tier string

// Lead tiers, hottest first.
const (
	TierHot    Tier = "Hot Lead"
	TierWarm   Tier = "Warm Lead"
	TierCold   Tier = "Cold Lead"
	TierNotICP Tier = "Not ICP"
)

// Weight binds a dimension to its share of the total. Each variant's
// weights sum to exactly 1.0.
type Weight struct {
	Dim    Dimension
	Weight float64
}

// StandardWeights is the standard variant's weight table.
var StandardWeights = []Weight{
	{DimRole, 0.30},
	{DimIndustry, 0.20},
	{DimCompanySize, 0.15},
	{DimTenure, 0.15},
	{DimTransition, 0.10},
	{DimLeadership, 0.10},
}

// EnhancedWeights is the enhanced variant's weight table.
var EnhancedWeights = []Weight{
	{DimRole, 0.25},
	{DimTransition, 0.20},
	{DimLeadership, 0.15},
	{DimTalentManagement, 0.20},
	{DimEngagement, 0.10},
	{DimProfileQuality, 0.10},
}

// redFlagPenalty is subtracted from the raw weighted sum for each distinct
// red-flag keyword matched, enhanced variant only. Applied before clamping.
const redFlagPenalty = 25

// Score is the aggregated ICP result.
type Score struct {
	Variant    Variant           `json:"variant"`
	Total      int               `json:"total"`      // 0-100
	Tier       Tier              `json:"tier"`       // step function of Total (and Confidence, enhanced)
	Confidence int               `json:"confidence"` // data confidence used for enhanced tiering
	Breakdown  map[Dimension]int `json:"breakdown"`
	Tags       []string          `json:"tags,omitempty"`
	Reasoning  []string          `json:"reasoning,omitempty"`
	RedFlags   []string          `json:"redFlags,omitempty"` // matched red-flag keywords
}

// Weights returns the weight table for a variant.
func Weights(v Variant) []Weight {
	if v == VariantEnhanced {
		return EnhancedWeights
	}
	return StandardWeights
}

// Breakdown computes the per-dimension scores a variant aggregates.
// Dimensions outside the variant's weight table are still computed when
// cheap, so callers get a full picture; the aggregate only uses weighted
// ones.
func Breakdown(v Variant, p prospect.Profile, content []prospect.ContentItem) map[Dimension]int {
	profileText := p.Headline + " " + p.About

	b := map[Dimension]int{
		DimRole:        RoleScore(p.Headline),
		DimIndustry:    IndustryScore(profileText),
		DimCompanySize: CompanySizeScore(profileText),
		DimTenure:      TenureScore(p.TenureMonths),
		DimTransition:  TransitionScore(profileText, p.TenureMonths),
		DimLeadership:  LeadershipScore(p.Headline),
	}

	if v == VariantEnhanced {
		b[DimEngagement] = EngagementScore(content)
		b[DimProfileQuality] = ProfileQualityScore(p)
		b[DimTalentManagement] = ExpertiseScore(DimTalentManagement, content)
		b[DimPeopleDevelopment] = ExpertiseScore(DimPeopleDevelopment, content)
		b[DimHRTechnology] = ExpertiseScore(DimHRTechnology, content)
	}
	return b
}

// Aggregate combines a breakdown into a Score using the variant's weight
// table. confidence gates the enhanced variant's tiers; redFlags trigger the
// enhanced variant's additive penalty (one per distinct flag) before the
// total is clamped to [0,100].
func Aggregate(v Variant, breakdown map[Dimension]int, confidence int, redFlags []string) Score {
	var raw float64
	for _, w := range Weights(v) {
		raw += w.Weight * float64(breakdown[w.Dim])
	}

	if v == VariantEnhanced {
		raw -= float64(redFlagPenalty * len(redFlags))
	}

	total := clamp(int(math.Round(raw)))

	return Score{
		Variant:    v,
		Total:      total,
		Tier:       tierFor(v, total, confidence),
		Confidence: confidence,
		Breakdown:  breakdown,
		RedFlags:   redFlags,
	}
}

// tierFor maps a total (and, for the enhanced variant, a confidence) to a
// tier. Enhanced tiers require both thresholds; insufficient confidence
// demotes even a qualifying score.
func tierFor(v Variant, total, confidence int) Tier {
	if v == VariantEnhanced {
		switch {
		case total >= 75 && confidence >= 70:
			return TierHot
		case total >= 55 && confidence >= 50:
			return TierWarm
		case total >= 35:
			return TierCold
		default:
			return TierNotICP
		}
	}
	switch {
	case total >= 80:
		return TierHot
	case total >= 60:
		return TierWarm
	case total >= 40:
		return TierCold
	default:
		return TierNotICP
	}
}

// ScoreProfile runs the full single-source pipeline: breakdown, red-flag
// detection, data confidence, aggregation, and tag/reasoning generation.
func ScoreProfile(v Variant, p prospect.Profile, content []prospect.ContentItem) Score {
	breakdown := Breakdown(v, p, content)
	confidence := DataConfidence(p, content)

	var redFlags []string
	if v == VariantEnhanced {
		redFlags = signal.Keywords(p.Headline + " " + p.About)[signal.RedFlag]
	}

	s := Aggregate(v, breakdown, confidence, redFlags)
	s.Tags = tags(p.Headline, breakdown)
	s.Reasoning = reasoning(breakdown)
	return s
}

// tags derives the tag set from headline substrings and breakdown signals.
// The same headline always yields the same set.
func tags(headline string, breakdown map[Dimension]int) []string {
	var out []string
	lower := strings.ToLower(headline)

	if signal.HasKeyword(lower, signal.RoleSeniority) {
		out = append(out, "Decision Maker")
	}
	if signal.HasKeyword(lower, signal.Industry) {
		out = append(out, "Target Industry")
	}
	if breakdown[DimTransition] >= 80 {
		out = append(out, "Career Transition")
	}
	if breakdown[DimLeadership] >= 70 {
		out = append(out, "Leader")
	}
	if breakdown[DimEngagement] >= 80 {
		out = append(out, "High Engagement")
	}
	return out
}

// reasoning emits one human-readable line per dimension exceeding its fixed
// threshold. Dimensions below threshold contribute nothing.
func reasoning(breakdown map[Dimension]int) []string {
	var out []string
	if breakdown[DimRole] >= 80 {
		out = append(out, "Senior decision-making role")
	}
	if breakdown[DimTransition] >= 80 {
		out = append(out, "Recently changed roles, likely evaluating tooling")
	}
	if breakdown[DimLeadership] >= 70 {
		out = append(out, "Holds leadership responsibilities")
	}
	if breakdown[DimEngagement] >= 80 {
		out = append(out, "Content draws strong engagement")
	}
	return out
}
