package fusion

import (
	"math"
	"strings"

	"github.com/leadgauge/leadgauge/pkg/prospect"
	"github.com/leadgauge/leadgauge/pkg/signal"
)

// unifyScores blends the axes both sources score (60/40 web/LinkedIn) and
// passes single-source axes through unweighted.
func unifyScores(web *WebResult, li *LinkedInResult) map[Axis]int {
	unified := make(map[Axis]int, len(AxisOrder))

	for _, axis := range BlendedAxes {
		w := float64(web.Scores[axis])
		l := float64(li.Scores[axis])
		unified[axis] = clamp(int(math.Round(w*webWeight + l*linkedInWeight)))
	}

	// Pass-through axes keep their single source's value.
	unified[AxisPracticalExperience] = clamp(li.Scores[AxisPracticalExperience])
	unified[AxisThoughtLeadership] = clamp(li.Scores[AxisThoughtLeadership])
	unified[AxisIndustryRecognition] = clamp(web.Scores[AxisIndustryRecognition])

	return unified
}

// dataQuality is an additive rubric over independent boolean checks, not a
// weighted average. Total >= 70 is high, >= 40 medium, else low.
func dataQuality(web *WebResult, li *LinkedInResult) string {
	points := 0
	if web.ArticlesFound() >= 5 {
		points += 25
	}
	if len(web.Signals) >= 3 {
		points += 25
	}
	if web.Quality == QualityHigh {
		points += 15
	}
	if li.ArticlesPublished >= 2 {
		points += 20
	}
	if li.PostsAnalyzed >= 10 {
		points += 15
	}

	switch {
	case points >= 70:
		return QualityHigh
	case points >= 40:
		return QualityMedium
	default:
		return QualityLow
	}
}

// confidenceLevel computes the aggregate confidence 0-100.
//
// The cross-validation bonus fires only when BOTH sources independently
// report overall relevance above 60: agreement between independent sources
// increases trust, one strong source alone does not.
func confidenceLevel(web *WebResult, li *LinkedInResult, quality string) int {
	conf := 50

	switch quality {
	case QualityHigh:
		conf += 25
	case QualityMedium:
		conf += 15
	}

	// Up to 15 points from high-confidence web signals.
	strong := 0
	for _, s := range web.Signals {
		if s.Confidence > 80 {
			strong++
		}
	}
	bonus := strong * 5
	if bonus > 15 {
		bonus = 15
	}
	conf += bonus

	// 20% of the LinkedIn authority assessment.
	conf += int(math.Round(0.2 * float64(li.Authority.Confidence)))

	if web.OverallRelevance > 60 && li.OverallRelevance > 60 {
		conf += 10
	}

	return clamp(conf)
}

// claimKeywords maps each blended claim axis to the keyword category used
// when collecting evidence snippets.
var claimKeywords = map[Axis]signal.Category{
	AxisTalentManagement:  signal.TalentManagement,
	AxisPeopleDevelopment: signal.PeopleDevelopment,
	AxisHRTechnology:      signal.HRTechnology,
}

// claimLabels are the human-readable claim names.
var claimLabels = map[Axis]string{
	AxisTalentManagement:  "talent management expertise",
	AxisPeopleDevelopment: "people development expertise",
	AxisHRTechnology:      "HR technology expertise",
}

// maxLinkedInEvidence caps how many LinkedIn snippets one claim collects.
const maxLinkedInEvidence = 3

// verifyClaims cross-validates each expertise claim that either source
// scores above 50. Confidence counts web evidence at 20 points each
// (capped at 60) and LinkedIn evidence at 10 each (capped at 40); a claim
// is verified above 70.
func verifyClaims(web *WebResult, li *LinkedInResult) []Verification {
	var out []Verification

	for _, axis := range AxisOrder {
		cat, ok := claimKeywords[axis]
		if !ok {
			continue
		}
		if web.Scores[axis] <= 50 && li.Scores[axis] <= 50 {
			continue
		}

		webEvidence := collectEvidence(webSnippets(web), cat, 0)
		liEvidence := collectEvidence(li.Evidence, cat, maxLinkedInEvidence)

		webPts := len(webEvidence) * 20
		if webPts > 60 {
			webPts = 60
		}
		liPts := len(liEvidence) * 10
		if liPts > 40 {
			liPts = 40
		}
		conf := webPts + liPts
		if conf > 100 {
			conf = 100
		}

		out = append(out, Verification{
			Claim:            claimLabels[axis],
			WebEvidence:      webEvidence,
			LinkedInEvidence: liEvidence,
			Confidence:       conf,
			Verified:         conf > 70,
		})
	}
	return out
}

// webSnippets flattens a web result's textual evidence: signal contexts
// plus article snippets.
func webSnippets(web *WebResult) []string {
	var snippets []string
	for _, s := range web.Signals {
		if s.Context != "" {
			snippets = append(snippets, s.Context)
		} else if s.Text != "" {
			snippets = append(snippets, s.Text)
		}
	}
	for _, a := range web.Articles {
		if a.Snippet != "" {
			snippets = append(snippets, a.Snippet)
		}
	}
	return snippets
}

// collectEvidence keeps snippets containing any keyword of the claim's
// category. limit of 0 means unlimited.
func collectEvidence(snippets []string, cat signal.Category, limit int) []string {
	var out []string
	for _, s := range snippets {
		lower := strings.ToLower(s)
		for _, kw := range signal.KeywordList(cat) {
			if strings.Contains(lower, kw) {
				out = append(out, s)
				break
			}
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// redFlags applies the independent red-flag rules. Every applicable rule
// emits its flag; there is no early exit.
func redFlags(web *WebResult, li *LinkedInResult, unified map[Axis]int) []string {
	var flags []string

	if web.ArticlesFound() == 0 {
		flags = append(flags, "no external articles found")
	}
	if li.ContentConsistency < 50 {
		flags = append(flags, "inconsistent LinkedIn content themes")
	}
	if unified[AxisOverall] > 80 && len(web.Signals)+len(li.Authority.Signals) < 2 {
		flags = append(flags, "strong expertise claims with weak supporting evidence")
	}
	if li.PostsAnalyzed > 5 && li.OriginalContentRatio < 0.3 {
		flags = append(flags, "mostly curated content, little original writing")
	}

	return flags
}

// strengths emits one message per independent threshold check that passes.
func strengths(web *WebResult, li *LinkedInResult, unified map[Axis]int) []string {
	var out []string

	if unified[AxisOverall] > 80 {
		out = append(out, "deep overall expertise across sources")
	}
	if web.ArticlesFound() >= 3 {
		out = append(out, "externally published author")
	}
	if unified[AxisPracticalExperience] > 80 {
		out = append(out, "strong hands-on practitioner record")
	}
	if li.ContentConsistency > 80 {
		out = append(out, "consistent content themes over time")
	}
	if unified[AxisIndustryRecognition] > 70 {
		out = append(out, "recognized by industry peers")
	}
	if hasSpeakingSignal(web, li) {
		out = append(out, "active conference speaker")
	}

	return out
}

// recommendations mirror the strengths catalog from the outreach side.
func recommendations(web *WebResult, li *LinkedInResult, unified map[Axis]int) []string {
	var out []string

	if unified[AxisOverall] > 80 {
		out = append(out, "reference their published thinking when reaching out")
	}
	if unified[AxisThoughtLeadership] > 70 {
		out = append(out, "engage with their recent posts before contacting")
	}
	if li.OriginalContentRatio >= 0.7 && li.PostsAnalyzed > 0 {
		out = append(out, "original author: cite their own frameworks, not generic pitches")
	}
	if web.ArticlesFound() == 0 && li.OverallRelevance > 60 {
		out = append(out, "LinkedIn-only footprint: verify claims on a call")
	}

	return out
}

func hasSpeakingSignal(web *WebResult, li *LinkedInResult) bool {
	for _, s := range web.Signals {
		if s.Type == prospect.SignalSpeaking {
			return true
		}
	}
	for _, s := range li.Authority.Signals {
		if s.Type == prospect.SignalSpeaking {
			return true
		}
	}
	return false
}

// verificationStatus is an ordered check: verified first, then likely, else
// unverified. A single red flag is enough to deny "verified".
func verificationStatus(confidence int, verifications []Verification, flags []string) VerificationStatus {
	ratio := verifiedRatio(verifications)

	if confidence > 80 && ratio >= 0.7 && len(flags) == 0 {
		return StatusVerified
	}
	if confidence > 60 && ratio >= 0.5 && len(flags) <= 1 {
		return StatusLikely
	}
	return StatusUnverified
}

// verifiedRatio is the share of claims that verified. No claims at all
// counts as a zero ratio.
func verifiedRatio(verifications []Verification) float64 {
	if len(verifications) == 0 {
		return 0
	}
	verified := 0
	for _, v := range verifications {
		if v.Verified {
			verified++
		}
	}
	return float64(verified) / float64(len(verifications))
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
