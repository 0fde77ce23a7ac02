package fusion

import (
	"context"
	"time"

	"github.com/leadgauge/leadgauge/pkg/prospect"
)

// Axis names one expertise dimension of a fused assessment.
type Axis string

// Expertise axes. The first four are present in both sources and blended;
// the rest are exclusive to one source and pass through unweighted.
const (
	AxisTalentManagement    Axis = "talent_management"
	AxisPeopleDevelopment   Axis = "people_development"
	AxisHRTechnology        Axis = "hr_technology"
	AxisOverall             Axis = "overall_expertise"
	AxisPracticalExperience Axis = "practical_experience" // LinkedIn only
	AxisThoughtLeadership   Axis = "thought_leadership"   // LinkedIn only
	AxisIndustryRecognition Axis = "industry_recognition" // web only
)

// BlendedAxes are scored by both sources and combined 60/40 web/LinkedIn.
var BlendedAxes = []Axis{
	AxisTalentManagement,
	AxisPeopleDevelopment,
	AxisHRTechnology,
	AxisOverall,
}

// AxisOrder is the declaration order used wherever ties must break
// deterministically (batch summaries, claim iteration).
var AxisOrder = []Axis{
	AxisTalentManagement,
	AxisPeopleDevelopment,
	AxisHRTechnology,
	AxisOverall,
	AxisPracticalExperience,
	AxisThoughtLeadership,
	AxisIndustryRecognition,
}

// Article is one external article discovered by web research.
type Article struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// WebResult is the web-research half of a fusion. Produced by a
// WebResearcher; read-only to the engine.
type WebResult struct {
	Articles         []Article         `json:"articles,omitempty"`
	Signals          []prospect.Signal `json:"signals,omitempty"`
	Scores           map[Axis]int      `json:"scores"`
	Quality          string            `json:"quality"` // researcher's own tag: high/medium/low
	OverallRelevance int               `json:"overallRelevance"`
}

// ArticlesFound returns the number of external articles discovered.
func (w *WebResult) ArticlesFound() int { return len(w.Articles) }

// Authority summarizes first-person expertise claims found on LinkedIn.
type Authority struct {
	Confidence int               `json:"confidence"` // 0-100
	Signals    []prospect.Signal `json:"signals,omitempty"`
}

// LinkedInResult is the LinkedIn-analysis half of a fusion.
type LinkedInResult struct {
	Scores               map[Axis]int `json:"scores"`
	Authority            Authority    `json:"authority"`
	PostsAnalyzed        int          `json:"postsAnalyzed"`
	ArticlesPublished    int          `json:"articlesPublished"`
	ContentConsistency   int          `json:"contentConsistency"`   // 0-100
	OriginalContentRatio float64      `json:"originalContentRatio"` // 0.0-1.0
	OverallRelevance     int          `json:"overallRelevance"`
	Evidence             []string     `json:"evidence,omitempty"` // content snippets
}

// Verification records the cross-source check of one expertise claim.
type Verification struct {
	Claim            string   `json:"claim"`
	WebEvidence      []string `json:"webEvidence,omitempty"`
	LinkedInEvidence []string `json:"linkedInEvidence,omitempty"`
	Confidence       int      `json:"confidence"` // 0-100
	Verified         bool     `json:"verified"`   // Confidence > 70, fixed threshold
}

// VerificationStatus is the ordinal trust level of a fused profile.
type VerificationStatus string

// Verification statuses, most trusted first.
const (
	StatusVerified   VerificationStatus = "verified"
	StatusLikely     VerificationStatus = "likely"
	StatusUnverified VerificationStatus = "unverified"
)

// DataQuality tiers summarizing how much evidence was available.
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
)

// Assessment is the fused intelligence judgment over both sources.
type Assessment struct {
	DataQuality        string             `json:"dataQuality"` // high/medium/low
	ConfidenceLevel    int                `json:"confidenceLevel"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Verifications      []Verification     `json:"verifications,omitempty"`
	RedFlags           []string           `json:"redFlags,omitempty"`
	Strengths          []string           `json:"strengths,omitempty"`
	Recommendations    []string           `json:"recommendations,omitempty"`
}

// IntelligenceProfile is the fusion output for one person. It is created
// fresh per research request and never mutated; re-researching a person
// yields a new profile that supersedes the old one in external storage.
type IntelligenceProfile struct {
	Person        prospect.Profile `json:"person"`
	Web           WebResult        `json:"web"`
	LinkedIn      LinkedInResult   `json:"linkedIn"`
	UnifiedScores map[Axis]int     `json:"unifiedScores"`
	Assessment    Assessment       `json:"assessment"`
	ResearchedAt  time.Time        `json:"researchedAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// OverallExpertise returns the fused overall expertise score.
func (p *IntelligenceProfile) OverallExpertise() int {
	return p.UnifiedScores[AxisOverall]
}

// WebResearcher produces the web half of a fusion. Implementations live
// outside the engine (search, scraping, cached HTTP); the engine only
// consumes the structured result.
type WebResearcher interface {
	Research(ctx context.Context, p prospect.Profile) (*WebResult, error)
}

// LinkedInAnalyzer produces the LinkedIn half of a fusion from the person
// snapshot and their content.
type LinkedInAnalyzer interface {
	Analyze(ctx context.Context, p prospect.Profile, content []prospect.ContentItem) (*LinkedInResult, error)
}
