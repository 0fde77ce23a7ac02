package linkedin

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/leadgauge/leadgauge/pkg/fusion"
	"github.com/leadgauge/leadgauge/pkg/icp"
	"github.com/leadgauge/leadgauge/pkg/prospect"
	"github.com/leadgauge/leadgauge/pkg/signal"
)

// maxEvidence bounds how many content snippets an analysis carries.
const maxEvidence = 5

// Analyzer scores a fetched profile and its content into a
// fusion.LinkedInResult. It is pure over its inputs.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Analyze produces the LinkedIn half of a fusion from the person snapshot
// and their posts and articles.
func (a *Analyzer) Analyze(ctx context.Context, p prospect.Profile, content []prospect.ContentItem) (*fusion.LinkedInResult, error) {
	signals := collectSignals(p, content)

	scores := map[fusion.Axis]int{
		fusion.AxisTalentManagement:    icp.ExpertiseScore(icp.DimTalentManagement, content),
		fusion.AxisPeopleDevelopment:   icp.ExpertiseScore(icp.DimPeopleDevelopment, content),
		fusion.AxisHRTechnology:        icp.ExpertiseScore(icp.DimHRTechnology, content),
		fusion.AxisPracticalExperience: practicalExperience(signals),
		fusion.AxisThoughtLeadership:   thoughtLeadership(content, signals),
	}
	scores[fusion.AxisOverall] = overallRelevance(scores)

	result := &fusion.LinkedInResult{
		Scores:               scores,
		Authority:            authorityAssessment(signals),
		PostsAnalyzed:        countType(content, prospect.ContentPost),
		ArticlesPublished:    countOriginalArticles(content),
		ContentConsistency:   contentConsistency(content),
		OriginalContentRatio: originalRatio(content),
		OverallRelevance:     scores[fusion.AxisOverall],
		Evidence:             evidence(signals),
	}

	a.logger.DebugContext(ctx, "linkedin analysis complete",
		"name", p.Name,
		"posts", result.PostsAnalyzed,
		"articles", result.ArticlesPublished,
		"authority_confidence", result.Authority.Confidence,
		"overall", result.OverallRelevance)

	return result, nil
}

// collectSignals runs authority detection over the about section and every
// content item, in input order.
func collectSignals(p prospect.Profile, content []prospect.ContentItem) []prospect.Signal {
	signals := signal.Authority(p.About)
	for _, item := range content {
		signals = append(signals, signal.Authority(item.Text)...)
	}
	return signals
}

// practicalExperience scores hands-on delivery evidence: the strongest
// experience-class signal, plus a small bonus per additional one.
func practicalExperience(signals []prospect.Signal) int {
	best, extra := 0, 0
	for _, s := range signals {
		switch s.Type {
		case prospect.SignalExperience, prospect.SignalResults,
			prospect.SignalMethodology, prospect.SignalCaseStudy:
			if s.Confidence > best {
				best = s.Confidence
			} else {
				extra++
			}
		default:
		}
	}
	if best == 0 {
		return 0
	}
	return clamp(best + extra*5)
}

// thoughtLeadership scores public-voice evidence: published articles plus
// speaking and teaching signals.
func thoughtLeadership(content []prospect.ContentItem, signals []prospect.Signal) int {
	score := countOriginalArticles(content) * 20
	for _, s := range signals {
		switch s.Type {
		case prospect.SignalSpeaking:
			score += 20
		case prospect.SignalTeaching:
			score += 10
		default:
		}
	}
	return clamp(score)
}

// overallRelevance blends the three domain axes with practical experience.
func overallRelevance(scores map[fusion.Axis]int) int {
	domain := float64(scores[fusion.AxisTalentManagement])*0.4 +
		float64(scores[fusion.AxisPeopleDevelopment])*0.3 +
		float64(scores[fusion.AxisHRTechnology])*0.3
	return clamp(int(math.Round(domain*0.7 + float64(scores[fusion.AxisPracticalExperience])*0.3)))
}

// authorityAssessment summarizes authority signals: mean confidence plus a
// capped count bonus.
func authorityAssessment(signals []prospect.Signal) fusion.Authority {
	if len(signals) == 0 {
		return fusion.Authority{}
	}
	sum := 0
	for _, s := range signals {
		sum += s.Confidence
	}
	bonus := (len(signals) - 1) * 5
	if bonus > 15 {
		bonus = 15
	}
	return fusion.Authority{
		Confidence: clamp(sum/len(signals) + bonus),
		Signals:    signals,
	}
}

// contentConsistency is the share of content items touching any of the
// three expertise domains, as a percentage.
func contentConsistency(content []prospect.ContentItem) int {
	if len(content) == 0 {
		return 0
	}
	relevant := 0
	for _, item := range content {
		if signal.HasKeyword(item.Text, signal.TalentManagement) ||
			signal.HasKeyword(item.Text, signal.PeopleDevelopment) ||
			signal.HasKeyword(item.Text, signal.HRTechnology) {
			relevant++
		}
	}
	return int(math.Round(float64(relevant) / float64(len(content)) * 100))
}

func originalRatio(content []prospect.ContentItem) float64 {
	if len(content) == 0 {
		return 0
	}
	original := 0
	for _, item := range content {
		if item.Original {
			original++
		}
	}
	return float64(original) / float64(len(content))
}

func countType(content []prospect.ContentItem, t prospect.ContentType) int {
	n := 0
	for _, item := range content {
		if item.Type == t {
			n++
		}
	}
	return n
}

func countOriginalArticles(content []prospect.ContentItem) int {
	n := 0
	for _, item := range content {
		if item.Type == prospect.ContentArticle && item.Original {
			n++
		}
	}
	return n
}

// evidence returns the context snippets of the strongest signals, capped.
func evidence(signals []prospect.Signal) []string {
	var out []string
	for _, s := range signals {
		snippet := strings.TrimSpace(s.Context)
		if snippet == "" {
			continue
		}
		out = append(out, snippet)
		if len(out) == maxEvidence {
			break
		}
	}
	return out
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
