package fusion

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/leadgauge/leadgauge/pkg/prospect"
)

func baseWeb() *WebResult {
	return &WebResult{
		Scores: map[Axis]int{
			AxisTalentManagement:    80,
			AxisPeopleDevelopment:   60,
			AxisHRTechnology:        40,
			AxisOverall:             70,
			AxisIndustryRecognition: 75,
		},
		Quality:          QualityMedium,
		OverallRelevance: 70,
	}
}

func baseLinkedIn() *LinkedInResult {
	return &LinkedInResult{
		Scores: map[Axis]int{
			AxisTalentManagement:    60,
			AxisPeopleDevelopment:   80,
			AxisHRTechnology:        20,
			AxisOverall:             80,
			AxisPracticalExperience: 85,
			AxisThoughtLeadership:   65,
		},
		ContentConsistency:   75,
		OriginalContentRatio: 0.8,
		PostsAnalyzed:        8,
		OverallRelevance:     70,
	}
}

func TestUnifyScoresBlend(t *testing.T) {
	unified := unifyScores(baseWeb(), baseLinkedIn())

	tests := []struct {
		axis Axis
		want int
	}{
		{AxisTalentManagement, 72}, // 80*0.6 + 60*0.4
		{AxisPeopleDevelopment, 68},
		{AxisHRTechnology, 32},
		{AxisOverall, 74},
		{AxisPracticalExperience, 85}, // LinkedIn pass-through
		{AxisThoughtLeadership, 65},   // LinkedIn pass-through
		{AxisIndustryRecognition, 75}, // web pass-through
	}
	for _, tt := range tests {
		if got := unified[tt.axis]; got != tt.want {
			t.Errorf("unified[%s] = %d, want %d", tt.axis, got, tt.want)
		}
	}
}

func TestDataQualityRubric(t *testing.T) {
	articles := func(n int) []Article {
		out := make([]Article, n)
		for i := range out {
			out[i] = Article{Title: "a", URL: "https://example.com"}
		}
		return out
	}
	signals := func(n int) []prospect.Signal {
		out := make([]prospect.Signal, n)
		for i := range out {
			out[i] = prospect.Signal{Type: prospect.SignalExperience, Confidence: 90}
		}
		return out
	}

	tests := []struct {
		name string
		web  *WebResult
		li   *LinkedInResult
		want string
	}{
		{
			name: "everything rich is high",
			web:  &WebResult{Articles: articles(5), Signals: signals(3), Quality: QualityHigh},
			li:   &LinkedInResult{ArticlesPublished: 2, PostsAnalyzed: 10},
			want: QualityHigh, // 25+25+15+20+15 = 100
		},
		{
			name: "exactly seventy is high",
			web:  &WebResult{Articles: articles(5), Signals: signals(3)},
			li:   &LinkedInResult{ArticlesPublished: 2},
			want: QualityHigh, // 25+25+20 = 70
		},
		{
			name: "partial evidence is medium",
			web:  &WebResult{Articles: articles(5)},
			li:   &LinkedInResult{PostsAnalyzed: 10},
			want: QualityMedium, // 25+15 = 40
		},
		{
			name: "sparse is low",
			web:  &WebResult{Articles: articles(1)},
			li:   &LinkedInResult{PostsAnalyzed: 3},
			want: QualityLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dataQuality(tt.web, tt.li); got != tt.want {
				t.Errorf("dataQuality = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCrossValidationBonus(t *testing.T) {
	// Both sources above 60: bonus fires.
	web := baseWeb()
	li := baseLinkedIn()
	web.OverallRelevance = 61
	li.OverallRelevance = 61
	with := confidenceLevel(web, li, QualityLow)

	// Only one source above 60: no bonus, all else equal.
	li.OverallRelevance = 60
	without := confidenceLevel(web, li, QualityLow)

	if with != without+10 {
		t.Errorf("confidence with bonus = %d, without = %d, want +10 exactly", with, without)
	}

	// Neither above 60: still no bonus.
	web.OverallRelevance = 0
	if got := confidenceLevel(web, li, QualityLow); got != without {
		t.Errorf("confidence with both low = %d, want %d", got, without)
	}
}

func TestConfidenceComponents(t *testing.T) {
	web := &WebResult{
		Signals: []prospect.Signal{
			{Confidence: 85}, {Confidence: 90}, {Confidence: 95}, {Confidence: 99},
			{Confidence: 70}, // not high-confidence, ignored
		},
	}
	li := &LinkedInResult{Authority: Authority{Confidence: 50}}

	// base 50 + quality 0 + min(15, 4*5)=15 + 0.2*50=10 + no bonus = 75.
	if got := confidenceLevel(web, li, QualityLow); got != 75 {
		t.Errorf("confidence = %d, want 75", got)
	}

	// High quality adds 25; total capped at 100.
	li.Authority.Confidence = 100
	web.OverallRelevance, li.OverallRelevance = 90, 90
	if got := confidenceLevel(web, li, QualityHigh); got != 100 {
		t.Errorf("confidence = %d, want 100 (clamped)", got)
	}
}

func TestVerifyClaims(t *testing.T) {
	web := &WebResult{
		Scores: map[Axis]int{AxisTalentManagement: 60},
		Signals: []prospect.Signal{
			{Type: prospect.SignalExperience, Context: "a decade leading talent management teams"},
			{Type: prospect.SignalResults, Context: "succession planning outcomes improved"},
		},
	}
	li := &LinkedInResult{
		Scores: map[Axis]int{AxisTalentManagement: 40},
		Evidence: []string{
			"post about talent management",
			"another talent management take",
			"performance management deep dive",
			"fourth talent management post is over the cap",
			"unrelated post about lunch",
		},
	}

	got := verifyClaims(web, li)
	if len(got) != 1 {
		t.Fatalf("got %d verifications, want 1", len(got))
	}
	v := got[0]
	if v.Claim != "talent management expertise" {
		t.Errorf("claim = %q", v.Claim)
	}
	if len(v.WebEvidence) != 2 {
		t.Errorf("web evidence count = %d, want 2", len(v.WebEvidence))
	}
	if len(v.LinkedInEvidence) != maxLinkedInEvidence {
		t.Errorf("linkedin evidence count = %d, want cap %d", len(v.LinkedInEvidence), maxLinkedInEvidence)
	}
	// 2*20 + 3*10 = 70, not verified (threshold is strict >70).
	if v.Confidence != 70 {
		t.Errorf("confidence = %d, want 70", v.Confidence)
	}
	if v.Verified {
		t.Error("confidence 70 must not verify; threshold is confidence > 70")
	}
}

func TestVerifyClaimsSkipsLowScores(t *testing.T) {
	web := &WebResult{Scores: map[Axis]int{AxisTalentManagement: 50}}
	li := &LinkedInResult{Scores: map[Axis]int{AxisTalentManagement: 50}}
	if got := verifyClaims(web, li); len(got) != 0 {
		t.Errorf("scores at 50 should produce no claims, got %d", len(got))
	}
}

func TestRedFlagRulesAreIndependent(t *testing.T) {
	web := &WebResult{} // no articles -> flag
	li := &LinkedInResult{
		ContentConsistency:   20,  // < 50 -> flag
		PostsAnalyzed:        10,  // > 5 with...
		OriginalContentRatio: 0.1, // ...ratio < 0.3 -> flag
	}
	unified := map[Axis]int{AxisOverall: 90} // > 80 with < 2 signals -> flag

	got := redFlags(web, li, unified)
	if len(got) != 4 {
		t.Fatalf("got %d flags, want all 4 independent rules to fire: %v", len(got), got)
	}
}

func TestVerificationStatusOrdering(t *testing.T) {
	verified := []Verification{
		{Verified: true}, {Verified: true}, {Verified: true}, {Verified: true}, {Verified: false},
	} // ratio 0.8

	tests := []struct {
		name       string
		confidence int
		flags      []string
		want       VerificationStatus
	}{
		{"verified", 85, nil, StatusVerified},
		{"one red flag demotes to likely", 85, []string{"flag"}, StatusLikely},
		{"two red flags demote to unverified", 85, []string{"a", "b"}, StatusUnverified},
		{"confidence at 80 is not verified", 80, nil, StatusLikely},
		{"low confidence is unverified", 55, nil, StatusUnverified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := verificationStatus(tt.confidence, verified, tt.flags); got != tt.want {
				t.Errorf("verificationStatus(%d, ratio 0.8, %d flags) = %q, want %q",
					tt.confidence, len(tt.flags), got, tt.want)
			}
		})
	}
}

func TestVerifiedRatioEmpty(t *testing.T) {
	if got := verifiedRatio(nil); got != 0 {
		t.Errorf("verifiedRatio(nil) = %v, want 0", got)
	}
}

// stubWeb and stubLinkedIn are test doubles for the source interfaces.
type stubWeb struct {
	result *WebResult
	err    error
	delay  time.Duration
}

func (s stubWeb) Research(ctx context.Context, _ prospect.Profile) (*WebResult, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.result, s.err
}

type stubLinkedIn struct {
	result *LinkedInResult
	err    error
}

func (s stubLinkedIn) Analyze(_ context.Context, _ prospect.Profile, _ []prospect.ContentItem) (*LinkedInResult, error) {
	return s.result, s.err
}

func TestEngineResearch(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := New(
		stubWeb{result: baseWeb()},
		stubLinkedIn{result: baseLinkedIn()},
		WithClock(func() time.Time { return fixed }),
	)

	p := prospect.Profile{Name: "Jamie Rivera"}
	got, err := e.Research(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	if !got.ResearchedAt.Equal(fixed) || !got.LastUpdatedAt.Equal(fixed) {
		t.Errorf("timestamps = %v/%v, want %v", got.ResearchedAt, got.LastUpdatedAt, fixed)
	}
	if diff := cmp.Diff(unifyScores(baseWeb(), baseLinkedIn()), got.UnifiedScores); diff != "" {
		t.Errorf("unified scores mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineResearchSourceFailure(t *testing.T) {
	sourceErr := errors.New("search quota exhausted")

	e := New(stubWeb{err: sourceErr}, stubLinkedIn{result: baseLinkedIn()})
	_, err := e.Research(context.Background(), prospect.Profile{Name: "Sam"}, nil)
	if err == nil {
		t.Fatal("want error when web source fails")
	}
	if !errors.Is(err, sourceErr) {
		t.Errorf("error %v does not wrap source error", err)
	}
	if !strings.Contains(err.Error(), "web research") {
		t.Errorf("error %q does not name the failed source", err)
	}

	e = New(stubWeb{result: baseWeb()}, stubLinkedIn{err: sourceErr})
	_, err = e.Research(context.Background(), prospect.Profile{Name: "Sam"}, nil)
	if err == nil || !strings.Contains(err.Error(), "linkedin analysis") {
		t.Errorf("error %v does not name the linkedin source", err)
	}
}

func TestFuseDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := prospect.Profile{Name: "Jamie Rivera"}
	first := Fuse(p, baseWeb(), baseLinkedIn(), at)
	for range 5 {
		if diff := cmp.Diff(first, Fuse(p, baseWeb(), baseLinkedIn(), at)); diff != "" {
			t.Fatalf("Fuse not deterministic:\n%s", diff)
		}
	}
}
