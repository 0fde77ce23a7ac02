package icp

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/leadgauge/leadgauge/pkg/prospect"
)

func TestWeightTablesSumToOne(t *testing.T) {
	for _, tt := range []struct {
		name    string
		weights []Weight
	}{
		{"standard", StandardWeights},
		{"enhanced", EnhancedWeights},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var sum float64
			for _, w := range tt.weights {
				sum += w.Weight
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("%s weights sum to %v, want 1.0", tt.name, sum)
			}
		})
	}
}

func TestStandardTiers(t *testing.T) {
	tests := []struct {
		total int
		want  Tier
	}{
		{100, TierHot},
		{80, TierHot},
		{79, TierWarm},
		{60, TierWarm},
		{59, TierCold},
		{40, TierCold},
		{39, TierNotICP},
		{0, TierNotICP},
	}
	for _, tt := range tests {
		if got := tierFor(VariantStandard, tt.total, 0); got != tt.want {
			t.Errorf("tierFor(standard, %d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestEnhancedTiersRequireConfidence(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		confidence int
		want       Tier
	}{
		{"hot with confidence", 80, 75, TierHot},
		{"hot score demoted by low confidence", 80, 60, TierWarm},
		{"warm score demoted to cold by low confidence", 60, 30, TierCold},
		{"cold has no confidence gate", 40, 0, TierCold},
		{"below all thresholds", 20, 100, TierNotICP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tierFor(VariantEnhanced, tt.total, tt.confidence); got != tt.want {
				t.Errorf("tierFor(enhanced, %d, conf=%d) = %q, want %q",
					tt.total, tt.confidence, got, tt.want)
			}
		})
	}
}

func TestAggregateRedFlagPenalty(t *testing.T) {
	breakdown := map[Dimension]int{
		DimRole:             100,
		DimTransition:       100,
		DimLeadership:       100,
		DimTalentManagement: 100,
		DimEngagement:       100,
		DimProfileQuality:   100,
	}

	clean := Aggregate(VariantEnhanced, breakdown, 80, nil)
	if clean.Total != 100 {
		t.Fatalf("clean total = %d, want 100", clean.Total)
	}

	one := Aggregate(VariantEnhanced, breakdown, 80, []string{"retired"})
	if one.Total != 75 {
		t.Errorf("one-flag total = %d, want 75", one.Total)
	}

	// Many flags can bottom out the score but never go negative.
	many := Aggregate(VariantEnhanced, breakdown, 80,
		[]string{"retired", "former", "student", "open to work", "aspiring"})
	if many.Total != 0 {
		t.Errorf("many-flags total = %d, want 0 (clamped)", many.Total)
	}

	// Standard variant ignores red flags.
	std := Aggregate(VariantStandard, map[Dimension]int{DimRole: 100}, 0, []string{"retired"})
	if std.Total != 30 {
		t.Errorf("standard total = %d, want 30 (no penalty applied)", std.Total)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	p := prospect.Profile{
		Headline:     "CHRO at Growthly, excited to announce my new role",
		About:        "People-first leader in SaaS.",
		TenureMonths: 4,
	}
	first := ScoreProfile(VariantEnhanced, p, nil)
	for range 5 {
		if diff := cmp.Diff(first, ScoreProfile(VariantEnhanced, p, nil)); diff != "" {
			t.Fatalf("ScoreProfile not deterministic:\n%s", diff)
		}
	}
}

func TestHotLeadScenario(t *testing.T) {
	// Standard-table example: senior role, software industry, fresh in seat.
	p := prospect.Profile{
		Headline:     "CEO at Acme Software, 12 years in talent management",
		TenureMonths: 3,
	}
	s := ScoreProfile(VariantStandard, p, nil)

	if got := s.Breakdown[DimRole]; got != 100 {
		t.Errorf("role = %d, want 100", got)
	}
	if got := s.Breakdown[DimIndustry]; got != 100 {
		t.Errorf("industry = %d, want 100", got)
	}
	if got := s.Breakdown[DimTenure]; got != 100 {
		t.Errorf("tenure = %d, want 100", got)
	}
	if s.Total < 80 {
		t.Errorf("total = %d, want >= 80", s.Total)
	}
	if s.Tier != TierHot {
		t.Errorf("tier = %q, want %q", s.Tier, TierHot)
	}
}

func TestTagsStableForSameHeadline(t *testing.T) {
	p := prospect.Profile{
		Headline:     "CEO at Acme Software, excited to announce my next chapter",
		TenureMonths: 2,
	}
	want := ScoreProfile(VariantStandard, p, nil).Tags
	for range 5 {
		got := ScoreProfile(VariantStandard, p, nil).Tags
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("tag set changed between runs:\n%s", diff)
		}
	}
	// Sanity: this headline should carry role, industry, and transition tags.
	set := map[string]bool{}
	for _, tag := range want {
		set[tag] = true
	}
	for _, expect := range []string{"Decision Maker", "Target Industry", "Career Transition"} {
		if !set[expect] {
			t.Errorf("missing tag %q in %v", expect, want)
		}
	}
}

func TestReasoningThresholds(t *testing.T) {
	breakdown := map[Dimension]int{
		DimRole:       85, // above 80 -> line
		DimTransition: 79, // below 80 -> silent
		DimLeadership: 70, // at 70 -> line
		DimEngagement: 10, // silent
	}
	got := reasoning(breakdown)
	want := []string{
		"Senior decision-making role",
		"Holds leadership responsibilities",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reasoning mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyProfileDegradesGracefully(t *testing.T) {
	s := ScoreProfile(VariantEnhanced, prospect.Profile{}, nil)
	if s.Total < 0 || s.Total > 100 {
		t.Errorf("empty profile total = %d, out of range", s.Total)
	}
	if s.Tier == "" {
		t.Error("empty profile should still map to a tier")
	}
}
