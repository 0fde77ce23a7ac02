package batch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/leadgauge/leadgauge/pkg/fusion"
)

// fakeSource resolves ids from a fixed map and fails ids listed in failing.
// It also tracks the maximum number of simultaneously active calls.
type fakeSource struct {
	mu        sync.Mutex
	active    int
	maxActive int

	profiles map[string]*fusion.IntelligenceProfile
	failing  map[string]string // id -> reason
	delay    time.Duration
}

func (f *fakeSource) Research(_ context.Context, id string) (*fusion.IntelligenceProfile, error) {
	f.mu.Lock()
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.active--
	f.mu.Unlock()

	if reason, ok := f.failing[id]; ok {
		return nil, fmt.Errorf("%s", reason)
	}
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("profile not found: %s", id)
}

func profileWith(overall int, quality string, axes map[fusion.Axis]int) *fusion.IntelligenceProfile {
	scores := map[fusion.Axis]int{fusion.AxisOverall: overall}
	for axis, score := range axes {
		scores[axis] = score
	}
	return &fusion.IntelligenceProfile{
		UnifiedScores: scores,
		Assessment:    fusion.Assessment{DataQuality: quality},
	}
}

func TestProcessIsolatesFailures(t *testing.T) {
	src := &fakeSource{
		profiles: map[string]*fusion.IntelligenceProfile{
			"a": profileWith(80, "high", nil),
			"b": profileWith(50, "low", nil),
			"d": profileWith(75, "medium", nil),
		},
		failing: map[string]string{"c": "profile not found"},
	}

	got := New(src).Process(context.Background(), []string{"a", "b", "c", "d"}, 2)

	if got.Completed != 3 {
		t.Errorf("completed = %d, want 3", got.Completed)
	}
	if got.Failed != 1 {
		t.Errorf("failed = %d, want 1", got.Failed)
	}
	if got.InProgress != 0 {
		t.Errorf("inProgress = %d, want 0", got.InProgress)
	}
	wantErrs := map[string]string{"c": "profile not found"}
	if diff := cmp.Diff(wantErrs, got.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if got.BatchID == "" {
		t.Error("batch id not assigned")
	}
}

func TestProcessConcurrencyBound(t *testing.T) {
	profiles := make(map[string]*fusion.IntelligenceProfile)
	var ids []string
	for i := range 12 {
		id := fmt.Sprintf("p%d", i)
		ids = append(ids, id)
		profiles[id] = profileWith(60, "medium", nil)
	}
	src := &fakeSource{profiles: profiles, delay: 10 * time.Millisecond}

	// Requesting 10 must still cap concurrent fusions at 3.
	got := New(src).Process(context.Background(), ids, 10)

	if src.maxActive > 3 {
		t.Errorf("max simultaneous fusions = %d, want <= 3", src.maxActive)
	}
	if got.Completed != len(ids) {
		t.Errorf("completed = %d, want %d", got.Completed, len(ids))
	}
}

func TestProcessZeroConcurrencyStillRuns(t *testing.T) {
	src := &fakeSource{profiles: map[string]*fusion.IntelligenceProfile{
		"a": profileWith(60, "low", nil),
	}}
	got := New(src).Process(context.Background(), []string{"a"}, 0)
	if got.Completed != 1 {
		t.Errorf("completed = %d, want 1", got.Completed)
	}
}

func TestProcessEmptyBatch(t *testing.T) {
	got := New(&fakeSource{}).Process(context.Background(), nil, 3)

	if got.Completed != 0 || got.Failed != 0 {
		t.Errorf("completed/failed = %d/%d, want 0/0", got.Completed, got.Failed)
	}
	if got.Summary.AverageExpertiseScore != 0 {
		t.Errorf("average = %d, want 0", got.Summary.AverageExpertiseScore)
	}
	if got.Summary.HighValueProspects != 0 {
		t.Errorf("high value = %d, want 0", got.Summary.HighValueProspects)
	}
	if len(got.Summary.TopExpertiseAreas) != 0 {
		t.Errorf("top areas = %v, want empty", got.Summary.TopExpertiseAreas)
	}
}

func TestSummarize(t *testing.T) {
	profiles := []*fusion.IntelligenceProfile{
		profileWith(90, "high", map[fusion.Axis]int{
			fusion.AxisTalentManagement: 80,
			fusion.AxisHRTechnology:     70,
		}),
		profileWith(75, "medium", map[fusion.Axis]int{
			fusion.AxisTalentManagement:  65,
			fusion.AxisPeopleDevelopment: 65,
		}),
		profileWith(40, "low", map[fusion.Axis]int{
			fusion.AxisPeopleDevelopment: 61,
		}),
	}

	s := summarize(profiles)

	if s.HighValueProspects != 2 {
		t.Errorf("high value = %d, want 2 (overall > 70)", s.HighValueProspects)
	}
	// (90+75+40)/3 = 68.33 -> 68
	if s.AverageExpertiseScore != 68 {
		t.Errorf("average = %d, want 68", s.AverageExpertiseScore)
	}
	wantDist := map[string]int{"high": 1, "medium": 1, "low": 1}
	if diff := cmp.Diff(wantDist, s.QualityDistribution); diff != "" {
		t.Errorf("quality distribution mismatch (-want +got):\n%s", diff)
	}
	// talent (2) ties people (2)? talent: 80,65 -> 2; people: 65,61 -> 2;
	// hr tech: 70 -> 1; overall: 90,75 -> 2. Ties break by declaration order:
	// talent, people, overall.
	wantTop := []fusion.Axis{
		fusion.AxisTalentManagement,
		fusion.AxisPeopleDevelopment,
		fusion.AxisOverall,
	}
	if diff := cmp.Diff(wantTop, s.TopExpertiseAreas); diff != "" {
		t.Errorf("top areas mismatch (-want +got):\n%s", diff)
	}
}

func TestTopAxesTieOrder(t *testing.T) {
	counts := map[fusion.Axis]int{
		fusion.AxisHRTechnology:      2,
		fusion.AxisTalentManagement:  2,
		fusion.AxisPeopleDevelopment: 2,
		fusion.AxisOverall:           2,
	}
	got := topAxes(counts)
	want := []fusion.Axis{
		fusion.AxisTalentManagement,
		fusion.AxisPeopleDevelopment,
		fusion.AxisHRTechnology,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tie order mismatch (-want +got):\n%s", diff)
	}
}
