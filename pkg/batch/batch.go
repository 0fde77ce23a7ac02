// Package batch runs intelligence research over many people with bounded
// concurrency and aggregates the outcome.
//
// People are processed in sequential chunks; members of a chunk run
// concurrently. The chunk size is capped at a hard limit of three no matter
// what concurrency the caller requests, keeping pressure on the upstream
// sources predictable. A failed item is recorded and never aborts the
// batch.
package batch

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/leadgauge/leadgauge/pkg/fusion"
)

// maxChunkSize is the hard upper bound on concurrent in-flight fusions.
const maxChunkSize = 3

// highValueThreshold marks a result as a high-value prospect.
const highValueThreshold = 70

// topAxisThreshold is the per-axis score a result must exceed to count
// toward the top-expertise-areas ranking.
const topAxisThreshold = 60

// topAxisCount is how many expertise areas the summary reports.
const topAxisCount = 3

// Source resolves one person id to a fused intelligence profile. In
// production this wraps a data-layer lookup plus a fusion.Engine; tests
// substitute doubles.
type Source interface {
	Research(ctx context.Context, id string) (*fusion.IntelligenceProfile, error)
}

// Summary holds the statistics computed once after all chunks finish.
type Summary struct {
	HighValueProspects    int            `json:"highValueProspects"`
	AverageExpertiseScore int            `json:"averageExpertiseScore"`
	TopExpertiseAreas     []fusion.Axis  `json:"topExpertiseAreas,omitempty"`
	QualityDistribution   map[string]int `json:"qualityDistribution"`
}

// Result aggregates a whole batch run.
type Result struct {
	BatchID    string                        `json:"batchId"`
	Completed  int                           `json:"completed"`
	Failed     int                           `json:"failed"`
	InProgress int                           `json:"inProgress"` // always 0 once Process returns
	Errors     map[string]string             `json:"errors,omitempty"` // id -> reason
	Profiles   []*fusion.IntelligenceProfile `json:"profiles,omitempty"`
	Summary    Summary                       `json:"summary"`
}

// Processor runs batches against a Source.
type Processor struct {
	source Source
	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// New creates a batch processor.
func New(source Source, opts ...Option) *Processor {
	p := &Processor{source: source, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process researches every id with bounded concurrency and returns the
// aggregate. Per-item failures are isolated into Result.Errors; no error
// escapes Process itself. An empty id list yields a zero-valued summary.
func (p *Processor) Process(ctx context.Context, ids []string, maxConcurrency int) *Result {
	chunkSize := maxConcurrency
	if chunkSize > maxChunkSize {
		chunkSize = maxChunkSize
	}
	if chunkSize < 1 {
		chunkSize = 1
	}

	result := &Result{
		BatchID: uuid.NewString(),
		Errors:  make(map[string]string),
	}

	p.logger.InfoContext(ctx, "batch started",
		"batch_id", result.BatchID, "people", len(ids), "chunk_size", chunkSize)

	var mu sync.Mutex
	for start := 0; start < len(ids); start += chunkSize {
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		mu.Lock()
		result.InProgress = len(chunk)
		mu.Unlock()

		var wg sync.WaitGroup
		for _, id := range chunk {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()

				profile, err := p.source.Research(ctx, id)

				mu.Lock()
				defer mu.Unlock()
				result.InProgress--
				if err != nil {
					result.Failed++
					result.Errors[id] = err.Error()
					p.logger.WarnContext(ctx, "research failed", "id", id, "error", err)
					return
				}
				result.Completed++
				result.Profiles = append(result.Profiles, profile)
			}(id)
		}
		wg.Wait()
	}

	result.Summary = summarize(result.Profiles)

	p.logger.InfoContext(ctx, "batch finished",
		"batch_id", result.BatchID,
		"completed", result.Completed,
		"failed", result.Failed)

	return result
}

/// summarize computes the batch statistics. Tolerates an empty result list:
// averages are zero, never a division by zero.
func summarize(profiles []*fusion.IntelligenceProfile) Summary {
	s := Summary{QualityDistribution: make(map[string]int)}
	if len(profiles) == 0 {
		return s
	}

	total := 0
	axisCounts := make(map[fusion.Axis]int)
	for _, prof := range profiles {
		overall := prof.OverallExpertise()
		total += overall
		if overall > highValueThreshold {
			s.HighValueProspects++
		}
		s.QualityDistribution[prof.Assessment.DataQuality]++
		for axis, score := range prof.UnifiedScores {
			if score > topAxisThreshold {
				axisCounts[axis]++
			}
		}
	}

	s.AverageExpertiseScore = int(math.Round(float64(total) / float64(len(profiles))))
	s.TopExpertiseAreas = topAxes(axisCounts)
	return s
}

// topAxes ranks axes by count, keeping the top three. Ties break by the
// fusion.AxisOrder declaration order.
func topAxes(counts map[fusion.Axis]int) []fusion.Axis {
	ordinal := make(map[fusion.Axis]int, len(fusion.AxisOrder))
	var ranked []fusion.Axis
	for i, axis := range fusion.AxisOrder {
		ordinal[axis] = i
		if counts[axis] > 0 {
			ranked = append(ranked, axis)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ordinal[ranked[i]] < ordinal[ranked[j]]
	})

	if len(ranked) > topAxisCount {
		ranked = ranked[:topAxisCount]
	}
	return ranked
}
