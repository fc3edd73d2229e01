package classify

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sigtrace-labs/sigtrace/internal/config"
	"github.com/sigtrace-labs/sigtrace/internal/monitoring"
	"golang.org/x/sync/errgroup"
)

// Loader is the external collaborator that supplies the full batch of
// deduplicated, geotagged observations for a run (§6: concretely realised
// as a SQL query over an observations table in internal/store). A
// store-unavailable error here is fatal to the run.
type Loader interface {
	LoadObservations(ctx context.Context) ([]Observation, error)
}

// Writer is the external collaborator that atomically replaces the two
// derived tables with a new run's output. Implementations must guarantee
// that partial results are never visible to readers.
type Writer interface {
	ReplaceArtifacts(ctx context.Context, statics []StaticAP, tracks []MobileTrackPoint) error
}

// Result summarises one completed pipeline run.
type Result struct {
	RunID              string
	StaticAPs          []StaticAP
	MobileTracks       []MobileTrackPoint
	NObservations      int
	NWindows           int
	NStationaryWindows int
	NMobileWindows     int
}

// Pipeline wires together the external collaborators and configuration for
// one run of the six-stage classification described in package doc.go.
type Pipeline struct {
	Loader Loader
	Writer Writer
	Config config.Resolved
}

// New constructs a Pipeline ready to Run.
func New(loader Loader, writer Writer, cfg config.Resolved) *Pipeline {
	return &Pipeline{Loader: loader, Writer: writer, Config: cfg}
}

// Run executes the pipeline end to end: load, window, split, aggregate,
// decimate, write. The pipeline is not interruptible at sub-stage
// granularity - a caller that cancels ctx either sees no change (if
// cancellation lands before the writer's transaction) or the full new
// artifacts (if after), never a partial write.
//
// Stage 4 (static aggregation) and stage 5 (mobile decimation) depend only
// on the stationary/mobile split, not on each other, so they run
// concurrently. Both stages already sort their own per-MAC output
// lexicographically, so the concurrency does not affect determinism.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	runID := uuid.NewString()
	monitoring.Logf("classify: run %s starting", runID)

	obs, err := p.Loader.LoadObservations(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("classify: run %s: load observations: %w", runID, err)
	}

	// Input-integrity check: malformed records are dropped with a warning.
	valid := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if math.IsNaN(o.Lat) || math.IsNaN(o.Lon) || math.IsInf(o.Lat, 0) || math.IsInf(o.Lon, 0) || math.IsNaN(o.RSSI) {
			monitoring.Logf("classify: run %s: dropping malformed observation %s", runID, o)
			continue
		}
		valid = append(valid, o)
	}
	if dropped := len(obs) - len(valid); dropped*10 > len(obs) {
		monitoring.Logf("classify: run %s: dropped %d of %d observations as malformed (more than 10%%)", runID, dropped, len(obs))
	}

	windows := BuildWindows(valid, p.Config)
	stationary, mobile := Split(windows, p.Config.RStationary)

	var statics []StaticAP
	var tracks []MobileTrackPoint

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		statics = AggregateStatic(stationary)
		return nil
	})
	g.Go(func() error {
		tracks = DecimateMobile(mobile, p.Config)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("classify: run %s: %w", runID, err)
	}

	if err := p.Writer.ReplaceArtifacts(ctx, statics, tracks); err != nil {
		return Result{}, fmt.Errorf("classify: run %s: write artifacts: %w", runID, err)
	}

	result := Result{
		RunID:              runID,
		StaticAPs:          statics,
		MobileTracks:       tracks,
		NObservations:      len(obs),
		NWindows:           len(windows),
		NStationaryWindows: len(stationary),
		NMobileWindows:     len(mobile),
	}
	monitoring.Logf("classify: run %s complete: %d observations, %d windows (%d stationary, %d mobile), %d static APs, %d mobile track points",
		runID, result.NObservations, result.NWindows, result.NStationaryWindows, result.NMobileWindows, len(statics), len(tracks))
	return result, nil
}
