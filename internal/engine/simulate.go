package engine

import (
	"context"

	"github.com/claude/periodize/internal/models"
	"golang.org/x/sync/errgroup"
)

// Result bundles everything derived from one program.
type Result struct {
	Program         []models.BlockKind       `json:"program"`
	Intervals       []models.BlockInterval   `json:"intervals"`
	TotalWeeks      int                      `json:"total_weeks"`
	PeakWeek        int                      `json:"peak_week"` // -1 for an empty program
	Baseline        models.RetentionCurves   `json:"baseline"`
	Augmented       models.RetentionCurves   `json:"augmented"`
	Markers         []models.MiniBlockMarker `json:"markers"`
	Schedule        []models.ScheduledTask   `json:"schedule"`
	Lanes           []string                 `json:"lanes"`
	Intensity       []models.IntensityPoint  `json:"intensity"`
	Transitions     []int                    `json:"transitions"`
	Recommendations []models.Recommendation  `json:"recommendations"`
}

// Simulate runs both decay models and the schedule layout for program.
func (e *Engine) Simulate(program []models.BlockKind) (*Result, error) {
	tl, err := e.BuildTimeline(program)
	if err != nil {
		return nil, err
	}

	base, markers, err := e.Baseline(tl)
	if err != nil {
		return nil, err
	}
	aug, err := e.Augmented(tl)
	if err != nil {
		return nil, err
	}
	intensity, err := e.profile(tl.Intervals)
	if err != nil {
		return nil, err
	}
	tasks := e.layout(tl.Intervals)

	return &Result{
		Program:         append([]models.BlockKind{}, program...),
		Intervals:       tl.Intervals,
		TotalWeeks:      tl.TotalWeeks,
		PeakWeek:        tl.PeakWeek(),
		Baseline:        base,
		Augmented:       aug,
		Markers:         markers,
		Schedule:        tasks,
		Lanes:           Lanes(tasks),
		Intensity:       intensity,
		Transitions:     Transitions(tl.Intervals),
		Recommendations: e.Recommendations(),
	}, nil
}

// Compare simulates several programs concurrently. Results keep the order of
// programs; the first failure cancels the remaining work.
func (e *Engine) Compare(ctx context.Context, programs [][]models.BlockKind) ([]*Result, error) {
	results := make([]*Result, len(programs))
	g, ctx := errgroup.WithContext(ctx)
	for i, program := range programs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Simulate(program)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
