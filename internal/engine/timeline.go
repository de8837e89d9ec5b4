package engine

import (
	"github.com/claude/periodize/internal/models"
)

// Timeline is the week frame shared by both decay strategies.
type Timeline struct {
	Intervals []models.BlockInterval

	// TotalWeeks is the sum of block durations plus the peak week.
	// An empty program has TotalWeeks 1 and no peak.
	TotalWeeks int

	// TailWeeks extends the frame so the longest residual window stays visible.
	TailWeeks int
}

// Weeks is the number of simulated weeks, 0 through Weeks()-1.
func (t Timeline) Weeks() int {
	return t.TotalWeeks + t.TailWeeks
}

// HasPeak reports whether a peak week exists.
func (t Timeline) HasPeak() bool {
	return len(t.Intervals) > 0
}

// PeakWeek returns the peak week index, or -1 for an empty program.
func (t Timeline) PeakWeek() int {
	if !t.HasPeak() {
		return -1
	}
	return t.TotalWeeks - 1
}

// BuildIntervals lays the program out as contiguous week intervals.
// Every kind is validated before any interval is built.
func (e *Engine) BuildIntervals(program []models.BlockKind) ([]models.BlockInterval, error) {
	if err := e.checkSize(program); err != nil {
		return nil, err
	}

	intervals := make([]models.BlockInterval, 0, len(program))
	durations := make([]int, 0, len(program))
	abilities := make([]models.Ability, 0, len(program))
	for _, kind := range program {
		b, err := e.reg.Block(kind)
		if err != nil {
			return nil, err
		}
		durations = append(durations, b.DurationWeeks)
		abilities = append(abilities, b.Ability)
	}

	start := 0
	for i, kind := range program {
		end := start + durations[i]
		intervals = append(intervals, models.BlockInterval{
			Kind:      kind,
			Ability:   abilities[i],
			StartWeek: start,
			EndWeek:   end,
		})
		start = end
	}
	return intervals, nil
}

// NewTimeline frames intervals for simulation.
func (e *Engine) NewTimeline(intervals []models.BlockInterval) Timeline {
	total := 1
	if n := len(intervals); n > 0 {
		total = intervals[n-1].EndWeek + 1
	}
	return Timeline{
		Intervals:  intervals,
		TotalWeeks: total,
		TailWeeks:  e.reg.MaxResidualDays() / 7,
	}
}

// BuildTimeline builds intervals for program and frames them.
func (e *Engine) BuildTimeline(program []models.BlockKind) (Timeline, error) {
	intervals, err := e.BuildIntervals(program)
	if err != nil {
		return Timeline{}, err
	}
	return e.NewTimeline(intervals), nil
}
