package engine

import (
	"github.com/claude/periodize/internal/models"
	"github.com/claude/periodize/internal/registry"
)

// IntensityProfile expands each block's intensity band across its training
// weeks, tagging the phase a week belongs to when the block defines phases.
func (e *Engine) IntensityProfile(program []models.BlockKind) ([]models.IntensityPoint, error) {
	intervals, err := e.BuildIntervals(program)
	if err != nil {
		return nil, err
	}
	return e.profile(intervals)
}

func (e *Engine) profile(intervals []models.BlockInterval) ([]models.IntensityPoint, error) {
	points := []models.IntensityPoint{}
	for _, iv := range intervals {
		b, err := e.reg.Block(iv.Kind)
		if err != nil {
			return nil, err
		}
		phases := phaseByWeek(b.Phases, iv.Duration())
		for w := iv.StartWeek; w < iv.EndWeek; w++ {
			points = append(points, models.IntensityPoint{
				Week:  w,
				Kind:  iv.Kind,
				Phase: phases[w-iv.StartWeek],
				Min:   b.Intensity.Min,
				Max:   b.Intensity.Max,
			})
		}
	}
	return points, nil
}

func phaseByWeek(phases []registry.Phase, weeks int) []string {
	out := make([]string, weeks)
	w := 0
	for _, p := range phases {
		for i := 0; i < p.Weeks && w < weeks; i++ {
			out[w] = p.Name
			w++
		}
	}
	return out
}

// Transitions returns the start week of every block after the first.
func Transitions(intervals []models.BlockInterval) []int {
	weeks := []int{}
	for i := 1; i < len(intervals); i++ {
		weeks = append(weeks, intervals[i].StartWeek)
	}
	return weeks
}

// Recommendations lists the mini-block cadence for every ability.
func (e *Engine) Recommendations() []models.Recommendation {
	abilities := e.reg.Abilities()
	out := make([]models.Recommendation, 0, len(abilities))
	for _, a := range abilities {
		out = append(out, models.Recommendation{Ability: a.Name, EveryWeeks: a.MiniBlockIntervalWeeks})
	}
	return out
}
