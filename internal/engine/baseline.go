package engine

import (
	"github.com/claude/periodize/internal/models"
)

// baseline decays each ability linearly after its block ends and records
// where a mini-block would be due.
type baseline struct {
	markers []models.MiniBlockMarker
}

func (b *baseline) visit(week int, p placement, _ *frame, t *table) {
	ability := p.interval.Ability
	switch p.pos {
	case active:
		t.raise(ability, week, 100)
		if p.weeksInto > 0 && p.weeksInto%p.spec.MiniBlockIntervalWeeks == 0 {
			b.markers = append(b.markers, models.MiniBlockMarker{Week: week, Ability: ability})
		}
	case residual:
		t.raise(ability, week, p.decayed)
	}
}

// Baseline simulates retention without cross-block interaction. Values stay
// within [0, 100]. Markers are ordered by week, then by interval.
func (e *Engine) Baseline(tl Timeline) (models.RetentionCurves, []models.MiniBlockMarker, error) {
	s := &baseline{markers: []models.MiniBlockMarker{}}
	t, err := e.walk(tl, s)
	if err != nil {
		return nil, nil, err
	}
	return t.curves(), s.markers, nil
}
