package engine

import (
	"github.com/claude/periodize/internal/models"
)

// augmented assumes every later block carries mini-block maintenance work
// for the abilities trained before it.
type augmented struct{}

func (augmented) visit(week int, p placement, f *frame, t *table) {
	ability := p.interval.Ability
	switch p.pos {
	case active:
		t.raise(ability, week, 100)
		for j := 0; j < p.index; j++ {
			t.raise(f.intervals[j].Ability, week, 100*f.specs[j].MiniBlockRetention)
		}
	case residual:
		v := p.decayed
		if !f.last(p.index) {
			v += p.decayed * p.spec.MiniBlockRetention
		}
		t.raise(ability, week, max(0, v))
	}
}

// Augmented simulates retention with mini-block maintenance boosts.
//
// The residual boost is additive on top of the decayed value and is not
// capped, so an ability can read above 100 in the weeks right after its
// block when a later block follows.
func (e *Engine) Augmented(tl Timeline) (models.RetentionCurves, error) {
	t, err := e.walk(tl, augmented{})
	if err != nil {
		return nil, err
	}
	return t.curves(), nil
}
