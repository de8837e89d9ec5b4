package engine

import (
	"github.com/claude/periodize/internal/models"
	"github.com/claude/periodize/internal/registry"
)

// position is where a week falls relative to one interval.
type position int

const (
	inactive position = iota
	active
	residual
)

func (p position) String() string {
	switch p {
	case active:
		return "active"
	case residual:
		return "residual"
	default:
		return "inactive"
	}
}

// placement classifies one (week, interval) pair.
type placement struct {
	pos      position
	index    int // owning interval
	interval models.BlockInterval
	spec     registry.AbilitySpec

	weeksInto    int     // active only
	daysSinceEnd int     // residual only
	decayed      float64 // residual only, linear decay from 100
}

// classify places week relative to iv.
func classify(week int, iv models.BlockInterval, spec registry.AbilitySpec) placement {
	p := placement{interval: iv, spec: spec}
	switch {
	case week < iv.StartWeek:
		p.pos = inactive
	case week < iv.EndWeek:
		p.pos = active
		p.weeksInto = week - iv.StartWeek
	default:
		days := (week - iv.EndWeek) * 7
		if days >= spec.ResidualDays {
			p.pos = inactive
			break
		}
		p.pos = residual
		p.daysSinceEnd = days
		p.decayed = max(0, 100*(1-float64(days)/float64(spec.ResidualDays)))
	}
	return p
}

// table accumulates per-ability retention by week, combining contributions
// by maximum.
type table struct {
	abilities []models.Ability
	values    map[models.Ability][]float64
}

func newTable(abilities []registry.AbilitySpec, weeks int) *table {
	t := &table{values: make(map[models.Ability][]float64, len(abilities))}
	for _, a := range abilities {
		t.abilities = append(t.abilities, a.Name)
		t.values[a.Name] = make([]float64, weeks)
	}
	return t
}

func (t *table) raise(ability models.Ability, week int, v float64) {
	row := t.values[ability]
	if v > row[week] {
		row[week] = v
	}
}

func (t *table) force(week int, v float64) {
	for _, a := range t.abilities {
		t.values[a][week] = v
	}
}

func (t *table) curves() models.RetentionCurves {
	out := make(models.RetentionCurves, len(t.abilities))
	for _, a := range t.abilities {
		row := t.values[a]
		points := make([]models.RetentionPoint, len(row))
		for w, v := range row {
			points[w] = models.RetentionPoint{Week: w, Percent: v}
		}
		out[a] = points
	}
	return out
}

// frame is a timeline with every interval's ability constants resolved.
type frame struct {
	intervals []models.BlockInterval
	specs     []registry.AbilitySpec
}

func (f *frame) last(index int) bool {
	return index == len(f.intervals)-1
}

// strategy consumes classified placements for one decay model.
type strategy interface {
	visit(week int, p placement, f *frame, t *table)
}

// walk feeds every (week, interval) pair of tl to s, then applies the peak
// week override.
func (e *Engine) walk(tl Timeline, s strategy) (*table, error) {
	f := &frame{
		intervals: tl.Intervals,
		specs:     make([]registry.AbilitySpec, len(tl.Intervals)),
	}
	for i, iv := range tl.Intervals {
		spec, err := e.reg.Ability(iv.Ability)
		if err != nil {
			return nil, err
		}
		f.specs[i] = spec
	}

	t := newTable(e.reg.Abilities(), tl.Weeks())
	peak := tl.PeakWeek()
	for week := 0; week < tl.Weeks(); week++ {
		for i, iv := range tl.Intervals {
			p := classify(week, iv, f.specs[i])
			if p.pos == inactive {
				continue
			}
			p.index = i
			s.visit(week, p, f, t)
		}
		if week == peak {
			t.force(week, 100)
		}
	}
	return t, nil
}
