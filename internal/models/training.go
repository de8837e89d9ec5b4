package models

// Ability is a trainable physical quality tracked by the simulation.
type Ability string

const (
	MaximalStrength Ability = "Maximal Strength"
	Power           Ability = "Power"
	Speed           Ability = "Speed"
	Hypertrophy     Ability = "Hypertrophy"
)

// BlockKind identifies a training block type in the registry.
type BlockKind string

const (
	StrengthBlock    BlockKind = "Strength"
	PowerBlock       BlockKind = "Power"
	SpeedBlock       BlockKind = "Speed"
	HypertrophyBlock BlockKind = "Hypertrophy"
)

// IntensityRange is a load band as percent of a reference maximum.
type IntensityRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// BlockInterval is the week span one program block occupies.
// EndWeek is exclusive.
type BlockInterval struct {
	Kind      BlockKind `json:"kind"`
	Ability   Ability   `json:"ability"`
	StartWeek int       `json:"start_week"`
	EndWeek   int       `json:"end_week"`
}

// Duration returns the interval length in weeks.
func (b BlockInterval) Duration() int {
	return b.EndWeek - b.StartWeek
}

// RetentionPoint is the retained effect for one week.
type RetentionPoint struct {
	Week    int     `json:"week"`
	Percent float64 `json:"percent"`
}

// RetentionCurves maps each ability to its week-ordered retention points.
type RetentionCurves map[Ability][]RetentionPoint

// MiniBlockMarker recommends a mini-block insertion for an ability.
type MiniBlockMarker struct {
	Week    int     `json:"week"`
	Ability Ability `json:"ability"`
}

// TaskCategory classifies a Gantt task.
type TaskCategory string

const (
	CategoryMain TaskCategory = "Main"
	CategoryMini TaskCategory = "Mini"
	CategoryPeak TaskCategory = "Peak"
)

// ScheduledTask is one bar of the program timeline.
type ScheduledTask struct {
	Label         string       `json:"label"`
	Kind          BlockKind    `json:"kind,omitempty"`
	StartWeek     int          `json:"start_week"`
	DurationWeeks int          `json:"duration_weeks"`
	Category      TaskCategory `json:"category"`
}

// IntensityPoint is the prescribed load band for one training week.
type IntensityPoint struct {
	Week  int       `json:"week"`
	Kind  BlockKind `json:"kind"`
	Phase string    `json:"phase,omitempty"`
	Min   int       `json:"min"`
	Max   int       `json:"max"`
}

// Recommendation is the mini-block cadence advised for an ability.
type Recommendation struct {
	Ability    Ability `json:"ability"`
	EveryWeeks int     `json:"every_weeks"`
}

// DaySession is one training day of a weekly microcycle.
type DaySession struct {
	Day      string  `json:"day"`
	Training string  `json:"training"`
	Load     float64 `json:"load"`
}
