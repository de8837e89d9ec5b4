// Package microcycle builds the weekly training-day template for a given
// number of training days.
package microcycle

import (
	"errors"
	"fmt"

	"github.com/claude/periodize/internal/models"
)

// ErrInvalidTrainingDays is returned for day counts without a template.
var ErrInvalidTrainingDays = errors.New("microcycle: unsupported training days per week")

// MinDays and MaxDays bound the supported training days per week.
const (
	MinDays = 3
	MaxDays = 6
)

// Session types.
const (
	HighIntensity       = "High Intensity"
	MediumHighIntensity = "Medium-High Intensity"
	MediumIntensity     = "Medium Intensity"
	HighVolume          = "High Volume"
)

var templates = map[int][]string{
	3: {"Monday", "Wednesday", "Friday"},
	4: {"Monday", "Tuesday", "Thursday", "Friday"},
	5: {"Monday", "Tuesday", "Wednesday", "Friday", "Saturday"},
	6: {"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

var sessionByDay = map[string]string{
	"Monday":    HighIntensity,
	"Tuesday":   MediumHighIntensity,
	"Wednesday": MediumIntensity,
	"Thursday":  MediumHighIntensity,
	"Friday":    HighVolume,
	"Saturday":  MediumIntensity,
}

// load is the heatmap weight of each session type.
var load = map[string]float64{
	HighIntensity:       3,
	MediumHighIntensity: 2,
	MediumIntensity:     1,
	HighVolume:          2.5,
}

// Week returns the training days of one week in calendar order.
func Week(days int) ([]models.DaySession, error) {
	names, ok := templates[days]
	if !ok {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidTrainingDays, days, MinDays, MaxDays)
	}

	out := make([]models.DaySession, 0, len(names))
	for _, day := range names {
		session, ok := sessionByDay[day]
		if !ok {
			session = MediumIntensity
		}
		out = append(out, models.DaySession{Day: day, Training: session, Load: load[session]})
	}
	return out, nil
}
