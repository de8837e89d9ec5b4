package engine

import (
	"github.com/claude/periodize/internal/models"
)

// PeakLabel is the label of the terminal taper task.
const PeakLabel = "Peak Week"

// Schedule lays the program out as Gantt tasks: a Main task per block, Mini
// tasks for the previous block's kind every spacing weeks inside the next
// block, and a single Peak task after the last block. Tasks are returned in
// insertion order. An empty program yields an empty schedule.
func (e *Engine) Schedule(program []models.BlockKind) ([]models.ScheduledTask, error) {
	intervals, err := e.BuildIntervals(program)
	if err != nil {
		return nil, err
	}
	return e.layout(intervals), nil
}

func (e *Engine) layout(intervals []models.BlockInterval) []models.ScheduledTask {
	tasks := []models.ScheduledTask{}
	for i, iv := range intervals {
		tasks = append(tasks, models.ScheduledTask{
			Label:         string(iv.Kind) + " Block",
			Kind:          iv.Kind,
			StartWeek:     iv.StartWeek,
			DurationWeeks: iv.Duration(),
			Category:      models.CategoryMain,
		})
		if i == 0 {
			continue
		}
		prev := intervals[i-1].Kind
		for week := iv.StartWeek; week < iv.EndWeek; week += e.spacing {
			tasks = append(tasks, models.ScheduledTask{
				Label:         string(prev) + " Mini-Block",
				Kind:          prev,
				StartWeek:     week,
				DurationWeeks: 1,
				Category:      models.CategoryMini,
			})
		}
	}

	if n := len(intervals); n > 0 {
		tasks = append(tasks, models.ScheduledTask{
			Label:         PeakLabel,
			StartWeek:     intervals[n-1].EndWeek,
			DurationWeeks: 1,
			Category:      models.CategoryPeak,
		})
	}
	return tasks
}

// Lanes returns the distinct task labels in first-appearance order. A Gantt
// renderer draws one lane per label.
func Lanes(tasks []models.ScheduledTask) []string {
	seen := make(map[string]bool, len(tasks))
	lanes := []string{}
	for _, t := range tasks {
		if seen[t.Label] {
			continue
		}
		seen[t.Label] = true
		lanes = append(lanes, t.Label)
	}
	return lanes
}
