package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/claude/periodize/internal/models"
	"github.com/claude/periodize/internal/registry"
	"github.com/google/go-cmp/cmp"
)

// TestSimulateBundle verifies Simulate assembles every derived view of a program.
func TestSimulateBundle(t *testing.T) {
	program := []models.BlockKind{models.StrengthBlock, models.PowerBlock, models.SpeedBlock}
	res, err := defaultEngine().Simulate(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalWeeks != 15 || res.PeakWeek != 14 {
		t.Errorf("TotalWeeks = %d, PeakWeek = %d; want 15, 14", res.TotalWeeks, res.PeakWeek)
	}
	if len(res.Intervals) != 3 {
		t.Errorf("len(Intervals) = %d, want 3", len(res.Intervals))
	}
	if diff := cmp.Diff([]int{6, 10}, res.Transitions); diff != "" {
		t.Errorf("transitions (-want +got):\n%s", diff)
	}
	if len(res.Baseline[models.Speed]) != 19 || len(res.Augmented[models.Speed]) != 19 {
		t.Errorf("curve length = %d/%d, want 19", len(res.Baseline[models.Speed]), len(res.Augmented[models.Speed]))
	}
	if len(res.Intensity) != 14 {
		t.Errorf("len(Intensity) = %d, want 14", len(res.Intensity))
	}
	if len(res.Recommendations) != 4 || res.Recommendations[0].EveryWeeks != 4 {
		t.Errorf("recommendations = %+v", res.Recommendations)
	}
	if got := res.Schedule[len(res.Schedule)-1]; got.Label != PeakLabel {
		t.Errorf("last task = %+v, want peak", got)
	}
}

// TestSimulateIdempotent verifies repeated runs produce identical output.
func TestSimulateIdempotent(t *testing.T) {
	eng := defaultEngine()
	program := []models.BlockKind{models.HypertrophyBlock, models.StrengthBlock, models.PowerBlock, models.SpeedBlock}

	first, err := eng.Simulate(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := eng.Simulate(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ (-first +second):\n%s", diff)
	}
}

// TestSimulateEmpty verifies the empty program boundary: zero curves, no peak,
// nothing scheduled and no error.
func TestSimulateEmpty(t *testing.T) {
	res, err := defaultEngine().Simulate([]models.BlockKind{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PeakWeek != -1 {
		t.Errorf("PeakWeek = %d, want -1", res.PeakWeek)
	}
	if len(res.Schedule) != 0 || len(res.Intervals) != 0 || len(res.Intensity) != 0 {
		t.Errorf("expected empty schedule/intervals/intensity, got %d/%d/%d",
			len(res.Schedule), len(res.Intervals), len(res.Intensity))
	}
	for ability, points := range res.Augmented {
		for _, p := range points {
			if p.Percent != 0 {
				t.Errorf("%s week %d = %v, want 0", ability, p.Week, p.Percent)
			}
		}
	}
}

// TestSimulateUnknownKind verifies a configuration error surfaces unchanged.
func TestSimulateUnknownKind(t *testing.T) {
	_, err := defaultEngine().Simulate([]models.BlockKind{"Endurance"})
	if !errors.Is(err, registry.ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

// TestIntensityProfilePhases verifies the strength phases are tagged per week
// and other blocks carry their bands unphased.
func TestIntensityProfilePhases(t *testing.T) {
	points, err := defaultEngine().IntensityProfile([]models.BlockKind{models.StrengthBlock, models.PowerBlock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 10 {
		t.Fatalf("len = %d, want 10", len(points))
	}

	wantPhases := []string{"Eccentric", "Eccentric", "Isometric", "Isometric", "Concentric", "Concentric", "", "", "", ""}
	for i, p := range points {
		if p.Week != i {
			t.Errorf("point %d week = %d", i, p.Week)
		}
		if p.Phase != wantPhases[i] {
			t.Errorf("week %d phase = %q, want %q", i, p.Phase, wantPhases[i])
		}
	}
	if points[0].Min != 85 || points[0].Max != 100 {
		t.Errorf("strength band = %d-%d, want 85-100", points[0].Min, points[0].Max)
	}
	if points[6].Kind != models.PowerBlock || points[6].Min != 55 || points[6].Max != 80 {
		t.Errorf("power point = %+v", points[6])
	}
}

// TestCompare verifies concurrent simulations keep program order.
func TestCompare(t *testing.T) {
	programs := [][]models.BlockKind{
		{models.StrengthBlock},
		{models.PowerBlock, models.SpeedBlock},
		{},
	}
	results, err := defaultEngine().Compare(context.Background(), programs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len = %d, want 3", len(results))
	}
	wantTotals := []int{7, 9, 1}
	for i, res := range results {
		if res.TotalWeeks != wantTotals[i] {
			t.Errorf("result %d TotalWeeks = %d, want %d", i, res.TotalWeeks, wantTotals[i])
		}
	}
}

// TestCompareFailure verifies one invalid program fails the whole comparison.
func TestCompareFailure(t *testing.T) {
	programs := [][]models.BlockKind{{models.StrengthBlock}, {"Endurance"}}
	if _, err := defaultEngine().Compare(context.Background(), programs); !errors.Is(err, registry.ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

// TestConcurrentSimulate verifies one engine serves parallel callers without
// shared state.
func TestConcurrentSimulate(t *testing.T) {
	eng := defaultEngine()
	program := []models.BlockKind{models.StrengthBlock, models.PowerBlock}
	want, err := eng.Simulate(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*Result, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = eng.Simulate(program)
		}()
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("result %d differs (-want +got):\n%s", i, diff)
		}
	}
}
