package engine

import (
	"errors"
	"testing"

	"github.com/claude/periodize/internal/models"
	"github.com/claude/periodize/internal/registry"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func percents(points []models.RetentionPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		if p.Week != i {
			panic("retention points out of order")
		}
		out[i] = p.Percent
	}
	return out
}

func mustTimeline(t *testing.T, eng *Engine, program ...models.BlockKind) Timeline {
	t.Helper()
	tl, err := eng.BuildTimeline(program)
	if err != nil {
		t.Fatalf("BuildTimeline(%v): %v", program, err)
	}
	return tl
}

// TestBaselineSingleStrengthBlock walks a lone six-week strength block
// through its training weeks, the peak week and its residual tail.
func TestBaselineSingleStrengthBlock(t *testing.T) {
	eng := defaultEngine()
	curves, markers, err := eng.Baseline(mustTimeline(t, eng, models.StrengthBlock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{
		100, 100, 100, 100, 100, 100, // training weeks 0-5
		100,                 // week 6: peak week, decay would also read 100
		100 * (1 - 7.0/30),  // week 7
		100 * (1 - 14.0/30), // week 8
		100 * (1 - 21.0/30), // week 9
		100 * (1 - 28.0/30), // week 10, ~6.7
	}
	if diff := cmp.Diff(want, percents(curves[models.MaximalStrength]), approx); diff != "" {
		t.Errorf("maximal strength mismatch (-want +got):\n%s", diff)
	}

	// Untouched abilities are zero except for the peak week.
	power := percents(curves[models.Power])
	for w, v := range power {
		wantV := 0.0
		if w == 6 {
			wantV = 100
		}
		if v != wantV {
			t.Errorf("power week %d = %v, want %v", w, v, wantV)
		}
	}

	wantMarkers := []models.MiniBlockMarker{{Week: 4, Ability: models.MaximalStrength}}
	if diff := cmp.Diff(wantMarkers, markers); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}
}

// TestBaselineEmptyProgram verifies an empty program yields zero curves with
// no peak week and no markers.
func TestBaselineEmptyProgram(t *testing.T) {
	eng := defaultEngine()
	curves, markers, err := eng.Baseline(mustTimeline(t, eng))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(curves) != 4 {
		t.Fatalf("len(curves) = %d, want 4", len(curves))
	}
	for ability, points := range curves {
		if len(points) != 5 {
			t.Errorf("%s: %d weeks, want 5", ability, len(points))
		}
		for _, p := range points {
			if p.Percent != 0 {
				t.Errorf("%s week %d = %v, want 0", ability, p.Week, p.Percent)
			}
		}
	}
	if len(markers) != 0 {
		t.Errorf("markers = %v, want none", markers)
	}
}

// TestBaselineRepeatedBlocksTakeMaximum verifies overlapping contributions of
// the same ability combine by maximum.
func TestBaselineRepeatedBlocksTakeMaximum(t *testing.T) {
	eng := defaultEngine()
	curves, _, err := eng.Baseline(mustTimeline(t, eng, models.StrengthBlock, models.PowerBlock, models.StrengthBlock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ms := percents(curves[models.MaximalStrength])

	// Week 9: first strength block 21 days into its residual window.
	if diff := cmp.Diff(30.0, ms[9], approx); diff != "" {
		t.Errorf("week 9 (-want +got):\n%s", diff)
	}
	// Week 10: first block decayed to ~6.7 but the second block is active.
	if ms[10] != 100 {
		t.Errorf("week 10 = %v, want 100", ms[10])
	}
}

// TestBaselineMarkersPerAbility verifies mini-block markers follow each
// ability's recommendation cadence.
func TestBaselineMarkersPerAbility(t *testing.T) {
	eng := defaultEngine()
	_, markers, err := eng.Baseline(mustTimeline(t, eng, models.StrengthBlock, models.SpeedBlock, models.PowerBlock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Strength 0-6 every 4, Speed 6-10 every 2, Power 10-14 every 3.
	want := []models.MiniBlockMarker{
		{Week: 4, Ability: models.MaximalStrength},
		{Week: 8, Ability: models.Speed},
		{Week: 13, Ability: models.Power},
	}
	if diff := cmp.Diff(want, markers); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}
}

// TestBaselineBounds verifies baseline retention stays within [0, 100].
func TestBaselineBounds(t *testing.T) {
	eng := defaultEngine()
	programs := [][]models.BlockKind{
		{models.StrengthBlock},
		{models.HypertrophyBlock, models.StrengthBlock, models.PowerBlock, models.SpeedBlock},
		{models.SpeedBlock, models.SpeedBlock, models.SpeedBlock},
	}
	for _, program := range programs {
		curves, _, err := eng.Baseline(mustTimeline(t, eng, program...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for ability, points := range curves {
			for _, p := range points {
				if p.Percent < 0 || p.Percent > 100 {
					t.Errorf("%v: %s week %d = %v out of [0,100]", program, ability, p.Week, p.Percent)
				}
			}
		}
	}
}

// TestBaselineDecayMonotonic verifies an isolated block's residual curve never
// rises after its peak week.
func TestBaselineDecayMonotonic(t *testing.T) {
	eng := defaultEngine()
	tl := mustTimeline(t, eng, models.PowerBlock)
	curves, _, err := eng.Baseline(tl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	power := percents(curves[models.Power])
	for w := tl.PeakWeek() + 1; w < len(power); w++ {
		if power[w] > power[w-1] {
			t.Errorf("week %d = %v rises above week %d = %v", w, power[w], w-1, power[w-1])
		}
	}
}

// TestPeakWeekOverride verifies both models force every ability to exactly 100
// in the peak week.
func TestPeakWeekOverride(t *testing.T) {
	eng := defaultEngine()
	programs := [][]models.BlockKind{
		{models.StrengthBlock},
		{models.StrengthBlock, models.PowerBlock},
		{models.SpeedBlock, models.HypertrophyBlock, models.StrengthBlock},
	}
	for _, program := range programs {
		tl := mustTimeline(t, eng, program...)
		base, _, err := eng.Baseline(tl)
		if err != nil {
			t.Fatalf("baseline: %v", err)
		}
		aug, err := eng.Augmented(tl)
		if err != nil {
			t.Fatalf("augmented: %v", err)
		}
		peak := tl.TotalWeeks - 1
		for _, a := range eng.Registry().Abilities() {
			if v := base[a.Name][peak].Percent; v != 100 {
				t.Errorf("%v baseline %s peak = %v, want 100", program, a.Name, v)
			}
			if v := aug[a.Name][peak].Percent; v != 100 {
				t.Errorf("%v augmented %s peak = %v, want 100", program, a.Name, v)
			}
		}
	}
}

// TestAugmentedCrossBlockBoost verifies strength keeps at least its mini-block
// fraction while the following power block is trained.
func TestAugmentedCrossBlockBoost(t *testing.T) {
	eng := defaultEngine()
	curves, err := eng.Augmented(mustTimeline(t, eng, models.StrengthBlock, models.PowerBlock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ms := percents(curves[models.MaximalStrength])
	for w := 6; w < 10; w++ {
		if ms[w] < 80 {
			t.Errorf("week %d = %v, want >= 80", w, ms[w])
		}
	}
	// Week 9: boosted residual 30*1.8 = 54 loses to the 80 floor.
	if diff := cmp.Diff(80.0, ms[9], approx); diff != "" {
		t.Errorf("week 9 (-want +got):\n%s", diff)
	}
	// Beyond the residual window and after the peak, nothing is left.
	for w := 11; w < len(ms); w++ {
		if ms[w] != 0 {
			t.Errorf("week %d = %v, want 0", w, ms[w])
		}
	}
}

// TestAugmentedResidualBoostExceedsHundred pins the uncapped additive boost:
// right after a block that is followed by another, the decayed value is
// boosted by its mini-block fraction and may read above 100.
func TestAugmentedResidualBoostExceedsHundred(t *testing.T) {
	eng := defaultEngine()
	curves, err := eng.Augmented(mustTimeline(t, eng, models.StrengthBlock, models.PowerBlock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ms := percents(curves[models.MaximalStrength])

	want := map[int]float64{
		6: 180,                      // 100 + 100*0.8
		7: 100 * (1 - 7.0/30) * 1.8, // ~138
		8: 100 * (1 - 14.0/30) * 1.8,
	}
	for w, v := range want {
		if diff := cmp.Diff(v, ms[w], approx); diff != "" {
			t.Errorf("week %d (-want +got):\n%s", w, diff)
		}
	}
	for _, p := range curves[models.Power] {
		if p.Percent < 0 {
			t.Errorf("power week %d = %v, want >= 0", p.Week, p.Percent)
		}
	}
}

// TestAugmentedLastBlockNotBoosted verifies the final block decays exactly as
// in the baseline model.
func TestAugmentedLastBlockNotBoosted(t *testing.T) {
	eng := defaultEngine()
	tl := mustTimeline(t, eng, models.StrengthBlock, models.PowerBlock)
	base, _, err := eng.Baseline(tl)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	aug, err := eng.Augmented(tl)
	if err != nil {
		t.Fatalf("augmented: %v", err)
	}
	// Power is last: 61.1 at week 11, 22.2 at week 12, gone by week 13.
	if diff := cmp.Diff(percents(base[models.Power]), percents(aug[models.Power]), approx); diff != "" {
		t.Errorf("power mismatch (-baseline +augmented):\n%s", diff)
	}
	if diff := cmp.Diff(100*(1-7.0/18), aug[models.Power][11].Percent, approx); diff != "" {
		t.Errorf("power week 11 (-want +got):\n%s", diff)
	}
}

// TestAugmentedSingleBlockMatchesBaseline verifies a lone block receives no
// mini-block effect at all.
func TestAugmentedSingleBlockMatchesBaseline(t *testing.T) {
	eng := defaultEngine()
	tl := mustTimeline(t, eng, models.HypertrophyBlock)
	base, _, err := eng.Baseline(tl)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	aug, err := eng.Augmented(tl)
	if err != nil {
		t.Fatalf("augmented: %v", err)
	}
	if diff := cmp.Diff(base, aug); diff != "" {
		t.Errorf("curves differ (-baseline +augmented):\n%s", diff)
	}
}

// TestSyntheticRegistry verifies the engine uses injected constants rather
// than the built-in table.
func TestSyntheticRegistry(t *testing.T) {
	reg, err := registry.New(
		[]registry.AbilitySpec{{Name: "Endurance", ResidualDays: 14, MiniBlockRetention: 0.5, MiniBlockIntervalWeeks: 2}},
		[]registry.BlockSpec{{Kind: "Aerobic", Ability: "Endurance", DurationWeeks: 3}},
	)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	eng := New(reg, Options{})
	tl := mustTimeline(t, eng, "Aerobic")

	curves, markers, err := eng.Baseline(tl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 training weeks, peak at 3, tail of 2 weeks: 50 at week 4, 0 at week 5.
	want := []float64{100, 100, 100, 100, 50, 0}
	if diff := cmp.Diff(want, percents(curves["Endurance"]), approx); diff != "" {
		t.Errorf("endurance mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]models.MiniBlockMarker{{Week: 2, Ability: "Endurance"}}, markers); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}
}

// TestWalkRejectsUnknownAbility verifies a hand-built timeline naming an
// ability outside the registry is refused.
func TestWalkRejectsUnknownAbility(t *testing.T) {
	eng := defaultEngine()
	tl := eng.NewTimeline([]models.BlockInterval{{Kind: "X", Ability: "Endurance", StartWeek: 0, EndWeek: 2}})

	if _, _, err := eng.Baseline(tl); !errors.Is(err, registry.ErrConfiguration) {
		t.Errorf("baseline err = %v, want ErrConfiguration", err)
	}
	if _, err := eng.Augmented(tl); !errors.Is(err, registry.ErrConfiguration) {
		t.Errorf("augmented err = %v, want ErrConfiguration", err)
	}
}
