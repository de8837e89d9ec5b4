// Package engine simulates the residual training effect of a periodized
// program and lays out its weekly schedule.
//
// A program is an ordered list of block kinds. The engine turns it into
// contiguous week intervals, then walks every (week, interval) pair once
// through a shared classifier that feeds two decay strategies:
//
//   - baseline: linear decay after each block, no cross-block interaction,
//     plus mini-block recommendation markers;
//   - augmented: baseline decay with mini-block maintenance boosts from
//     later blocks.
//
// Basic usage:
//
//	eng := engine.New(registry.Default(), engine.Options{})
//	res, err := eng.Simulate([]models.BlockKind{models.StrengthBlock, models.PowerBlock})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Augmented[models.MaximalStrength])
//
// An Engine holds no mutable state and is safe for concurrent use.
package engine
