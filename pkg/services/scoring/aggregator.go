package scoring

import (
	"context"

	"github.com/kothscore/helios/pkg/models/domain"
)

// CheckPasses reports whether every success condition holds and every fail
// condition does not. Empty lists are vacuously satisfied. All conditions are
// evaluated, even after the outcome is known, so each one gets a chance to
// log why it was not met.
func CheckPasses(ctx context.Context, check domain.Check) bool {
	passed := true
	for _, cond := range check.Success {
		if !cond.Evaluate(ctx) {
			passed = false
		}
	}
	for _, cond := range check.Fail {
		if cond.Evaluate(ctx) {
			passed = false
		}
	}
	return passed
}

// RecordPasses is the conjunction of CheckPasses over the record's checks.
// A record without checks passes.
func RecordPasses(ctx context.Context, rec domain.Record) bool {
	passed := true
	for _, check := range rec.Checks {
		if !CheckPasses(ctx, check) {
			passed = false
		}
	}
	return passed
}
