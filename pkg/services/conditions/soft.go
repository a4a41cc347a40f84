package conditions

import (
	"context"

	"github.com/rs/zerolog"
)

// notMet records why a condition could not be satisfied and reports false.
// Evaluation failures never escape a condition.
func notMet(ctx context.Context, kind string, err error) bool {
	zerolog.Ctx(ctx).Debug().
		Err(err).
		Str("condition", kind).
		Msg("condition not met")
	return false
}
