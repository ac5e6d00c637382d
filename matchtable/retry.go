package matchtable

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// AddEntryWithBackoff wraps a table's AddEntry, retrying with exponential
// backoff while the table reports ErrTableFull, on the expectation that the
// caller (or another goroutine) may free a slot via DeleteEntry in the
// meantime. Any other error, including a context cancellation, is returned
// immediately without retrying.
//
// This mirrors modules/route/bird-adapter/service.go's use of
// backoff.ExponentialBackOff for its gRPC stream reconnect loop, applied
// here to the control plane's capacity-exhaustion path instead.
func AddEntryWithBackoff[V Dumper](
	ctx context.Context,
	t Table[V],
	params []MatchKeyParam,
	value V,
	priority int,
) (Handle, error) {
	op := func() (Handle, error) {
		h, err := t.AddEntry(params, value, priority)
		if err != nil {
			if errors.Is(err, ErrTableFull) {
				return 0, err // retryable
			}
			return 0, backoff.Permanent(err)
		}
		return h, nil
	}

	b := &backoff.ExponentialBackOff{
		InitialInterval:     backoff.DefaultInitialInterval,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         30 * time.Second,
	}

	return backoff.Retry(ctx, op, backoff.WithBackOff(b))
}
