package payment

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// WithBreaker wraps an authorizer in a circuit breaker.  Declines are
// normal outcomes and do not count as failures; only transport errors
// trip the breaker.  While the breaker is open, Authorize fails fast and
// the engine records the booking as a failed payment.
func WithBreaker(name string, inner Authorizer) Authorizer {
	cb := gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 4
			},
		},
	)
	return AuthorizerFunc(func(ctx context.Context, amountCents int64) (bool, error) {
		res, err := cb.Execute(func() (interface{}, error) {
			return inner.Authorize(ctx, amountCents)
		})
		if err != nil {
			return false, err
		}
		return res.(bool), nil
	})
}
