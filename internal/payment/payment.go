// Package payment models the external payment collaborator.  The engine
// only needs an approved/declined answer for an amount; the simulator
// reproduces the collaborator's stochastic outcome and latency.
package payment

import (
	"context"
	"math/rand"
	"time"
)

// Authorizer decides whether a charge of the given amount is approved.
// Implementations may block for the duration of the charge.  An error
// means the collaborator could not be reached at all; the engine treats
// that the same as a decline.
type Authorizer interface {
	Authorize(ctx context.Context, amountCents int64) (bool, error)
}

// AuthorizerFunc adapts a plain function to the Authorizer interface.
type AuthorizerFunc func(ctx context.Context, amountCents int64) (bool, error)

// Authorize calls f.
func (f AuthorizerFunc) Authorize(ctx context.Context, amountCents int64) (bool, error) {
	return f(ctx, amountCents)
}

// Simulator approves payments with a fixed probability after a fixed
// processing delay, independently per call.  It never errors.
type Simulator struct {
	approveRate float64
	delay       time.Duration
}

// NewSimulator returns a simulator approving with probability approveRate
// (0.85 matches the production collaborator) after the given delay.
func NewSimulator(approveRate float64, delay time.Duration) *Simulator {
	return &Simulator{approveRate: approveRate, delay: delay}
}

// Authorize blocks for the configured delay and then draws the outcome.
// The call always completes; ctx is accepted for interface symmetry only.
func (s *Simulator) Authorize(ctx context.Context, amountCents int64) (bool, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return rand.Float64() < s.approveRate, nil
}
