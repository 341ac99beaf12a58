// Package retry provides a retry policy with exponential backoff.
package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Policy describes how an operation is retried. The zero value retries
// up to DefaultMaxAttempts times with the default backoff parameters.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first
	// one (default: 3). A value below 1 is treated as 1.
	MaxAttempts int
	// Initial is the delay before the second attempt (default: 100ms).
	Initial time.Duration
	// Max caps the delay between attempts (default: 10s).
	Max time.Duration
	// Multiplier scales the delay after each attempt (default: 2).
	Multiplier float64
	// Jitter is the relative amount of randomization applied to each
	// delay, between 0 and 1 (default: 0.2, i.e. +/-20%).
	Jitter float64
}

// DefaultMaxAttempts is the number of attempts made when the policy does
// not specify one.
const DefaultMaxAttempts = 3

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts == 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Initial <= 0 {
		p.Initial = 100 * time.Millisecond
	}
	if p.Max <= 0 {
		p.Max = 10 * time.Second
	}
	if p.Multiplier <= 1 {
		p.Multiplier = 2
	}
	if p.Jitter < 0 || p.Jitter > 1 {
		p.Jitter = 0.2
	}
	return p
}

// delay returns the backoff before the given attempt (attempt 1 is the
// retry following the first failure).
func (p Policy) delay(attempt int) time.Duration {
	d := float64(p.Initial)
	for i := 1; i < attempt; i++ {
		d *= p.Multiplier
		if d >= float64(p.Max) {
			d = float64(p.Max)
			break
		}
	}
	jitter := 1 + p.Jitter*(2*rand.Float64()-1)
	return time.Duration(d * jitter)
}

// Do invokes op until it succeeds, the policy's attempts are exhausted,
// or ctx is done. It returns nil as soon as an attempt succeeds. When
// all attempts fail, it returns an aggregate carrying each attempt's
// error in order; when interrupted, the aggregate additionally carries
// the context error.
func Do(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	policy = policy.withDefaults()

	var errs *multierror.Error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		errs = multierror.Append(errs, err)

		if attempt == policy.MaxAttempts {
			break
		}
		select {
		case <-time.After(policy.delay(attempt)):
		case <-ctx.Done():
			errs = multierror.Append(errs, ctx.Err())
			return errs.ErrorOrNil()
		}
	}
	return errs.ErrorOrNil()
}
