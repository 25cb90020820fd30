// Package backoff computes retry delays for failed notification deliveries.
//
// Delays grow exponentially with the retry count and are capped:
//
//	delay = min(InitialDelay * Multiplier^retryCount, MaxDelay)
//	next  = now + delay + jitter, jitter in [0, JitterRatio*delay)
//
// Example with the defaults (5m initial, multiplier 2, 24h cap):
//
//	retry 0: 5m   .. 5m30s
//	retry 1: 10m  .. 11m
//	retry 2: 20m  .. 22m
package backoff

import (
	"errors"
	"math"
	"time"
)

// Default policy values.
const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 5 * time.Minute
	DefaultMaxDelay     = 24 * time.Hour
	DefaultMultiplier   = 2.0
	DefaultJitterRatio  = 0.1
)

// Policy defines the retry behavior for failed deliveries.
type Policy struct {
	MaxRetries   int           // retries allowed before a record is terminally failed
	InitialDelay time.Duration // delay before the first retry
	MaxDelay     time.Duration // cap on the computed delay
	Multiplier   float64       // exponential growth factor
	JitterRatio  float64       // upper bound of the added jitter as a fraction of the delay
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Multiplier:   DefaultMultiplier,
		JitterRatio:  DefaultJitterRatio,
	}
}

// Validate checks that p produces strictly positive, non-shrinking delays.
func (p Policy) Validate() error {
	switch {
	case p.MaxRetries < 0:
		return errors.New("max retries must not be negative")
	case p.InitialDelay <= 0:
		return errors.New("initial delay must be positive")
	case p.MaxDelay < p.InitialDelay:
		return errors.New("max delay must not be less than initial delay")
	case p.Multiplier < 1:
		return errors.New("backoff multiplier must be at least 1")
	case p.JitterRatio < 0:
		return errors.New("jitter ratio must not be negative")
	}
	return nil
}

// Delay returns the nominal delay, without jitter, for the given retry count.
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}

	delay := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(retryCount))
	if delay > float64(p.MaxDelay) || math.IsInf(delay, 1) {
		return p.MaxDelay
	}

	return time.Duration(delay)
}

// NextRetryAt returns when the next attempt is due. rnd must be in [0, 1).
func (p Policy) NextRetryAt(now time.Time, retryCount int, rnd float64) time.Time {
	delay := p.Delay(retryCount)
	jitter := time.Duration(rnd * p.JitterRatio * float64(delay))

	return now.Add(delay + jitter)
}

// Exhausted reports whether a record with retryCount may not be retried again.
func (p Policy) Exhausted(retryCount int) bool {
	return retryCount >= p.MaxRetries
}
