/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package backoff

import (
	"context"
	"time"

	"k8s.io/client-go/util/workqueue"
)

// Backoff computes exponentially growing delays, tracked per item.
type Backoff struct {
	limiter workqueue.TypedRateLimiter[string]
}

// Create a new Backoff, starting at baseDelay and doubling per failure, up to maxDelay.
func NewBackoff(baseDelay time.Duration, maxDelay time.Duration) *Backoff {
	return &Backoff{
		limiter: workqueue.NewTypedItemExponentialFailureRateLimiter[string](baseDelay, maxDelay),
	}
}

// Return the delay to wait before the next attempt for item.
func (b *Backoff) Next(item string) time.Duration {
	return b.limiter.When(item)
}

// Return how often Next() was called for item since it was last forgotten.
func (b *Backoff) Failures(item string) int {
	return b.limiter.NumRequeues(item)
}

// Reset the delay of item.
func (b *Backoff) Forget(item string) {
	b.limiter.Forget(item)
}

// Call fn until it succeeds, at most 1+retries times; between attempts, wait for the next delay of item.
// Only errors for which retriable returns true are retried (a nil retriable retries all errors).
// The context is checked while waiting; the last error of fn is returned.
func (b *Backoff) Retry(ctx context.Context, item string, retries int, retriable func(error) bool, fn func() error) error {
	defer b.Forget(item)
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if attempt >= retries || (retriable != nil && !retriable(err)) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		timer := time.NewTimer(b.Next(item))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
