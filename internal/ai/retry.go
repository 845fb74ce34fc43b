package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
)

// RetryBaseDelay is the first backoff wait; each further attempt doubles it.
// Tests lower it to avoid real sleeps.
var RetryBaseDelay = 5 * time.Second

// MaxRetryDelay caps a single backoff wait.
var MaxRetryDelay = 2 * time.Minute

// IsRetryable reports whether err is a quota or availability failure worth
// another attempt.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return retryableHTTP(gerr.Code)
	}
	var aerr genai.APIError
	if errors.As(err, &aerr) {
		return retryableHTTP(aerr.Code)
	}
	var aerrp *genai.APIError
	if errors.As(err, &aerrp) && aerrp != nil {
		return retryableHTTP(aerrp.Code)
	}

	switch status.Code(err) {
	case codes.ResourceExhausted, codes.Unavailable:
		return true
	}
	return false
}

func retryableHTTP(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// withRetry runs call, retrying retryable failures up to retries extra times
// with exponential backoff. A cancelled context ends the wait early.
func withRetry(ctx context.Context, retries int, log logging.Logger, call func(context.Context) error) error {
	if retries < 0 {
		retries = 0
	}
	for attempt := 0; ; attempt++ {
		err := call(ctx)
		if err == nil || !IsRetryable(err) || attempt >= retries {
			return err
		}

		backoff := backoffFor(attempt)
		log.WithError(err).Warn("Model call rate limited or unavailable, retrying",
			logging.F(logging.FieldAttempt, attempt+1),
			logging.F(logging.FieldDelay, backoff.String()))

		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// backoffFor returns the wait before retry attempt+1: RetryBaseDelay doubled
// per attempt, capped at MaxRetryDelay and never overflowing.
func backoffFor(attempt int) time.Duration {
	d := RetryBaseDelay
	for i := 0; i < attempt && d < MaxRetryDelay; i++ {
		d *= 2
	}
	if d > MaxRetryDelay || d <= 0 {
		d = MaxRetryDelay
	}
	return d
}
