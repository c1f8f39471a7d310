package tts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// RetrySynthesizer retries server side failures (5xx) with exponential backoff.
type RetrySynthesizer struct {
	Synthesizer     Synthesizer
	MaxRetries      int
	RetryDelay      time.Duration
	RetryMultiplier float64
	Logger          *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

func NewRetrySynthesizer(s Synthesizer, logger *zap.Logger) *RetrySynthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetrySynthesizer{
		Synthesizer:     s,
		MaxRetries:      3,
		RetryDelay:      2 * time.Second,
		RetryMultiplier: 1.5,
		Logger:          logger,
	}
}

func (r *RetrySynthesizer) Synthesize(ctx context.Context, req SpeechRequest, outputFile string) error {
	sleep := r.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	delay := r.RetryDelay
	for attempt := 0; attempt <= r.MaxRetries; attempt++ {
		if attempt > 0 {
			r.Logger.Info("retrying speech synthesis",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", r.MaxRetries),
				zap.Duration("delay", delay))
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			delay = time.Duration(float64(delay) * r.RetryMultiplier)
		}

		err := r.Synthesizer.Synthesize(ctx, req, outputFile)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isServerError(err) {
			return err
		}
		r.Logger.Warn("speech synthesis failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	return fmt.Errorf("all %d synthesis attempts failed, last error: %w", r.MaxRetries+1, lastErr)
}

func (r *RetrySynthesizer) Voices() []Voice {
	return r.Synthesizer.Voices()
}

// isServerError reports whether err carries a 5xx status code.
func isServerError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500 && apiErr.HTTPStatusCode < 600
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500 && reqErr.HTTPStatusCode < 600
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
