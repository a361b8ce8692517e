package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"schedsync/internal/core/domain"
	"schedsync/internal/core/ports"
)

// BreakerConfig controls when the provider circuit opens. Zero values fall
// back to the defaults below.
type BreakerConfig struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

const (
	defaultConsecutiveFailures = 3
	defaultOpenTimeout         = 30 * time.Second
)

// BreakerGenerator stops calling the model provider after repeated failures
// so requests fail fast while it is down.
type BreakerGenerator struct {
	next    ports.ScheduleGenerator
	breaker *gobreaker.CircuitBreaker
}

var _ ports.ScheduleGenerator = (*BreakerGenerator)(nil)

func NewBreakerGenerator(next ports.ScheduleGenerator, cfg BreakerConfig) *BreakerGenerator {
	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = defaultConsecutiveFailures
	}
	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = defaultOpenTimeout
	}

	settings := gobreaker.Settings{
		Name:        "schedule-generator",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		// A caller giving up is not a provider failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &BreakerGenerator{next: next, breaker: gobreaker.NewCircuitBreaker(settings)}
}

func (g *BreakerGenerator) Generate(ctx context.Context, profile domain.UserProfile) (domain.TaskList, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.Generate(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.TaskList), nil
}

// State reports the breaker state, e.g. "closed" or "open".
func (g *BreakerGenerator) State() string {
	return g.breaker.State().String()
}
