package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/questionbase/questionbase/api/internal/domain"
	"github.com/questionbase/questionbase/api/internal/pkg/circuitbreaker"
	"github.com/questionbase/questionbase/api/internal/pkg/metrics"
)

// GuardedBackend routes every call to a Backend through a circuit breaker.
// While the breaker is open, calls fail with circuitbreaker.ErrCircuitOpen
// without reaching the store.
type GuardedBackend struct {
	next    Backend
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuardedBackend wraps next. State changes are logged and exported as
// the questionbase_backend_breaker_state gauge labelled with cfg.Name.
func NewGuardedBackend(next Backend, cfg circuitbreaker.Config, logger *zap.Logger) *GuardedBackend {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		metrics.SetBreakerState(name, int(to))
		logger.Warn("backend circuit breaker state changed",
			zap.String("backend", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	metrics.SetBreakerState(cfg.Name, int(circuitbreaker.StateClosed))

	return &GuardedBackend{
		next:    next,
		breaker: circuitbreaker.New(cfg),
	}
}

// State returns the breaker state
func (g *GuardedBackend) State() circuitbreaker.State {
	return g.breaker.State()
}

func (g *GuardedBackend) LoadAll(ctx context.Context) (map[domain.QuestionID]domain.Question, error) {
	return circuitbreaker.ExecuteWithResult(g.breaker, ctx, func() (map[domain.QuestionID]domain.Question, error) {
		return g.next.LoadAll(ctx)
	})
}

func (g *GuardedBackend) PersistInsert(ctx context.Context, q domain.Question) error {
	return g.breaker.Execute(ctx, func() error {
		return g.next.PersistInsert(ctx, q)
	})
}

func (g *GuardedBackend) PersistUpdate(ctx context.Context, id domain.QuestionID, q domain.Question) error {
	return g.breaker.Execute(ctx, func() error {
		return g.next.PersistUpdate(ctx, id, q)
	})
}

func (g *GuardedBackend) PersistDelete(ctx context.Context, id domain.QuestionID) error {
	return g.breaker.Execute(ctx, func() error {
		return g.next.PersistDelete(ctx, id)
	})
}

func (g *GuardedBackend) Ping(ctx context.Context) error {
	return g.breaker.Execute(ctx, func() error {
		return g.next.Ping(ctx)
	})
}
