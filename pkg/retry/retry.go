// Package retry повторяет операцию с экспоненциальной задержкой между попытками.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskmanager/pkg/logger"
)

// Константы для логирования.
const (
	LogRetryAttempt     = "retry attempt"
	LogRetrySuccess     = "retry succeeded"
	LogRetryMaxAttempts = "retry max attempts reached"
)

// ErrCanceled возвращается, когда контекст отменен во время ожидания следующей попытки.
var ErrCanceled = errors.New("context was canceled during retry")

// Policy описывает число попыток и рост задержки.
type Policy struct {
	// Attempts - число попыток, включая первую. Значение меньше 1 означает одну попытку.
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Factor         float64
	// Retryable решает, стоит ли повторять операцию после ошибки. nil - повторять все, кроме отмены контекста.
	Retryable func(error) bool
}

// DefaultPolicy возвращает политику по умолчанию.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:       3,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		Factor:         2,
	}
}

func (p Policy) retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if p.Retryable == nil {
		return true
	}
	return p.Retryable(err)
}

// Do выполняет op, пока она не завершится успешно, не исчерпает попытки
// или не вернет ошибку, которую политика не повторяет.
func Do(ctx context.Context, name string, p Policy, op func(context.Context) error) error {
	log := logger.Log(ctx).With(zap.String("retry", name))

	attempts := max(p.Attempts, 1)
	backoff := p.InitialBackoff

	var err error
	for attempt := 1; ; attempt++ {
		if err = op(ctx); err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRetrySuccess, zap.Int("attempts", attempt))
			}
			return nil
		}

		if !p.retryable(err) {
			return err
		}
		if attempt >= attempts {
			log.Warn(ctx, LogRetryMaxAttempts, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Info(ctx, LogRetryAttempt, zap.Int("attempt", attempt), zap.Duration("backoff", backoff), zap.Error(err))

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * p.Factor)
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}
}
