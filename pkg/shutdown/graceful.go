// Package shutdown предоставляет функциональность для корректного завершения приложения
// при получении сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ErrTimeout возвращается Run, если хуки не уложились в отведенное время.
var ErrTimeout = errors.New("shutdown hooks did not finish before timeout")

// Hook освобождает ресурс при завершении.
type Hook func(context.Context) error

// NotifyContext возвращает контекст, отменяемый по SIGINT или SIGTERM.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Run параллельно выполняет все хуки в рамках заданного timeout
// и возвращает объединенные ошибки хуков.
func Run(timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		wgp  sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		wgp.Add(1)
		go func(fn Hook) {
			defer wgp.Done()
			if err := fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
		return errors.Join(errs...)
	case <-ctx.Done():
		return ErrTimeout
	}
}

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// затем выполняет все хуки в рамках заданного timeout.
func Wait(timeout time.Duration, hooks ...Hook) error {
	ctx, stop := NotifyContext(context.Background())
	defer stop()
	<-ctx.Done()

	return Run(timeout, hooks...)
}
