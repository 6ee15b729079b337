// Package shutdown реализует корректную остановку сервиса: ожидание
// сигнала завершения и прогон хуков остановки в пределах общего тайм-аута.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Wait блокирует выполнение до получения SIGINT или SIGTERM, затем
// запускает все хуки параллельно с общим контекстом, ограниченным
// timeout. Хуки, не успевшие завершиться к истечению тайм-аута,
// бросаются: сервис останавливается в любом случае.
func Wait(timeout time.Duration, hooks ...func(context.Context) error) {
	waitCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	<-waitCtx.Done()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn func(context.Context) error) {
			defer wg.Done()
			_ = fn(ctx)
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
