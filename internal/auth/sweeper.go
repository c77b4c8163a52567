package auth

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically deletes expired sessions so the table does not
// grow without bound.
type Sweeper struct {
	store    Store
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(st Store, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    st,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the periodic sweep in a background goroutine.
func (w *Sweeper) Start() {
	go w.run()
}

func (w *Sweeper) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep()
		case <-w.stop:
			return
		}
	}
}

// sweep failures are logged and retried on the next tick; an auth
// outage must never take the service down.
func (w *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	n, err := w.store.DeleteExpiredSessions(ctx, now)
	if err != nil {
		slog.Error("Session sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("Expired sessions removed", "count", n)
	}
}

// Stop gracefully stops the sweeper and waits for the current sweep
// to finish.
func (w *Sweeper) Stop() {
	close(w.stop)
	<-w.done
}
