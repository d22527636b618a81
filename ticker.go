package dieroller

import (
	"context"
	"time"
)

// RunTicker calls w.Update every interval until ctx is done. It returns
// ctx.Err().
func RunTicker(ctx context.Context, w *World, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.Update()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Update()
		}
	}
}
