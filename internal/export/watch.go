package export

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"taskware/pkg/logx"
)

// Watch re-runs regen whenever one of the watched paths changes, until ctx is
// done. Editors and SQLite checkpoints produce event bursts, so regeneration
// is paced by a rate limiter rather than fired per event; pending events that
// arrive during a regeneration are drained and coalesced into the next one.
func Watch(ctx context.Context, log logx.Logger, paths []string, minInterval time.Duration, regen func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return err
		}
	}
	if minInterval <= 0 {
		minInterval = time.Second
	}
	limiter := rate.NewLimiter(rate.Every(minInterval), 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			drain(w.Events)
			log.Debug("change detected, regenerating", logx.String("path", ev.Name))
			if err := regen(ctx); err != nil {
				log.Error("regeneration failed", logx.Err(err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", logx.Err(err))
		}
	}
}

func drain(events chan fsnotify.Event) {
	for {
		select {
		case <-events:
		default:
			return
		}
	}
}
