package catalog

import (
	"context"
	"log/slog"
	"time"
)

// Watcher polls a catalog source and triggers a reload when its
// fingerprint changes.
type Watcher struct {
	reader   Reader
	location string
	reload   func(context.Context) error
	logger   *slog.Logger
	interval time.Duration

	last string
}

// NewWatcher creates a Watcher for the catalog at uri. reload is usually
// (*lexicon.Registry).Reload.
func NewWatcher(uri string, reload func(context.Context) error, logger *slog.Logger, interval time.Duration) (*Watcher, error) {
	r, loc, err := Open(uri)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{reader: r, location: loc, reload: reload, logger: logger, interval: interval}, nil
}

// Start records the current fingerprint then checks every interval until
// ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check compares the source fingerprint with the last one seen and reloads
// on change. The first observation only records the fingerprint. It
// reports whether a reload succeeded.
func (w *Watcher) Check(ctx context.Context) bool {
	fp, err := w.reader.Fingerprint(ctx, w.location)
	if err != nil {
		w.logger.Warn("catalog check failed", "source", w.reader.Scheme(), "location", w.location, "error", err)
		return false
	}
	if w.last == "" {
		w.last = fp
		return false
	}
	if fp == w.last {
		return false
	}

	if err := w.reload(ctx); err != nil {
		// Fingerprint not recorded: the next tick retries.
		w.logger.Error("catalog reload failed", "source", w.reader.Scheme(), "location", w.location, "error", err)
		return false
	}
	w.last = fp
	w.logger.Info("catalog reloaded", "source", w.reader.Scheme(), "location", w.location)
	return true
}
