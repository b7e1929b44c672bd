package lexicon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// LoaderFunc fetches catalog definitions from wherever they live.
type LoaderFunc func(ctx context.Context) (*Definitions, error)

// Snapshot is one published index with its provenance.
type Snapshot struct {
	Index       *Index
	Generation  uint64
	BuiltAt     time.Time
	Diagnostics []*LoadError
}

// Registry publishes the active index. Readers call Current and get an
// immutable snapshot; Reload builds a new index and swaps it in atomically.
type Registry struct {
	load   LoaderFunc
	logger *slog.Logger

	current atomic.Pointer[Snapshot]
	reload  sync.Mutex // serializes builders, never held by readers
}

// NewRegistry creates a registry with an empty index. Until the first
// successful Load, every query degrades to literal-only expansion.
func NewRegistry(load LoaderFunc, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{load: load, logger: logger}
	r.current.Store(&Snapshot{Index: Build(nil)})
	return r
}

// Load fetches the definitions, builds the index and publishes it. On
// error the previously published index stays active.
func (r *Registry) Load(ctx context.Context) error {
	r.reload.Lock()
	defer r.reload.Unlock()

	defs, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if defs == nil {
		defs = &Definitions{}
	}

	catalog, diags := Load(*defs)
	for _, d := range diags {
		r.logger.Warn("catalog entry skipped", "error", d.Error())
	}

	prev := r.current.Load()
	snap := &Snapshot{
		Index:       Build(catalog),
		Generation:  prev.Generation + 1,
		BuiltAt:     time.Now(),
		Diagnostics: diags,
	}
	r.current.Store(snap)

	st := snap.Index.Stats()
	r.logger.Info("alias index built",
		"generation", snap.Generation,
		"brands", st.Brands,
		"models", st.Models,
		"categories", st.Categories,
		"aliases", st.Aliases,
		"skipped", len(diags),
	)
	return nil
}

// Reload is Load under its operational name (SIGHUP, watcher).
func (r *Registry) Reload(ctx context.Context) error {
	return r.Load(ctx)
}

// Current returns the active snapshot.
func (r *Registry) Current() *Snapshot {
	return r.current.Load()
}

// Index returns the active index.
func (r *Registry) Index() *Index {
	return r.current.Load().Index
}
