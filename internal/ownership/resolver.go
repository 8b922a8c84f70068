// Package ownership resolves which user owns a list entry. Each list kind
// registers its own lookup; the engine only sees ResolveOwner.
package ownership

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/oggyb/movie-social/internal/logger"
	"github.com/oggyb/movie-social/internal/reaction"
)

// ErrNoOwner is what a lookup returns when the entry does not exist.
var ErrNoOwner = errors.New("entry has no owner")

// OwnerLookup finds the owning user id of an entry of a single list kind.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, entryID uint64) (string, error)
}

// LookupFunc adapts a plain function to OwnerLookup.
type LookupFunc func(ctx context.Context, entryID uint64) (string, error)

// OwnerOf calls f.
func (f LookupFunc) OwnerOf(ctx context.Context, entryID uint64) (string, error) {
	return f(ctx, entryID)
}

// Registry maps entry kinds to their owner lookups. A kind with no registered
// lookup behaves exactly like one whose entries never exist.
type Registry struct {
	mu      sync.RWMutex
	lookups map[reaction.Kind]OwnerLookup
	logger  *slog.Logger
}

// NewRegistry returns an empty registry. A nil log uses the process logger.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = logger.L()
	}
	return &Registry{
		lookups: make(map[reaction.Kind]OwnerLookup),
		logger:  log,
	}
}

// Register installs (or replaces) the lookup for kind.
func (r *Registry) Register(kind reaction.Kind, lookup OwnerLookup) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lookup == nil {
		delete(r.lookups, kind)
		return r
	}
	r.lookups[kind] = lookup
	return r
}

// Registered reports whether kind has a lookup.
func (r *Registry) Registered(kind reaction.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.lookups[kind]
	return ok
}

// ResolveOwner returns the owner of (entryID, kind). Every failure, including
// a missing lookup or a broken list store, is reported as ErrEntryNotFound.
func (r *Registry) ResolveOwner(ctx context.Context, entryID uint64, kind reaction.Kind) (string, error) {
	r.mu.RLock()
	lookup, ok := r.lookups[kind]
	r.mu.RUnlock()

	if !ok {
		r.logger.Debug("no owner lookup registered", "kind", kind, "entry_id", entryID)
		return "", reaction.ErrEntryNotFound
	}

	owner, err := lookup.OwnerOf(ctx, entryID)
	if err != nil {
		if !errors.Is(err, ErrNoOwner) {
			r.logger.Warn("owner lookup failed", "kind", kind, "entry_id", entryID, "err", err)
		}
		return "", reaction.ErrEntryNotFound
	}
	if owner == "" {
		return "", reaction.ErrEntryNotFound
	}
	return owner, nil
}
