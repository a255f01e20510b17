// Package registry provides read-only tool resolution for the dispatch layer.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/tool"
	"github.com/agenthub/agenthub/internal/port/database"
)

// ErrToolNotFound indicates the requested tool id does not exist.
var ErrToolNotFound = errors.New("tool not found")

// ErrNoActiveToolOfType indicates the agent has no active bound tool of the
// requested type.
var ErrNoActiveToolOfType = errors.New("no active tool of type")

// Cache is the read-through cache used for tool lookups.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Registry resolves tools by id or by (agent, type). All lookups are
// read-only; tool CRUD goes through the store directly and calls Invalidate.
type Registry struct {
	store    database.Store
	cache    Cache
	cacheTTL time.Duration
}

// New creates a Registry. cache may be nil to disable caching.
func New(store database.Store, cache Cache, cacheTTL time.Duration) *Registry {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &Registry{store: store, cache: cache, cacheTTL: cacheTTL}
}

// Resolve returns the tool with the given id.
func (r *Registry) Resolve(ctx context.Context, toolID int64) (*tool.Tool, error) {
	if t, ok := r.cachedTool(ctx, toolID); ok {
		return t, nil
	}

	t, err := r.store.GetTool(ctx, toolID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("resolve tool %d: %w", toolID, ErrToolNotFound)
		}
		return nil, fmt.Errorf("resolve tool %d: %w", toolID, err)
	}

	r.cacheTool(ctx, t)
	return t, nil
}

// ResolveByType returns the first active tool of the given type bound to the
// agent. Ties among active candidates break deterministically: lowest id wins.
func (r *Registry) ResolveByType(ctx context.Context, agentID int64, typ tool.Type) (*tool.Tool, error) {
	ag, err := r.store.GetAgent(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("resolve by type %s for agent %d: %w", typ, agentID, err)
	}

	var best *tool.Tool
	for i := range ag.Tools {
		t := &ag.Tools[i]
		if t.Type != typ || !t.IsActive {
			continue
		}
		if best == nil || t.ID < best.ID {
			best = t
		}
	}
	if best == nil {
		return nil, fmt.Errorf("agent %d has %w %s", agentID, ErrNoActiveToolOfType, typ)
	}
	return best, nil
}

// Invalidate drops the cached entry for a tool after a mutation.
func (r *Registry) Invalidate(ctx context.Context, toolID int64) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, cacheKey(toolID))
}

func (r *Registry) cachedTool(ctx context.Context, toolID int64) (*tool.Tool, bool) {
	if r.cache == nil {
		return nil, false
	}
	data, ok, err := r.cache.Get(ctx, cacheKey(toolID))
	if err != nil || !ok {
		return nil, false
	}
	var t tool.Tool
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (r *Registry) cacheTool(ctx context.Context, t *tool.Tool) {
	if r.cache == nil {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	_ = r.cache.Set(ctx, cacheKey(t.ID), data, r.cacheTTL)
}

func cacheKey(toolID int64) string {
	return fmt.Sprintf("tool:%d", toolID)
}
