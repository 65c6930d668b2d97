package loader

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"city-comparison/core/table"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source is a named dataset: the kind of its tables and how to read them.
type Source struct {
	Kind   table.Kind
	Loader table.Loader
}

type cachedLoad struct {
	records []table.Record
	built   time.Time
}

// Manager is the registry of sources. Loads are cached per (source, handle)
// for the configured TTL and concurrent loads of the same entry are collapsed.
type Manager struct {
	mu      sync.RWMutex
	sources map[string]Source
	cache   map[string]*cachedLoad
	sf      singleflight.Group

	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates an empty registry. A zero ttl disables caching.
func NewManager(ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sources: make(map[string]Source),
		cache:   make(map[string]*cachedLoad),
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Register adds a source. Names must be unique.
func (m *Manager) Register(name string, src Source) error {
	if src.Kind == nil || src.Loader == nil {
		return &table.ConfigurationError{Reason: fmt.Sprintf("source %q needs a kind and a loader", name)}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sources[name]; exists {
		return &table.ConfigurationError{Reason: fmt.Sprintf("source %q already registered", name)}
	}
	m.sources[name] = src
	return nil
}

// Names returns the registered source names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Source returns a registered source.
func (m *Manager) Source(name string) (Source, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.sources[name]
	return src, ok
}

// Open loads handle through the named source and returns it as a table tagged
// with suffix.
func (m *Manager) Open(ctx context.Context, name, handle, suffix string) (*table.Table, error) {
	src, ok := m.Source(name)
	if !ok {
		return nil, &table.ConfigurationError{Reason: fmt.Sprintf("unknown source %q", name)}
	}

	cached := table.LoaderFunc(func(ctx context.Context, handle string) ([]table.Record, error) {
		return m.load(ctx, name, src, handle)
	})
	return table.New(ctx, src.Kind, table.WithLoader(cached, handle), table.WithSuffix(suffix))
}

// Invalidate drops the cached records of one (source, handle) pair.
func (m *Manager) Invalidate(name, handle string) {
	m.mu.Lock()
	delete(m.cache, cacheKey(name, handle))
	m.mu.Unlock()
}

func cacheKey(name, handle string) string {
	return name + "|" + handle
}

func (m *Manager) fresh(key string) ([]table.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.cache[key]
	if !ok || m.ttl == 0 || m.now().Sub(entry.built) > m.ttl {
		return nil, false
	}
	return entry.records, true
}

func (m *Manager) load(ctx context.Context, name string, src Source, handle string) ([]table.Record, error) {
	key := cacheKey(name, handle)

	// Fast path: cached and fresh
	if records, ok := m.fresh(key); ok {
		m.logger.Debug("Source served from cache", zap.String("source", name), zap.String("handle", handle))
		return records, nil
	}

	// Slow path: load once even when several callers ask at the same time
	result, err, shared := m.sf.Do(key, func() (any, error) {
		if records, ok := m.fresh(key); ok {
			return records, nil
		}

		start := m.now()
		records, err := src.Loader.Load(ctx, handle)
		if err != nil {
			return nil, err
		}
		m.logger.Info("Source loaded",
			zap.String("source", name),
			zap.String("handle", handle),
			zap.Int("rows", len(records)),
			zap.Duration("took", m.now().Sub(start)),
		)

		if m.ttl > 0 {
			m.mu.Lock()
			m.cache[key] = &cachedLoad{records: records, built: m.now()}
			m.mu.Unlock()
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		m.logger.Debug("Source load shared", zap.String("source", name), zap.String("handle", handle))
	}
	return result.([]table.Record), nil
}
