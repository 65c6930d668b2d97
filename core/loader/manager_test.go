package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"city-comparison/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testKind = table.Descriptor{
	KindName:       "test",
	ExactField:     "id",
	RegionField:    "state",
	NameField:      "city",
	MagnitudeField: "population",
}

type countingLoader struct {
	calls   atomic.Int32
	records []table.Record
	err     error
	release chan struct{}
}

func (l *countingLoader) Load(ctx context.Context, handle string) ([]table.Record, error) {
	l.calls.Add(1)
	if l.release != nil {
		<-l.release
	}
	return l.records, l.err
}

func sampleRecords() []table.Record {
	s := table.MustSchema("id", "state", "city", "population")
	return []table.Record{
		s.Record("1", "ca", "sunnyvale", 100),
		s.Record("2", "nv", "reno", 200),
	}
}

func TestManager_Register(t *testing.T) {
	m := NewManager(0, zap.NewNop())

	require.NoError(t, m.Register("b", Source{Kind: testKind, Loader: &countingLoader{}}))
	require.NoError(t, m.Register("a", Source{Kind: testKind, Loader: &countingLoader{}}))

	var cfgErr *table.ConfigurationError
	assert.ErrorAs(t, m.Register("a", Source{Kind: testKind, Loader: &countingLoader{}}), &cfgErr)
	assert.ErrorAs(t, m.Register("c", Source{Kind: testKind}), &cfgErr)
	assert.Equal(t, []string{"a", "b"}, m.Names())

	_, ok := m.Source("b")
	assert.True(t, ok)
}

func TestManager_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownSource", func(t *testing.T) {
		m := NewManager(0, nil)
		_, err := m.Open(ctx, "nope", "x.csv", "")
		var cfgErr *table.ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("Table", func(t *testing.T) {
		m := NewManager(0, nil)
		require.NoError(t, m.Register("test", Source{Kind: testKind, Loader: &countingLoader{records: sampleRecords()}}))

		tbl, err := m.Open(ctx, "test", "x.csv", "_t")
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, "_t", tbl.Suffix())
		assert.Equal(t, "test", tbl.Kind().Name())
	})

	t.Run("LoaderError", func(t *testing.T) {
		boom := errors.New("unreadable")
		m := NewManager(time.Minute, nil)
		require.NoError(t, m.Register("test", Source{Kind: testKind, Loader: &countingLoader{err: boom}}))

		_, err := m.Open(ctx, "test", "x.csv", "")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("MissingField", func(t *testing.T) {
		rec := table.NewRecord(table.F("id", "1"), table.F("state", "ca"))
		m := NewManager(0, nil)
		require.NoError(t, m.Register("test", Source{Kind: testKind, Loader: &countingLoader{records: []table.Record{rec}}}))

		_, err := m.Open(ctx, "test", "x.csv", "")
		var missing *table.MissingFieldError
		assert.ErrorAs(t, err, &missing)
	})
}

func TestManager_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("Disabled", func(t *testing.T) {
		l := &countingLoader{records: sampleRecords()}
		m := NewManager(0, nil)
		require.NoError(t, m.Register("test", Source{Kind: testKind, Loader: l}))

		for range 2 {
			_, err := m.Open(ctx, "test", "x.csv", "")
			require.NoError(t, err)
		}
		assert.EqualValues(t, 2, l.calls.Load())
	})

	t.Run("HitAndInvalidate", func(t *testing.T) {
		l := &countingLoader{records: sampleRecords()}
		m := NewManager(time.Minute, nil)
		require.NoError(t, m.Register("test", Source{Kind: testKind, Loader: l}))

		for range 3 {
			_, err := m.Open(ctx, "test", "x.csv", "")
			require.NoError(t, err)
		}
		assert.EqualValues(t, 1, l.calls.Load())

		// A different handle is a different entry.
		_, err := m.Open(ctx, "test", "y.csv", "")
		require.NoError(t, err)
		assert.EqualValues(t, 2, l.calls.Load())

		m.Invalidate("test", "x.csv")
		_, err = m.Open(ctx, "test", "x.csv", "")
		require.NoError(t, err)
		assert.EqualValues(t, 3, l.calls.Load())
	})

	t.Run("Expired", func(t *testing.T) {
		l := &countingLoader{records: sampleRecords()}
		m := NewManager(time.Minute, nil)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		m.now = func() time.Time { return now }
		require.NoError(t, m.Register("test", Source{Kind: testKind, Loader: l}))

		_, err := m.Open(ctx, "test", "x.csv", "")
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		_, err = m.Open(ctx, "test", "x.csv", "")
		require.NoError(t, err)
		assert.EqualValues(t, 2, l.calls.Load())
	})

	t.Run("ConcurrentOpensLoadOnce", func(t *testing.T) {
		l := &countingLoader{records: sampleRecords(), release: make(chan struct{})}
		m := NewManager(time.Hour, nil)
		require.NoError(t, m.Register("test", Source{Kind: testKind, Loader: l}))

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := m.Open(ctx, "test", "x.csv", "")
				errs <- err
			}()
		}

		require.Eventually(t, func() bool { return l.calls.Load() == 1 }, time.Second, time.Millisecond)
		close(l.release)
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
		assert.EqualValues(t, 1, l.calls.Load())
	})
}
