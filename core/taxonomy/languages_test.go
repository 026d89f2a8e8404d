package taxonomy

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRegistry_Seed(t *testing.T) {
	ctx := context.Background()
	reg := NewGormRegistry(setupTestDB(t))

	added, err := reg.Seed(ctx, []string{"de", "fr"}, "en")
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	langs, err := reg.Languages(ctx)
	require.NoError(t, err)
	require.Len(t, langs, 3)
	assert.Equal(t, "en", langs[0].Langcode)
	assert.True(t, langs[0].IsDefault)
	assert.Equal(t, "English", langs[0].Name)
	assert.Equal(t, "German", langs[1].Name)

	// Seeding again adds nothing.
	added, err = reg.Seed(ctx, []string{"en", "de", "fr"}, "en")
	require.NoError(t, err)
	assert.Zero(t, added)
}

type countingRegistry struct {
	calls atomic.Int32
	err   error
}

func (r *countingRegistry) Languages(ctx context.Context) ([]Language, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return []Language{{Langcode: "en", IsDefault: true}, {Langcode: "de"}}, nil
}

func TestCachedRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("Caches until TTL expires", func(t *testing.T) {
		next := &countingRegistry{}
		clock := clockwork.NewFakeClock()
		reg := NewCachedRegistry(next, time.Minute, clock)

		for i := 0; i < 3; i++ {
			langs, err := reg.Languages(ctx)
			require.NoError(t, err)
			assert.Len(t, langs, 2)
		}
		assert.Equal(t, int32(1), next.calls.Load())

		clock.Advance(2 * time.Minute)
		_, err := reg.Languages(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(2), next.calls.Load())

		reg.Invalidate()
		_, err = reg.Languages(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(3), next.calls.Load())
	})

	t.Run("Zero TTL passes through", func(t *testing.T) {
		next := &countingRegistry{}
		reg := NewCachedRegistry(next, 0, nil)
		_, _ = reg.Languages(ctx)
		_, _ = reg.Languages(ctx)
		assert.Equal(t, int32(2), next.calls.Load())
	})

	t.Run("Errors are not cached", func(t *testing.T) {
		next := &countingRegistry{err: errors.New("db down")}
		reg := NewCachedRegistry(next, time.Minute, clockwork.NewFakeClock())
		_, err := reg.Languages(ctx)
		assert.Error(t, err)
		_, err = reg.Languages(ctx)
		assert.Error(t, err)
		assert.Equal(t, int32(2), next.calls.Load())
	})
}
