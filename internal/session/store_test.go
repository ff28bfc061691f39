package session

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/prajwalbharadwajbm/referralhub/internal/wizard"
)

func memoryConfig() StoreConfig {
	return StoreConfig{
		DefaultTTL:   time.Minute,
		MemorySize:   100,
		EnableMemory: true,
	}
}

func TestHybridStore_MemoryOnly(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, err := NewHybridStore(memoryConfig())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	s := New(now)
	s.Login("user@example.com", "tok")
	s.Wizard = wizard.New(now)
	s.Wizard.Next()
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.UserEmail)
	assert.Equal(t, wizard.StepReward, got.Wizard.Step)
	assert.False(t, got.IsNew())

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	stats := store.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 0.5, stats.HitRatio)
	assert.Equal(t, 1, stats.Sessions)
}

func TestHybridStore_ReturnsCopies(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, err := NewHybridStore(memoryConfig())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	s := New(now)
	s.SetCoupon("A")
	require.NoError(t, store.Save(ctx, s))

	first, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	first.SetCoupon("B")

	second, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", second.CouponCode)
}

func TestHybridStore_Delete(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, err := NewHybridStore(memoryConfig())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	s := New(now)
	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Delete(ctx, s.ID))

	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHybridStore_Expiry(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := memoryConfig()
	cfg.DefaultTTL = 20 * time.Millisecond
	cfg.CleanupInterval = 10 * time.Millisecond

	store, err := NewHybridStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	s := New(now)
	require.NoError(t, store.Save(ctx, s))

	assert.Eventually(t, func() bool {
		_, err := store.Get(ctx, s.ID)
		return err == ErrNotFound && store.Stats().Sessions == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHybridStore_MaxSize(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := memoryConfig()
	cfg.MemorySize = 3

	store, err := NewHybridStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	var ids []string
	for i := 0; i < 5; i++ {
		s := New(now)
		ids = append(ids, s.ID)
		require.NoError(t, store.Save(ctx, s))
		time.Sleep(time.Millisecond)
	}

	assert.Equal(t, 3, store.Stats().Sessions)
	_, err = store.Get(ctx, ids[0])
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, ids[4])
	assert.NoError(t, err)
}

func TestHybridStore_Concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, err := NewHybridStore(memoryConfig())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := New(now)
			assert.NoError(t, store.Save(ctx, s))
			_, err := store.Get(ctx, s.ID)
			assert.NoError(t, err)
			assert.NoError(t, store.Delete(ctx, s.ID))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(20), store.Stats().Hits)
}

func TestNewHybridStore_NothingEnabled(t *testing.T) {
	_, err := NewHybridStore(StoreConfig{})
	assert.Error(t, err)
}

func TestHybridStore_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, err := NewHybridStore(memoryConfig())
	require.NoError(t, err)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestHybridStore_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	store, err := NewHybridStore(StoreConfig{
		DefaultTTL:  time.Minute,
		RedisAddr:   addr,
		EnableRedis: true,
	})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.HealthCheck(ctx))

	s := New(now)
	s.AdminLogin("tok", "admin@example.com")
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
