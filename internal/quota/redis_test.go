package quota

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T, limit int64) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	r, err := NewRedis(context.Background(), "redis://"+mr.Addr(), "t:", limit)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	return r, mr
}

func TestRedis_AllowUpToLimit(t *testing.T) {
	t.Parallel()

	r, _ := newRedis(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, ok, err := r.AllowNewComment(ctx, "owner")
		require.NoError(t, err)
		require.True(t, ok)
	}

	_, ok, err := r.AllowNewComment(ctx, "owner")
	require.NoError(t, err)
	require.False(t, ok)

	// Отказ не занимает место.
	used, err := r.Used(ctx, "owner")
	require.NoError(t, err)
	require.EqualValues(t, 2, used)

	// Другой владелец считается отдельно.
	_, ok, err = r.AllowNewComment(ctx, "other")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedis_Release(t *testing.T) {
	t.Parallel()

	r, _ := newRedis(t, 1)
	ctx := context.Background()

	slot, ok, err := r.AllowNewComment(ctx, "owner")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "owner", slot.OwnerID)

	require.NoError(t, r.Release(ctx, slot))

	_, ok, err = r.AllowNewComment(ctx, "owner")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedis_MonthRollover(t *testing.T) {
	t.Parallel()

	r, mr := newRedis(t, 1)
	ctx := context.Background()

	now := time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	mr.SetTime(now)

	_, ok, err := r.AllowNewComment(ctx, "owner")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, mr.Exists("t:quota:owner:2026-01"))
	require.Positive(t, mr.TTL("t:quota:owner:2026-01"))

	_, ok, err = r.AllowNewComment(ctx, "owner")
	require.NoError(t, err)
	require.False(t, ok)

	now = now.Add(2 * time.Hour)
	mr.SetTime(now)

	_, ok, err = r.AllowNewComment(ctx, "owner")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, mr.Exists("t:quota:owner:2026-02"))
}

// Резерв, взятый в конце месяца, возвращается в тот же месяц,
// даже если создание упало уже в следующем.
func TestRedis_ReleaseAcrossMonthBoundary(t *testing.T) {
	t.Parallel()

	r, mr := newRedis(t, 1)
	ctx := context.Background()

	now := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
	r.now = func() time.Time { return now }
	mr.SetTime(now)

	slot, ok, err := r.AllowNewComment(ctx, "owner")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2026-03", slot.Period)

	now = now.Add(2 * time.Second)
	mr.SetTime(now)

	require.NoError(t, r.Release(ctx, slot))

	march, err := mr.Get("t:quota:owner:2026-03")
	require.NoError(t, err)
	require.Equal(t, "0", march)
	require.False(t, mr.Exists("t:quota:owner:2026-04"))

	used, err := r.Used(ctx, "owner")
	require.NoError(t, err)
	require.Zero(t, used)
}

// Release на отсутствующий или нулевой счётчик не уводит его в минус.
func TestRedis_ReleaseNeverNegative(t *testing.T) {
	t.Parallel()

	r, mr := newRedis(t, 1)
	ctx := context.Background()

	slot := Slot{OwnerID: "owner", Period: "2026-05"}
	require.NoError(t, r.Release(ctx, slot))
	require.False(t, mr.Exists("t:quota:owner:2026-05"))

	require.NoError(t, mr.Set("t:quota:owner:2026-05", "0"))
	require.NoError(t, r.Release(ctx, slot))

	v, err := mr.Get("t:quota:owner:2026-05")
	require.NoError(t, err)
	require.Equal(t, "0", v)

	// Пустой слот (квота не бралась) - no-op.
	require.NoError(t, r.Release(ctx, Slot{}))
}

func TestRedis_Unavailable(t *testing.T) {
	t.Parallel()

	r, mr := newRedis(t, 1)
	mr.Close()

	_, _, err := r.AllowNewComment(context.Background(), "owner")
	require.Error(t, err)
}

func TestNewRedis_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedis(context.Background(), "not-a-url", "", 1)
	require.Error(t, err)
}

func TestMonthEnd(t *testing.T) {
	t.Parallel()

	require.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		monthEnd(time.Date(2026, time.December, 15, 10, 0, 0, 0, time.UTC)))
}

func TestUnlimited(t *testing.T) {
	t.Parallel()

	slot, ok, err := Unlimited{}.AllowNewComment(context.Background(), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, Unlimited{}.Release(context.Background(), slot))
}
