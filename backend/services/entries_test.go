package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryUpsertClampsAndTotals(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	svc := newTestServices(t, clk).Entries

	entry, created, err := svc.SubmitToday(ctx, 1, EntryInput{SkillPoints: 5, CareerPoints: 5, ProjectPoints: 5})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "2025-06-15", entry.EntryDate)
	assert.Equal(t, 3, entry.SkillPoints)
	assert.Equal(t, 3, entry.CareerPoints)
	assert.Equal(t, 3, entry.ProjectPoints)
	assert.Equal(t, 9, entry.TotalScore)
	assert.Equal(t, "", entry.Notes)

	entry, _, err = svc.Upsert(ctx, 1, "2025-06-14", EntryInput{SkillPoints: -2, CareerPoints: 1, ProjectPoints: 2, Notes: "late"})
	require.NoError(t, err)
	assert.Equal(t, 0, entry.SkillPoints)
	assert.Equal(t, 3, entry.TotalScore)
	assert.Equal(t, "late", entry.Notes)
}

func TestEntryUpsertKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	svc := newTestServices(t, clk).Entries

	first, created, err := svc.SubmitToday(ctx, 1, EntryInput{SkillPoints: 1, Notes: "morning"})
	require.NoError(t, err)
	require.True(t, created)

	clk.Set(clk.Now().Add(5 * time.Hour))
	second, created, err := svc.SubmitToday(ctx, 1, EntryInput{SkillPoints: 3, CareerPoints: 2})
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.True(t, second.UpdatedAt.After(second.CreatedAt))
	assert.Equal(t, 5, second.TotalScore)
	assert.Equal(t, "", second.Notes)

	all, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEntryIDsAreSequentialAcrossUsers(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	svc := newTestServices(t, clk).Entries

	a, _, err := svc.SubmitToday(ctx, 1, EntryInput{})
	require.NoError(t, err)
	b, _, err := svc.SubmitToday(ctx, 2, EntryInput{})
	require.NoError(t, err)
	assert.Equal(t, uint(1), a.ID)
	assert.Equal(t, uint(2), b.ID)
}

func TestEntryUpsertRejectsBadDate(t *testing.T) {
	clk := &clock{now: time.Now()}
	svc := newTestServices(t, clk).Entries

	_, _, err := svc.Upsert(context.Background(), 1, "15/06/2025", EntryInput{})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestEntryConcurrentUpsertSameDay(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	svc := newTestServices(t, clk).Entries

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := svc.SubmitToday(ctx, 1, EntryInput{SkillPoints: i % 4})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, uint(1), all[0].ID)
}

func TestEntryTodayAndGet(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	svc := newTestServices(t, clk).Entries

	_, err := svc.Today(ctx, 1)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, _, err = svc.SubmitToday(ctx, 1, EntryInput{ProjectPoints: 2})
	require.NoError(t, err)

	today, err := svc.Today(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, today.ProjectPoints)

	_, err = svc.Get(ctx, 2, "2025-06-15")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestEntryStats(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 1, 4, 10, 0, 0, 0, time.UTC)}
	svc := newTestServices(t, clk).Entries

	empty, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalEntries)
	assert.Zero(t, empty.AverageScore)

	for _, d := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		_, _, err := svc.Upsert(ctx, 1, d, EntryInput{SkillPoints: 3, CareerPoints: 1})
		require.NoError(t, err)
	}

	got, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalEntries)
	assert.Equal(t, 12, got.TotalScore)
	assert.Equal(t, 4.0, got.AverageScore)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 3, got.LongestStreak)
}

func TestEntryStatsCacheIsInvalidatedOnWrite(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 1, 4, 10, 0, 0, 0, time.UTC)}
	mc := newMapCache()
	svc := newTestServices(t, clk, WithCache(mc)).Entries

	before, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, before.TotalEntries)
	assert.Equal(t, 1, mc.Len())

	_, _, err = svc.SubmitToday(ctx, 1, EntryInput{SkillPoints: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, mc.Len())

	after, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, after.TotalEntries)
}

// writeDuringSet runs a write for the same user right before the first value
// is stored, the way a concurrent request can slip in between a read's
// compute and its cache fill.
type writeDuringSet struct {
	*mapCache
	once  sync.Once
	write func()
}

func (w *writeDuringSet) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	w.once.Do(w.write)
	return w.mapCache.Set(ctx, key, value, ttl)
}

func TestEntryStatsNotStaleAfterInterleavedWrite(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 1, 4, 10, 0, 0, 0, time.UTC)}
	wc := &writeDuringSet{mapCache: newMapCache()}
	svc := newTestServices(t, clk, WithCache(wc)).Entries
	wc.write = func() {
		_, _, err := svc.SubmitToday(ctx, 1, EntryInput{SkillPoints: 2})
		require.NoError(t, err)
	}

	before, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, before.TotalEntries)

	after, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, after.TotalEntries)
	assert.Equal(t, 2, after.TotalScore)
}

func TestHabitWeeklyStatsNotStaleAfterInterleavedWrite(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)}
	wc := &writeDuringSet{mapCache: newMapCache()}
	svc := newTestServices(t, clk, WithCache(wc)).Habits
	wc.write = func() {
		_, err := svc.SetDayHabits(ctx, 1, "2025-06-11", []bool{true})
		require.NoError(t, err)
	}

	_, err := svc.WeeklyStats(ctx, 1)
	require.NoError(t, err)

	after, err := svc.WeeklyStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, after.TotalScore)
}
