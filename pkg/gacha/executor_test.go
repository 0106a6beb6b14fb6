package gacha

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	profiles map[uuid.UUID]*Profile
	items    map[uuid.UUID][]Item
}

func (f *fakeCatalog) GachaByID(_ context.Context, id uuid.UUID) (*Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, ErrGachaNotFound
	}
	return profile, nil
}

func (f *fakeCatalog) ItemsByGachaID(_ context.Context, id uuid.UUID) ([]Item, error) {
	return f.items[id], nil
}

// fakeHistory commits staged records only when the whole batch callback
// succeeds, mirroring the transactional store.
type fakeHistory struct {
	records []Record
	failAt  int // fail the n-th insert (1-based), 0 never fails
}

func (f *fakeHistory) SaveDraws(_ context.Context, fn func(w RollWriter) error) error {
	writer := &fakeWriter{failAt: f.failAt}
	if err := fn(writer); err != nil {
		return err
	}
	f.records = append(f.records, writer.staged...)
	return nil
}

type fakeWriter struct {
	staged []Record
	failAt int
}

func (w *fakeWriter) Insert(rec Record) error {
	if w.failAt > 0 && len(w.staged)+1 == w.failAt {
		return errors.New("insert failed")
	}
	w.staged = append(w.staged, rec)
	return nil
}

func newTestFixture(items []Item, rates map[string]float64) (*fakeCatalog, *fakeHistory, uuid.UUID) {
	gachaID := uuid.New()
	catalog := &fakeCatalog{
		profiles: map[uuid.UUID]*Profile{
			gachaID: {ID: gachaID, Title: "test gacha", Rates: rates},
		},
		items: map[uuid.UUID][]Item{gachaID: items},
	}
	return catalog, &fakeHistory{}, gachaID
}

func TestRollReturnsFullBatch(t *testing.T) {
	a := testItem("a", "N", 1)
	b := testItem("b", "R", 3)
	catalog, history, gachaID := newTestFixture([]Item{a, b}, nil)
	executor := NewExecutor(catalog, history, NewSeededSource(1), nil)
	userID := uuid.New()

	results, err := executor.Roll(context.Background(), gachaID, userID, 4)

	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Len(t, history.records, 4)
	for i, res := range results {
		assert.Contains(t, []uuid.UUID{a.ID, b.ID}, res.ItemID)
		assert.Equal(t, gachaID, res.GachaID)
		// the i-th record matches the i-th result
		assert.Equal(t, res.ItemID, history.records[i].ItemID)
		assert.Equal(t, res.Rarity, history.records[i].Rarity)
		assert.Equal(t, userID, history.records[i].UserID)
	}
}

func TestRollClampsCount(t *testing.T) {
	catalog, history, gachaID := newTestFixture([]Item{testItem("a", "N", 1)}, nil)
	executor := NewExecutor(catalog, history, NewSeededSource(1), nil)

	results, err := executor.Roll(context.Background(), gachaID, uuid.New(), 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = executor.Roll(context.Background(), gachaID, uuid.New(), 500)
	require.NoError(t, err)
	assert.Len(t, results, 100)
}

func TestRollUnknownGacha(t *testing.T) {
	catalog, history, _ := newTestFixture([]Item{testItem("a", "N", 1)}, nil)
	executor := NewExecutor(catalog, history, NewSeededSource(1), nil)

	_, err := executor.Roll(context.Background(), uuid.New(), uuid.New(), 1)

	assert.ErrorIs(t, err, ErrGachaNotFound)
	assert.Empty(t, history.records)
}

func TestRollNoItems(t *testing.T) {
	catalog, history, gachaID := newTestFixture(nil, nil)
	executor := NewExecutor(catalog, history, NewSeededSource(1), nil)

	_, err := executor.Roll(context.Background(), gachaID, uuid.New(), 3)

	assert.ErrorIs(t, err, ErrNoItemsAvailable)
	assert.Empty(t, history.records)
}

func TestRollAtomicRollback(t *testing.T) {
	catalog, history, gachaID := newTestFixture([]Item{testItem("a", "N", 1)}, nil)
	history.failAt = 3
	executor := NewExecutor(catalog, history, NewSeededSource(1), nil)

	results, err := executor.Roll(context.Background(), gachaID, uuid.New(), 5)

	assert.ErrorIs(t, err, ErrRollPersist)
	assert.Nil(t, results)
	// the failed batch left nothing behind
	assert.Empty(t, history.records)
}

func TestRollWeightRatioAcrossBatches(t *testing.T) {
	light := testItem("light", "N", 1)
	heavy := testItem("heavy", "R", 3)
	catalog, history, gachaID := newTestFixture([]Item{light, heavy}, nil)
	executor := NewExecutor(catalog, history, NewSeededSource(21), nil)

	heavyCount, total := 0, 0
	for batch := 0; batch < 100; batch++ {
		results, err := executor.Roll(context.Background(), gachaID, uuid.New(), 100)
		require.NoError(t, err)
		for _, res := range results {
			total++
			if res.ItemID == heavy.ID {
				heavyCount++
			}
		}
	}

	require.Equal(t, 10000, total)
	assert.InDelta(t, 0.75, float64(heavyCount)/float64(total), 0.02)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	rates := map[string]float64{"N": 100, "R": 0, "SR": 0, "SSR": 0}
	items := []Item{
		testItem("n1", "N", 1),
		testItem("r1", "R", 1),
		testItem("sr1", "SR", 1),
		testItem("ssr1", "SSR", 1),
	}
	catalog, history, gachaID := newTestFixture(items, rates)
	executor := NewExecutor(catalog, history, NewSeededSource(5), nil)

	results, err := executor.Preview(context.Background(), gachaID, 50)

	require.NoError(t, err)
	require.Len(t, results, 50)
	for _, res := range results {
		assert.Equal(t, "N", res.Rarity)
	}
	assert.Empty(t, history.records)
}

func TestPreviewNoItems(t *testing.T) {
	catalog, history, gachaID := newTestFixture(nil, map[string]float64{"N": 100})
	executor := NewExecutor(catalog, history, NewSeededSource(5), nil)

	_, err := executor.Preview(context.Background(), gachaID, 1)

	assert.ErrorIs(t, err, ErrNoItemsAvailable)
}
