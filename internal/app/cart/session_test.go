package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grocery(id, name string, price float64) Product {
	return Product{ID: id, Name: name, Category: "pantry", Price: price}
}

func menuItem(id, name string, price float64) Product {
	return Product{ID: id, Name: name, Price: price, RestaurantID: "r-1"}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	s := NewSession("s1")

	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(grocery("g1", "Oats", 2.99))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.ItemCount())
}

func TestAddRefreshesProductSnapshot(t *testing.T) {
	s := NewSession("s1")

	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(grocery("g1", "Organic Oats", 3.49))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Organic Oats", items[0].Name)
	assert.Equal(t, 3.49, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveDecrementsAndDeletes(t *testing.T) {
	s := NewSession("s1")

	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(grocery("g1", "Oats", 2.99))

	s.Remove("g1")
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 1, s.Items()[0].Quantity)

	s.Remove("g1")
	assert.Empty(t, s.Items())
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))

	s.Remove("missing")

	assert.Len(t, s.Items(), 1)
}

func TestDisplayOrderGroceriesFirst(t *testing.T) {
	s := NewSession("s1")

	s.Add(menuItem("m1", "Ramen", 11.0))
	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(menuItem("m2", "Gyoza", 6.5))
	s.Add(grocery("g2", "Milk", 1.19))

	items := s.Items()
	require.Len(t, items, 4)
	assert.Equal(t, []string{"g1", "g2", "m1", "m2"}, []string{
		items[0].ID, items[1].ID, items[2].ID, items[3].ID,
	})
}

func TestReplacePreservesQuantityAndPosition(t *testing.T) {
	s := NewSession("s1")

	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(grocery("g2", "Milk", 1.19))
	s.Add(grocery("g2", "Milk", 1.19))
	s.Add(grocery("g3", "Eggs", 3.29))

	require.NoError(t, s.Replace("g2", grocery("alt", "Oat Drink", 0.99)))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "alt", items[1].ID)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestReplaceFoldsIntoExistingLine(t *testing.T) {
	s := NewSession("s1")

	s.Add(grocery("g1", "Brand Oats", 2.99))
	s.Add(grocery("g2", "Store Oats", 1.99))
	s.Add(grocery("g2", "Store Oats", 1.99))

	// the recommended alternative is already in the cart
	require.NoError(t, s.Replace("g1", grocery("g2", "Store Oats", 1.99)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "g2", items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)

	// only the replaced unit counts toward savings
	assert.InDelta(t, 1.0, s.Savings(), 1e-9)
}

func TestReplaceMissingItem(t *testing.T) {
	s := NewSession("s1")

	err := s.Replace("missing", grocery("alt", "Oat Drink", 0.99))
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestReplaceDropsRecommendationsForOldID(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))

	snap := s.GenerationSnapshot()
	s.MergeRecommendations(snap, map[string][]Candidate{
		"g1": {{Product: grocery("alt", "Store Oats", 1.99)}},
	})

	require.NoError(t, s.Replace("g1", grocery("alt", "Store Oats", 1.99)))

	recs, cursors := s.Recommendations()
	assert.NotContains(t, recs, "g1")
	assert.NotContains(t, cursors, "g1")
}

func TestChainedReplacementSavings(t *testing.T) {
	s := NewSession("s1")

	s.Add(grocery("a", "Brand Coffee", 10.0))
	s.Add(grocery("a", "Brand Coffee", 10.0))

	require.NoError(t, s.Replace("a", grocery("b", "Store Coffee", 7.0)))
	require.NoError(t, s.Replace("b", grocery("c", "Bulk Coffee", 5.0)))

	// both steps compare against the first price (10), not the previous one
	assert.InDelta(t, 16.0, s.Savings(), 1e-9)
	assert.InDelta(t, 20.0, s.OriginalTotal(), 1e-9)
	assert.InDelta(t, 4.0, s.GrandTotal(), 1e-9)
}

func TestReplaceSameIDOverwrites(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))

	require.NoError(t, s.Replace("g1", grocery("g1", "Oats Promo", 1.99)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Oats Promo", items[0].Name)
	assert.InDelta(t, 1.0, s.Savings(), 1e-9)
}

func TestSnapshotOriginalPricesIsPopulateIfAbsent(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))

	s.SnapshotOriginalPrices()

	// price changes upstream; the ledger keeps the first seen price
	s.Add(grocery("g1", "Oats", 3.49))
	s.SnapshotOriginalPrices()

	// 2 units at (2.99 - 1.99) each, anchored to the first seen price
	require.NoError(t, s.Replace("g1", grocery("alt", "Store Oats", 1.99)))
	assert.InDelta(t, 2.0, s.Savings(), 1e-9)
}

func TestMergeRecommendationsResetsCursor(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))

	snap := s.GenerationSnapshot()
	s.MergeRecommendations(snap, map[string][]Candidate{
		"g1": {
			{Product: grocery("a1", "Alt One", 1.99)},
			{Product: grocery("a2", "Alt Two", 1.89)},
		},
	})

	_, err := s.Navigate("g1", "next")
	require.NoError(t, err)

	// a fresh merge for the same key snaps the cursor back to the start
	snap = s.GenerationSnapshot()
	s.MergeRecommendations(snap, map[string][]Candidate{
		"g1": {{Product: grocery("a3", "Alt Three", 1.79)}},
	})

	current, ok := s.CurrentCandidate("g1")
	require.True(t, ok)
	assert.Equal(t, "a3", current.ID)
}

func TestMergeDropsStaleResults(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))

	snap := s.GenerationSnapshot()

	// the item leaves the cart while the fetch is in flight
	s.Remove("g1")
	s.MergeRecommendations(snap, map[string][]Candidate{
		"g1": {{Product: grocery("a1", "Alt One", 1.99)}},
	})

	recs, _ := s.Recommendations()
	assert.NotContains(t, recs, "g1")
}

func TestMergeDoesNotAttachToReAddedItem(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))

	snap := s.GenerationSnapshot()

	// remove and re-add: same id, new incarnation
	s.Remove("g1")
	s.Add(grocery("g1", "Oats", 2.99))

	s.MergeRecommendations(snap, map[string][]Candidate{
		"g1": {{Product: grocery("a1", "Alt One", 1.99)}},
	})

	recs, _ := s.Recommendations()
	assert.NotContains(t, recs, "g1")
}

func TestMergeKeepsOtherKeysUntouched(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(grocery("g2", "Milk", 1.19))

	snap := s.GenerationSnapshot()
	s.MergeRecommendations(snap, map[string][]Candidate{
		"g1": {{Product: grocery("a1", "Alt One", 1.99)}},
	})
	s.MergeRecommendations(snap, map[string][]Candidate{
		"g2": {{Product: grocery("b1", "Alt Milk", 0.99)}},
	})

	recs, _ := s.Recommendations()
	assert.Contains(t, recs, "g1")
	assert.Contains(t, recs, "g2")
}

func TestNavigateClampsAtBothEnds(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))

	snap := s.GenerationSnapshot()
	s.MergeRecommendations(snap, map[string][]Candidate{
		"g1": {
			{Product: grocery("a1", "Alt One", 1.99)},
			{Product: grocery("a2", "Alt Two", 1.89)},
		},
	})

	cursor, err := s.Navigate("g1", "prev")
	require.NoError(t, err)
	assert.Equal(t, 0, cursor)

	cursor, err = s.Navigate("g1", "next")
	require.NoError(t, err)
	assert.Equal(t, 1, cursor)

	cursor, err = s.Navigate("g1", "next")
	require.NoError(t, err)
	assert.Equal(t, 1, cursor)
}

func TestNavigateErrors(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))

	_, err := s.Navigate("g1", "next")
	assert.ErrorIs(t, err, ErrNoRecommendations)

	snap := s.GenerationSnapshot()
	s.MergeRecommendations(snap, map[string][]Candidate{
		"g1": {{Product: grocery("a1", "Alt One", 1.99)}},
	})

	_, err = s.Navigate("g1", "sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestOptimizationStateTransitions(t *testing.T) {
	s := NewSession("s1")
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.BeginOptimization(ModeMoney))
	assert.Equal(t, StateLoading, s.State())
	assert.Equal(t, ModeMoney, s.Mode())

	assert.ErrorIs(t, s.BeginOptimization(ModeHealthy), ErrOptimizationRunning)

	s.FinishOptimization(false)
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.BeginOptimization(ModeMoney))
	s.FinishOptimization(true)
	assert.Equal(t, StateReady, s.State())
}

func TestClearResetsEverything(t *testing.T) {
	s := NewSession("s1")

	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(menuItem("m1", "Ramen", 11.0))
	require.NoError(t, s.BeginOptimization(ModeMoney))
	s.SnapshotOriginalPrices()
	s.FinishOptimization(true)
	require.NoError(t, s.Replace("g1", grocery("alt", "Store Oats", 1.99)))

	s.Clear()

	assert.Empty(t, s.Items())
	assert.Zero(t, s.Savings())
	assert.Zero(t, s.Subtotal())
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, Mode(""), s.Mode())
	recs, cursors := s.Recommendations()
	assert.Empty(t, recs)
	assert.Empty(t, cursors)
}
