package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtotal(t *testing.T) {
	s := NewSession("s1")
	assert.Zero(t, s.Subtotal())

	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(menuItem("m1", "Ramen", 11.0))

	assert.InDelta(t, 16.98, s.Subtotal(), 1e-9)
}

func TestGrandTotalWithoutSavingsIsSubtotal(t *testing.T) {
	s := NewSession("s1")
	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(menuItem("m1", "Ramen", 11.0))

	assert.InDelta(t, s.Subtotal(), s.GrandTotal(), 1e-9)
}

func TestGrandTotalAfterReplacement(t *testing.T) {
	s := NewSession("s1")

	// three apples swapped for a cheaper pear
	s.Add(grocery("apple", "Apple", 1.00))
	s.Add(grocery("apple", "Apple", 1.00))
	s.Add(grocery("apple", "Apple", 1.00))

	require.NoError(t, s.Replace("apple", grocery("pear", "Pear", 0.80)))

	assert.InDelta(t, 2.40, s.Subtotal(), 1e-9)
	assert.InDelta(t, 3.00, s.OriginalTotal(), 1e-9)
	assert.InDelta(t, 0.60, s.Savings(), 1e-9)
	assert.InDelta(t, 2.40, s.GrandTotal(), 1e-9)
}

// With single-step replacements the accumulator path and the subtotal
// path must land on the same number.
func TestGrandTotalFormulasAgreeWithoutChaining(t *testing.T) {
	s := NewSession("s1")

	s.Add(grocery("g1", "Oats", 2.99))
	s.Add(grocery("g2", "Milk", 1.19))
	s.Add(grocery("g2", "Milk", 1.19))
	s.Add(menuItem("m1", "Ramen", 11.0))

	require.NoError(t, s.Replace("g1", grocery("a1", "Store Oats", 1.99)))
	require.NoError(t, s.Replace("g2", grocery("a2", "Oat Drink", 0.99)))

	assert.InDelta(t, s.Subtotal(), s.GrandTotal(), 1e-9)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "€0.00", FormatPrice(0))
	assert.Equal(t, "€2.40", FormatPrice(2.4))
	assert.Equal(t, "€1234.50", FormatPrice(1234.5))
}
