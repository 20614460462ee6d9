package repository

import (
	"testing"

	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCreateAndFindBySession(t *testing.T) {
	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	repo := NewOrderRepository(database)

	order := &model.Order{
		SessionID:     "sess-1",
		Subtotal:      20.0,
		ServiceFee:    1.60,
		DeliveryFee:   0,
		Tip:           1.0,
		Savings:       2.0,
		Total:         20.60,
		PaymentMethod: "card",
		Items: []model.OrderItem{
			{
				ItemRef:           "pear",
				Name:              "Pear",
				Category:          "produce",
				Quantity:          2,
				UnitPrice:         0.80,
				OriginalUnitPrice: 1.00,
			},
		},
	}
	require.NoError(t, repo.Create(order))
	require.NotZero(t, order.ID)

	orders, err := repo.FindBySession("sess-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)

	item := orders[0].Items[0]
	assert.Equal(t, 0.80, item.UnitPrice)
	assert.Equal(t, 1.00, item.OriginalUnitPrice)

	none, err := repo.FindBySession("sess-2")
	require.NoError(t, err)
	assert.Empty(t, none)
}
