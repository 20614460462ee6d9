package repository

import (
	"testing"

	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGroceryRepoTest(t *testing.T) GroceryRepository {
	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })
	return NewGroceryRepository(database)
}

func TestGroceryBulkCreateAndFilter(t *testing.T) {
	repo := setupGroceryRepoTest(t)

	err := repo.BulkCreate([]model.GroceryProduct{
		{Name: "Rolled Oats", Category: "pantry", Price: 2.99},
		{Name: "Oat Drink", Category: "dairy", Price: 1.89},
		{Name: "Whole Milk", Category: "dairy", Price: 1.19},
	}, 2)
	require.NoError(t, err)

	dairy, err := repo.FindWithFilter(GroceryFilter{Category: "dairy"})
	require.NoError(t, err)
	assert.Len(t, dairy, 2)

	oats, err := repo.FindWithFilter(GroceryFilter{Search: "Oat"})
	require.NoError(t, err)
	assert.Len(t, oats, 2)

	categories, err := repo.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"dairy", "pantry"}, categories)
}

func TestGroceryFindByID(t *testing.T) {
	repo := setupGroceryRepoTest(t)

	product := &model.GroceryProduct{Name: "Rolled Oats", Category: "pantry", Price: 2.99}
	require.NoError(t, repo.Create(product))
	require.NotZero(t, product.ID)

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rolled Oats", found.Name)

	_, err = repo.FindByID(9999)
	assert.Error(t, err)
}
