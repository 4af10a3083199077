package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spicevault/traders-billing/internal/inventory/domain"
	"github.com/spicevault/traders-billing/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func openStore(t *testing.T) *storage.SnapshotStore {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func product(id, name, quantity string) *domain.Product {
	return &domain.Product{ID: id, Name: name, Unit: "KG", Quantity: dec(quantity)}
}

func TestSnapshotProductRepository_RoundTrip(t *testing.T) {
	ctx := context.TODO()
	store := openStore(t)

	repo, err := NewSnapshotProductRepository(store)
	require.NoError(t, err)

	require.NoError(t, repo.InsertProduct(ctx, product("p1", "Turmeric", "10")))
	require.NoError(t, repo.InsertProduct(ctx, product("p2", "Cumin", "5")))

	// A fresh repository over the same store sees the persisted snapshot.
	reloaded, err := NewSnapshotProductRepository(store)
	require.NoError(t, err)

	products, err := reloaded.ListProducts(ctx)
	assert.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Turmeric", products[0].Name, "insertion order survives reload")
	assert.Equal(t, "Cumin", products[1].Name)
	assert.True(t, products[0].Quantity.Equal(dec("10")))
}

func TestSnapshotProductRepository_Delete(t *testing.T) {
	ctx := context.TODO()
	store := openStore(t)

	repo, err := NewSnapshotProductRepository(store)
	require.NoError(t, err)
	require.NoError(t, repo.InsertProduct(ctx, product("p1", "Turmeric", "10")))

	assert.NoError(t, repo.DeleteProduct(ctx, "p1"))

	_, err = repo.GetProductByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Deleting a product that does not exist is a no-op, not an error.
	assert.NoError(t, repo.DeleteProduct(ctx, "p1"))
}

func TestSnapshotProductRepository_ApplyDecrements(t *testing.T) {
	ctx := context.TODO()
	store := openStore(t)

	repo, err := NewSnapshotProductRepository(store)
	require.NoError(t, err)
	require.NoError(t, repo.InsertProduct(ctx, product("p1", "Turmeric", "10")))
	require.NoError(t, repo.InsertProduct(ctx, product("p2", "Cumin", "5")))

	t.Run("All lines applied together", func(t *testing.T) {
		err := repo.ApplyDecrements(ctx, map[string]decimal.Decimal{
			"p1": dec("3"),
			"p2": dec("5"),
		})
		assert.NoError(t, err)

		p1, _ := repo.GetProductByID(ctx, "p1")
		p2, _ := repo.GetProductByID(ctx, "p2")
		assert.True(t, p1.Quantity.Equal(dec("7")))
		assert.True(t, p2.Quantity.Equal(decimal.Zero), "stock may reach exactly zero")
	})

	t.Run("Any shortage leaves everything unchanged", func(t *testing.T) {
		err := repo.ApplyDecrements(ctx, map[string]decimal.Decimal{
			"p1": dec("2"),
			"p2": dec("1"), // only 0 left
		})
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Contains(t, err.Error(), "Cumin")

		p1, _ := repo.GetProductByID(ctx, "p1")
		assert.True(t, p1.Quantity.Equal(dec("7")), "no partial decrement on failure")
	})

	t.Run("Unknown product fails the whole batch", func(t *testing.T) {
		err := repo.ApplyDecrements(ctx, map[string]decimal.Decimal{
			"p1":      dec("1"),
			"missing": dec("1"),
		})
		assert.ErrorIs(t, err, ErrProductNotFound)

		p1, _ := repo.GetProductByID(ctx, "p1")
		assert.True(t, p1.Quantity.Equal(dec("7")))
	})
}
