package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/database"
	"atelier/internal/models"
)

func newTestCartService(t *testing.T) (*CartService, *database.Database) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return NewCartService(db), db
}

func createProduct(t *testing.T, db *database.Database, p models.Product) models.Product {
	t.Helper()
	require.NoError(t, db.CreateProduct(&p))
	return p
}

func TestAddMergesQuantities(t *testing.T) {
	cs, db := newTestCartService(t)
	p := createProduct(t, db, models.Product{Name: "Poster", Price: 10, IsAvailable: true})

	cart := Cart{}
	require.NoError(t, cs.Add(cart, p.ID, 2))
	require.NoError(t, cs.Add(cart, p.ID, 3))

	assert.Equal(t, 5, cs.Count(cart))
}

func TestAddRejectsUnavailableAndOverstock(t *testing.T) {
	cs, db := newTestCartService(t)
	hidden := createProduct(t, db, models.Product{Name: "Hidden", Price: 10, IsAvailable: false})
	limited := createProduct(t, db, models.Product{Name: "Limited", Price: 10, IsAvailable: true, StockQuantity: 2})

	cart := Cart{}
	assert.ErrorIs(t, cs.Add(cart, hidden.ID, 1), database.ErrProductUnavailable)
	assert.ErrorIs(t, cs.Add(cart, 9999, 1), database.ErrProductUnavailable)

	require.NoError(t, cs.Add(cart, limited.ID, 2))
	// The combined quantity exceeds stock, not just the increment.
	assert.ErrorIs(t, cs.Add(cart, limited.ID, 1), database.ErrInsufficientStock)
}

func TestUpdateOverwritesAndRemovesAtZero(t *testing.T) {
	cs, db := newTestCartService(t)
	p := createProduct(t, db, models.Product{Name: "Poster", Price: 10, IsAvailable: true})

	cart := Cart{}
	require.NoError(t, cs.Add(cart, p.ID, 2))
	require.NoError(t, cs.Update(cart, p.ID, 4))
	assert.Equal(t, 4, cs.Count(cart))

	require.NoError(t, cs.Update(cart, p.ID, 0))
	assert.Empty(t, cart)
}

func TestRemove(t *testing.T) {
	cs, db := newTestCartService(t)
	p := createProduct(t, db, models.Product{Name: "Poster", Price: 10, IsAvailable: true})

	cart := Cart{}
	require.NoError(t, cs.Add(cart, p.ID, 1))
	cs.Remove(cart, p.ID)
	assert.Empty(t, cart)
}

func TestLinesPricesFromLiveData(t *testing.T) {
	cs, db := newTestCartService(t)
	a := createProduct(t, db, models.Product{Name: "A", Price: 10.00, IsAvailable: true})
	b := createProduct(t, db, models.Product{Name: "B", Price: 25.00, IsAvailable: true})

	cart := Cart{}
	require.NoError(t, cs.Add(cart, a.ID, 2))
	require.NoError(t, cs.Add(cart, b.ID, 1))

	lines, total, err := cs.Lines(cart)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, 45.00, total)

	// A price change is reflected immediately, nothing is snapshotted.
	a.Price = 12.50
	require.NoError(t, db.UpdateProduct(&a))
	_, total, err = cs.Lines(cart)
	require.NoError(t, err)
	assert.Equal(t, 50.00, total)
}

func TestLinesSkipUnavailableItems(t *testing.T) {
	cs, db := newTestCartService(t)
	keep := createProduct(t, db, models.Product{Name: "Keep", Price: 10, IsAvailable: true})
	drop := createProduct(t, db, models.Product{Name: "Drop", Price: 99, IsAvailable: true})

	cart := Cart{}
	require.NoError(t, cs.Add(cart, keep.ID, 1))
	require.NoError(t, cs.Add(cart, drop.ID, 1))

	drop.IsAvailable = false
	require.NoError(t, db.UpdateProduct(&drop))

	lines, total, err := cs.Lines(cart)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Keep", lines[0].Product.Name)
	assert.Equal(t, 10.00, total)
	assert.Equal(t, 1, cs.Count(cart))
}
