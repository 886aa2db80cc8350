package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testProduct() *Product {
	return &Product{
		ID:        primitive.NewObjectID(),
		Name:      "Hooded Jacket",
		BasePrice: 100,
		Variants: []Variant{
			{
				ID:    primitive.NewObjectID(),
				Color: "black",
				Sizes: []Size{
					{ID: primitive.NewObjectID(), Name: "M", Stock: 5},
					{ID: primitive.NewObjectID(), Name: "L", Stock: 3},
				},
			},
			{
				ID:    primitive.NewObjectID(),
				Color: "red",
				Sizes: []Size{
					{ID: primitive.NewObjectID(), Name: "M", Stock: 2},
				},
			},
		},
	}
}

func TestAdjustStock_Success(t *testing.T) {
	p := testProduct()
	colorID := p.Variants[0].ID
	sizeID := p.Variants[0].Sizes[0].ID

	err := p.AdjustStock(colorID, sizeID, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Variants[0].Sizes[0].Stock)
	assert.Equal(t, 3, p.Sold)
}

func TestAdjustStock_InsufficientStock(t *testing.T) {
	p := testProduct()
	colorID := p.Variants[0].ID
	sizeID := p.Variants[0].Sizes[1].ID

	err := p.AdjustStock(colorID, sizeID, 4)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// No partial decrement.
	assert.Equal(t, 3, p.Variants[0].Sizes[1].Stock)
	assert.Equal(t, 0, p.Sold)
}

func TestAdjustStock_UnknownIDs(t *testing.T) {
	p := testProduct()

	err := p.AdjustStock(primitive.NewObjectID(), p.Variants[0].Sizes[0].ID, 1)
	require.ErrorIs(t, err, ErrVariantNotFound)

	err = p.AdjustStock(p.Variants[0].ID, primitive.NewObjectID(), 1)
	require.ErrorIs(t, err, ErrSizeNotFound)

	assert.Equal(t, 0, p.Sold)
	assert.Equal(t, 5, p.Variants[0].Sizes[0].Stock)
}

func TestRecomputeStock_SumsAllVariantSizes(t *testing.T) {
	p := testProduct()
	p.Stock = 999

	p.RecomputeStock()
	assert.Equal(t, 10, p.Stock)

	require.NoError(t, p.AdjustStock(p.Variants[1].ID, p.Variants[1].Sizes[0].ID, 2))
	p.RecomputeStock()
	assert.Equal(t, 8, p.Stock)
}

func TestRecomputeStock_NoVariantsKeepsTopLevelStock(t *testing.T) {
	p := &Product{Stock: 42}
	p.RecomputeStock()
	assert.Equal(t, 42, p.Stock)
}

func TestCurrentPrice_ActiveDiscount(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	p := &Product{BasePrice: 100, DiscountPercentage: 20, DiscountEndDate: &future}

	assert.True(t, p.IsOnSale(now))
	assert.Equal(t, 80.00, p.CurrentPrice(now))
}

func TestCurrentPrice_ExpiredDiscount(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	p := &Product{BasePrice: 100, DiscountPercentage: 20, DiscountEndDate: &past}

	assert.False(t, p.IsOnSale(now))
	assert.Equal(t, 100.00, p.CurrentPrice(now))
}

func TestCurrentPrice_NoEndDate(t *testing.T) {
	now := time.Now()
	p := &Product{BasePrice: 59.99, DiscountPercentage: 15}

	assert.True(t, p.IsOnSale(now))
	assert.Equal(t, 50.99, p.CurrentPrice(now))
}

func TestCurrentPrice_NoDiscount(t *testing.T) {
	now := time.Now()
	p := &Product{BasePrice: 100}

	assert.False(t, p.IsOnSale(now))
	assert.Equal(t, 100.00, p.CurrentPrice(now))
}
