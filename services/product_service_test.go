package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"store-api/apperrors"
	"store-api/models"
)

func stockedProduct() *models.Product {
	return &models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Hooded Jacket",
		BasePrice: 100,
		Stock:     10,
		Variants: []models.Variant{
			{
				ID:    primitive.NewObjectID(),
				Color: "black",
				Sizes: []models.Size{
					{ID: primitive.NewObjectID(), Name: "M", Stock: 6},
					{ID: primitive.NewObjectID(), Name: "L", Stock: 4},
				},
			},
		},
	}
}

func TestUpdateStock_Success(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	p := stockedProduct()
	products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	products.On("Replace", mock.Anything, mock.MatchedBy(func(got *models.Product) bool {
		return got.Variants[0].Sizes[0].Stock == 2 && got.Stock == 6 && got.Sold == 4
	})).Return(nil)

	updated, err := svc.UpdateStock(context.Background(), p.ID.Hex(), p.Variants[0].ID.Hex(), p.Variants[0].Sizes[0].ID.Hex(), 4)
	require.NoError(t, err)

	assert.Equal(t, 6, updated.Stock)
	products.AssertExpectations(t)
}

func TestUpdateStock_InsufficientLeavesProductUntouched(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	p := stockedProduct()
	products.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err := svc.UpdateStock(context.Background(), p.ID.Hex(), p.Variants[0].ID.Hex(), p.Variants[0].Sizes[0].ID.Hex(), 7)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "Insufficient stock")

	products.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	assert.Equal(t, 6, p.Variants[0].Sizes[0].Stock)
	assert.Equal(t, 0, p.Sold)
}

func TestUpdateStock_UnknownVariant(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	p := stockedProduct()
	products.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err := svc.UpdateStock(context.Background(), p.ID.Hex(), primitive.NewObjectID().Hex(), p.Variants[0].Sizes[0].ID.Hex(), 1)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	products.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestUpdateStock_ProductNotFound(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	id := primitive.NewObjectID()
	products.On("FindByID", mock.Anything, id).Return(nil, mongo.ErrNoDocuments)

	_, err := svc.UpdateStock(context.Background(), id.Hex(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), 1)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestQueryProducts_PaginationAndFacets(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	results := []models.Product{
		{ID: primitive.NewObjectID(), Name: "Jacket", BasePrice: 80, DiscountPercentage: 25},
		{ID: primitive.NewObjectID(), Name: "Boots", BasePrice: 120},
	}

	products.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(results, nil)
	products.On("Count", mock.Anything, mock.Anything).Return(int64(25), nil)
	products.On("Distinct", mock.Anything, "brand", mock.Anything).Return([]string{"Acme"}, nil)
	products.On("Distinct", mock.Anything, "categories", mock.Anything).Return([]string{"outerwear"}, nil)
	products.On("PriceRange", mock.Anything, mock.Anything).Return(80.0, 120.0, nil)

	page, err := svc.QueryProducts(context.Background(), CatalogFilters{Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(25), page.TotalProducts)
	assert.Equal(t, 3, page.NumOfPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, []string{"Acme"}, page.Filters.Brands)
	assert.Equal(t, 80.0, page.Filters.PriceRange.MinPrice)
	assert.Equal(t, 120.0, page.Filters.PriceRange.MaxPrice)

	require.Len(t, page.Products, 2)
	assert.Equal(t, 60.0, page.Products[0].CurrentPrice)
	assert.Equal(t, 120.0, page.Products[1].CurrentPrice)
}

func TestCreateProduct_AssignsIDsAndAggregatesStock(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	p := &models.Product{
		Name:      "Hooded Jacket",
		BasePrice: 100,
		Stock:     999,
		Variants: []models.Variant{
			{Color: "black", Sizes: []models.Size{{Name: "M", Stock: 6}, {Name: "L", Stock: 4}}},
		},
	}
	products.On("Create", mock.Anything, p).Return(nil)

	require.NoError(t, svc.CreateProduct(context.Background(), p))

	assert.False(t, p.Variants[0].ID.IsZero())
	assert.False(t, p.Variants[0].Sizes[0].ID.IsZero())
	assert.Equal(t, 10, p.Stock)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	products.On("Create", mock.Anything, mock.Anything).Return(mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	})

	err := svc.CreateProduct(context.Background(), &models.Product{Name: "Hooded Jacket"})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestUpdateProduct_VariantChangeRecomputesStock(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	p := stockedProduct()
	p.Stock = 999
	products.On("Update", mock.Anything, p.ID, mock.Anything).Return(p, nil)
	products.On("Replace", mock.Anything, mock.MatchedBy(func(got *models.Product) bool {
		return got.Stock == 10
	})).Return(nil)

	updated, err := svc.UpdateProduct(context.Background(), p.ID.Hex(), bson.M{"variants": p.Variants})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Stock)
	products.AssertExpectations(t)
}

func TestUpdateProduct_AssignsIDsToNewVariants(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	// A PATCH payload carries no _id fields, so the stored variants come
	// back with zero ids and must be assigned before persisting.
	p := &models.Product{
		ID:   primitive.NewObjectID(),
		Name: "Hooded Jacket",
		Variants: []models.Variant{
			{Color: "black", Sizes: []models.Size{{Name: "M", Stock: 6}}},
		},
	}
	products.On("Update", mock.Anything, p.ID, mock.Anything).Return(p, nil)
	products.On("Replace", mock.Anything, mock.MatchedBy(func(got *models.Product) bool {
		return !got.Variants[0].ID.IsZero() && !got.Variants[0].Sizes[0].ID.IsZero() && got.Stock == 6
	})).Return(nil)

	updated, err := svc.UpdateProduct(context.Background(), p.ID.Hex(), bson.M{"variants": p.Variants})
	require.NoError(t, err)
	assert.False(t, updated.Variants[0].ID.IsZero())
	assert.False(t, updated.Variants[0].Sizes[0].ID.IsZero())
	products.AssertExpectations(t)
}

func TestUpdateProduct_NoFields(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)

	_, err := svc.UpdateProduct(context.Background(), primitive.NewObjectID().Hex(), bson.M{})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestGetDiscounted_AppliesCurrentPrice(t *testing.T) {
	products := new(MockProductRepo)
	svc := NewProductService(products)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	products.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Product{
		{ID: primitive.NewObjectID(), Name: "Jacket", BasePrice: 100, DiscountPercentage: 30, DiscountEndDate: &end},
	}, nil)

	discounted, err := svc.GetDiscounted(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, discounted, 1)
	assert.Equal(t, 70.0, discounted[0].CurrentPrice)
}
