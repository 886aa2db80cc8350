package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"store-api/apperrors"
	"store-api/models"
	"store-api/repository"
)

// ProductWithPrice decorates a product with its computed current price.
type ProductWithPrice struct {
	models.Product `bson:",inline"`
	CurrentPrice   float64 `json:"currentPrice"`
}

// PriceRange is the observed basePrice bounds over a filtered result set.
type PriceRange struct {
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
}

// CatalogFacets is the refinement data computed over the filtered set.
type CatalogFacets struct {
	Brands     []string   `json:"brands"`
	Categories []string   `json:"categories"`
	PriceRange PriceRange `json:"priceRange"`
}

// CatalogPage is the full catalog query result.
type CatalogPage struct {
	Products      []ProductWithPrice `json:"products"`
	TotalProducts int64              `json:"totalProducts"`
	NumOfPages    int                `json:"numOfPages"`
	CurrentPage   int                `json:"currentPage"`
	Filters       CatalogFacets      `json:"filters"`
}

type ProductService struct {
	products repository.ProductRepo
	now      func() time.Time
}

func NewProductService(products repository.ProductRepo) *ProductService {
	return &ProductService{
		products: products,
		now:      time.Now,
	}
}

// QueryProducts runs the catalog filter/sort/pagination plan and computes
// per-product current prices plus facet data over the filtered set.
func (s *ProductService) QueryProducts(ctx context.Context, filters CatalogFilters) (*CatalogPage, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 10
	}

	now := s.now()
	query := BuildCatalogFilter(filters, now)
	sort := BuildCatalogSort(filters.Sort, filters.Search)

	findOptions := options.Find().
		SetSort(sort).
		SetSkip(int64((filters.Page - 1) * filters.PageSize)).
		SetLimit(int64(filters.PageSize))
	if filters.Sort == SortRelevance && filters.Search != "" {
		findOptions.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	products, err := s.products.Find(ctx, query, findOptions)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	total, err := s.products.Count(ctx, query)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	brands, err := s.products.Distinct(ctx, "brand", query)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	categories, err := s.products.Distinct(ctx, "categories", query)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	minPrice, maxPrice, err := s.products.PriceRange(ctx, query)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	page := &CatalogPage{
		Products:      s.withCurrentPrices(products, now),
		TotalProducts: total,
		NumOfPages:    int(math.Ceil(float64(total) / float64(filters.PageSize))),
		CurrentPage:   filters.Page,
		Filters: CatalogFacets{
			Brands:     brands,
			Categories: categories,
			PriceRange: PriceRange{MinPrice: minPrice, MaxPrice: maxPrice},
		},
	}
	return page, nil
}

// GetDiscounted returns up to limit products whose discount is currently
// active, highest discount first.
func (s *ProductService) GetDiscounted(ctx context.Context, limit int) ([]ProductWithPrice, error) {
	if limit < 1 {
		limit = 10
	}
	now := s.now()
	query := bson.M{
		"discountPercentage": bson.M{"$gt": 0},
		"$or": bson.A{
			bson.M{"discountEndDate": bson.M{"$exists": false}},
			bson.M{"discountEndDate": bson.M{"$gt": now}},
		},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "discountPercentage", Value: -1}}).
		SetLimit(int64(limit))

	products, err := s.products.Find(ctx, query, findOptions)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.withCurrentPrices(products, now), nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*ProductWithPrice, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid product ID format")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(fmt.Sprintf("Product with id %s not found", id))
		}
		return nil, apperrors.Internal(err)
	}

	return &ProductWithPrice{Product: *product, CurrentPrice: product.CurrentPrice(s.now())}, nil
}

// GetRelated returns other products sharing the main category.
func (s *ProductService) GetRelated(ctx context.Context, id string, limit int) ([]ProductWithPrice, error) {
	if limit < 1 {
		limit = 5
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	query := bson.M{
		"_id":          bson.M{"$ne": product.ID},
		"mainCategory": product.MainCategory,
	}
	findOptions := options.Find().SetLimit(int64(limit))

	related, err := s.products.Find(ctx, query, findOptions)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.withCurrentPrices(related, s.now()), nil
}

func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	now := s.now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	assignVariantIDs(product)
	product.RecomputeStock()

	if err := s.products.Create(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("A product with this name already exists")
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, updates bson.M) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid product ID format")
	}
	if len(updates) == 0 {
		return nil, apperrors.Validation("No update fields provided")
	}

	product, err := s.products.Update(ctx, productID, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(fmt.Sprintf("Product with id %s not found", id))
		}
		return nil, apperrors.Internal(err)
	}

	// An update that touched variants must give client-supplied variants
	// and sizes addressable ids and re-establish the aggregate stock
	// invariant before the document is read back by anyone.
	if _, ok := updates["variants"]; ok {
		assignVariantIDs(product)
		product.RecomputeStock()
		if err := s.products.Replace(ctx, product); err != nil {
			return nil, apperrors.Internal(err)
		}
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid product ID format")
	}
	if err := s.products.Delete(ctx, productID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound(fmt.Sprintf("Product with id %s not found", id))
		}
		return apperrors.Internal(err)
	}
	return nil
}

// UpdateStock applies a quantity delta to one variant size and persists the
// product with its aggregate stock recomputed.
func (s *ProductService) UpdateStock(ctx context.Context, id, colorID, sizeID string, quantity int) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid product ID format")
	}
	variantID, err := primitive.ObjectIDFromHex(colorID)
	if err != nil {
		return nil, apperrors.Validation("Invalid colorId format")
	}
	szID, err := primitive.ObjectIDFromHex(sizeID)
	if err != nil {
		return nil, apperrors.Validation("Invalid sizeId format")
	}
	if quantity <= 0 {
		return nil, apperrors.Validation("Quantity must be a positive number")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(fmt.Sprintf("Product with id %s not found", id))
		}
		return nil, apperrors.Internal(err)
	}

	if err := product.AdjustStock(variantID, szID, quantity); err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientStock):
			return nil, apperrors.Stock(fmt.Sprintf("Insufficient stock for product %s", product.Name))
		default:
			return nil, apperrors.Validation("Unable to update stock. Check variant/size IDs or available quantity")
		}
	}

	product.RecomputeStock()
	if err := s.products.Replace(ctx, product); err != nil {
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

// ListCategories returns the distinct category values across the catalog.
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Distinct(ctx, "categories", bson.M{})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

// ListBrands returns the distinct brand values across the catalog.
func (s *ProductService) ListBrands(ctx context.Context) ([]string, error) {
	brands, err := s.products.Distinct(ctx, "brand", bson.M{})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return brands, nil
}

func (s *ProductService) withCurrentPrices(products []models.Product, now time.Time) []ProductWithPrice {
	out := make([]ProductWithPrice, 0, len(products))
	for i := range products {
		out = append(out, ProductWithPrice{
			Product:      products[i],
			CurrentPrice: products[i].CurrentPrice(now),
		})
	}
	return out
}

func assignVariantIDs(p *models.Product) {
	for i := range p.Variants {
		if p.Variants[i].ID.IsZero() {
			p.Variants[i].ID = primitive.NewObjectID()
		}
		for j := range p.Variants[i].Sizes {
			if p.Variants[i].Sizes[j].ID.IsZero() {
				p.Variants[i].Sizes[j].ID = primitive.NewObjectID()
			}
		}
	}
}
