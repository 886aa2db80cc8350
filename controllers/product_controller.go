package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"store-api/apperrors"
	"store-api/cache"
	"store-api/models"
	"store-api/services"
)

type ProductController struct {
	products *services.ProductService
	cache    *cache.CatalogCache
}

func NewProductController(products *services.ProductService, catalogCache *cache.CatalogCache) *ProductController {
	return &ProductController{products: products, cache: catalogCache}
}

// CreateProductRequest is the catalog-admin product intake payload.
type CreateProductRequest struct {
	Name               string            `json:"name" binding:"required,max=200"`
	Description        string            `json:"description" binding:"required"`
	ShortDescription   string            `json:"shortDescription" binding:"omitempty,max=300"`
	BasePrice          float64           `json:"basePrice" binding:"min=0"`
	DiscountPercentage float64           `json:"discountPercentage" binding:"min=0,max=100"`
	DiscountEndDate    *time.Time        `json:"discountEndDate"`
	Categories         []string          `json:"categories" binding:"required,min=1"`
	MainCategory       string            `json:"mainCategory" binding:"required"`
	Tags               []string          `json:"tags"`
	Brand              string            `json:"brand"`
	MainImage          string            `json:"mainImage" binding:"required"`
	Images             []string          `json:"images"`
	Variants           []VariantRequest  `json:"variants" binding:"dive"`
	Specifications     map[string]string `json:"specifications"`
	Material           string            `json:"material"`
	Barcode            string            `json:"barcode"`
}

type VariantRequest struct {
	Color     string        `json:"color" binding:"required"`
	ColorHex  string        `json:"colorHex" binding:"omitempty,hexcolor"`
	Sizes     []SizeRequest `json:"sizes" binding:"required,min=1,dive"`
	Images    []string      `json:"images"`
	Price     float64       `json:"price" binding:"min=0"`
	IsDefault bool          `json:"isDefault"`
}

type SizeRequest struct {
	Name  string `json:"name" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
}

// StockUpdateRequest selects one variant size and a positive delta.
type StockUpdateRequest struct {
	ColorID  string `json:"colorId" binding:"required"`
	SizeID   string `json:"sizeId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// GetProducts serves the catalog query: filtering, search, sorting,
// pagination and facet refinement data.
func (ctl *ProductController) GetProducts(c *gin.Context) {
	filters, err := parseCatalogFilters(c)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := ctl.products.QueryProducts(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":      page.Products,
		"totalProducts": page.TotalProducts,
		"numOfPages":    page.NumOfPages,
		"currentPage":   page.CurrentPage,
		"filters":       page.Filters,
	})
}

// SearchProducts is the dedicated text-search endpoint; it requires a query
// and reuses the catalog plan with relevance sorting by default.
func (ctl *ProductController) SearchProducts(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		respondError(c, apperrors.Validation("Please provide a search query"))
		return
	}

	filters, err := parseCatalogFilters(c)
	if err != nil {
		respondError(c, err)
		return
	}
	filters.Search = query
	if c.Query("sort") == "" {
		filters.Sort = services.SortRelevance
	}
	if c.Query("limit") == "" {
		filters.PageSize = 20
	}

	page, err := ctl.products.QueryProducts(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":      page.Products,
		"totalProducts": page.TotalProducts,
		"numOfPages":    page.NumOfPages,
		"currentPage":   page.CurrentPage,
	})
}

func (ctl *ProductController) GetDiscountedProducts(c *gin.Context) {
	limit, err := parsePositiveInt(c, "limit", 10)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := ctl.products.GetDiscounted(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (ctl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctl.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (ctl *ProductController) GetRelatedProducts(c *gin.Context) {
	limit, err := parsePositiveInt(c, "limit", 5)
	if err != nil {
		respondError(c, err)
		return
	}

	related, err := ctl.products.GetRelated(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"relatedProducts": related})
}

func (ctl *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	product := productFromRequest(req)
	if err := ctl.products.CreateProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}

	ctl.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

func (ctl *ProductController) UpdateProduct(c *gin.Context) {
	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	product, err := ctl.products.UpdateProduct(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

func (ctl *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := ctl.products.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	ctl.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message":   "Product successfully removed",
		"productId": id,
	})
}

// UpdateProductStock applies a stock delta to one variant size.
func (ctl *ProductController) UpdateProductStock(c *gin.Context) {
	var req StockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	product, err := ctl.products.UpdateStock(c.Request.Context(), c.Param("id"), req.ColorID, req.SizeID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock updated successfully",
		"product": product,
	})
}

func (ctl *ProductController) GetProductCategories(c *gin.Context) {
	ctx := c.Request.Context()

	var categories []string
	if !ctl.cache.Get(ctx, cache.KeyCategories, &categories) {
		var err error
		categories, err = ctl.products.ListCategories(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		ctl.cache.Set(ctx, cache.KeyCategories, categories)
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (ctl *ProductController) GetProductBrands(c *gin.Context) {
	ctx := c.Request.Context()

	var brands []string
	if !ctl.cache.Get(ctx, cache.KeyBrands, &brands) {
		var err error
		brands, err = ctl.products.ListBrands(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		ctl.cache.Set(ctx, cache.KeyBrands, brands)
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// parseCatalogFilters reads the catalog query parameters, rejecting
// non-numeric pagination and price bounds.
func parseCatalogFilters(c *gin.Context) (services.CatalogFilters, error) {
	filters := services.CatalogFilters{
		Search:     c.Query("search"),
		Categories: c.QueryArray("category"),
		Brands:     c.QueryArray("brand"),
		InStock:    c.Query("inStock") == "true",
		OnSale:     c.Query("onSale") == "true",
		Sort:       c.DefaultQuery("sort", services.SortNewest),
	}

	page, err := parsePositiveInt(c, "page", 1)
	if err != nil {
		return filters, err
	}
	pageSize, err := parsePositiveInt(c, "limit", 10)
	if err != nil {
		return filters, err
	}
	filters.Page = page
	filters.PageSize = pageSize

	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, apperrors.Validation("minPrice must be a number")
		}
		filters.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, apperrors.Validation("maxPrice must be a number")
		}
		filters.MaxPrice = &v
	}

	return filters, nil
}

func parsePositiveInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, apperrors.Validation(name + " must be a positive integer")
	}
	return v, nil
}

func productFromRequest(req CreateProductRequest) *models.Product {
	product := &models.Product{
		Name:               req.Name,
		Description:        req.Description,
		ShortDescription:   req.ShortDescription,
		BasePrice:          req.BasePrice,
		DiscountPercentage: req.DiscountPercentage,
		DiscountEndDate:    req.DiscountEndDate,
		Categories:         req.Categories,
		MainCategory:       req.MainCategory,
		Tags:               req.Tags,
		Brand:              req.Brand,
		MainImage:          req.MainImage,
		Images:             req.Images,
		Specifications:     req.Specifications,
		Material:           req.Material,
		Barcode:            req.Barcode,
	}
	for _, v := range req.Variants {
		variant := models.Variant{
			Color:     v.Color,
			ColorHex:  v.ColorHex,
			Images:    v.Images,
			Price:     v.Price,
			IsDefault: v.IsDefault,
		}
		for _, sz := range v.Sizes {
			variant.Sizes = append(variant.Sizes, models.Size{Name: sz.Name, Stock: sz.Stock})
		}
		product.Variants = append(product.Variants, variant)
	}
	return product
}
