package models

import (
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrVariantNotFound   = errors.New("variant not found")
	ErrSizeNotFound      = errors.New("size not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Size is the finest-grained stock-tracked unit of a product: a specific
// size within a specific color variant.
type Size struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Stock int                `bson:"stock" json:"stock"`
}

// Variant is a color-level grouping of a product.
type Variant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Color     string             `bson:"color" json:"color"`
	ColorHex  string             `bson:"colorHex,omitempty" json:"colorHex,omitempty"`
	Sizes     []Size             `bson:"sizes" json:"sizes"`
	Images    []string           `bson:"images,omitempty" json:"images,omitempty"`
	Price     float64            `bson:"price,omitempty" json:"price,omitempty"`
	IsDefault bool               `bson:"isDefault" json:"isDefault"`
}

type Weight struct {
	Value float64 `bson:"value,omitempty" json:"value,omitempty"`
	Unit  string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

type Dimensions struct {
	Length float64 `bson:"length,omitempty" json:"length,omitempty"`
	Width  float64 `bson:"width,omitempty" json:"width,omitempty"`
	Height float64 `bson:"height,omitempty" json:"height,omitempty"`
	Unit   string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

// Product is the catalog document. Stock is the aggregate across all
// variant sizes; Sold only grows. Both are mutated through AdjustStock
// and RecomputeStock, never directly.
type Product struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description" json:"description"`
	ShortDescription   string             `bson:"shortDescription,omitempty" json:"shortDescription,omitempty"`
	BasePrice          float64            `bson:"basePrice" json:"basePrice"`
	DiscountPercentage float64            `bson:"discountPercentage" json:"discountPercentage"`
	DiscountEndDate    *time.Time         `bson:"discountEndDate,omitempty" json:"discountEndDate,omitempty"`
	Categories         []string           `bson:"categories" json:"categories"`
	MainCategory       string             `bson:"mainCategory" json:"mainCategory"`
	Tags               []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Brand              string             `bson:"brand,omitempty" json:"brand,omitempty"`
	MainImage          string             `bson:"mainImage" json:"mainImage"`
	Images             []string           `bson:"images,omitempty" json:"images,omitempty"`
	Variants           []Variant          `bson:"variants,omitempty" json:"variants,omitempty"`
	Specifications     map[string]string  `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Material           string             `bson:"material,omitempty" json:"material,omitempty"`
	Weight             *Weight            `bson:"weight,omitempty" json:"weight,omitempty"`
	Dimensions         *Dimensions        `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Stock              int                `bson:"stock" json:"stock"`
	Sold               int                `bson:"sold" json:"sold"`
	AverageRating      float64            `bson:"averageRating" json:"averageRating"`
	TotalReviews       int                `bson:"totalReviews" json:"totalReviews"`
	Barcode            string             `bson:"barcode,omitempty" json:"barcode,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsOnSale reports whether the discount is active at the given instant.
func (p *Product) IsOnSale(now time.Time) bool {
	if p.DiscountPercentage <= 0 {
		return false
	}
	if p.DiscountEndDate != nil && now.After(*p.DiscountEndDate) {
		return false
	}
	return true
}

// CurrentPrice returns the base price with any active discount applied,
// rounded to two decimal places.
func (p *Product) CurrentPrice(now time.Time) float64 {
	if !p.IsOnSale(now) {
		return p.BasePrice
	}
	return math.Round(p.BasePrice*(1-p.DiscountPercentage/100)*100) / 100
}

// VariantStock returns the stock of a specific variant/size, or zero when
// either id does not resolve within this product.
func (p *Product) VariantStock(colorID, sizeID primitive.ObjectID) int {
	variant := p.findVariant(colorID)
	if variant == nil {
		return 0
	}
	size := findSize(variant, sizeID)
	if size == nil {
		return 0
	}
	return size.Stock
}

// AdjustStock decrements a variant size by quantity and bumps the sold
// counter. It fails without mutating anything when the variant or size id
// does not resolve or the size holds less than quantity. The caller must
// persist the product and recompute the aggregate stock.
func (p *Product) AdjustStock(colorID, sizeID primitive.ObjectID, quantity int) error {
	variant := p.findVariant(colorID)
	if variant == nil {
		return ErrVariantNotFound
	}
	size := findSize(variant, sizeID)
	if size == nil {
		return ErrSizeNotFound
	}
	if size.Stock < quantity {
		return ErrInsufficientStock
	}
	size.Stock -= quantity
	p.Sold += quantity
	return nil
}

// RecomputeStock sets the aggregate stock to the sum of all variant size
// stocks. Products without variants keep their top-level stock untouched.
// Must run as part of every save that touches variants.
func (p *Product) RecomputeStock() {
	if len(p.Variants) == 0 {
		return
	}
	total := 0
	for _, variant := range p.Variants {
		for _, size := range variant.Sizes {
			total += size.Stock
		}
	}
	p.Stock = total
}

func (p *Product) findVariant(id primitive.ObjectID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

func findSize(v *Variant, id primitive.ObjectID) *Size {
	for i := range v.Sizes {
		if v.Sizes[i].ID == id {
			return &v.Sizes[i]
		}
	}
	return nil
}
