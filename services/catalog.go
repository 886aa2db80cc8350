package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Sort keys accepted by the catalog query builder.
const (
	SortPriceAsc    = "price_asc"
	SortPriceDesc   = "price_desc"
	SortNewest      = "newest"
	SortBestselling = "bestselling"
	SortRating      = "rating"
	SortRelevance   = "relevance"
)

// CatalogFilters is the enumerated filter configuration for catalog queries:
// one optional field per supported refinement.
type CatalogFilters struct {
	Search     string
	Categories []string
	Brands     []string
	MinPrice   *float64
	MaxPrice   *float64
	InStock    bool
	OnSale     bool
	Sort       string
	Page       int
	PageSize   int
}

// BuildCatalogFilter translates the filters into a Mongo filter document.
// It is a pure function of its inputs; now anchors the on-sale window.
func BuildCatalogFilter(f CatalogFilters, now time.Time) bson.M {
	query := bson.M{}

	if f.Search != "" {
		query["$text"] = bson.M{"$search": f.Search}
	}

	if len(f.Categories) == 1 {
		query["categories"] = f.Categories[0]
	} else if len(f.Categories) > 1 {
		query["categories"] = bson.M{"$in": f.Categories}
	}

	if len(f.Brands) == 1 {
		query["brand"] = f.Brands[0]
	} else if len(f.Brands) > 1 {
		query["brand"] = bson.M{"$in": f.Brands}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["basePrice"] = price
	}

	if f.InStock {
		query["stock"] = bson.M{"$gt": 0}
	}

	if f.OnSale {
		query["discountPercentage"] = bson.M{"$gt": 0}
		query["$or"] = bson.A{
			bson.M{"discountEndDate": bson.M{"$exists": false}},
			bson.M{"discountEndDate": bson.M{"$gt": now}},
		}
	}

	return query
}

// BuildCatalogSort translates the sort key into a Mongo sort document.
// Relevance falls back to newest-first when no text search is present.
func BuildCatalogSort(sort, search string) bson.D {
	switch sort {
	case SortPriceAsc:
		return bson.D{{Key: "basePrice", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "basePrice", Value: -1}}
	case SortNewest:
		return bson.D{{Key: "createdAt", Value: -1}}
	case SortBestselling:
		return bson.D{{Key: "sold", Value: -1}}
	case SortRating:
		return bson.D{{Key: "averageRating", Value: -1}}
	case SortRelevance:
		if search != "" {
			return bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}
		}
		return bson.D{{Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}
