package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-api/apperrors"
	"store-api/services"
)

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/product/?"+rawQuery, nil)
	return c
}

func TestParseCatalogFilters_Defaults(t *testing.T) {
	c := testContext(t, "")

	filters, err := parseCatalogFilters(c)
	require.NoError(t, err)

	assert.Equal(t, 1, filters.Page)
	assert.Equal(t, 10, filters.PageSize)
	assert.Equal(t, services.SortNewest, filters.Sort)
	assert.Nil(t, filters.MinPrice)
	assert.Nil(t, filters.MaxPrice)
	assert.False(t, filters.InStock)
	assert.False(t, filters.OnSale)
}

func TestParseCatalogFilters_FullQuery(t *testing.T) {
	c := testContext(t, "search=jacket&category=outerwear&category=footwear&brand=Acme&minPrice=25&maxPrice=120&inStock=true&onSale=true&sort=price_asc&page=2&limit=20")

	filters, err := parseCatalogFilters(c)
	require.NoError(t, err)

	assert.Equal(t, "jacket", filters.Search)
	assert.Equal(t, []string{"outerwear", "footwear"}, filters.Categories)
	assert.Equal(t, []string{"Acme"}, filters.Brands)
	require.NotNil(t, filters.MinPrice)
	require.NotNil(t, filters.MaxPrice)
	assert.Equal(t, 25.0, *filters.MinPrice)
	assert.Equal(t, 120.0, *filters.MaxPrice)
	assert.True(t, filters.InStock)
	assert.True(t, filters.OnSale)
	assert.Equal(t, services.SortPriceAsc, filters.Sort)
	assert.Equal(t, 2, filters.Page)
	assert.Equal(t, 20, filters.PageSize)
}

func TestParseCatalogFilters_RejectsNonNumericPagination(t *testing.T) {
	for _, rawQuery := range []string{"page=abc", "limit=abc", "page=0", "limit=-5"} {
		c := testContext(t, rawQuery)

		_, err := parseCatalogFilters(c)

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr, rawQuery)
		assert.Equal(t, 400, appErr.Code, rawQuery)
	}
}

func TestParseCatalogFilters_RejectsNonNumericPrices(t *testing.T) {
	for _, rawQuery := range []string{"minPrice=cheap", "maxPrice=expensive"} {
		c := testContext(t, rawQuery)

		_, err := parseCatalogFilters(c)

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr, rawQuery)
		assert.Equal(t, 400, appErr.Code, rawQuery)
	}
}

func TestParsePositiveInt(t *testing.T) {
	c := testContext(t, "limit=7")
	v, err := parsePositiveInt(c, "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	c = testContext(t, "")
	v, err = parsePositiveInt(c, "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}
