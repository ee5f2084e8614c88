package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategories(t *testing.T) {
	setup()
	defer teardown()

	service := CategoryService{}

	categories, err := service.GetCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 4)

	// Ordered by name
	assert.Equal(t, "Electronics", categories[0].Name)
	assert.Equal(t, "electronics", categories[0].Slug)
}

func TestSearchProductsByCategory(t *testing.T) {
	setup()
	defer teardown()

	service := ProductService{}

	page, err := service.SearchProducts(ProductQuery{Category: "electronics"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	for _, product := range page.Items {
		assert.NotEmpty(t, product.CategoryId)
	}

	// Unknown slug yields an empty page, not an error
	page, err = service.SearchProducts(ProductQuery{Category: "no-such-category"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
	assert.Empty(t, page.Items)
}

func TestSearchProductsByText(t *testing.T) {
	setup()
	defer teardown()

	service := ProductService{}

	page, err := service.SearchProducts(ProductQuery{Search: "BAMBOO"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, "Bamboo Cutlery Set", page.Items[0].Name)
}

func TestSearchProductsByImpact(t *testing.T) {
	setup()
	defer teardown()

	service := ProductService{}

	low, err := service.SearchProducts(ProductQuery{Impact: "low"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, low.Total)
	for _, product := range low.Items {
		assert.LessOrEqual(t, product.CarbonFootprint, 1.0)
	}

	high, err := service.SearchProducts(ProductQuery{Impact: "high"})
	require.NoError(t, err)
	for _, product := range high.Items {
		assert.Greater(t, product.CarbonFootprint, 3.0)
	}
}

func TestSearchProductsEcoOnly(t *testing.T) {
	setup()
	defer teardown()

	service := ProductService{}

	page, err := service.SearchProducts(ProductQuery{EcoOnly: true})
	require.NoError(t, err)
	assert.EqualValues(t, 10, page.Total)
	for _, product := range page.Items {
		assert.True(t, product.EcoFriendly)
	}
}

func TestSearchProductsSortAndPaging(t *testing.T) {
	setup()
	defer teardown()

	service := ProductService{}

	page, err := service.SearchProducts(ProductQuery{Sort: "price-asc", PageSize: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 14, page.Total)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "Bamboo Cutlery Set", page.Items[0].Name)
	for i := 1; i < len(page.Items); i++ {
		assert.GreaterOrEqual(t, page.Items[i].Price, page.Items[i-1].Price)
	}

	lastPage, err := service.SearchProducts(ProductQuery{Sort: "price-asc", PageSize: 5, Page: 3})
	require.NoError(t, err)
	assert.Len(t, lastPage.Items, 4)
}

func TestGetProduct(t *testing.T) {
	setup()
	defer teardown()

	service := ProductService{}

	page, err := service.SearchProducts(ProductQuery{Search: "espresso"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	product, err := service.GetProduct(page.Items[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Espresso Machine Deluxe", product.Name)
	assert.Equal(t, 9.5, product.CarbonFootprint)
}
