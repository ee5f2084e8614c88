package controller

import (
	"net/http"
	"testing"

	"github.com/ecocart/ecocart/database/model"
	"github.com/ecocart/ecocart/web/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategories(t *testing.T) {
	engine := setup()
	defer teardown()

	recorder := doJSON(engine, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	categories := []*model.Category{}
	msg := decodeMsg(t, recorder, &categories)
	require.True(t, msg.Success)
	assert.Len(t, categories, 4)
}

func TestGetProductsFiltered(t *testing.T) {
	engine := setup()
	defer teardown()

	recorder := doJSON(engine, http.MethodGet, "/api/products?category=electronics&eco=true", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	page := &service.ProductPage{}
	msg := decodeMsg(t, recorder, page)
	require.True(t, msg.Success)
	assert.EqualValues(t, 3, page.Total)
	for _, product := range page.Items {
		assert.True(t, product.EcoFriendly)
	}
}

func TestGetProductNotFound(t *testing.T) {
	engine := setup()
	defer teardown()

	recorder := doJSON(engine, http.MethodGet, "/api/products/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestVoiceInterpretEndpoint(t *testing.T) {
	engine := setup()
	defer teardown()

	recorder := doJSON(engine, http.MethodPost, "/api/voice/interpret",
		`{"transcript":"add bamboo cutlery to my cart"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	intent := &service.VoiceIntent{}
	msg := decodeMsg(t, recorder, intent)
	require.True(t, msg.Success)
	assert.Equal(t, service.VoiceActionAddToCart, intent.Action)
	assert.Equal(t, "bamboo cutlery", intent.Query)
}
