package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopforge/shopforge/internal/models"
)

func TestCreateAndGetProduct(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]any{
		"name":           "keyboard",
		"description":    "mechanical",
		"price":          "49.90",
		"discount_price": "39.90",
		"stock":          5,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/products", body, 0)
	require.NoError(t, env.Products.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.True(t, created.Price.Equal(dec("49.90")))
	require.True(t, created.DiscountPrice.Valid)
	require.True(t, created.EffectivePrice().Equal(dec("39.90")))

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/products/1", nil, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Products.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProductsPagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 15; i++ {
		env.createProduct("p", "1.00")
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?page=2&size=10", nil, 0)
	c.QueryParams().Set("page", "2")
	c.QueryParams().Set("size", "10")
	require.NoError(t, env.Products.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Total   int64 `json:"total"`
			HasPrev bool  `json:"has_prev"`
			HasNext bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 5)
	require.Equal(t, int64(15), resp.Meta.Total)
	require.True(t, resp.Meta.HasPrev)
	require.False(t, resp.Meta.HasNext)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/42", nil, 0)
	c.SetParamNames("id")
	c.SetParamValues("42")
	err := env.Products.GetProduct(c)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestCreateVariant(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("shirt", "20.00")

	body := map[string]any{
		"variant_type":     "Size",
		"variant_value":    "XL",
		"additional_price": "2.50",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/products/1/variants", body, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Products.CreateVariant(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var variant models.ProductVariant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &variant))
	require.Equal(t, p.ID, variant.ProductID)
	require.True(t, variant.AdditionalPrice.Equal(dec("2.50")))
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct("doomed", "1.00")

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/products/1", nil, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Products.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCategoryAndBrandCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/categories", map[string]string{"name": "audio"}, 0)
	require.NoError(t, env.Taxonomy.CreateCategory(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/admin/brands", map[string]string{"name": "acme"}, 0)
	require.NoError(t, env.Taxonomy.CreateBrand(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/categories", nil, 0)
	require.NoError(t, env.Taxonomy.GetCategories(c))
	var categories []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	require.Equal(t, "audio", categories[0].Name)
}
