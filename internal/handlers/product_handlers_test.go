package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ekoval/storefront/internal/models"
)

func TestGetProductsByCategory(t *testing.T) {
	env := newTestEnv(t)
	books := env.createCategory("books")
	games := env.createCategory("games")
	env.createProduct("dune", "10.50", books.ID)
	env.createProduct("solaris", "3.25", books.ID)
	env.createProduct("chess", "20.00", games.ID)

	rec, c := env.doJSONRequest(http.MethodGet, "/products/by_category?category=books", nil, 0)
	require.NoError(t, env.Product.GetProductsByCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	require.Equal(t, "dune", products[0].Name)
	require.Equal(t, "solaris", products[1].Name)
}

func TestGetProductsByCategoryMissingParam(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/products/by_category", nil, 0)
	requireHTTPError(t, env.Product.GetProductsByCategory(c), http.StatusBadRequest)
}

func TestGetProductsByCategoryUnknown(t *testing.T) {
	env := newTestEnv(t)
	books := env.createCategory("books")
	env.createProduct("dune", "10.50", books.ID)

	rec, c := env.doJSONRequest(http.MethodGet, "/products/by_category?category=Books", nil, 0)
	require.NoError(t, env.Product.GetProductsByCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// case-sensitive match: "Books" is not "books"
	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 0)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	books := env.createCategory("books")

	load := map[string]any{
		"name":        "dune",
		"description": "a novel",
		"price":       "12.50",
		"category_id": books.ID,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/products", load, 0)
	require.NoError(t, env.Product.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	require.Equal(t, "dune", product.Name)
	require.True(t, decimal.RequireFromString("12.50").Equal(product.Price))
}

func TestCreateProductNegativePrice(t *testing.T) {
	env := newTestEnv(t)
	books := env.createCategory("books")

	load := map[string]any{
		"name":        "dune",
		"price":       "-1.00",
		"category_id": books.ID,
	}
	_, c := env.doJSONRequest(http.MethodPost, "/products", load, 0)
	requireHTTPError(t, env.Product.CreateProduct(c), http.StatusBadRequest)
}

func TestPatchProduct(t *testing.T) {
	env := newTestEnv(t)
	books := env.createCategory("books")
	product := env.createProduct("dune", "10.00", books.ID)

	load := map[string]any{"price": "11.00"}
	rec, c := env.doJSONRequest(http.MethodPut, "/products/1", load, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Product.PatchProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Product
	require.NoError(t, env.DB.First(&updated, product.ID).Error)
	require.True(t, decimal.RequireFromString("11.00").Equal(updated.Price))
	require.Equal(t, "dune", updated.Name, "unset fields keep their values")
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	books := env.createCategory("books")
	env.createProduct("dune", "10.00", books.ID)

	rec, c := env.doJSONRequest(http.MethodDelete, "/products/1", nil, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Product.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, c = env.doJSONRequest(http.MethodDelete, "/products/1", nil, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	requireHTTPError(t, env.Product.DeleteProduct(c), http.StatusNotFound)
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t)
	env.createCategory("books")
	env.createCategory("games")

	rec, c := env.doJSONRequest(http.MethodGet, "/categories", nil, 0)
	require.NoError(t, env.Category.GetCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 2)
}

func TestCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/categories", map[string]string{"name": "books"}, 0)
	require.NoError(t, env.Category.CreateCategory(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodPut, "/categories/1", map[string]string{"name": "novels"}, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Category.UpdateCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var category models.Category
	require.NoError(t, env.DB.First(&category, 1).Error)
	require.Equal(t, "novels", category.Name)

	rec, c = env.doJSONRequest(http.MethodDelete, "/categories/1", nil, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Category.DeleteCategory(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
}
