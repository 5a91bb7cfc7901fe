package salesapiserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/vendora/sales-api/internal/domains/catalog/domain"
	catalogports "github.com/vendora/sales-api/internal/domains/catalog/ports"
)

// ProductsAPI implements the catalog endpoints.
type ProductsAPI struct {
	service catalogports.Service
}

// NewProductsAPI wires dependencies.
func NewProductsAPI(service catalogports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

func fromDomainProduct(product *catalogdomain.Product) Product {
	return Product{
		Id:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Tags:        product.Tags,
		Price:       product.Price,
		Stock:       product.Stock,
	}
}

func fromDomainProducts(products []*catalogdomain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, fromDomainProduct(product))
	}
	return result
}

// Post /v1/products
// Create a catalog product
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	var payload ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := catalogdomain.NewProduct(payload.Name, payload.Description, payload.Tags, payload.Price, payload.Stock)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), product)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainProduct(created))
}

// Get /v1/products/:productId
// Fetch a product
func (api *ProductsAPI) GetProduct(c *gin.Context) {
	product, err := api.service.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainProduct(product))
}

// Patch /v1/products/:productId
// Patch a product
func (api *ProductsAPI) UpdateProduct(c *gin.Context) {
	var payload ProductUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.Update(c.Request.Context(), c.Param("productId"), catalogdomain.ProductUpdate{
		Name:        payload.Name,
		Description: payload.Description,
		Tags:        payload.Tags,
		Price:       payload.Price,
		Stock:       payload.Stock,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainProduct(product))
}

// Delete /v1/products/:productId
// Delete a product
func (api *ProductsAPI) DeleteProduct(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("productId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/products
// List the catalog
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	products, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainProducts(products))
}

// Get /v1/products/search?q=...&limit=...
// Search products by name or description
func (api *ProductsAPI) SearchProducts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		limit = parsed
	}
	products, err := api.service.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainProducts(products))
}
