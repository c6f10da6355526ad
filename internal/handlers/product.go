// internal/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrvaldez/product-catalog/internal/models"
	"github.com/jrvaldez/product-catalog/internal/services"
	"github.com/jrvaldez/product-catalog/internal/utils"
)

const msgProductNotFound = "Not product found with that identifier"

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	utils.DataResponse(c, products)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, msgProductNotFound)
			return
		}
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.BadRequestResponse(c, &models.APIError{
			Name:    models.ErrNameBadRequest,
			Message: "Invalid request body",
		})
		return
	}

	if err := h.productService.CreateProduct(c.Request.Context(), &product); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.ResultResponse(c, http.StatusCreated, "Product added successfully", &product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.BadRequestResponse(c, &models.APIError{
			Name:    models.ErrNameBadRequest,
			Message: "Invalid request body",
		})
		return
	}

	updated, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &product)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.ResultResponse(c, http.StatusOK, "Product updated successfully", updated)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.ResultResponse(c, http.StatusOK, "Product removed successfully", nil)
}

// GET /products/verification/:id
func (h *ProductHandler) VerifyProduct(c *gin.Context) {
	exists, err := h.productService.ProductExists(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, exists)
}

func respondServiceError(c *gin.Context, err error) {
	var apiErr *models.APIError
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, msgProductNotFound)
	case errors.As(err, &apiErr):
		utils.BadRequestResponse(c, apiErr)
	default:
		utils.InternalErrorResponse(c, err)
	}
}
