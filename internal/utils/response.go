// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jrvaldez/product-catalog/internal/middleware"
	"github.com/jrvaldez/product-catalog/internal/models"
)

func DataResponse(c *gin.Context, products []models.Product) {
	c.JSON(http.StatusOK, models.DataResponse{Data: products})
}

func ResultResponse(c *gin.Context, status int, message string, product *models.Product) {
	c.JSON(status, models.APIResult{Message: message, Data: product})
}

func ErrorResponse(c *gin.Context, status int, apiErr *models.APIError) {
	c.JSON(status, apiErr)
}

func BadRequestResponse(c *gin.Context, apiErr *models.APIError) {
	ErrorResponse(c, http.StatusBadRequest, apiErr)
}

func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, &models.APIError{
		Name:    models.ErrNameNotFound,
		Message: message,
	})
}

// InternalErrorResponse logs the underlying error and answers with a fixed
// message; internal error text never reaches the client.
func InternalErrorResponse(c *gin.Context, err error) {
	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"error":      err,
	}).Error("Request failed")

	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
