// internal/handlers/product_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jrvaldez/product-catalog/internal/handlers"
	"github.com/jrvaldez/product-catalog/internal/models"
	"github.com/jrvaldez/product-catalog/internal/services"
)

type ProductHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(&models.Product{}))
	suite.db = db

	productHandler := handlers.NewProductHandler(services.NewProductService(db))

	suite.router = gin.New()
	products := suite.router.Group("/bp/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/verification/:id", productHandler.VerifyProduct)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("", productHandler.CreateProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}
}

func (suite *ProductHandlerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ProductHandlerTestSuite) validPayload() models.Product {
	return models.Product{
		ID:           "ABC123",
		Name:         "Producto Test",
		Description:  "Descripción válida de producto",
		Logo:         "logo.png",
		DateRelease:  "2030-01-01",
		DateRevision: "2031-01-01",
	}
}

func (suite *ProductHandlerTestSuite) TestCreateProduct() {
	w := suite.request(http.MethodPost, "/bp/products", suite.validPayload())
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var result models.APIResult
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(suite.T(), "Product added successfully", result.Message)
	require.NotNil(suite.T(), result.Data)
	assert.Equal(suite.T(), "ABC123", result.Data.ID)
}

func (suite *ProductHandlerTestSuite) TestCreateProductDuplicate() {
	suite.request(http.MethodPost, "/bp/products", suite.validPayload())

	w := suite.request(http.MethodPost, "/bp/products", suite.validPayload())
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var apiErr models.APIError
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(suite.T(), models.ErrNameBadRequest, apiErr.Name)
}

func (suite *ProductHandlerTestSuite) TestCreateProductValidationEnvelope() {
	payload := suite.validPayload()
	payload.Name = "Pro"

	w := suite.request(http.MethodPost, "/bp/products", payload)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var apiErr models.APIError
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(suite.T(), models.ErrNameValidation, apiErr.Name)
	require.NotEmpty(suite.T(), apiErr.Errors)
	assert.Equal(suite.T(), "name", apiErr.Errors[0].Property)
	assert.Contains(suite.T(), apiErr.Errors[0].Constraints, "min")
}

func (suite *ProductHandlerTestSuite) TestGetProductsEnvelope() {
	suite.request(http.MethodPost, "/bp/products", suite.validPayload())

	w := suite.request(http.MethodGet, "/bp/products", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var envelope models.DataResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(suite.T(), envelope.Data, 1)
	assert.Equal(suite.T(), "ABC123", envelope.Data[0].ID)
}

func (suite *ProductHandlerTestSuite) TestGetProductNotFound() {
	w := suite.request(http.MethodGet, "/bp/products/GONE42", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var apiErr models.APIError
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(suite.T(), models.ErrNameNotFound, apiErr.Name)
	assert.Equal(suite.T(), "Not product found with that identifier", apiErr.Message)
}

func (suite *ProductHandlerTestSuite) TestUpdateProduct() {
	suite.request(http.MethodPost, "/bp/products", suite.validPayload())

	payload := suite.validPayload()
	payload.Name = "Producto Renombrado"
	w := suite.request(http.MethodPut, "/bp/products/ABC123", payload)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var result models.APIResult
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(suite.T(), "Product updated successfully", result.Message)
}

func (suite *ProductHandlerTestSuite) TestUpdateProductNotFound() {
	w := suite.request(http.MethodPut, "/bp/products/GONE42", suite.validPayload())
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ProductHandlerTestSuite) TestDeleteProduct() {
	suite.request(http.MethodPost, "/bp/products", suite.validPayload())

	w := suite.request(http.MethodDelete, "/bp/products/ABC123", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var result models.APIResult
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(suite.T(), "Product removed successfully", result.Message)

	w = suite.request(http.MethodDelete, "/bp/products/ABC123", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ProductHandlerTestSuite) TestVerifyProduct() {
	w := suite.request(http.MethodGet, "/bp/products/verification/ABC123", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "false", w.Body.String())

	suite.request(http.MethodPost, "/bp/products", suite.validPayload())

	w = suite.request(http.MethodGet, "/bp/products/verification/ABC123", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "true", w.Body.String())
}

func (suite *ProductHandlerTestSuite) TestInternalErrorHidesCause() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())

	w := suite.request(http.MethodGet, "/bp/products", nil)
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(suite.T(), "Internal server error", body["message"])
	assert.NotContains(suite.T(), w.Body.String(), "closed")
}

func TestProductHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
