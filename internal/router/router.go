// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/jrvaldez/product-catalog/internal/config"
	"github.com/jrvaldez/product-catalog/internal/handlers"
	"github.com/jrvaldez/product-catalog/internal/middleware"
	"github.com/jrvaldez/product-catalog/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	productService := services.NewProductService(db)
	productHandler := handlers.NewProductHandler(productService)

	generalLimiter := middleware.NewRateLimiter(rate.Every(time.Second/20), 40) // 20 requests per second

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(generalLimiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"environment": cfg.Environment,
		})
	})

	bp := r.Group("/bp")
	{
		products := bp.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/verification/:id", productHandler.VerifyProduct)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}
	}

	return r
}
