package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"provided-storefront/internal/handlers"
	"provided-storefront/internal/logger"
)

type Handlers struct {
	Products *handlers.ProductHandler
	Carts    *handlers.CartHandler
	System   *handlers.SystemHandler
}

// NewRouter arma el engine con recovery, logging por request y CORS
func NewRouter(origins []string, allowAll bool, l log.FieldLogger) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, errors.Wrap(err, "register validators")
	}

	corsMiddleware, err := newCORS(origins, allowAll)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(logger.GinMiddleware(l), gin.Recovery(), corsMiddleware)

	return router, nil
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.GET("/", h.System.Root)
	router.GET("/test", h.System.Diagnostics)

	api := router.Group("/api")
	{
		api.GET("/products", h.Products.ListProducts)
		api.GET("/products/:id", h.Products.GetProduct)
		api.GET("/collections/featured", h.Products.FeaturedCollections)

		api.GET("/cart", h.Carts.GetCart)
		api.POST("/cart/add", h.Carts.AddItem)
		api.POST("/cart/remove", h.Carts.RemoveItem)
	}
}

func newCORS(origins []string, allowAll bool) (gin.HandlerFunc, error) {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", logger.RequestIDHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		for _, o := range origins {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
		cfg.AllowCredentials = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid CORS_ORIGINS")
	}
	return cors.New(cfg), nil
}
