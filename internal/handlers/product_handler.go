package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"provided-storefront/internal/models"
)

const defaultTimeout = 5 * time.Second

type CatalogReader interface {
	ListProducts(ctx context.Context, featured *bool) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListFeaturedCollections(ctx context.Context) ([]*models.Collection, error)
}

type ProductListResponse struct {
	Products []*models.Product `json:"products"`
}

type CollectionListResponse struct {
	Collections []*models.Collection `json:"collections"`
}

type ProductHandler struct {
	catalog CatalogReader
	timeout time.Duration
}

func NewProductHandler(catalog CatalogReader, timeout time.Duration) *ProductHandler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ProductHandler{catalog: catalog, timeout: timeout}
}

// GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	featured, err := parseOptionalBool(c.Query("featured"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "featured must be a boolean", Field: "featured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.ListProducts(ctx, featured)
	if errors.Is(err, models.ErrStoreUnavailable) {
		// Sin base de datos el catálogo se ve vacío
		_ = c.Error(err)
		products = []*models.Product{}
	} else if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProductListResponse{Products: products})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.GetProduct(ctx, c.Param("id"))
	if errors.Is(err, models.ErrStoreUnavailable) {
		_ = c.Error(err)
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GET /api/collections/featured
func (h *ProductHandler) FeaturedCollections(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	collections, err := h.catalog.ListFeaturedCollections(ctx)
	if errors.Is(err, models.ErrStoreUnavailable) {
		_ = c.Error(err)
		collections = []*models.Collection{}
	} else if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CollectionListResponse{Collections: collections})
}

// parseOptionalBool acepta las formas usuales de un booleano en query string; vacío es nil
func parseOptionalBool(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}

	var v bool
	switch strings.ToLower(raw) {
	case "yes", "on":
		v = true
	case "no", "off":
		v = false
	default:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		v = parsed
	}
	return &v, nil
}
