package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"provided-storefront/internal/models"
)

type CartManager interface {
	GetCart(ctx context.Context, sessionID string) (*models.CartView, error)
	AddItem(ctx context.Context, sessionID string, item models.CartItem) error
	RemoveItem(ctx context.Context, sessionID, productID string, variant *string) error
}

// cartItemRequest es la línea tal como llega en el body; la cantidad es opcional.
// title debe venir aunque sea vacío.
type cartItemRequest struct {
	ProductID string   `json:"product_id" binding:"required,objectid"`
	Title     *string  `json:"title" binding:"required"`
	Price     *float64 `json:"price" binding:"required"`
	Image     *string  `json:"image"`
	Quantity  *int     `json:"quantity"`
	Variant   *string  `json:"variant"`
}

func (r *cartItemRequest) toModel() models.CartItem {
	quantity := 1
	if r.Quantity != nil {
		quantity = *r.Quantity
	}
	return models.CartItem{
		ProductID: r.ProductID,
		Title:     *r.Title,
		Price:     *r.Price,
		Image:     r.Image,
		Quantity:  quantity,
		Variant:   r.Variant,
	}
}

type AddToCartRequest struct {
	SessionID string           `json:"session_id" binding:"required"`
	Item      *cartItemRequest `json:"item" binding:"required"`
}

type RemoveFromCartRequest struct {
	SessionID string  `json:"session_id" binding:"required"`
	ProductID string  `json:"product_id" binding:"required,objectid"`
	Variant   *string `json:"variant"`
}

type CartHandler struct {
	carts   CartManager
	timeout time.Duration
}

func NewCartHandler(carts CartManager, timeout time.Duration) *CartHandler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CartHandler{carts: carts, timeout: timeout}
}

// GET /api/cart?session_id=...
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session_id is required", Field: "session_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	cart, err := h.carts.GetCart(ctx, sessionID)
	if errors.Is(err, models.ErrStoreUnavailable) {
		_ = c.Error(err)
		cart = models.EmptyCartView()
	} else if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// POST /api/cart/add
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.carts.AddItem(ctx, req.SessionID, req.Item.toModel()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusOK)
}

// POST /api/cart/remove
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req RemoveFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.carts.RemoveItem(ctx, req.SessionID, req.ProductID, req.Variant); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusOK)
}
