package cart

import (
	"errors"
	"net/http"

	"armenu/internal/menu"
	"armenu/internal/restaurant"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Get cart
// --------------------------------------------------
func (h *Handler) GetCart(c *gin.Context) {
	e, ok := h.open(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, e)
}

// --------------------------------------------------
// Add item
// --------------------------------------------------
func (h *Handler) AddItem(c *gin.Context) {
	var req struct {
		ModelID  string       `json:"model_id" binding:"required"`
		Quantity *int         `json:"quantity"`
		Options  []ItemOption `json:"options" binding:"omitempty,dive"`
		Notes    string       `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	e, ok := h.open(c)
	if !ok {
		return
	}

	err := h.service.AddItem(c.Request.Context(), e, req.ModelID, quantity, req.Options, req.Notes)
	if errors.Is(err, menu.ErrModelNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "model not found"})
		return
	}
	h.finish(c, e, err, http.StatusCreated)
}

// --------------------------------------------------
// Update item quantity
// --------------------------------------------------
func (h *Handler) UpdateItem(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	e, ok := h.open(c)
	if !ok {
		return
	}

	err := e.UpdateQuantity(c.Request.Context(), c.Param("item_id"), *req.Quantity)
	h.finish(c, e, err, http.StatusOK)
}

// --------------------------------------------------
// Remove item
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	e, ok := h.open(c)
	if !ok {
		return
	}

	err := e.RemoveFromCart(c.Request.Context(), c.Param("item_id"))
	h.finish(c, e, err, http.StatusOK)
}

// --------------------------------------------------
// Clear cart
// --------------------------------------------------
func (h *Handler) ClearCart(c *gin.Context) {
	e, ok := h.open(c)
	if !ok {
		return
	}

	err := e.ClearCart(c.Request.Context())
	h.finish(c, e, err, http.StatusOK)
}

func (h *Handler) open(c *gin.Context) (*Engine, bool) {
	e, err := h.service.Open(c.Request.Context(), c.GetString("deviceID"), c.Param("id"))
	switch {
	case err == nil:
		return e, true
	case errors.Is(err, ErrMissingDevice):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, restaurant.ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrStoreUnavailable):
		log.Error().Err(err).Str("restaurant_id", c.Param("id")).Msg("cart store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cart is temporarily unavailable"})
	default:
		log.Error().Err(err).Str("restaurant_id", c.Param("id")).Msg("failed to open cart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
	}
	return nil, false
}

func (h *Handler) finish(c *gin.Context, e *Engine, err error, okStatus int) {
	switch {
	case err == nil:
		respond(c, okStatus, e)
	case IsRejection(err):
		respond(c, http.StatusUnprocessableEntity, e)
	case errors.Is(err, ErrPersist):
		// the unsaved cart would not survive the next request
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": e.Error()})
	default:
		log.Error().Err(err).Msg("cart operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart operation failed"})
	}
}

// respond writes the standard cart body.
func respond(c *gin.Context, status int, e *Engine) {
	c.JSON(status, gin.H{
		"cart":       e.Cart(),
		"item_count": e.ItemCount(),
		"error":      e.Error(),
	})
}

// IsRejection reports whether err is an add precondition failure, which
// leaves the cart untouched.
func IsRejection(err error) bool {
	return errors.Is(err, ErrOrderingDisabled) ||
		errors.Is(err, ErrMissingPrice) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidOption) ||
		errors.Is(err, ErrWrongRestaurant)
}
