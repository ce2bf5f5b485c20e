package order

import (
	"errors"
	"net/http"

	"armenu/internal/cart"
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
// Checkout
// --------------------------------------------------
func (h *Handler) Checkout(c *gin.Context) {
	o, e, err := h.service.CheckoutDevice(c.Request.Context(), c.GetString("deviceID"), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrMissingDevice):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, restaurant.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, cart.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cart is temporarily unavailable"})
		case errors.Is(err, cart.ErrOrderingDisabled),
			errors.Is(err, ErrEmptyCart),
			errors.Is(err, ErrBelowMinimum):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "cart": e.Cart()})
		default:
			log.Error().Err(err).Str("restaurant_id", c.Param("id")).Msg("checkout failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, o)
}

// --------------------------------------------------
// List restaurant orders
// --------------------------------------------------
func (h *Handler) ListOrders(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orders, err := h.service.ListOrders(c.Request.Context(), c.Param("id"), userID)
	if errors.Is(err, ErrNotOwner) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []*Order{}
	}

	c.JSON(http.StatusOK, orders)
}

// --------------------------------------------------
// Get one order
// --------------------------------------------------
func (h *Handler) GetOrder(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	o, err := h.service.GetOrder(c.Request.Context(), c.Param("id"), userID)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
	default:
		c.JSON(http.StatusOK, o)
	}
}
