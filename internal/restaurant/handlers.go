package restaurant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	restaurant, err := h.service.CreateRestaurant(c.Request.Context(), req.Name, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, restaurant)
}

// --------------------------------------------------
// List restaurants owned by user
// --------------------------------------------------
func (h *Handler) ListMyRestaurants(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	restaurants, err := h.service.ListMyRestaurants(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch restaurants"})
		return
	}
	if restaurants == nil {
		restaurants = []*Restaurant{}
	}

	c.JSON(http.StatusOK, restaurants)
}

// --------------------------------------------------
// GET /restaurants/:id/pos
// --------------------------------------------------
func (h *Handler) GetPOSConfig(c *gin.Context) {
	cfg, err := h.service.GetPOSConfig(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrRestaurantNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pos config"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// --------------------------------------------------
// PUT /restaurants/:id/pos
// --------------------------------------------------
func (h *Handler) UpdatePOSConfig(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req POSConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cfg, err := h.service.UpdatePOSConfig(c.Request.Context(), c.Param("id"), userID, req)
	switch {
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cfg)
}
