package menu

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /restaurants/:id/models (multipart)
// --------------------------------------------------
func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	header, err := c.FormFile("model_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model_file is required"})
		return
	}

	price, err := parsePrice(c.PostForm("price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	modelFile, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable model_file"})
		return
	}
	defer modelFile.Close()

	in := UploadInput{
		RestaurantID: c.Param("id"),
		UserID:       userID,
		Name:         c.PostForm("name"),
		Price:        price,
		Category:     c.PostForm("category"),
		Description:  c.PostForm("description"),
		Ingredients:  splitCSV(c.PostForm("ingredients")),
		Allergens:    splitCSV(c.PostForm("allergens")),
		ModelFile:    File{Name: header.Filename, Body: modelFile},
	}

	if thumbHeader, err := c.FormFile("thumbnail"); err == nil {
		thumb, err := thumbHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable thumbnail"})
			return
		}
		defer thumb.Close()
		in.ThumbnailFile = &File{Name: thumbHeader.Filename, Body: thumb}
	}

	m, err := h.service.UploadModel(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// --------------------------------------------------
// GET /restaurants/:id/models
// --------------------------------------------------
func (h *Handler) ListMenu(c *gin.Context) {
	models, err := h.service.ListMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menu"})
		return
	}
	if models == nil {
		models = []*Model3D{}
	}

	c.JSON(http.StatusOK, models)
}

// --------------------------------------------------
// GET /models/:id
// --------------------------------------------------
func (h *Handler) GetModel(c *gin.Context) {
	m, err := h.service.ViewModel(c.Request.Context(), c.Param("id"), c.Request.UserAgent())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// PATCH /models/:id/price
// --------------------------------------------------
func (h *Handler) UpdatePrice(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Price *float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.service.UpdatePrice(c.Request.Context(), c.Param("id"), userID, req.Price)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrModelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidModel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parsePrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
