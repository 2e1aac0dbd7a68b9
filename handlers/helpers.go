package handlers

import (
	"errors"
	"net/http"
	"strings"

	"doitto/database/repository"
	"doitto/middleware"
	"doitto/models"
	"doitto/services/helper"
	"doitto/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HelperHandler serves the helper directory.
type HelperHandler struct {
	Helpers helper.HelperService
}

func NewHelperHandler(helpers helper.HelperService) *HelperHandler {
	return &HelperHandler{Helpers: helpers}
}

// ListHelpersHandler handles GET /api/helpers.
func (h *HelperHandler) ListHelpersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Helpers.ListAll(c.Request.Context()))
}

// SearchHelpersHandler handles GET /api/helpers/search?category=&zipcode=.
// A zipcode is required; when it is missing the caller's resolved zipcode is
// offered back as a suggestion.
func (h *HelperHandler) SearchHelpersHandler(c *gin.Context) {
	zipcode := strings.TrimSpace(c.Query("zipcode"))
	category := strings.TrimSpace(c.Query("category"))
	if zipcode == "" {
		resp := gin.H{"error": "zipcode is required"}
		if hint := middleware.ZipcodeHint(c); hint != "" {
			resp["suggestedZipcode"] = hint
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, h.Helpers.Search(c.Request.Context(), category, zipcode))
}

// GetHelperHandler handles GET /api/helpers/:id.
func (h *HelperHandler) GetHelperHandler(c *gin.Context) {
	found, ok := h.Helpers.GetByID(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "helper not found"})
		return
	}
	c.JSON(http.StatusOK, found)
}

// CreateHelperHandler handles POST /api/helpers.
func (h *HelperHandler) CreateHelperHandler(c *gin.Context) {
	var req models.Helper
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Reviews = nil
	req.Rating, req.RatingCount = 0, 0

	id, err := h.Helpers.Create(c.Request.Context(), &req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create helper", err.Error())
		return
	}
	getLogger(c).Info("Helper added", zap.String("helperID", id), zap.String("by", middleware.CurrentUserID(c)))
	c.JSON(http.StatusCreated, req)
}

// UpdateHelperHandler handles PATCH /api/helpers/:id with a partial field map.
func (h *HelperHandler) UpdateHelperHandler(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	err := h.Helpers.Update(c.Request.Context(), id, fields)
	var fieldErr helper.UnknownFieldError
	switch {
	case err == nil:
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Error()})
		return
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "helper not found"})
		return
	default:
		utils.JSONError(c, http.StatusInternalServerError, "failed to update helper", err.Error())
		return
	}

	updated, ok := h.Helpers.GetByID(c.Request.Context(), id)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"message": "Helper updated"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

type reviewRequest struct {
	Rating  int      `json:"rating" binding:"required"`
	Comment string   `json:"comment"`
	Photos  []string `json:"photos"`
}

// AddReviewHandler handles POST /api/helpers/:id/reviews.
func (h *HelperHandler) AddReviewHandler(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Helpers.AddReview(c.Request.Context(), c.Param("id"), models.Review{
		ReviewerUserID: middleware.CurrentUserID(c),
		Rating:         req.Rating,
		Comment:        strings.TrimSpace(req.Comment),
		Photos:         req.Photos,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, updated)
	case errors.Is(err, helper.ErrInvalidReview):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "helper not found"})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "failed to add review", err.Error())
	}
}
