package handlers

import (
	"errors"
	"net/http"

	"doitto/services/catalog"
	"doitto/utils"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the service category catalog.
type CategoryHandler struct {
	Catalog catalog.CatalogService
}

func NewCategoryHandler(svc catalog.CatalogService) *CategoryHandler {
	return &CategoryHandler{Catalog: svc}
}

// ListCategoriesHandler handles GET /api/categories?q=.
func (h *CategoryHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.Catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load categories", err.Error())
		return
	}
	c.JSON(http.StatusOK, categories)
}

type categoryNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddCategoryHandler handles POST /api/categories.
func (h *CategoryHandler) AddCategoryHandler(c *gin.Context) {
	var req categoryNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.Catalog.Add(c.Request.Context(), req.Name)
	if err != nil {
		writeCategoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": req.Name, "subcategories": []string{}})
}

// ResolveCategoryHandler handles POST /api/categories/resolve: select the
// category matching the name, or add it when there is none.
func (h *CategoryHandler) ResolveCategoryHandler(c *gin.Context) {
	var req categoryNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, created, err := h.Catalog.FindOrCreate(c.Request.Context(), req.Name)
	if err != nil {
		writeCategoryError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"category": cat, "created": created})
}

func writeCategoryError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNameRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "failed to save category", err.Error())
}
