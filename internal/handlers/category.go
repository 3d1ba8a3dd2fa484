package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/dto"
	apierrors "tasktrack/internal/errors"
	"tasktrack/internal/services"
)

// CategoryHandler coordinates category-related HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create adds a new category.
func (h *CategoryHandler) Create(c *gin.Context) {
	type CreateCategoryRequest struct {
		Name string `json:"name"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(req.Name)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// List returns all categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTOs(categories))
}

// Delete removes a category; tasks referencing it keep existing with their
// category cleared.
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category id")
		return
	}

	if err := h.categoryService.Delete(categoryID); err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted",
	})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCategoryExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
