// internal/handlers/category.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/genun/genun-backend/internal/services"
	"github.com/genun/genun-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// POST /v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), manufacturerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created",
		"category": category,
	})
}

// GET /v1/categories/products
func (h *CategoryHandler) ListWithProducts(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	categories, err := h.categoryService.ListCategoriesWithProducts(c.Request.Context(), manufacturerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GET /v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), manufacturerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
