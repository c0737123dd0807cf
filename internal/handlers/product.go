// internal/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/genun/genun-backend/internal/services"
	"github.com/genun/genun-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /v1/products/:productId
// Public endpoint: an end consumer checks the identifier printed on the
// product. No authentication required.
func (h *ProductHandler) Authenticate(c *gin.Context) {
	rawID := c.Param("productId")
	requester := c.Request.UserAgent()

	result, err := h.productService.Authenticate(c.Request.Context(), rawID, requester)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product authenticated",
		"product": result,
	})
}

// POST /v1/products (multipart/form-data)
func (h *ProductHandler) Create(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid form data")
		return
	}

	// A product is never registered without its image.
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "No file uploaded")
		return
	}
	defer file.Close()

	upload, err := h.storageService.UploadProductImage(c.Request.Context(), file, header)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), manufacturerID, &req, upload.URL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
		"product": product,
	})
}

// GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), manufacturerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /v1/authentications
func (h *ProductHandler) ListAuthentications(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	records, err := h.productService.ListAuthentications(c.Request.Context(), manufacturerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authentications": records})
}

// GET /v1/stats
func (h *ProductHandler) GetStats(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	stats, err := h.productService.GetStats(c.Request.Context(), manufacturerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
