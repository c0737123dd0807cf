// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/genun/genun-backend/internal/services"
	"github.com/genun/genun-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	manufacturer, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registration successful, please verify your email",
		"manufacturer": manufacturer,
	})
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("x-auth-token", result.Token)
	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"token":        result.Token,
		"manufacturer": result.Manufacturer,
	})
}

// POST /v1/auth/send-verification
func (h *AuthHandler) SendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "A valid email is required")
		return
	}

	if err := h.authService.SendVerification(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Verification email sent")
}

// GET /v1/auth/verify-email/:token
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Email verified")
}

// GET /v1/auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	manufacturer, err := h.authService.GetManufacturer(c.Request.Context(), manufacturerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"manufacturer": manufacturer})
}

// PUT /v1/auth/contract-address
func (h *AuthHandler) UpdateContractAddress(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ContractAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := h.authService.UpdateContractAddress(c.Request.Context(), manufacturerID, &req); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Contract address updated")
}

// DELETE /v1/auth/delete
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	manufacturerID, ok := utils.GetManufacturerIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), manufacturerID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Account deleted")
}
