// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/genun/genun-backend/internal/services"
	"github.com/genun/genun-backend/internal/utils"
)

// respondServiceError translates service sentinels into HTTP responses.
// Every handler funnels its error path through here so the taxonomy maps
// to statuses in exactly one place.
func respondServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "Product not found")
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.NotFoundResponse(c, "Category not found")
	case errors.Is(err, services.ErrManufacturerNotFound):
		utils.NotFoundResponse(c, "Manufacturer not found")
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.ConflictResponse(c, "An account with this email already exists")
	case errors.Is(err, services.ErrDuplicateCategory):
		utils.ConflictResponse(c, "A category with this name already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, "Invalid credentials")
	case errors.Is(err, services.ErrInvalidToken):
		utils.BadRequestResponse(c, "Invalid or expired token")
	case errors.Is(err, services.ErrIncompleteProduct):
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.CodeIncompleteProduct,
			"Product record is incomplete", err)
	case errors.Is(err, services.ErrFileTooLarge):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeFileTooLarge,
			"File exceeds the maximum allowed size", nil)
	case errors.Is(err, services.ErrInvalidFileType):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeInvalidFileType,
			"Only JPEG, PNG and GIF images are accepted", nil)
	case errors.Is(err, services.ErrUploadTimeout):
		utils.ErrorResponse(c, http.StatusRequestTimeout, utils.CodeUploadTimeout,
			"Image upload timed out", nil)
	case errors.Is(err, services.ErrUploadFailed):
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.CodeUploadError,
			"Image upload failed", err)
	case errors.Is(err, services.ErrMailDelivery):
		utils.ErrorResponse(c, http.StatusBadGateway, utils.CodeUpstreamError,
			"Verification email could not be sent", err)
	default:
		utils.InternalErrorResponse(c, err)
	}
}
