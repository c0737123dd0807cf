// internal/services/errors.go
package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP statuses with errors.Is; anything not listed here is a 500.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrManufacturerNotFound = errors.New("manufacturer not found")

	ErrDuplicateEmail    = errors.New("manufacturer with this email already exists")
	ErrDuplicateCategory = errors.New("category with this name already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// ErrIncompleteProduct marks a product whose owning manufacturer no
	// longer resolves. The lookup is aborted before any response payload
	// is assembled.
	ErrIncompleteProduct = errors.New("product record references an unresolvable manufacturer")

	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrInvalidFileType = errors.New("only JPEG, PNG and GIF images are accepted")
	ErrUploadTimeout   = errors.New("image upload timed out")
	ErrUploadFailed    = errors.New("image upload failed")

	ErrMailDelivery = errors.New("verification email could not be sent")
)
