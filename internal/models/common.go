// internal/models/common.go
package models

// AuthStatus is the outcome recorded for one product-lookup attempt.
type AuthStatus string

const (
	AuthStatusPassed AuthStatus = "passed"
	AuthStatusFailed AuthStatus = "failed"
)

// UnknownProductName is the snapshot stored when a lookup misses.
const UnknownProductName = "Unknown Product"

// Collection names. The registration gate creates the indexes for all four
// before any store operation is allowed through.
const (
	CollManufacturers   = "manufacturers"
	CollProducts        = "products"
	CollCategories      = "categories"
	CollAuthentications = "authentications"
)
