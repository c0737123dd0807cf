// internal/store/store.go
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/genun/genun-backend/internal/models"
)

var (
	// ErrNotFound is returned when the queried document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate document")
)

type ManufacturerStore interface {
	Insert(ctx context.Context, m *models.Manufacturer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Manufacturer, error)
	FindByEmail(ctx context.Context, email string) (*models.Manufacturer, error)
	// FindSummary resolves the public fields used in authentication payloads.
	FindSummary(ctx context.Context, id primitive.ObjectID) (*models.ManufacturerSummary, error)
	SetEmailVerified(ctx context.Context, id primitive.ObjectID) error
	SetContractAddress(ctx context.Context, id primitive.ObjectID, addr string) error
	SetFirstTimeLogin(ctx context.Context, id primitive.ObjectID, firstTime bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	// FindByProductID looks up by the public numeric identifier, never by _id.
	FindByProductID(ctx context.Context, productID int64) (*models.Product, error)
	FindByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) ([]models.Product, error)
	CountByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) (int64, error)
}

type CategoryStore interface {
	Insert(ctx context.Context, c *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindByName(ctx context.Context, manufacturer primitive.ObjectID, name string) (*models.Category, error)
	FindByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) ([]models.Category, error)
	// AppendProduct adds a public product identifier to the member list.
	AppendProduct(ctx context.Context, id primitive.ObjectID, productID int64) error
	CountByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) (int64, error)
}

// AuthenticationStore is append-only: records are never mutated or deleted.
type AuthenticationStore interface {
	Insert(ctx context.Context, r *models.AuthenticationRecord) error
	FindByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) ([]models.AuthenticationRecord, error)
	CountByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) (int64, error)
}

// Stores is the process-wide handle bundle constructed once at startup and
// passed into each workflow. Every implementation consults the registration
// gate before touching its collection.
type Stores struct {
	Manufacturers   ManufacturerStore
	Products        ProductStore
	Categories      CategoryStore
	Authentications AuthenticationStore
}
