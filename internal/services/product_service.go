// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/genun/genun-backend/internal/models"
	"github.com/genun/genun-backend/internal/store"
	"github.com/genun/genun-backend/internal/utils"
)

type ProductService struct {
	stores *store.Stores
}

func NewProductService(stores *store.Stores) *ProductService {
	return &ProductService{stores: stores}
}

type CreateProductRequest struct {
	Name        string `form:"name" validate:"required,min=1,max=200"`
	Description string `form:"description" validate:"max=2000"`
	NafdacID    string `form:"nafdacId" validate:"max=100"`
	Quantity    int    `form:"quantity" validate:"min=0"`
	ExpiryDate  string `form:"expiryDate" validate:"max=50"`
	Barcode     string `form:"barcode" validate:"max=100"`
	Category    string `form:"category" validate:"required,objectid"`
}

// Authenticate resolves a public product identifier for an end consumer.
// Every call whose lookup completes leaves exactly one audit record,
// passed or failed. A storage failure while writing that record is logged
// and swallowed so the caller still gets the lookup outcome.
func (s *ProductService) Authenticate(ctx context.Context, rawID, requester string) (*models.AuthenticatedProduct, error) {
	rawID = strings.TrimSpace(rawID)

	var (
		product *models.Product
		err     error
	)
	if productID, parseErr := strconv.ParseInt(rawID, 10, 64); parseErr == nil {
		product, err = s.stores.Products.FindByProductID(ctx, productID)
	} else {
		// A non-numeric token can never match a stored identifier.
		err = store.ErrNotFound
	}

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.recordAttempt(ctx, &models.AuthenticationRecord{
				Product:   models.UnknownProductName,
				ProductID: rawID,
				Requester: requester,
				Status:    models.AuthStatusFailed,
			})
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("product lookup: %w", err)
	}

	owner, err := s.stores.Manufacturers.FindSummary(ctx, product.Manufacturer)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logrus.WithFields(logrus.Fields{
				"product_id":   product.ProductID,
				"manufacturer": product.Manufacturer.Hex(),
			}).Error("Product references a manufacturer that does not exist")
			return nil, ErrIncompleteProduct
		}
		return nil, fmt.Errorf("manufacturer lookup: %w", err)
	}

	s.recordAttempt(ctx, &models.AuthenticationRecord{
		Product:      product.Name,
		ProductID:    rawID,
		Requester:    requester,
		Status:       models.AuthStatusPassed,
		Manufacturer: &owner.ID,
	})

	return &models.AuthenticatedProduct{Product: product, Manufacturer: owner}, nil
}

// recordAttempt writes the audit entry for one lookup. One attempt, no
// retry: the lookup result must not depend on audit storage health.
func (s *ProductService) recordAttempt(ctx context.Context, record *models.AuthenticationRecord) {
	if err := s.stores.Authentications.Insert(ctx, record); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"product_id": record.ProductID,
			"status":     record.Status,
		}).Error("Failed to record authentication attempt")
	}
}

// CreateProduct registers a product under the calling manufacturer and
// links it into the chosen category.
func (s *ProductService) CreateProduct(ctx context.Context, manufacturerID primitive.ObjectID, req *CreateProductRequest, imageURL string) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	category, err := s.stores.Categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("category lookup: %w", err)
	}
	// Categories are scoped to their owner.
	if category.Manufacturer != manufacturerID {
		return nil, ErrCategoryNotFound
	}

	product := &models.Product{
		ProductID:    NewProductID(),
		Name:         req.Name,
		Description:  req.Description,
		NafdacID:     req.NafdacID,
		Quantity:     req.Quantity,
		ExpiryDate:   req.ExpiryDate,
		Barcode:      req.Barcode,
		Category:     category.ID,
		Manufacturer: manufacturerID,
		ImageURL:     imageURL,
	}

	if err := s.stores.Products.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("product insert: %w", err)
	}

	// Category membership is eventually consistent with the product
	// document. The product is already committed, so a failure here is
	// logged rather than surfaced.
	if err := s.stores.Categories.AppendProduct(ctx, category.ID, product.ProductID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"product_id": product.ProductID,
			"category":   category.ID.Hex(),
		}).Warn("Failed to link product into category")
	}

	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, manufacturerID primitive.ObjectID) ([]models.Product, error) {
	products, err := s.stores.Products.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *ProductService) ListAuthentications(ctx context.Context, manufacturerID primitive.ObjectID) ([]models.AuthenticationRecord, error) {
	records, err := s.stores.Authentications.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.AuthenticationRecord{}
	}
	return records, nil
}

type ManufacturerStats struct {
	Products        int64 `json:"products"`
	Categories      int64 `json:"categories"`
	Authentications int64 `json:"authentications"`
}

func (s *ProductService) GetStats(ctx context.Context, manufacturerID primitive.ObjectID) (*ManufacturerStats, error) {
	products, err := s.stores.Products.CountByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	categories, err := s.stores.Categories.CountByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	authentications, err := s.stores.Authentications.CountByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	return &ManufacturerStats{
		Products:        products,
		Categories:      categories,
		Authentications: authentications,
	}, nil
}

// NewProductID builds the public identifier: current millisecond timestamp
// concatenated with a 4-digit random suffix, read back as one integer.
// Collisions are theoretically possible inside the same millisecond and
// are tolerated; the keyspace makes them vanishingly rare in practice.
func NewProductID() int64 {
	return productIDAt(time.Now(), 1000+rand.Intn(9000))
}

func productIDAt(t time.Time, suffix int) int64 {
	id, _ := strconv.ParseInt(fmt.Sprintf("%d%04d", t.UnixMilli(), suffix), 10, 64)
	return id
}
