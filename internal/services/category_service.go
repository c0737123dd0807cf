// internal/services/category_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/genun/genun-backend/internal/models"
	"github.com/genun/genun-backend/internal/store"
	"github.com/genun/genun-backend/internal/utils"
)

type CategoryService struct {
	stores *store.Stores
}

func NewCategoryService(stores *store.Stores) *CategoryService {
	return &CategoryService{stores: stores}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// CreateCategory adds a category for the calling manufacturer. Names are
// unique per manufacturer only; two manufacturers can each own "Syrups".
func (s *CategoryService) CreateCategory(ctx context.Context, manufacturerID primitive.ObjectID, req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	// Pre-check for a friendlier error; the compound unique index still
	// backs this up under concurrent inserts.
	if _, err := s.stores.Categories.FindByName(ctx, manufacturerID, req.Name); err == nil {
		return nil, ErrDuplicateCategory
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("category lookup: %w", err)
	}

	category := &models.Category{
		Name:         req.Name,
		Description:  req.Description,
		Manufacturer: manufacturerID,
		Products:     []int64{},
	}

	if err := s.stores.Categories.Insert(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("category insert: %w", err)
	}

	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, manufacturerID primitive.ObjectID) ([]models.Category, error) {
	categories, err := s.stores.Categories.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// CategoryProducts is one category with its member identifiers resolved
// into full product documents.
type CategoryProducts struct {
	Category models.Category  `json:"category"`
	Products []models.Product `json:"products"`
}

// ListCategoriesWithProducts builds the dashboard view: every category of
// the manufacturer with its product list populated. Member identifiers
// whose product document no longer resolves are skipped.
func (s *CategoryService) ListCategoriesWithProducts(ctx context.Context, manufacturerID primitive.ObjectID) ([]CategoryProducts, error) {
	categories, err := s.stores.Categories.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	products, err := s.stores.Products.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}

	byProductID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byProductID[p.ProductID] = p
	}

	out := make([]CategoryProducts, 0, len(categories))
	for _, category := range categories {
		resolved := []models.Product{}
		for _, id := range category.Products {
			if p, ok := byProductID[id]; ok {
				resolved = append(resolved, p)
			}
		}
		out = append(out, CategoryProducts{Category: category, Products: resolved})
	}
	return out, nil
}
