// internal/services/fakes_test.go
package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/genun/genun-backend/internal/models"
	"github.com/genun/genun-backend/internal/store"
)

// In-memory store fakes. They mirror the Mongo implementations closely
// enough for workflow tests: sentinel errors, duplicate detection and
// copy-on-read semantics.

func newTestStores() (*store.Stores, *fakeStores) {
	f := &fakeStores{
		manufacturers:   &fakeManufacturerStore{docs: map[primitive.ObjectID]*models.Manufacturer{}},
		products:        &fakeProductStore{},
		categories:      &fakeCategoryStore{docs: map[primitive.ObjectID]*models.Category{}},
		authentications: &fakeAuthenticationStore{},
	}
	s := &store.Stores{
		Manufacturers:   f.manufacturers,
		Products:        f.products,
		Categories:      f.categories,
		Authentications: f.authentications,
	}
	return s, f
}

type fakeStores struct {
	manufacturers   *fakeManufacturerStore
	products        *fakeProductStore
	categories      *fakeCategoryStore
	authentications *fakeAuthenticationStore
}

type fakeManufacturerStore struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*models.Manufacturer
}

func (f *fakeManufacturerStore) Insert(_ context.Context, m *models.Manufacturer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.docs {
		if existing.Email == m.Email {
			return store.ErrDuplicate
		}
	}
	m.ID = primitive.NewObjectID()
	cp := *m
	f.docs[m.ID] = &cp
	return nil
}

func (f *fakeManufacturerStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Manufacturer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeManufacturerStore) FindByEmail(_ context.Context, email string) (*models.Manufacturer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.docs {
		if m.Email == email {
			cp := *m
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeManufacturerStore) FindSummary(_ context.Context, id primitive.ObjectID) (*models.ManufacturerSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return m.Summary(), nil
}

func (f *fakeManufacturerStore) SetEmailVerified(_ context.Context, id primitive.ObjectID) error {
	return f.update(id, func(m *models.Manufacturer) { m.IsEmailVerified = true })
}

func (f *fakeManufacturerStore) SetContractAddress(_ context.Context, id primitive.ObjectID, addr string) error {
	return f.update(id, func(m *models.Manufacturer) { m.ContractAddress = addr })
}

func (f *fakeManufacturerStore) SetFirstTimeLogin(_ context.Context, id primitive.ObjectID, firstTime bool) error {
	return f.update(id, func(m *models.Manufacturer) { m.IsFirstTimeLogin = firstTime })
}

func (f *fakeManufacturerStore) update(id primitive.ObjectID, apply func(*models.Manufacturer)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.docs[id]
	if !ok {
		return store.ErrNotFound
	}
	apply(m)
	return nil
}

func (f *fakeManufacturerStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

type fakeProductStore struct {
	mu   sync.Mutex
	docs []models.Product
}

func (f *fakeProductStore) Insert(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	f.docs = append(f.docs, *p)
	return nil
}

func (f *fakeProductStore) FindByProductID(_ context.Context, productID int64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.docs {
		if f.docs[i].ProductID == productID {
			cp := f.docs[i]
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductStore) FindByManufacturer(_ context.Context, manufacturer primitive.ObjectID) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.docs {
		if p.Manufacturer == manufacturer {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) CountByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) (int64, error) {
	products, _ := f.FindByManufacturer(ctx, manufacturer)
	return int64(len(products)), nil
}

type fakeCategoryStore struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*models.Category
}

func (f *fakeCategoryStore) Insert(_ context.Context, c *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.docs {
		if existing.Manufacturer == c.Manufacturer && existing.Name == c.Name {
			return store.ErrDuplicate
		}
	}
	c.ID = primitive.NewObjectID()
	cp := *c
	f.docs[c.ID] = &cp
	return nil
}

func (f *fakeCategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryStore) FindByName(_ context.Context, manufacturer primitive.ObjectID, name string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.docs {
		if c.Manufacturer == manufacturer && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCategoryStore) FindByManufacturer(_ context.Context, manufacturer primitive.ObjectID) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Category
	for _, c := range f.docs {
		if c.Manufacturer == manufacturer {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCategoryStore) AppendProduct(_ context.Context, id primitive.ObjectID, productID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.docs[id]
	if !ok {
		return store.ErrNotFound
	}
	c.Products = append(c.Products, productID)
	return nil
}

func (f *fakeCategoryStore) CountByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) (int64, error) {
	categories, _ := f.FindByManufacturer(ctx, manufacturer)
	return int64(len(categories)), nil
}

type fakeAuthenticationStore struct {
	mu        sync.Mutex
	insertErr error
	attempts  int
	records   []models.AuthenticationRecord
}

func (f *fakeAuthenticationStore) Insert(_ context.Context, r *models.AuthenticationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.insertErr != nil {
		return f.insertErr
	}
	r.ID = primitive.NewObjectID()
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeAuthenticationStore) FindByManufacturer(_ context.Context, manufacturer primitive.ObjectID) ([]models.AuthenticationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AuthenticationRecord
	for _, r := range f.records {
		if r.Manufacturer != nil && *r.Manufacturer == manufacturer {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAuthenticationStore) CountByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) (int64, error) {
	records, _ := f.FindByManufacturer(ctx, manufacturer)
	return int64(len(records)), nil
}

func (f *fakeAuthenticationStore) all() []models.AuthenticationRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.AuthenticationRecord(nil), f.records...)
}

func (f *fakeAuthenticationStore) insertAttempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}
