// internal/store/mongo.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/genun/genun-backend/internal/database"
	"github.com/genun/genun-backend/internal/models"
)

// NewMongoStores builds the four collection stores behind one registration
// gate. No operation reaches Mongo until the gate reports ready.
func NewMongoStores(db *mongo.Database, gate *database.Gate) *Stores {
	return &Stores{
		Manufacturers:   &mongoManufacturerStore{col: db.Collection(models.CollManufacturers), gate: gate},
		Products:        &mongoProductStore{col: db.Collection(models.CollProducts), gate: gate},
		Categories:      &mongoCategoryStore{col: db.Collection(models.CollCategories), gate: gate},
		Authentications: &mongoAuthenticationStore{col: db.Collection(models.CollAuthentications), gate: gate},
	}
}

func mapMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// ─── Manufacturers ───────────────────────────────────────────────────────────

type mongoManufacturerStore struct {
	col  *mongo.Collection
	gate *database.Gate
}

func (s *mongoManufacturerStore) Insert(ctx context.Context, m *models.Manufacturer) error {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return err
	}

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, m)
	if err != nil {
		return fmt.Errorf("manufacturers: insert: %w", mapMongoError(err))
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

func (s *mongoManufacturerStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Manufacturer, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	var m models.Manufacturer
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, mapMongoError(err)
	}
	return &m, nil
}

func (s *mongoManufacturerStore) FindByEmail(ctx context.Context, email string) (*models.Manufacturer, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	var m models.Manufacturer
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&m); err != nil {
		return nil, mapMongoError(err)
	}
	return &m, nil
}

func (s *mongoManufacturerStore) FindSummary(ctx context.Context, id primitive.ObjectID) (*models.ManufacturerSummary, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	opts := options.FindOne().SetProjection(bson.M{"name": 1, "contractAddress": 1})
	var summary models.ManufacturerSummary
	if err := s.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&summary); err != nil {
		return nil, mapMongoError(err)
	}
	return &summary, nil
}

func (s *mongoManufacturerStore) SetEmailVerified(ctx context.Context, id primitive.ObjectID) error {
	return s.update(ctx, id, bson.M{"isEmailVerified": true})
}

func (s *mongoManufacturerStore) SetContractAddress(ctx context.Context, id primitive.ObjectID, addr string) error {
	return s.update(ctx, id, bson.M{"contractAddress": addr})
}

func (s *mongoManufacturerStore) SetFirstTimeLogin(ctx context.Context, id primitive.ObjectID, firstTime bool) error {
	return s.update(ctx, id, bson.M{"isFirstTimeLogin": firstTime})
}

func (s *mongoManufacturerStore) update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return err
	}

	fields["updatedAt"] = time.Now()
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("manufacturers: update: %w", mapMongoError(err))
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoManufacturerStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return err
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("manufacturers: delete: %w", mapMongoError(err))
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── Products ────────────────────────────────────────────────────────────────

type mongoProductStore struct {
	col  *mongo.Collection
	gate *database.Gate
}

func (s *mongoProductStore) Insert(ctx context.Context, p *models.Product) error {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return err
	}

	p.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("products: insert: %w", mapMongoError(err))
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *mongoProductStore) FindByProductID(ctx context.Context, productID int64) (*models.Product, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	var p models.Product
	if err := s.col.FindOne(ctx, bson.M{"productId": productID}).Decode(&p); err != nil {
		return nil, mapMongoError(err)
	}
	return &p, nil
}

func (s *mongoProductStore) FindByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) ([]models.Product, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	cursor, err := s.col.Find(ctx, bson.M{"manufacturer": manufacturer})
	if err != nil {
		return nil, fmt.Errorf("products: find: %w", err)
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}

func (s *mongoProductStore) CountByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) (int64, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return 0, err
	}
	return s.col.CountDocuments(ctx, bson.M{"manufacturer": manufacturer})
}

// ─── Categories ──────────────────────────────────────────────────────────────

type mongoCategoryStore struct {
	col  *mongo.Collection
	gate *database.Gate
}

func (s *mongoCategoryStore) Insert(ctx context.Context, c *models.Category) error {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return err
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Products == nil {
		c.Products = []int64{}
	}

	res, err := s.col.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("categories: insert: %w", mapMongoError(err))
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

func (s *mongoCategoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	var c models.Category
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, mapMongoError(err)
	}
	return &c, nil
}

func (s *mongoCategoryStore) FindByName(ctx context.Context, manufacturer primitive.ObjectID, name string) (*models.Category, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	var c models.Category
	filter := bson.M{"manufacturer": manufacturer, "name": name}
	if err := s.col.FindOne(ctx, filter).Decode(&c); err != nil {
		return nil, mapMongoError(err)
	}
	return &c, nil
}

func (s *mongoCategoryStore) FindByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) ([]models.Category, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	cursor, err := s.col.Find(ctx, bson.M{"manufacturer": manufacturer})
	if err != nil {
		return nil, fmt.Errorf("categories: find: %w", err)
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("categories: decode: %w", err)
	}
	return categories, nil
}

func (s *mongoCategoryStore) AppendProduct(ctx context.Context, id primitive.ObjectID, productID int64) error {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{"products": productID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("categories: append product: %w", mapMongoError(err))
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoCategoryStore) CountByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) (int64, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return 0, err
	}
	return s.col.CountDocuments(ctx, bson.M{"manufacturer": manufacturer})
}

// ─── Authentications ─────────────────────────────────────────────────────────

type mongoAuthenticationStore struct {
	col  *mongo.Collection
	gate *database.Gate
}

func (s *mongoAuthenticationStore) Insert(ctx context.Context, r *models.AuthenticationRecord) error {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return err
	}

	r.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, r)
	if err != nil {
		return fmt.Errorf("authentications: insert: %w", mapMongoError(err))
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = oid
	}
	return nil
}

func (s *mongoAuthenticationStore) FindByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) ([]models.AuthenticationRecord, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"manufacturer": manufacturer}, opts)
	if err != nil {
		return nil, fmt.Errorf("authentications: find: %w", err)
	}
	var records []models.AuthenticationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("authentications: decode: %w", err)
	}
	return records, nil
}

func (s *mongoAuthenticationStore) CountByManufacturer(ctx context.Context, manufacturer primitive.ObjectID) (int64, error) {
	if err := s.gate.EnsureReady(ctx); err != nil {
		return 0, err
	}
	return s.col.CountDocuments(ctx, bson.M{"manufacturer": manufacturer})
}
