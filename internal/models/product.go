// internal/models/product.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is registered once and never updated in place. ProductID is the
// public lookup key; the Mongo _id stays internal.
type Product struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ProductID    int64              `json:"productId" bson:"productId"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	NafdacID     string             `json:"nafdacId" bson:"nafdacId"`
	Quantity     int                `json:"quantity" bson:"quantity"`
	ExpiryDate   string             `json:"expiryDate" bson:"expiryDate"`
	Barcode      string             `json:"barcode" bson:"barcode"`
	Category     primitive.ObjectID `json:"-" bson:"category"`
	Manufacturer primitive.ObjectID `json:"-" bson:"manufacturer"`
	ImageURL     string             `json:"imageUrl" bson:"imageUrl"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
}

// AuthenticatedProduct is the lookup payload: the product plus its resolved
// owner. A product whose owner cannot be resolved never reaches a response.
type AuthenticatedProduct struct {
	*Product
	Manufacturer *ManufacturerSummary `json:"manufacturer"`
}
