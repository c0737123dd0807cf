// internal/models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products under one manufacturer. Name is unique per
// manufacturer, enforced by a compound index and a pre-insert check.
type Category struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	Manufacturer primitive.ObjectID `json:"-" bson:"manufacturer"`
	Products     []int64            `json:"products" bson:"products"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updatedAt"`
}
