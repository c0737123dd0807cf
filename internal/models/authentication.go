// internal/models/authentication.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthenticationRecord is one append-only audit entry per lookup attempt.
// ProductID keeps the raw token the caller supplied, numeric or not.
// Manufacturer is nil when the product does not exist.
type AuthenticationRecord struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Product      string              `json:"product" bson:"product"`
	ProductID    string              `json:"productId" bson:"productId"`
	Requester    string              `json:"requester,omitempty" bson:"requester,omitempty"`
	Status       AuthStatus          `json:"status" bson:"status"`
	Manufacturer *primitive.ObjectID `json:"manufacturer" bson:"manufacturer"`
	CreatedAt    time.Time           `json:"created_at" bson:"createdAt"`
}
