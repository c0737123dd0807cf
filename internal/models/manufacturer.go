// internal/models/manufacturer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type Manufacturer struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	PasswordHash     string             `json:"-" bson:"password"`
	Industry         string             `json:"industry" bson:"industry"`
	Address          string             `json:"address" bson:"address"`
	IDNumber         string             `json:"idNumber" bson:"idNumber"`
	IsEmailVerified  bool               `json:"isEmailVerified" bson:"isEmailVerified"`
	IsFirstTimeLogin bool               `json:"isFirstTimeLogin" bson:"isFirstTimeLogin"`
	ContractAddress  string             `json:"contractAddress,omitempty" bson:"contractAddress,omitempty"`
	Products         []int64            `json:"products,omitempty" bson:"products,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updatedAt"`
}

// ManufacturerSummary is the public slice of a manufacturer resolved into a
// product authentication response.
type ManufacturerSummary struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	Name            string             `json:"name" bson:"name"`
	ContractAddress string             `json:"contractAddress,omitempty" bson:"contractAddress,omitempty"`
}

func (m *Manufacturer) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	m.PasswordHash = string(hashedPassword)
	return nil
}

func (m *Manufacturer) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password))
}

func (m *Manufacturer) Summary() *ManufacturerSummary {
	return &ManufacturerSummary{
		ID:              m.ID,
		Name:            m.Name,
		ContractAddress: m.ContractAddress,
	}
}
