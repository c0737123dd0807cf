// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/genun/genun-backend/internal/config"
	"github.com/genun/genun-backend/internal/models"
	"github.com/genun/genun-backend/internal/store"
	"github.com/genun/genun-backend/internal/utils"
)

type AuthService struct {
	stores       *store.Stores
	notification *NotificationService
	config       *config.Config
}

func NewAuthService(stores *store.Stores, notification *NotificationService, cfg *config.Config) *AuthService {
	return &AuthService{
		stores:       stores,
		notification: notification,
		config:       cfg,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Industry string `json:"industry" validate:"max=100"`
	Address  string `json:"address" validate:"max=500"`
	IDNumber string `json:"idNumber" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token        string               `json:"token"`
	Manufacturer *models.Manufacturer `json:"manufacturer"`
}

type ContractAddressRequest struct {
	ContractAddress string `json:"contractAddress" validate:"required,min=4,max=128"`
}

// Register creates a manufacturer account and kicks off email
// verification. A mail failure does not undo the registration.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.Manufacturer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.stores.Manufacturers.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("manufacturer lookup: %w", err)
	}

	manufacturer := &models.Manufacturer{
		Name:             req.Name,
		Email:            req.Email,
		Industry:         req.Industry,
		Address:          req.Address,
		IDNumber:         req.IDNumber,
		IsFirstTimeLogin: true,
	}
	if err := manufacturer.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("password hash: %w", err)
	}

	if err := s.stores.Manufacturers.Insert(ctx, manufacturer); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("manufacturer insert: %w", err)
	}

	if err := s.sendVerification(manufacturer); err != nil {
		logrus.WithError(err).WithField("email", manufacturer.Email).
			Warn("Failed to send verification email after registration")
	}

	return manufacturer, nil
}

// Login verifies credentials and issues the x-auth-token JWT. The result
// carries the pre-login first-time flag so the client can run onboarding,
// then the flag is cleared.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	manufacturer, err := s.stores.Manufacturers.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("manufacturer lookup: %w", err)
	}

	if err := manufacturer.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(manufacturer.ID, manufacturer.Email, s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token generation: %w", err)
	}

	if manufacturer.IsFirstTimeLogin {
		if err := s.stores.Manufacturers.SetFirstTimeLogin(ctx, manufacturer.ID, false); err != nil {
			logrus.WithError(err).WithField("manufacturer", manufacturer.ID.Hex()).
				Warn("Failed to clear first-time login flag")
		}
	}

	return &LoginResult{Token: token, Manufacturer: manufacturer}, nil
}

// SendVerification re-issues the verification mail for an existing,
// still-unverified account.
func (s *AuthService) SendVerification(ctx context.Context, email string) error {
	manufacturer, err := s.stores.Manufacturers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrManufacturerNotFound
		}
		return fmt.Errorf("manufacturer lookup: %w", err)
	}

	if manufacturer.IsEmailVerified {
		return nil
	}

	if err := s.sendVerification(manufacturer); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

func (s *AuthService) sendVerification(manufacturer *models.Manufacturer) error {
	token, err := utils.GenerateVerificationToken(manufacturer.ID, manufacturer.Email, s.config.JWT.VerificationTokenTTL)
	if err != nil {
		return fmt.Errorf("verification token: %w", err)
	}
	return s.notification.SendVerificationEmail(manufacturer, token)
}

// VerifyEmail validates a verification token from the emailed link and
// marks the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := utils.ValidateJWT(token)
	if err != nil {
		return ErrInvalidToken
	}

	manufacturerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.stores.Manufacturers.SetEmailVerified(ctx, manufacturerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrManufacturerNotFound
		}
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

func (s *AuthService) GetManufacturer(ctx context.Context, id primitive.ObjectID) (*models.Manufacturer, error) {
	manufacturer, err := s.stores.Manufacturers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrManufacturerNotFound
		}
		return nil, err
	}
	return manufacturer, nil
}

func (s *AuthService) UpdateContractAddress(ctx context.Context, id primitive.ObjectID, req *ContractAddressRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	if err := s.stores.Manufacturers.SetContractAddress(ctx, id, req.ContractAddress); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrManufacturerNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	if err := s.stores.Manufacturers.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrManufacturerNotFound
		}
		return err
	}
	return nil
}
