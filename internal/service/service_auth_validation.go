package service

import (
	"context"

	"github.com/MKhiriev/go-fin-tracker/internal/validators"
	"github.com/MKhiriev/go-fin-tracker/models"
)

// AuthValidationService rejects malformed registration and login input
// before it reaches the wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, invalid(err)
	}
	return v.inner.RegisterUser(ctx, request)
}

func (v *AuthValidationService) Login(ctx context.Context, request models.LoginRequest) (models.TokenPair, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		// malformed credentials are still just wrong credentials
		return models.TokenPair{}, ErrInvalidCredentials
	}
	return v.inner.Login(ctx, request)
}

func (v *AuthValidationService) Logout(ctx context.Context, userID int64) error {
	return v.inner.Logout(ctx, userID)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	return v.inner.Authenticate(ctx, accessToken)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}
