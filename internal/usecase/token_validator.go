package usecase

import (
	"storefront-cart/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator turns an access token into the user id it was issued for.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}
