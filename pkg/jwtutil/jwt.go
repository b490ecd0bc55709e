package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mikekiroz/maikitto-saas/pkg/config"
)

var (
	secret     = []byte("secret-key")
	expiration = 24 * time.Hour
)

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	Email      string `json:"email"`
	UserID     uint   `json:"user_id"`
	TenantID   *uint  `json:"tenant_id,omitempty"`   // Restaurant the session is scoped to
	TenantName string `json:"tenant_name,omitempty"` // Restaurant name for convenience
	jwt.RegisteredClaims
}

// Initialize configures the signing key and token lifetime
func Initialize(jwtConfig *config.JWTConfig) {
	secret = []byte(jwtConfig.SigningKey)
	expiration = time.Duration(jwtConfig.ExpirationHours) * time.Hour
}

// GenerateToken creates a JWT token for a user without tenant context.
// Issued after registration and for logins of users that have not
// completed restaurant onboarding yet.
func GenerateToken(email string, userID uint) (string, error) {
	return GenerateTokenWithTenant(email, userID, nil, "")
}

// GenerateTokenWithTenant creates a JWT token with user and tenant information
func GenerateTokenWithTenant(email string, userID uint, tenantID *uint, tenantName string) (string, error) {
	claims := UserClaims{
		Email:      email,
		UserID:     userID,
		TenantID:   tenantID,
		TenantName: tenantName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ExtractTenantID extracts tenant ID from JWT token string
func ExtractTenantID(tokenString string) (*uint, error) {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims.TenantID, nil
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
