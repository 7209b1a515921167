package auth

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken wraps every verification failure. Callers must not branch on the cause.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnexpectedSigningMethod is returned when a token is not HMAC signed.
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
)

// JWTManager verifies HMAC signed JWT tokens against a shared secret
type JWTManager struct {
	SecretKey []byte

	parser   *jwt.Parser
	validate *validator.Validate
}

// Claims is the payload a protected handler can trust once verified
type Claims struct {
	Username string `json:"username" validate:"required"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a new JWTManager
func NewJWTManager(secretKey []byte) *JWTManager {
	return &JWTManager{
		SecretKey: secretKey,
		parser:    jwt.NewParser(),
		validate:  validator.New(),
	}
}

// Verify parses and validates a JWT token, then checks the claims schema
func (j *JWTManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := j.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure signing method is HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}
		return j.SecretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if err := j.validate.Struct(claims); err != nil {
		return nil, fmt.Errorf("%w: claims: %w", ErrInvalidToken, err)
	}

	return claims, nil
}
