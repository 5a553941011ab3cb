package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/relomatcher/internal/config"
	"github.com/jonathan/relomatcher/internal/server/middleware"
)

// ResultClaims are the JWT claims carried by a result token. The request ID
// ties an explain call back to a match request; no state is kept server-side.
type ResultClaims struct {
	RequestID uuid.UUID `json:"request_id"`
	jwt.RegisteredClaims
}

// GetRequestID returns the request ID from the claims.
// This implements the middleware.RequestIDGetter interface.
func (c *ResultClaims) GetRequestID() uuid.UUID {
	return c.RequestID
}

// TokenService is the result-token surface the handlers depend on.
type TokenService interface {
	middleware.TokenValidator
	Issue() (string, uuid.UUID, error)
}

// ResultTokenService issues and validates the short-lived tokens returned by
// the match endpoint and required by the explain endpoint.
type ResultTokenService struct {
	config *config.JWTConfig
}

// NewResultTokenService creates a token service with the given configuration.
func NewResultTokenService(cfg *config.JWTConfig) *ResultTokenService {
	return &ResultTokenService{
		config: cfg,
	}
}

// Issue generates a signed result token with a fresh request ID.
func (s *ResultTokenService) Issue() (string, uuid.UUID, error) {
	requestID := uuid.New()
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.TTLMinutes) * time.Minute)

	claims := &ResultClaims{
		RequestID: requestID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, requestID, nil
}

// ValidateToken validates a result token and returns its claims.
// This implements the middleware.TokenValidator interface.
func (s *ResultTokenService) ValidateToken(tokenString string) (middleware.RequestIDGetter, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *ResultTokenService) parse(tokenString string) (*ResultClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &ResultClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return nil, fmt.Errorf("invalid token signature: %w", err)
		}
		if err == jwt.ErrTokenExpired {
			return nil, fmt.Errorf("token expired: %w", err)
		}
		if err == jwt.ErrTokenMalformed {
			return nil, fmt.Errorf("malformed token: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}
