package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignedLink represents a single-use report share token.
type SignedLink struct {
	Report    string
	TokenID   string
	ExpiresAt time.Time
}

// LinkSignerService generates and validates presigned share links for report
// snapshots. Tokens are single-use; the used marker lives in the cache so a
// Redis-backed deployment enforces it across instances.
type LinkSignerService struct {
	secretKey []byte
	cache     CacheInterface
}

func NewLinkSignerService(secretKey []byte, cache CacheInterface) *LinkSignerService {
	return &LinkSignerService{
		secretKey: secretKey,
		cache:     cache,
	}
}

// GenerateShareToken generates a single-use share token for a report name.
func (s *LinkSignerService) GenerateShareToken(report string, ttl time.Duration) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"report": report,
		"jti":    tokenID,
		"exp":    expiresAt.Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateShareToken validates a share token and returns its link data.
func (s *LinkSignerService) ValidateShareToken(ctx context.Context, tokenString string) (*SignedLink, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	report, ok := (*claims)["report"].(string)
	if !ok {
		return nil, errors.New("missing or invalid report claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}

	if s.IsTokenUsed(tokenID) {
		return nil, errors.New("token already used")
	}

	return &SignedLink{
		Report:    report,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// MarkTokenAsUsed marks a token as used (single-use enforcement). The marker
// outlives the token's validity window.
func (s *LinkSignerService) MarkTokenAsUsed(tokenID string) {
	s.cache.Set("used_token:"+tokenID, "1", 15*time.Minute)
}

// IsTokenUsed checks if a token has already been used.
func (s *LinkSignerService) IsTokenUsed(tokenID string) bool {
	val, found := s.cache.Get("used_token:" + tokenID)
	if !found {
		return false
	}
	marker, _ := val.(string)
	return marker == "1"
}
