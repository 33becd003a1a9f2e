package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrShareTokenInvalid = errors.New("share token invalid")
	ErrShareTokenUsed    = errors.New("share token already used or expired")
)

// URLSignerService generates and validates presigned single-use links to
// runlist reports. Token IDs are tracked in Redis so a link cannot be
// replayed after first use.
type URLSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewURLSignerService creates a new URL signer service
func NewURLSignerService(secretKey []byte, redis *redis.Client) *URLSignerService {
	return &URLSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// GenerateRunlistLink generates a single-use presigned token for a runlist
func (s *URLSignerService) GenerateRunlistLink(runlistID string, ttl time.Duration) (string, error) {
	tokenID := uuid.New().String()
	now := time.Now()

	claims := jwt.MapClaims{
		"runlist_id": runlistID,
		"jti":        tokenID,
		"exp":        now.Add(ttl).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign runlist link: %w", err)
	}

	ctx, cancel := contextWithRedisTimeout()
	defer cancel()
	if err := s.redis.Set(ctx, shareTokenKey(tokenID), runlistID, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to register share token: %w", err)
	}

	return signed, nil
}

// ValidateRunlistLink validates a presigned token and consumes it,
// returning the runlist ID it grants access to
func (s *URLSignerService) ValidateRunlistLink(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrShareTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrShareTokenInvalid
	}

	tokenID, _ := claims["jti"].(string)
	runlistID, _ := claims["runlist_id"].(string)
	if tokenID == "" || runlistID == "" {
		return "", ErrShareTokenInvalid
	}

	// Single use: consume the token ID atomically
	ctx, cancel := contextWithRedisTimeout()
	defer cancel()
	stored, err := s.redis.GetDel(ctx, shareTokenKey(tokenID)).Result()
	if err == redis.Nil {
		return "", ErrShareTokenUsed
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume share token: %w", err)
	}
	if stored != runlistID {
		return "", ErrShareTokenUsed
	}

	return runlistID, nil
}

func shareTokenKey(tokenID string) string {
	return "share:token:" + tokenID
}
