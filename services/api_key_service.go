package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/utils"
)

var ErrInvalidAPIKey = errors.New("invalid or missing api key")

// staticKeySubject identifies callers authenticated with the configured API_KEY.
const staticKeySubject = "static"

type APIKeyStore interface {
	Create(ctx context.Context, k *models.APIKey) error
	FindByHash(ctx context.Context, hash string) (*models.APIKey, error)
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}

type APIKeyService struct {
	keys      APIKeyStore
	staticKey string
	secret    []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAPIKeyService(keys APIKeyStore, staticKey, jwtSecret string, tokenTTL time.Duration) *APIKeyService {
	return &APIKeyService{
		keys:      keys,
		staticKey: staticKey,
		secret:    []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// CreateKey stores a new active key and returns its plain value. The plain
// value cannot be recovered afterwards.
func (s *APIKeyService) CreateKey(ctx context.Context, name string, expiresInDays *int) (string, *models.APIKey, error) {
	key, hash, err := utils.GenerateAPIKey()
	if err != nil {
		return "", nil, err
	}
	record := &models.APIKey{
		KeyHash:  hash,
		Name:     strings.TrimSpace(name),
		IsActive: true,
	}
	if expiresInDays != nil && *expiresInDays > 0 {
		exp := s.now().AddDate(0, 0, *expiresInDays)
		record.ExpiresAt = &exp
	}
	if err := s.keys.Create(ctx, record); err != nil {
		return "", nil, fmt.Errorf("create api key: %w", err)
	}
	return key, record, nil
}

// Validate returns the subject a key authenticates as.
func (s *APIKeyService) Validate(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrInvalidAPIKey
	}
	if s.staticKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(s.staticKey)) == 1 {
		return staticKeySubject, nil
	}
	record, err := s.keys.FindByHash(ctx, utils.HashAPIKey(key))
	if errors.Is(err, repository.ErrAPIKeyNotFound) {
		return "", ErrInvalidAPIKey
	}
	if err != nil {
		return "", err
	}
	now := s.now()
	if !record.Usable(now) {
		return "", ErrInvalidAPIKey
	}
	if err := s.keys.TouchLastUsed(ctx, record.ID, now); err != nil {
		log.Printf("api key %s: cannot record last use: %v", record.ID, err)
	}
	return record.ID, nil
}

// IssueToken exchanges a valid key for a signed bearer token.
func (s *APIKeyService) IssueToken(ctx context.Context, key string) (string, time.Time, error) {
	subject, err := s.Validate(ctx, key)
	if err != nil {
		return "", time.Time{}, err
	}
	token, err := utils.GenerateJWT(subject, s.secret, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, s.now().Add(s.tokenTTL), nil
}

func (s *APIKeyService) ValidateToken(token string) (string, error) {
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return "", ErrInvalidAPIKey
	}
	return claims.Subject, nil
}
