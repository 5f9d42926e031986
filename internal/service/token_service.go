package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/azanlabs/supplysync/internal/repository"
)

type tokenService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewTokenService creates a stock-push token service
func NewTokenService(repos *repository.Repositories, logger *zap.Logger) *tokenService {
	return &tokenService{
		repos:  repos,
		logger: logger,
	}
}

// Rotate generates a fresh 64-hex-character stock-push token for the tenant,
// stores its hash, and returns the plaintext. The plaintext is only available
// from this call; subsequent pushes are verified against the stored hash.
func (s *tokenService) Rotate(ctx context.Context, shopDomain string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	// Cost 10 keeps push verification fast; these are random tokens, not
	// passwords.
	hash, err := bcrypt.GenerateFromPassword([]byte(token), 10)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}

	if err := s.repos.TenantConfig.UpdateAuthTokenHash(ctx, shopDomain, string(hash)); err != nil {
		return "", err
	}

	s.logger.Info("Stock-push token rotated", zap.String("shop_domain", shopDomain))
	return token, nil
}
