//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.AuthConfig
}

func NewJWTHelper(cfg config.AuthConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, tenantID uuid.UUID, role string) string {
	t.Helper()
	return h.GenerateTokenFor(t, uuid.New(), tenantID, role)
}

func (h *JWTHelper) GenerateTokenFor(t *testing.T, userID, tenantID uuid.UUID, role string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer)
	token, err := service.GenerateToken(userID, tenantID, role, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, tenantID uuid.UUID, role string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer)
	token, err := service.GenerateToken(uuid.New(), tenantID, role, -time.Minute)
	require.NoError(t, err)
	return token
}
