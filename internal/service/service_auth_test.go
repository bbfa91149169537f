// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
)

func newTestAuthService() AuthService {
	return NewAuthService(config.App{
		TokenSignKey:  "test-secret",
		TokenIssuer:   "soup-sync",
		TokenDuration: time.Hour,
	}, logger.Nop())
}

// ─────────────────────────────────────────────
// CreateToken / ParseToken
// ─────────────────────────────────────────────

func TestAuthService_RoundTrip(t *testing.T) {
	svc := newTestAuthService()

	token, err := svc.CreateToken(testContext(), "ipad-7")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(testContext(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "ipad-7", parsed.ClientID)
}

func TestAuthService_CreateToken_EmptyClient(t *testing.T) {
	_, err := newTestAuthService().CreateToken(testContext(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_CreateToken_MissingSignKey(t *testing.T) {
	svc := NewAuthService(config.App{TokenIssuer: "soup-sync", TokenDuration: time.Hour}, logger.Nop())

	_, err := svc.CreateToken(testContext(), "ipad-7")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	other, err := utils.GenerateJWTToken("someone-else", "ipad-7", time.Hour, "test-secret")
	require.NoError(t, err)
	wrongKey, err := utils.GenerateJWTToken("soup-sync", "ipad-7", time.Hour, "other-secret")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong issuer", other.SignedString},
		{"wrong key", wrongKey.SignedString},
		{"empty", ""},
	}

	svc := newTestAuthService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(testContext(), tt.token)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
