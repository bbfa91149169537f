// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
	"github.com/MKhiriev/go-soup-sync/models"
)

// authService issues and verifies the bearer tokens of sync clients. There
// are no user accounts: a token names the client device in its subject.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// CreateToken issues a signed JWT whose subject is clientID.
func (a *authService) CreateToken(ctx context.Context, clientID string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if clientID == "" {
		log.Error().Str("func", "authService.CreateToken").Msg("empty client id")
		return models.Token{}, fmt.Errorf("%w: empty client id", ErrInvalidDataProvided)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, clientID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "authService.CreateToken").Str("clientID", clientID).Msg("token generation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken verifies signature, issuer and expiry. Every failure is
// reported as ErrTokenIsExpiredOrInvalid so callers need not inspect JWT
// errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
