// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a bearer JWT issued to a sync client.
//
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for claim access. The "sub" claim carries the client id, so records
// written through the API can be attributed to the device that sent them.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// ClientID is the cached "sub" claim.
	ClientID string `json:"-"`
}

// GetClientID returns the "sub" claim.
func (t *Token) GetClientID() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has empty subject")
	}
	return sub, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
