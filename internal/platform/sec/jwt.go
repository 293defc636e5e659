// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds the security primitives of the API: bcrypt password
// hashing, RS256 access tokens and the role hierarchy.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// clockSkew tolerates small drift between API replicas.
const clockSkew = 30 * time.Second

// AuthClaims is the access token payload. Identity travels in the token so
// requests are authenticated without a database read.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
	Email  string `json:"eml"`
	Role   string `json:"rol"`
}

// TokenService signs and verifies RS256 access tokens.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	parser     *jwt.Parser
}

/*
NewTokenService loads the PEM key pair used for access tokens.

Parameters:
  - privateKeyPath: PKCS#1 or PKCS#8 RSA private key
  - publicKeyPath: PKIX RSA public key
  - issuer: "iss" claim written and required on verify

Returns:
  - *TokenService
  - error: If a key file is missing or not an RSA key
*/
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKey, err := readKey(privateKeyPath, jwt.ParseRSAPrivateKeyFromPEM)
	if err != nil {
		return nil, err
	}
	publicKey, err := readKey(publicKeyPath, jwt.ParseRSAPublicKeyFromPEM)
	if err != nil {
		return nil, err
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}, nil
}

func readKey[K any](path string, parse func([]byte) (K, error)) (K, error) {
	var zero K
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("sec_read_key_failed: %s: %w", path, err)
	}
	key, err := parse(data)
	if err != nil {
		return zero, fmt.Errorf("sec_parse_key_failed: %s: %w", path, err)
	}
	return key, nil
}

// GenerateAccessToken issues a token for the user valid for timeToLive.
func (service *TokenService) GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(timeToLive)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec_sign_token_failed: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, issuer and expiry and returns the claims.
func (service *TokenService) VerifyToken(raw string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	_, err := service.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return service.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec_invalid_token: %w", err)
	}
	if claims.UserID == "" || claims.UserID != claims.Subject {
		return nil, errors.New("sec_invalid_token: subject mismatch")
	}
	return claims, nil
}
