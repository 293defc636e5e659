// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password length bounds. bcrypt ignores every byte past the 72nd.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// HashPassword returns the bcrypt hash stored in users.account.passwordhash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec_hash_password_failed: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash. A malformed hash
// never matches.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
