// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid voter token")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateVoterToken creates an HMAC-signed token for a voter.
// Format: <voterID>.<signature>, deterministic for a given salt.
func GenerateVoterToken(voterID, salt string) string {
	return voterID + "." + sign(voterID, salt)
}

// ParseVoterToken verifies the signature and returns the voter ID
func ParseVoterToken(token, salt string) (string, error) {
	voterID, sig, ok := strings.Cut(token, ".")
	if !ok || voterID == "" || sig == "" {
		return "", ErrInvalidToken
	}

	expected := sign(voterID, salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidToken
	}
	return voterID, nil
}

func sign(voterID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(voterID))
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}
