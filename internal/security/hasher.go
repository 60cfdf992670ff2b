// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package security holds the secret-derived primitives shared by login
// tokens, sessions and encrypted fields.
//
// A single server secret (the pepper) feeds every primitive here. Subkeys
// are derived from it with HKDF under distinct labels, so the digest key and
// the field-encryption key never coincide. Rotating the secret invalidates
// every outstanding digest and sealed value at once.
package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// MinTokenBytes is the minimum entropy (256 bits) accepted for generated
// tokens.
const MinTokenBytes = 32

const (
	keyLength = 32

	digestKeyInfo = "go-tool-access/token-digest/v1"
	fieldKeyInfo  = "go-tool-access/field-encryption/v1"
)

// randReader is the entropy source. Tests replace it to simulate failures.
var randReader io.Reader = rand.Reader

// Hasher generates opaque bearer tokens and computes their peppered digests.
type Hasher interface {
	// GenerateToken returns byteLength random bytes encoded as unpadded
	// base64url, safe for URLs and cookies.
	GenerateToken(byteLength int) (string, error)

	// Hash returns the hex-encoded HMAC-SHA256 digest of plaintext keyed by
	// the secret-derived digest key. It is deterministic per secret.
	Hash(plaintext string) string
}

// secretHasher reuses HMAC instances from a pool since Hash sits on every
// authenticated request.
type secretHasher struct {
	pool sync.Pool
}

// NewHasher derives the digest key from secret and returns a [Hasher].
// It returns [ErrMissingSecret] when secret is empty.
func NewHasher(secret string) (Hasher, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	key, err := deriveKey(secret, digestKeyInfo)
	if err != nil {
		return nil, err
	}

	h := &secretHasher{}
	h.pool.New = func() any {
		return hmac.New(sha256.New, key)
	}

	return h, nil
}

func (s *secretHasher) GenerateToken(byteLength int) (string, error) {
	if byteLength < MinTokenBytes {
		return "", fmt.Errorf("%w: got %d bytes, need at least %d", ErrTokenTooShort, byteLength, MinTokenBytes)
	}

	buf := make([]byte, byteLength)
	if _, err := io.ReadFull(randReader, buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *secretHasher) Hash(plaintext string) string {
	h := s.pool.Get().(hash.Hash)
	h.Reset()

	h.Write([]byte(plaintext))
	sum := h.Sum(nil)

	h.Reset()
	s.pool.Put(h)

	return hex.EncodeToString(sum)
}

// DevelopmentSecret returns a random secret for development runs without a
// configured one. Digests made with it do not survive a restart.
func DevelopmentSecret() (string, error) {
	buf := make([]byte, keyLength)
	if _, err := io.ReadFull(randReader, buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func deriveKey(secret, info string) ([]byte, error) {
	key := make([]byte, keyLength)
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}

	return key, nil
}
