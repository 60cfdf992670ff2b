// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package security

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"io"
)

// FieldCipher seals short string fields (e.g. a pending-checkout email)
// with AES-256-GCM under a key derived from the server secret.
type FieldCipher interface {
	// Seal encrypts plaintext and returns base64url(nonce || ciphertext).
	Seal(plaintext string) (string, error)

	// Open reverses Seal. Values sealed under another secret fail with
	// [ErrDecryptionFailed].
	Open(sealed string) (string, error)
}

type aesFieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher derives the field-encryption key from secret and returns a
// ready [FieldCipher]. It returns [ErrMissingSecret] when secret is empty.
func NewFieldCipher(secret string) (FieldCipher, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	key, err := deriveKey(secret, fieldKeyInfo)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &aesFieldCipher{aead: aead}, nil
}

func (c *aesFieldCipher) Seal(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	// blob = nonce || ciphertext
	blob := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.RawURLEncoding.EncodeToString(blob), nil
}

func (c *aesFieldCipher) Open(sealed string) (string, error) {
	blob, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedCiphertext, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", ErrMalformedCiphertext
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}
