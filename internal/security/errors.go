// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package security

import "errors"

var (
	// ErrMissingSecret is returned when the server secret is empty. It is a
	// configuration error and must stop the process at startup.
	ErrMissingSecret = errors.New("server secret is not configured")

	// ErrTokenTooShort is returned by GenerateToken for fewer than
	// [MinTokenBytes] bytes of entropy.
	ErrTokenTooShort = errors.New("token length is below the minimum")

	// ErrKeyDerivation wraps failures while deriving subkeys from the secret.
	ErrKeyDerivation = errors.New("error deriving key from secret")

	// ErrRandomSource wraps failures of the system CSPRNG.
	ErrRandomSource = errors.New("error reading random bytes")

	// ErrMalformedCiphertext is returned by Open when the sealed value is not
	// valid base64url or is shorter than a nonce.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrDecryptionFailed is returned by Open when authentication fails, which
	// includes values sealed under a different secret.
	ErrDecryptionFailed = errors.New("decryption failed")
)
