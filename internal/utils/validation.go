package utils

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	ed25519KeyTag   = "01"
	secp256k1KeyTag = "02"

	ed25519KeyLength   = 32
	secp256k1KeyLength = 33
)

// ValidatePublicKeyHex checks that s is a tagged public key in hex: "01"
// followed by a 32 byte ed25519 key or "02" followed by a 33 byte secp256k1
// key. It does not check that the key is on the curve.
func ValidatePublicKeyHex(s string) error {
	if len(s) < 2 {
		return fmt.Errorf("public key is too short")
	}
	keyBytes, err := hex.DecodeString(s[2:])
	if err != nil {
		return fmt.Errorf("public key is not valid hex: %w", err)
	}
	switch strings.ToLower(s[:2]) {
	case ed25519KeyTag:
		if len(keyBytes) != ed25519KeyLength {
			return fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519KeyLength, len(keyBytes))
		}
	case secp256k1KeyTag:
		if len(keyBytes) != secp256k1KeyLength {
			return fmt.Errorf("secp256k1 public key must be %d bytes, got %d", secp256k1KeyLength, len(keyBytes))
		}
	default:
		return fmt.Errorf("unknown public key tag %q", s[:2])
	}
	return nil
}

// NormalizePublicKeyHex lower cases a public key so that the same key always
// maps to the same account.
func NormalizePublicKeyHex(s string) string {
	return strings.ToLower(s)
}

// Contains checks if a slice contains a specific element.
func Contains[T comparable](slice []T, element T) bool {
	for _, item := range slice {
		if item == element {
			return true
		}
	}
	return false
}
