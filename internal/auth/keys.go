package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	keyLength    = 32 // 256 bits for PASETO v4
	keyHexLength = keyLength * 2
)

// GenerateKey creates a new random token key, hex-encoded.
func GenerateKey() (string, error) {
	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generate auth key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// LoadOrGenerateKey loads the token key from dataPath, generating and
// persisting a new one on first startup. Returns the hex-encoded key.
func LoadOrGenerateKey(dataPath string) (string, error) {
	keyPath := filepath.Join(dataPath, "auth.key")

	//#nosec G304 -- Auth key path is derived from the validated data path
	if keyBytes, err := os.ReadFile(keyPath); err == nil {
		keyHex := strings.TrimSpace(string(keyBytes))
		if len(keyHex) != keyHexLength {
			return "", fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", keyHexLength, len(keyHex))
		}
		if _, err := hex.DecodeString(keyHex); err != nil {
			return "", fmt.Errorf("invalid auth key format: not valid hex: %w", err)
		}
		return keyHex, nil
	}

	keyHex, err := GenerateKey()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(keyHex), 0o600); err != nil {
		return "", fmt.Errorf("save auth key: %w", err)
	}

	return keyHex, nil
}
