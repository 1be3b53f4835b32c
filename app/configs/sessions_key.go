package configs

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

func LoadSessionKeysFromEnv(env ENV) (*SessionKeys, error) {
	authKeyBase64 := env.AppAuthKey
	encKeyBase64 := env.AppEncKey

	if authKeyBase64 == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if encKeyBase64 == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(authKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(encKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	log.Println("Config.LoadSessionKeysFromEnv: session keys loaded")
	return &SessionKeys{
		AuthKey: authKey,
		EncKey:  encKey,
	}, nil
}

// CSRFKey decodes CSRF_KEY. An unset key disables CSRF protection.
func CSRFKey(env ENV) ([]byte, error) {
	if env.CSRFKey == "" {
		return nil, nil
	}
	key, err := base64.URLEncoding.DecodeString(env.CSRFKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CSRF_KEY from Base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("CSRF_KEY must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

var generatedKeys = []struct {
	name string
	size int
}{
	{"APP_AUTH_KEY", 64},
	{"APP_ENC_KEY", 32},
	{"CSRF_KEY", 32},
}

// GenerateKeyLines returns one NAME=base64 line per secret the server reads.
func GenerateKeyLines() ([]string, error) {
	lines := make([]string, 0, len(generatedKeys))
	for _, k := range generatedKeys {
		raw := securecookie.GenerateRandomKey(k.size)
		if raw == nil {
			return nil, fmt.Errorf("could not generate %s", k.name)
		}
		lines = append(lines, k.name+"="+base64.URLEncoding.EncodeToString(raw))
	}
	return lines, nil
}

// WriteKeysFile prints fresh keys and saves them to path for copying into .env.
func WriteKeysFile(path string) error {
	lines, err := GenerateKeyLines()
	if err != nil {
		return err
	}

	fullPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	body := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(fullPath, []byte(body), 0o600); err != nil {
		return fmt.Errorf("failed to write keys to %s: %w", fullPath, err)
	}

	fmt.Print(body)
	fmt.Printf("\nKeys written to %s. Existing sessions stop working once these replace the old ones.\n", fullPath)
	return nil
}
