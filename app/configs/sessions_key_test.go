package configs

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(b []byte) string {
	return base64.URLEncoding.EncodeToString(b)
}

func TestLoadSessionKeysFromEnv(t *testing.T) {
	env := ENV{
		AppAuthKey: encode(securecookie.GenerateRandomKey(64)),
		AppEncKey:  encode(securecookie.GenerateRandomKey(32)),
	}
	keys, err := LoadSessionKeysFromEnv(env)
	require.NoError(t, err)
	assert.Len(t, keys.AuthKey, 64)
	assert.Len(t, keys.EncKey, 32)

	_, err = LoadSessionKeysFromEnv(ENV{AppAuthKey: env.AppAuthKey})
	assert.Error(t, err)

	_, err = LoadSessionKeysFromEnv(ENV{AppAuthKey: env.AppAuthKey, AppEncKey: encode([]byte("short"))})
	assert.Error(t, err)
}

func TestCSRFKey(t *testing.T) {
	key, err := CSRFKey(ENV{})
	require.NoError(t, err)
	assert.Nil(t, key)

	key, err = CSRFKey(ENV{CSRFKey: encode(securecookie.GenerateRandomKey(32))})
	require.NoError(t, err)
	assert.Len(t, key, 32)

	_, err = CSRFKey(ENV{CSRFKey: encode([]byte("too short"))})
	assert.Error(t, err)
	_, err = CSRFKey(ENV{CSRFKey: "%%%"})
	assert.Error(t, err)
}

func TestGeneratedKeysLoad(t *testing.T) {
	lines, err := GenerateKeyLines()
	require.NoError(t, err)
	require.Len(t, lines, 3)

	values := map[string]string{}
	for _, line := range lines {
		name, value, ok := strings.Cut(line, "=")
		require.True(t, ok, line)
		values[name] = value
	}

	keys, err := LoadSessionKeysFromEnv(ENV{AppAuthKey: values["APP_AUTH_KEY"], AppEncKey: values["APP_ENC_KEY"]})
	require.NoError(t, err)
	assert.Len(t, keys.AuthKey, 64)

	csrfKey, err := CSRFKey(ENV{CSRFKey: values["CSRF_KEY"]})
	require.NoError(t, err)
	assert.Len(t, csrfKey, 32)
}

func TestWriteKeysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.env")
	require.NoError(t, WriteKeysFile(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "APP_AUTH_KEY=")
	assert.Contains(t, string(body), "CSRF_KEY=")
}
