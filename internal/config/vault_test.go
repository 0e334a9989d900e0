package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/errors"
)

func newTestLogger() *errors.Logger {
	logger, _ := errors.New("debug")
	return logger
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		expected    int64
		expectError bool
	}{
		{name: "int64 value", input: int64(42), expected: 42},
		{name: "float64 value", input: float64(42.0), expected: 42},
		{name: "string value", input: "42", expected: 42},
		{name: "json number", input: json.Number("7"), expected: 7},
		{name: "invalid json number", input: json.Number("7.5"), expectError: true},
		{name: "invalid string value", input: "not-a-number", expectError: true},
		{name: "unsupported type", input: []string{"42"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseVersionValue(tt.input, "secret/data/test")
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestApplyGeminiKeyToConfig(t *testing.T) {
	config := &Config{AI: AIConfig{OCR: OperationAIConfig{APIKey: "ocr-key"}}}

	applyGeminiKeyToConfig(config, "vault-key")

	assert.Equal(t, "vault-key", config.AI.APIKey)
	assert.Equal(t, "vault-key", config.AI.Rewrite.APIKey)
	assert.Equal(t, "ocr-key", config.AI.OCR.APIKey, "existing operation key is kept")
}

func TestResolveVaultToken(t *testing.T) {
	logger := newTestLogger()

	t.Run("token from config", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "direct-token"}, logger)
		require.NoError(t, err)
		assert.Equal(t, "direct-token", token)
	})

	t.Run("token from file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "vault-token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("  file-token  \n"), 0600))

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile}, logger)
		require.NoError(t, err)
		assert.Equal(t, "file-token", token)
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token/file"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read vault token file")
	})

	t.Run("no token provided", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vault token is required")
	})
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	config := &Config{Server: ServerConfig{APIKeys: []string{"local"}}}

	require.NoError(t, ApplyVaultSecrets(config, newTestLogger()))
	assert.Equal(t, []string{"local"}, config.Server.APIKeys)
}

func TestVaultClientExtractSecretData(t *testing.T) {
	vc := &VaultClient{logger: newTestLogger()}

	data, err := vc.extractSecretData(&api.Secret{Data: map[string]any{
		"data": map[string]any{"key1": "value1"},
	}}, "secret/test")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"key1": "value1"}, data)

	_, err = vc.extractSecretData(&api.Secret{Data: map[string]any{"data": "not-a-map"}}, "secret/test")
	assert.Error(t, err)

	_, err = vc.extractSecretVersion(&api.Secret{Data: map[string]any{"metadata": map[string]any{}}}, "secret/test")
	assert.Error(t, err)
}

// fakeVault serves sys/health and a fixed set of KVv2 secrets.
func fakeVault(t *testing.T, secrets map[string]map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/sys/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"initialized":true,"sealed":false,"standby":false,"version":"1.17.0","cluster_name":"test"}`))
	})
	mux.HandleFunc("/v1/secret/data/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != "test-token" {
			http.Error(w, `{"errors":["permission denied"]}`, http.StatusForbidden)
			return
		}
		data, ok := secrets[r.URL.Path[len("/v1/"):]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"data":     data,
				"metadata": map[string]any{"version": 3},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestApplyVaultSecretsFromServer(t *testing.T) {
	srv := fakeVault(t, map[string]map[string]any{
		"secret/data/resuscan/api":     {"keys": "k1, k2"},
		"secret/data/resuscan/gemini":  {"api_key": "gem-key"},
		"secret/data/resuscan/jwt":     {"secret": "signing-secret"},
		"secret/data/resuscan/storage": {"dsn": "postgres://db/resuscan"},
	})

	config := &Config{
		Storage: StorageConfig{Driver: "postgres", DSN: "postgres://local"},
		Vault: VaultConfig{
			Enabled: true,
			Address: srv.URL,
			Token:   "test-token",
			Secrets: VaultSecrets{
				APIKeys:    "secret/data/resuscan/api",
				GeminiKey:  "secret/data/resuscan/gemini",
				JWTSecret:  "secret/data/resuscan/jwt",
				StorageDSN: "secret/data/resuscan/storage",
			},
		},
	}

	require.NoError(t, ApplyVaultSecrets(config, newTestLogger()))

	assert.Equal(t, []string{"k1", "k2"}, config.Server.APIKeys)
	assert.Equal(t, "gem-key", config.AI.APIKey)
	assert.Equal(t, "gem-key", config.AI.Rewrite.APIKey)
	assert.Equal(t, "signing-secret", config.Server.JWT.Secret)
	assert.Equal(t, "postgres://db/resuscan", config.Storage.DSN)
}

func TestApplyVaultSecretsMissingSecret(t *testing.T) {
	srv := fakeVault(t, map[string]map[string]any{})

	config := &Config{Vault: VaultConfig{
		Enabled: true,
		Address: srv.URL,
		Token:   "test-token",
		Secrets: VaultSecrets{GeminiKey: "secret/data/resuscan/gemini"},
	}}

	err := ApplyVaultSecrets(config, newTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API key")
	assert.Empty(t, config.AI.APIKey)
}

func TestGetStringSliceSecret(t *testing.T) {
	srv := fakeVault(t, map[string]map[string]any{
		"secret/data/keys":  {"keys": " a ,b,c "},
		"secret/data/empty": {"keys": ""},
		"secret/data/num":   {"keys": 12},
	})

	vc, err := NewVaultClient(VaultConfig{Enabled: true, Address: srv.URL, Token: "test-token"}, newTestLogger())
	require.NoError(t, err)

	keys, err := vc.GetStringSliceSecret("secret/data/keys", "keys")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	keys, err = vc.GetStringSliceSecret("secret/data/empty", "keys")
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = vc.GetStringSecret("secret/data/num", "keys")
	assert.Error(t, err)

	_, err = vc.GetStringSecret("secret/data/keys", "other")
	assert.Error(t, err)

	secret, err := vc.GetSecretV2("secret/data/keys")
	require.NoError(t, err)
	assert.Equal(t, int64(3), secret.Version)
}
