package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-jaundice/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 5, cfg.Analyze.FetchTimeout)
	assert.Equal(t, 10, cfg.Analyze.ProcessTimeout)
	assert.Equal(t, uint64(0), cfg.Analyze.MaxRetries)
	assert.Equal(t, "charged_dict/positive_words.txt", cfg.Dict.PositivePath)
	assert.Equal(t, "charged_dict/negative_words.txt", cfg.Dict.NegativePath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JAUNDICE_SERVER_PORT", "9090")
	t.Setenv("JAUNDICE_ANALYZE_FETCH_TIMEOUT", "3")
	t.Setenv("JAUNDICE_LOG_LEVEL", "debug")

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Analyze.FetchTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 3000
analyze:
  fetch_timeout: 7
  process_timeout: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Addr())
	assert.Equal(t, 7, cfg.Analyze.FetchTimeout)
	assert.Equal(t, 20, cfg.Analyze.ProcessTimeout)
}

func TestLoad_MissingFileFails(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "存在しない.yaml"))

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	testCases := []struct {
		name  string
		env   string
		value string
	}{
		{name: "範囲外のポート", env: "JAUNDICE_SERVER_PORT", value: "70000"},
		{name: "ゼロのフェッチタイムアウト", env: "JAUNDICE_ANALYZE_FETCH_TIMEOUT", value: "0"},
		{name: "ゼロの解析タイムアウト", env: "JAUNDICE_ANALYZE_PROCESS_TIMEOUT", value: "0"},
		{name: "ゼロのレート制限", env: "JAUNDICE_SERVER_RATE_LIMIT", value: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.env, tc.value)

			cfg, err := config.Load("")

			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
