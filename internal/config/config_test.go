package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 清空相关环境变量，测试结束后恢复
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envPort, envLogLevel, envMetricsAddr} {
		if old, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		in   string
		port int
		ok   bool
	}{
		{"8080", 8080, true},
		{" 9000 ", 9000, true},
		{"0", 0, true},
		{"65535", 65535, true},
		{"65536", 0, false},
		{"-1", 0, false},
		{"http", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		port, ok := ParsePort(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.port, port, tt.in)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, ":8080", cfg.ListenAddr())
}

func TestLoadPortArgument(t *testing.T) {
	clearEnv(t)

	cfg, err := Load([]string{"9123"})
	require.NoError(t, err)
	assert.Equal(t, 9123, cfg.Port)

	cfg, err = Load([]string{"not-a-port"})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Len(t, cfg.Warnings, 1)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	file := writeEnvFile(t, "PORT=7001\nLOG_LEVEL=DEBUG\nMETRICS_ADDR=127.0.0.1:9100\n")

	cfg, err := Load(nil, file)
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)

	t.Setenv(envPort, "7002")
	cfg, err = Load(nil, file)
	require.NoError(t, err)
	assert.Equal(t, 7002, cfg.Port, "environment wins over .env")

	cfg, err = Load([]string{"7003"}, file)
	require.NoError(t, err)
	assert.Equal(t, 7003, cfg.Port, "argument wins over environment")
}

func TestLoadInvalidPortArgumentUsesDefault(t *testing.T) {
	clearEnv(t)
	file := writeEnvFile(t, "PORT=7001\n")
	t.Setenv(envPort, "7002")

	cfg, err := Load([]string{"80x"}, file)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "80x")

	cfg, err = Load([]string{"70000"}, file)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadInvalidEnvPort(t *testing.T) {
	clearEnv(t)
	t.Setenv(envPort, "abc")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Len(t, cfg.Warnings, 1)
}

func TestConfigString(t *testing.T) {
	cfg := &Config{Port: 8080, LogLevel: "info"}
	assert.Equal(t, "port=8080 log_level=info metrics_addr=disabled", cfg.String())
}
