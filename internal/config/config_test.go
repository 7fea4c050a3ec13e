package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Вспомогательные хелперы.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// Полный корректный YAML с заданными значениями (не зависящими от дефолтов).
const sampleYAML = `
env: "prod"
http:
  host: "127.0.0.1"
  port: "6100"
db:
  db_url: "mongodb://localhost:27017/sessions"
redis:
  redis_url: "redis://localhost:6379/0"
sessions:
  user_session_ttl: "12h"
  guide_session_ttl: "72h"
  token_bytes: 48
  signature_bytes: 24
  signature_max_attempts: 7
  janitor_period: "10m"
timeouts:
  service: "3s"
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
db:
  db_url: "mongodb://localhost:27017/min"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
db:
  db_url: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	cfg, err := Load(writeFile(t, t.TempDir(), "config.yaml", sampleYAML))
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	require.Equal(t, "6100", cfg.HTTP.Port)
	require.Equal(t, "127.0.0.1:6100", cfg.HTTP.Addr())

	require.Equal(t, "mongodb://localhost:27017/sessions", cfg.DB.URL)
	require.Equal(t, "redis://localhost:6379/0", cfg.Redis.RedisURL)

	require.Equal(t, 12*time.Hour, cfg.Sessions.UserSessionTTL)
	require.Equal(t, 72*time.Hour, cfg.Sessions.GuideSessionTTL)
	require.Equal(t, 48, cfg.Sessions.TokenBytes)
	require.Equal(t, 24, cfg.Sessions.SignatureBytes)
	require.Equal(t, 7, cfg.Sessions.SignatureMaxAttempts)
	require.Equal(t, 10*time.Minute, cfg.Sessions.JanitorPeriod)

	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
}

func TestLoad_Minimal_Defaults(t *testing.T) {
	cfg, err := Load(writeFile(t, t.TempDir(), "config.yaml", minimalYAML))
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "mongodb://localhost:27017/min", cfg.DB.URL)
	require.Empty(t, cfg.Redis.RedisURL)

	require.Equal(t, 24*time.Hour, cfg.Sessions.UserSessionTTL)
	require.Equal(t, 168*time.Hour, cfg.Sessions.GuideSessionTTL)
	require.Equal(t, 32, cfg.Sessions.TokenBytes)
	require.Equal(t, 16, cfg.Sessions.SignatureBytes)
	require.Equal(t, 10, cfg.Sessions.SignatureMaxAttempts)
	require.Equal(t, 30*time.Minute, cfg.Sessions.JanitorPeriod)
	require.Equal(t, 5*time.Second, cfg.Timeouts.Service)
}

func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

func TestLoad_BrokenYAML(t *testing.T) {
	_, err := Load(writeFile(t, t.TempDir(), "config.yaml", brokenYAML))
	require.Error(t, err)
}

// TestLoad_EnvOverlay — ENV-переменные накладываются поверх YAML.
// Тест меняет окружение процесса, поэтому намеренно без t.Parallel().
func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("USER_SESSION_TTL", "1h")
	t.Setenv("SIGNATURE_MAX_ATTEMPTS", "3")

	cfg, err := Load(writeFile(t, t.TempDir(), "config.yaml", minimalYAML))
	require.NoError(t, err)

	require.Equal(t, 1*time.Hour, cfg.Sessions.UserSessionTTL)
	require.Equal(t, 3, cfg.Sessions.SignatureMaxAttempts)
}

// TestLoad_EnvOnly — конфигурация целиком из окружения, без файла.
func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://envhost:27017/envdb")

	// Уходим из директории с local.yaml, если она есть.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "mongodb://envhost:27017/envdb", cfg.DB.URL)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	require.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}
