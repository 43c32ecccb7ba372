package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/config"
)

// inTempDir runs the test from an empty directory so no config.json or .env
// from the repository is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, time.Hour, cfg.Session.TTLDuration())
	assert.Equal(t, "0 */5 * * * *", cfg.Session.SweepCron)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, time.Minute, cfg.Server.RequestTimeoutDuration())
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetimeDuration())
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Contains(t, cfg.RateLimit.WhitelistPaths, "/health")
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{
		"app": {"port": 9000},
		"session": {"store": "redis", "ttl": 600},
		"redis": {"addr": "cache:6379"}
	}`), 0o600))
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ADMIN_API_KEY", "from-env")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port, "environment overrides the file")
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTLDuration())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "from-env", cfg.Auth.APIKey)
}

func TestLoadWithSecrets_EnvironmentSource(t *testing.T) {
	inTempDir(t)
	t.Setenv("USE_AZURE_KEY_VAULT", "false")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := config.LoadWithSecrets(context.Background(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoadWithSecrets_VaultRequiresName(t *testing.T) {
	inTempDir(t)
	t.Setenv("USE_AZURE_KEY_VAULT", "true")
	t.Setenv("APP_ENVIRONMENT", "production")
	t.Setenv("AZURE_KEY_VAULT_NAME", "")

	_, err := config.LoadWithSecrets(context.Background(), zap.NewNop())
	assert.Error(t, err)
}

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecretOrEnv(_ context.Context, secretName, _ string) (string, error) {
	if v, ok := f[secretName]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func TestApplySecrets(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Host: "localhost", User: "local", Password: "local"},
		Auth:     config.AuthConfig{APIKey: "keep-me"},
	}
	src := fakeSecrets{
		"POSTGRES-PMS-HOST":     "db.internal",
		"POSTGRES-PMS-PASSWORD": "s3cret",
		"REDIS-PASSWORD":        "redis-pw",
		"jwt-secret":            "signing-key",
	}

	require.NoError(t, config.ApplySecrets(context.Background(), cfg, src))

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "local", cfg.Database.User, "unresolved secrets keep the loaded value")
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "redis-pw", cfg.Redis.Password)
	assert.Equal(t, "signing-key", cfg.Auth.JWTSecret)
	assert.Equal(t, "keep-me", cfg.Auth.APIKey)

	assert.Error(t, config.ApplySecrets(context.Background(), nil, src))
}
