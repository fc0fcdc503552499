package di

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qlpapp/qlp-server/internal/auth"
	"github.com/qlpapp/qlp-server/internal/config"
	"github.com/qlpapp/qlp-server/internal/di/providers"
	"github.com/qlpapp/qlp-server/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		App:      config.AppConfig{Environment: "test", DataDir: dir},
		Logger:   config.LoggerConfig{Level: "error"},
		Server:   config.ServerConfig{Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(dir, "qlp.db")},
		Auth: config.AuthConfig{
			AccessTokenDuration: time.Hour,
			DefaultPassword:     "123456",
			LoginPerMinute:      20,
			LoginBurst:          10,
			HashMemoryKiB:       64,
			HashIterations:      1,
			HashParallelism:     1,
		},
		Quota: config.QuotaConfig{ProtectedFlag: "YES", ApprenticeMarker: "JOVEM APRENDIZ"},
		Photo: config.PhotoConfig{MaxBytes: 1 << 20},
	}
}

func TestContainer_WiresServices(t *testing.T) {
	cfg := testConfig(t)

	injector := NewContainer()
	do.OverrideValue(injector, cfg)
	t.Cleanup(func() { _ = injector.Shutdown() })

	authSvc, err := do.Invoke[*service.AuthService](injector)
	require.NoError(t, err)

	resp, err := authSvc.Login(context.Background(), service.LoginRequest{CPF: "11122233344", Password: "123456"})
	require.NoError(t, err)
	assert.True(t, resp.User.IsAdmin())

	// A generated key is persisted in the data directory for the next start.
	key, err := do.Invoke[providers.AuthKey](injector)
	require.NoError(t, err)
	assert.Len(t, key, 32)
	assert.FileExists(t, filepath.Join(cfg.App.DataDir, "auth.key"))

	stats, err := do.MustInvoke[*service.DashboardService](injector).Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalActive)
}

func TestContainer_InvalidDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	injector := NewContainer()
	do.OverrideValue(injector, cfg)
	t.Cleanup(func() { _ = injector.Shutdown() })

	_, err := do.Invoke[*providers.StoreHandle](injector)
	assert.Error(t, err)
}

func TestContainer_HashCostFromConfig(t *testing.T) {
	cfg := testConfig(t)

	injector := NewContainer()
	do.OverrideValue(injector, cfg)
	t.Cleanup(func() { _ = injector.Shutdown() })

	hasher, err := do.Invoke[*auth.Hasher](injector)
	require.NoError(t, err)
	hash, err := hasher.Hash("123456")
	require.NoError(t, err)
	assert.Contains(t, hash, "$m=64,t=1,p=1$")

	bad := testConfig(t)
	bad.Auth.HashIterations = 0
	broken := NewContainer()
	do.OverrideValue(broken, bad)
	t.Cleanup(func() { _ = broken.Shutdown() })

	_, err = do.Invoke[*auth.CredentialTable](broken)
	assert.Error(t, err)
}
