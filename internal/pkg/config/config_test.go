package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse/internal/pkg/config"
	"github.com/ammerola/warehouse/internal/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	chdir(t, t.TempDir())

	cfg, err := config.Load(logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "warehouse", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "warehouse.db", cfg.Database.Path)
	assert.Equal(t, config.StoreBackendSQL, cfg.Store.Backend)
	assert.Equal(t, config.AuthSourceStatic, cfg.Auth.Source)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, "553355", cfg.Auth.Password)
	assert.Equal(t, 3, cfg.Auth.LoginBurst)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_KEY_PREFIX", "wh-test")
	t.Setenv("AUTH_LOGIN_RATE", "250ms")
	chdir(t, t.TempDir())

	cfg, err := config.Load(logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, config.StoreBackendRedis, cfg.Store.Backend)
	assert.Equal(t, "wh-test", cfg.Redis.KeyPrefix)
	assert.Equal(t, "250ms", cfg.Auth.LoginRate.String())
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORE_BACKEND", "tape")
	chdir(t, t.TempDir())

	_, err := config.Load(logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			App:      config.AppConfig{Name: "warehouse", Environment: "test"},
			Database: config.DatabaseConfig{Driver: "sqlite", Path: "warehouse.db"},
			Store:    config.StoreConfig{Backend: config.StoreBackendSQL},
			Redis:    config.RedisConfig{PoolSize: 1},
			Auth: config.AuthConfig{
				Source:     config.AuthSourceStatic,
				Username:   "admin",
				Password:   "553355",
				LoginBurst: 3,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "valid_defaults", mutate: func(*config.Config) {}},
		{
			name:    "missing_app_name",
			mutate:  func(c *config.Config) { c.App.Name = "" },
			wantErr: "App.Name",
		},
		{
			name:    "sqlite_without_path",
			mutate:  func(c *config.Config) { c.Database.Path = "" },
			wantErr: "database path",
		},
		{
			name: "file_store_without_path",
			mutate: func(c *config.Config) {
				c.Store.Backend = config.StoreBackendFile
			},
			wantErr: "snapshot path",
		},
		{
			name: "aws_auth_without_secret_name",
			mutate: func(c *config.Config) {
				c.Auth.Source = config.AuthSourceAWS
				c.Auth.SecretKey = "WAREHOUSE_PASSWORD"
			},
			wantErr: "auth secret name",
		},
		{
			name: "production_rejects_default_password",
			mutate: func(c *config.Config) {
				c.App.Environment = "production"
			},
			wantErr: "default credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

type fakeSecretsAPI struct {
	value string
	err   error
	calls int
}

func (f *fakeSecretsAPI) GetSecretValue(_ context.Context, _ *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.value)}, nil
}

func TestAWSSecretsManager_GetSecret(t *testing.T) {
	api := &fakeSecretsAPI{value: `{"WAREHOUSE_PASSWORD":"s3cret"}`}
	sm := config.NewAWSSecretsManagerWithClient(api, "warehouse/credentials", logger.Discard())
	ctx := context.Background()

	val, err := sm.GetSecret(ctx, "WAREHOUSE_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", val)

	_, err = sm.GetSecret(ctx, "WAREHOUSE_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls, "second lookup is served from cache")

	_, err = sm.GetSecret(ctx, "OTHER")
	assert.ErrorIs(t, err, config.ErrSecretNotFound)
}

func TestAWSSecretsManager_PropagatesClientError(t *testing.T) {
	api := &fakeSecretsAPI{err: errors.New("access denied")}
	sm := config.NewAWSSecretsManagerWithClient(api, "warehouse/credentials", logger.Discard())

	_, err := sm.GetSecret(context.Background(), "WAREHOUSE_PASSWORD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestEnvSecretsManager_GetSecret(t *testing.T) {
	t.Setenv("WAREHOUSE_PASSWORD", "from-env")
	sm := config.NewEnvSecretsManager()

	val, err := sm.GetSecret(context.Background(), "WAREHOUSE_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "from-env", val)

	_, err = sm.GetSecret(context.Background(), "WAREHOUSE_MISSING_KEY")
	assert.ErrorIs(t, err, config.ErrSecretNotFound)
}
