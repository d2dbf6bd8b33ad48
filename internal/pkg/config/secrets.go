// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// ErrSecretNotFound is returned when a secret key has no value
var ErrSecretNotFound = errors.New("secret not found")

// SecretsManager resolves named secrets such as the login password
type SecretsManager interface {
	GetSecret(ctx context.Context, key string) (string, error)
}

// SecretsManagerAPI is the subset of the Secrets Manager client in use
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// LoadAWSConfig builds an AWS config for the configured region. Static keys
// are used when both are set, otherwise the default credential chain applies.
func LoadAWSConfig(ctx context.Context, cfg AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

// AWSSecretsManager reads one Secrets Manager secret whose value is a JSON
// object of key/value strings. The decoded object is kept for ttl.
type AWSSecretsManager struct {
	client     SecretsManagerAPI
	secretName string
	ttl        time.Duration
	logger     *slog.Logger

	mu        sync.Mutex
	values    map[string]string
	fetchedAt time.Time
}

// NewAWSSecretsManager creates a manager for secretName using the AWS settings in cfg
func NewAWSSecretsManager(ctx context.Context, cfg AWSConfig, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewAWSSecretsManagerWithClient(secretsmanager.NewFromConfig(awsCfg), secretName, logger), nil
}

// NewAWSSecretsManagerWithClient wraps an existing client
func NewAWSSecretsManagerWithClient(client SecretsManagerAPI, secretName string, logger *slog.Logger) *AWSSecretsManager {
	return &AWSSecretsManager{
		client:     client,
		secretName: secretName,
		ttl:        5 * time.Minute,
		logger: logger.With(
			slog.String("component", "secrets"),
			slog.String("secret_name", secretName)),
	}
}

// GetSecret returns key from the secret, fetching it when the cached copy is stale
func (sm *AWSSecretsManager) GetSecret(ctx context.Context, key string) (string, error) {
	values, err := sm.load(ctx)
	if err != nil {
		return "", err
	}

	val, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return val, nil
}

func (sm *AWSSecretsManager) load(ctx context.Context) (map[string]string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.values != nil && time.Since(sm.fetchedAt) < sm.ttl {
		return sm.values, nil
	}

	sm.logger.DebugContext(ctx, "fetching secret")

	result, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret value: %w", err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", sm.secretName)
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &values); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}

	sm.values = values
	sm.fetchedAt = time.Now()
	return values, nil
}

// EnvSecretsManager reads secrets from environment variables
type EnvSecretsManager struct{}

// NewEnvSecretsManager creates a new environment-based secrets manager
func NewEnvSecretsManager() *EnvSecretsManager {
	return &EnvSecretsManager{}
}

// GetSecret returns the value of the environment variable key
func (em *EnvSecretsManager) GetSecret(_ context.Context, key string) (string, error) {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val, nil
	}
	return "", fmt.Errorf("%w: environment variable %s not set", ErrSecretNotFound, key)
}

var (
	_ SecretsManager = (*AWSSecretsManager)(nil)
	_ SecretsManager = (*EnvSecretsManager)(nil)
)
