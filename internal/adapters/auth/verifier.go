// internal/adapters/auth/verifier.go
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/ammerola/warehouse/internal/core/ports"
	"github.com/ammerola/warehouse/internal/pkg/config"
)

// ErrTooManyAttempts is returned when login attempts exceed the allowed rate
var ErrTooManyAttempts = errors.New("too many login attempts")

// StaticVerifier accepts exactly one configured username/password pair
type StaticVerifier struct {
	username string
	password string
}

var _ ports.CredentialVerifier = (*StaticVerifier)(nil)

// NewStaticVerifier creates a verifier for a fixed pair
func NewStaticVerifier(username, password string) *StaticVerifier {
	return &StaticVerifier{username: username, password: password}
}

// Verify compares both fields in constant time
func (v *StaticVerifier) Verify(_ context.Context, username, password string) (bool, error) {
	return equal(username, v.username) & equal(password, v.password) == 1, nil
}

// SecretVerifier checks the password against a value held by a secrets manager
type SecretVerifier struct {
	username string
	key      string
	secrets  config.SecretsManager
	logger   *slog.Logger
}

var _ ports.CredentialVerifier = (*SecretVerifier)(nil)

// NewSecretVerifier creates a verifier whose password is the secret under key
func NewSecretVerifier(username, key string, secrets config.SecretsManager, logger *slog.Logger) *SecretVerifier {
	return &SecretVerifier{
		username: username,
		key:      key,
		secrets:  secrets,
		logger:   logger.With(slog.String("component", "auth")),
	}
}

// Verify fetches the expected password and compares in constant time
func (v *SecretVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	expected, err := v.secrets.GetSecret(ctx, v.key)
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to resolve login secret",
			slog.String("secret_key", v.key),
			slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to resolve credentials: %w", err)
	}

	return equal(username, v.username) & equal(password, expected) == 1, nil
}

// ThrottledVerifier limits how often another verifier may be consulted
type ThrottledVerifier struct {
	inner   ports.CredentialVerifier
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ ports.CredentialVerifier = (*ThrottledVerifier)(nil)

// NewThrottledVerifier allows burst attempts at once, then one per interval
func NewThrottledVerifier(inner ports.CredentialVerifier, interval time.Duration, burst int, logger *slog.Logger) *ThrottledVerifier {
	return &ThrottledVerifier{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Every(interval), burst),
		logger:  logger.With(slog.String("component", "auth")),
	}
}

// Verify rejects the attempt without consulting the inner verifier when the
// limit is exhausted
func (v *ThrottledVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	if !v.limiter.Allow() {
		v.logger.WarnContext(ctx, "login attempt throttled",
			slog.String("username", username))
		return false, ErrTooManyAttempts
	}
	return v.inner.Verify(ctx, username, password)
}

// NewFromConfig builds the configured verifier wrapped in a throttle
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.CredentialVerifier, error) {
	var inner ports.CredentialVerifier

	switch cfg.Auth.Source {
	case config.AuthSourceStatic:
		inner = NewStaticVerifier(cfg.Auth.Username, cfg.Auth.Password)
	case config.AuthSourceEnv:
		inner = NewSecretVerifier(cfg.Auth.Username, cfg.Auth.SecretKey, config.NewEnvSecretsManager(), logger)
	case config.AuthSourceAWS:
		sm, err := config.NewAWSSecretsManager(ctx, cfg.AWS, cfg.Auth.SecretName, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create secrets manager: %w", err)
		}
		inner = NewSecretVerifier(cfg.Auth.Username, cfg.Auth.SecretKey, sm, logger)
	default:
		return nil, fmt.Errorf("unsupported auth source %q", cfg.Auth.Source)
	}

	return NewThrottledVerifier(inner, cfg.Auth.LoginRate, cfg.Auth.LoginBurst, logger), nil
}

func equal(a, b string) int {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b))
}
