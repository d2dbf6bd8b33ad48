// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"reflect"
	"strings"
)

// Validator checks one aspect of a loaded configuration
type Validator interface {
	Validate(cfg *Config) error
}

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	// Validate required fields using reflection
	if err := validateRequiredFields(cfg); err != nil {
		return err
	}

	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.Path == "" {
			return fmt.Errorf("%w: database path for sqlite", ErrMissingRequiredConfig)
		}
	case "pgx", "postgres":
		if cfg.Database.Host == "" || cfg.Database.Name == "" {
			return fmt.Errorf("%w: database host and name for postgres", ErrMissingRequiredConfig)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	switch cfg.Store.Backend {
	case StoreBackendSQL, StoreBackendRedis:
	case StoreBackendFile:
		if cfg.Store.SnapshotPath == "" {
			return fmt.Errorf("%w: snapshot path for file store", ErrMissingRequiredConfig)
		}
	default:
		return fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}

	switch cfg.Auth.Source {
	case AuthSourceStatic:
		if cfg.Auth.Password == "" {
			return fmt.Errorf("%w: auth password for static source", ErrMissingRequiredConfig)
		}
	case AuthSourceEnv, AuthSourceAWS:
		if cfg.Auth.SecretKey == "" {
			return fmt.Errorf("%w: auth secret key", ErrMissingRequiredConfig)
		}
		if cfg.Auth.Source == AuthSourceAWS && cfg.Auth.SecretName == "" {
			return fmt.Errorf("%w: auth secret name", ErrMissingRequiredConfig)
		}
	default:
		return fmt.Errorf("unsupported auth source %q", cfg.Auth.Source)
	}

	if cfg.Auth.LoginBurst <= 0 {
		return fmt.Errorf("auth login_burst must be positive")
	}

	if cfg.Store.Backend == StoreBackendRedis && cfg.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis pool_size must be positive")
	}

	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	// Check for placeholder values
	if strings.Contains(cfg.Database.Password, "MISSING_") {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}

	if cfg.Database.Driver != "sqlite" && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database SSL must be enabled in production")
	}

	// The built-in pair is for local use only
	if cfg.Auth.Source == AuthSourceStatic && cfg.Auth.Password == "553355" {
		return fmt.Errorf("default credentials cannot be used in production")
	}

	return nil
}

// validateRequiredFields uses reflection to check required struct tags
func validateRequiredFields(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	return validateStruct(v, "")
}

func validateStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		fieldName := fieldType.Name

		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		// Check for required tag
		if required := fieldType.Tag.Get("required"); required == "true" {
			if isZeroValue(field) {
				return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, fieldName)
			}
		}

		// Recursively check nested structs
		if field.Kind() == reflect.Struct {
			if err := validateStruct(field, fieldName); err != nil {
				return err
			}
		}
	}

	return nil
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == "" || strings.HasPrefix(v.String(), "MISSING_")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
