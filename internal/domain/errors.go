package domain

import "errors"

var (
	// ErrOrderNotFound is returned by the store when no local mirror row
	// matches an exchange order id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrConfigNotFound is returned when the configuration file is missing.
	ErrConfigNotFound = errors.New("configuration not found")
)

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
