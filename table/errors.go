package table

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is wrapped by every rejected table or experiment parameter
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigError reports a parameter that cannot produce a meaningful table
type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s = %d is out of range", ErrInvalidConfiguration, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
