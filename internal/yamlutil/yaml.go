// Package yamlutil is the YAML decoding seam for server configuration.
// Callers never touch the parser dependency directly, so it can be
// swapped without changing the config layer.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps config input at 1MB. Server config files are a few
// hundred bytes, so anything near the cap is a mistake, not a config.
const MaxInputSize = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
)

// UnmarshalStrict decodes data into v, rejecting unknown fields so a
// typo in a config file fails loudly instead of silently keeping the
// default.
func UnmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
