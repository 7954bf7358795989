package gosplice

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the recognized engine options. Tag sets are matched against
// element names exactly (XML is case-sensitive).
type Config struct {
	// InlineTags are excluded from container status and from segmentation.
	InlineTags []string `toml:"inline_tags"`

	// DoNotTranslate lists tags isolated behind placeholders before
	// segmentation.
	DoNotTranslate []string `toml:"do_not_translate"`

	// IDLength is the width of generated hex identifiers. Must be a
	// positive even number.
	IDLength int `toml:"id_length"`

	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the built-in defaults. Twelve hex digits give over
// a trillion possible identifiers, enough for temporary uniqueness within
// one document's lifetime.
func DefaultConfig() *Config {
	return &Config{
		InlineTags: append([]string(nil), DefaultInlineTags...),
		IDLength:   12,
		LogLevel:   "info",
	}
}

// LoadConfig layers a TOML file over the defaults. A missing file is not an
// error; the defaults are returned unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option constraints.
func (c *Config) Validate() error {
	if c.IDLength <= 0 || c.IDLength%2 != 0 {
		return fmt.Errorf("id_length must be a positive even number, got %d", c.IDLength)
	}
	return nil
}

func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}
