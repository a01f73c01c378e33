package config

import (
	"errors"
	"fmt"
	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
	icingadbConfig "github.com/icinga/icingadb/pkg/config"
	"github.com/icinga/icingadb/pkg/logging"
	"io"
	"os"
)

type ConfigFile struct {
	Listen  string                 `yaml:"listen" default:"localhost:5681"`
	Logging icingadbConfig.Logging `yaml:"logging"`
	// Strict is the error policy of all resources that don't set one on their own.
	Strict    bool                 `yaml:"strict"`
	Resources map[string]*Resource `yaml:"resources"`
}

// SetDefaults implements the defaults.Setter interface.
func (c *ConfigFile) SetDefaults() {
	if defaults.CanUpdate(c.Logging.Output) {
		c.Logging.Output = logging.CONSOLE
	}
}

// FromFile loads the YAML config file at the given path.
func FromFile(path string) (*ConfigFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Load decodes a YAML config from r, applies the defaults and validates the result.
func Load(r io.Reader) (*ConfigFile, error) {
	var c ConfigFile

	if err := defaults.Set(&c); err != nil {
		return nil, err
	}

	d := yaml.NewDecoder(r)
	if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks the logging config and every resource declaration.
func (c *ConfigFile) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address must not be empty")
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}

	for name, resource := range c.Resources {
		if resource == nil {
			return fmt.Errorf("resource %q is empty", name)
		}

		if err := resource.Validate(); err != nil {
			return fmt.Errorf("resource %q is invalid: %w", name, err)
		}
	}

	return nil
}

// Assert interface compliance.
var (
	_ defaults.Setter = (*ConfigFile)(nil)
)
