// Package config loads the bench daemon configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Rouzip/gopapi/pkg/papi"
	"github.com/Rouzip/gopapi/pkg/utils"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Library is the path of the PAPI shared object.
	Library string `yaml:"library"`
	// Version is the major.minor PAPI version to negotiate.
	Version  string        `yaml:"version"`
	Listen   string        `yaml:"listen"`
	Interval time.Duration `yaml:"interval"`
	Groups   []Group       `yaml:"groups"`
}

// Group is one counter set and the dot kernel it is measured over.
type Group struct {
	Name   string   `yaml:"name"`
	Events []string `yaml:"events"`
	// Size is the vector length of the dot kernel, e.g. "32M".
	Size string `yaml:"size"`
	// Thrash is the number of bytes swept before each run, "0" to disable.
	Thrash string `yaml:"thrash"`
	// Repeat is the number of windows measured per round.
	Repeat int `yaml:"repeat"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Library:  papi.DefaultLibraryPath,
		Version:  papi.CurrentVersion.String(),
		Listen:   ":8080",
		Interval: 60 * time.Second,
		Groups: []Group{
			{
				Name:   "cpi",
				Events: []string{"PAPI_TOT_CYC", "PAPI_TOT_INS"},
				Size:   "32M",
				Thrash: "64M",
				Repeat: 1,
			},
		},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Groups given in the
// document replace the default groups.
func Parse(data []byte) (*Config, error) {
	c := Default()
	c.Groups = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(c.Groups) == 0 {
		c.Groups = Default().Groups
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Library == "" {
		return fmt.Errorf("library must be set")
	}
	if _, err := c.PAPIVersion(); err != nil {
		return err
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	seen := make(map[string]bool)
	for i, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("group %d: name must be set", i)
		}
		if seen[g.Name] {
			return fmt.Errorf("group %q: duplicate name", g.Name)
		}
		seen[g.Name] = true
		if len(g.Events) == 0 {
			return fmt.Errorf("group %q: %w", g.Name, papi.ErrNoEvents)
		}
		if g.Repeat < 0 {
			return fmt.Errorf("group %q: repeat must not be negative", g.Name)
		}
		if _, _, err := g.Sizes(); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	return nil
}

// PAPIVersion parses Version.
func (c *Config) PAPIVersion() (papi.Version, error) {
	return papi.ParseVersion(c.Version)
}

// Sizes parses Size and Thrash. An empty Thrash means no sweep.
func (g Group) Sizes() (size, thrash int64, err error) {
	size, err = utils.ParseSize(g.Size)
	if err != nil {
		return 0, 0, err
	}
	if size == 0 {
		return 0, 0, fmt.Errorf("size must be positive")
	}
	if g.Thrash != "" {
		thrash, err = utils.ParseSize(g.Thrash)
		if err != nil {
			return 0, 0, err
		}
	}
	return size, thrash, nil
}

// Windows returns Repeat, treating zero as one.
func (g Group) Windows() int {
	if g.Repeat == 0 {
		return 1
	}
	return g.Repeat
}
