// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Sort orders accepted by book.sort.
const (
	SortInsertion = "insertion"
	SortFirstName = "first"
	SortLastName  = "last"
)

// Config holds all addressbook configuration.
type Config struct {
	Book    Book    `yaml:"book"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
}

// Book holds address book file settings.
type Book struct {
	Path string `yaml:"path"`
	Sort string `yaml:"sort"` // "insertion" | "first" | "last"
}

// Display holds terminal output settings.
type Display struct {
	Plain bool `yaml:"plain"` // Never start the TUI.
}

// Log holds CLI logging settings.
type Log struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Book: Book{
			Path: "addressbook.txt",
			Sort: SortInsertion,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
// Invalid YAML or unknown fields are errors.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Book.Path == "" {
		return errors.New("config: book.path cannot be empty")
	}
	switch c.Book.Sort {
	case SortInsertion, SortFirstName, SortLastName:
	default:
		return fmt.Errorf("config: book.sort must be %q, %q or %q, got %q",
			SortInsertion, SortFirstName, SortLastName, c.Book.Sort)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_FILE, ADDRESSBOOK_SORT, ADDRESSBOOK_PLAIN,
// ADDRESSBOOK_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ADDRESSBOOK_FILE"); v != "" {
		c.Book.Path = v
	}
	if v := os.Getenv("ADDRESSBOOK_SORT"); v != "" {
		c.Book.Sort = v
	}
	if v := os.Getenv("ADDRESSBOOK_PLAIN"); v != "" {
		switch v {
		case "1", "true":
			c.Display.Plain = true
		case "0", "false":
			c.Display.Plain = false
		default:
			return fmt.Errorf("config: invalid ADDRESSBOOK_PLAIN %q", v)
		}
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Book    *rawBook    `yaml:"book"`
	Display *rawDisplay `yaml:"display"`
	Log     *rawLog     `yaml:"log"`
}

type rawBook struct {
	Path *string `yaml:"path"`
	Sort *string `yaml:"sort"`
}

type rawDisplay struct {
	Plain *bool `yaml:"plain"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist or holds no settings.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Book != nil {
		if layer.Book.Path != nil {
			c.Book.Path = *layer.Book.Path
		}
		if layer.Book.Sort != nil {
			c.Book.Sort = *layer.Book.Sort
		}
	}
	if layer.Display != nil && layer.Display.Plain != nil {
		c.Display.Plain = *layer.Display.Plain
	}
	if layer.Log != nil && layer.Log.Level != nil {
		c.Log.Level = *layer.Log.Level
	}
}
