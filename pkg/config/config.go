// Package config reads the YAML configuration file of the gallery program.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/elves/gallery/pkg/env"
	"github.com/elves/gallery/pkg/gallery"
	"github.com/elves/gallery/pkg/logutil"
	"github.com/elves/gallery/pkg/ui"
)

var logger = logutil.GetLogger("[config] ")

// Config is the content of a configuration file. Zero values mean defaults.
type Config struct {
	// Either "full" or "inset".
	Variant string `yaml:"variant"`
	// One of gallery.KeyFuncNames.
	Keys string `yaml:"keys"`
	// Width of a terminal cell in pixels.
	CellWidth   int         `yaml:"cell_width"`
	Placeholder Placeholder `yaml:"placeholder"`
	Style       Style       `yaml:"style"`
	// Database file and bucket to show items from.
	DB     string `yaml:"db"`
	Bucket string `yaml:"bucket"`
	// Demo to show when no database is given.
	Demo string `yaml:"demo"`
	// Keys that quit the program, in the syntax of ui.ParseKey, such as
	// "Ctrl-C".
	QuitKeys []string `yaml:"quit_keys"`
}

// Placeholder contains the texts shown when there are no items to show.
type Placeholder struct {
	Loading string `yaml:"loading"`
	Empty   string `yaml:"empty"`
}

// Style contains stylings in the syntax of ui.ParseStyling, such as
// "fg-blue bold".
type Style struct {
	Item   string `yaml:"item"`
	Status string `yaml:"status"`
}

// Parse reads a configuration from r. Unknown fields are errors. An empty
// input is a zero Config.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that can be checked without context.
func (cfg *Config) Validate() error {
	var errs []error
	switch cfg.Variant {
	case "", "full", "inset":
	default:
		errs = append(errs, fmt.Errorf("variant: unknown variant %q", cfg.Variant))
	}
	if _, err := gallery.ParseKeyFunc[any](cfg.Keys); err != nil {
		errs = append(errs, fmt.Errorf("keys: %w", err))
	}
	if cfg.CellWidth < 0 {
		errs = append(errs, fmt.Errorf("cell_width: negative value %d", cfg.CellWidth))
	}
	for _, f := range []struct{ name, value string }{
		{"style.item", cfg.Style.Item}, {"style.status", cfg.Style.Status},
	} {
		if f.value != "" && ui.ParseStyling(f.value) == nil {
			errs = append(errs, fmt.Errorf("%s: invalid styling %q", f.name, f.value))
		}
	}
	for i, s := range cfg.QuitKeys {
		if _, err := ui.ParseKey(s); err != nil {
			errs = append(errs, fmt.Errorf("quit_keys[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Load reads the configuration file at path. If path is empty, $GALLERY_CONFIG
// is used; if that is also empty, the default path is used, and a missing file
// there is not an error.
func Load(path string) (*Config, error) {
	optional := false
	if path == "" {
		path = os.Getenv(env.GALLERY_CONFIG)
	}
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			logger.Println("no default config path:", err)
			return &Config{}, nil
		}
		optional = true
	}
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Println("loaded config from", path)
	return cfg, nil
}

// DefaultPath returns the default path of the configuration file,
// $XDG_CONFIG_HOME/gallery/config.yaml or ~/.config/gallery/config.yaml.
func DefaultPath() (string, error) {
	if dir := os.Getenv(env.XDG_CONFIG_HOME); dir != "" {
		return filepath.Join(dir, "gallery", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gallery", "config.yaml"), nil
}
