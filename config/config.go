// Package config locates the tables of an offloading network environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultEnvDir is the directory holding the tables.
	DefaultEnvDir = "."
	// DefaultSelectorFile is the file whose content names the links table.
	DefaultSelectorFile = "net_topology"
	// DefaultTopology is the links table used when no topology is selected.
	DefaultTopology = "network_branchless.csv"
	// DefaultApplications is the applications table.
	DefaultApplications = "app_definition.csv"
	// DefaultLogLevel is the minimum level of the logged records.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the format of the logged records.
	DefaultLogFormat = "text"

	nodesSuffix    = "_nodes"
	tableExtension = ".csv"
)

var validate = validator.New()

// Config describes where the tables of an offloading network are found.
type Config struct {
	// EnvDir is the directory holding the tables and the selector file.
	EnvDir string `yaml:"env_dir" validate:"required"`

	// SelectorFile names a file whose content is the name of the links table.
	SelectorFile string `yaml:"selector_file"`

	// Topology names the links table. When set, the selector file is not read.
	Topology string `yaml:"topology,omitempty"`

	// DefaultTopology is used when no topology is selected.
	DefaultTopology string `yaml:"default_topology" validate:"required"`

	// Nodes names the nodes table. When empty, it is derived from the name
	// of the links table (see NodesTable).
	Nodes string `yaml:"nodes,omitempty"`

	Applications string    `yaml:"applications" validate:"required"`
	Log          LogConfig `yaml:"log"`
}

// LogConfig controls the environment's logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Default returns a configuration with all default values.
func Default() Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return cfg
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	ApplyDefaults(&cfg)
	return cfg, nil
}

// ApplyDefaults fills in default values when empty. The selector file is left
// empty when a topology is given explicitly.
func ApplyDefaults(cfg *Config) {
	if cfg.EnvDir == "" {
		cfg.EnvDir = DefaultEnvDir
	}
	if cfg.SelectorFile == "" && cfg.Topology == "" {
		cfg.SelectorFile = DefaultSelectorFile
	}
	if cfg.DefaultTopology == "" {
		cfg.DefaultTopology = DefaultTopology
	}
	if cfg.Applications == "" {
		cfg.Applications = DefaultApplications
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// Validate checks that the fields required to locate the tables are set.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first failing field only.
	for _, e := range validationErrs {
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s is required", e.Namespace())
		case "oneof":
			return fmt.Errorf("%s must be one of [%s], got %q", e.Namespace(), e.Param(), e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", e.Namespace(), e.Tag())
		}
	}
	return err
}

// Path returns the location of a file of the environment. Relative names are
// resolved against EnvDir.
func (cfg Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.EnvDir, name)
}

// ConfigResolutionError is returned when the topology selector exists but
// cannot be read.
type ConfigResolutionError struct {
	Path string
	Err  error
}

func (e *ConfigResolutionError) Error() string {
	return fmt.Sprintf("cannot read topology selector %s: %s", e.Path, e.Err)
}

func (e *ConfigResolutionError) Unwrap() error {
	return e.Err
}

// ResolveTopology returns the name of the links table. The second returned
// value is true if the default topology was used.
//
// An explicit Topology always wins. Otherwise the selector file is read: if it
// does not exist or is blank, the default topology is used. A selector file
// that exists but cannot be read is a *ConfigResolutionError.
func ResolveTopology(cfg Config) (string, bool, error) {
	if cfg.Topology != "" {
		return cfg.Topology, false, nil
	}
	if cfg.SelectorFile == "" {
		return cfg.DefaultTopology, true, nil
	}

	path := cfg.Path(cfg.SelectorFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg.DefaultTopology, true, nil
	}
	if err != nil {
		return "", false, &ConfigResolutionError{Path: path, Err: err}
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return cfg.DefaultTopology, true, nil
	}
	return name, false, nil
}

// NodesTable returns the name of the nodes table that goes with the given
// links table: the configured one if any, or the links table's name with a
// "_nodes" suffix (e.g. "network_branchless.csv" gives
// "network_branchless_nodes.csv").
func NodesTable(cfg Config, topology string) string {
	if cfg.Nodes != "" {
		return cfg.Nodes
	}
	ext := filepath.Ext(topology)
	if ext == "" {
		ext = tableExtension
	}
	return strings.TrimSuffix(topology, filepath.Ext(topology)) + nodesSuffix + ext
}

// Tables holds the resolved location of every table.
type Tables struct {
	Topology     string // name of the links table
	FellBack     bool   // whether the default topology was used
	Links        string
	Nodes        string
	Applications string
}

// Resolve resolves the topology and returns the paths of all tables.
func Resolve(cfg Config) (Tables, error) {
	topology, fellBack, err := ResolveTopology(cfg)
	if err != nil {
		return Tables{}, err
	}
	return Tables{
		Topology:     topology,
		FellBack:     fellBack,
		Links:        cfg.Path(topology),
		Nodes:        cfg.Path(NodesTable(cfg, topology)),
		Applications: cfg.Path(cfg.Applications),
	}, nil
}
