package composer

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// PackageJSONField is the package.json field holding the configuration
const PackageJSONField = "cssComposer"

// configFiles are tried in order below the project root
var configFiles = []string{
	".config/css-composer.yaml",
	".config/css-composer.yml",
	".config/css-composer.json",
}

// Config is the project configuration
type Config struct {
	// Passes defaults to DefaultSteps
	Passes Steps `yaml:"passes"`
	// Files are glob patterns processed when none are given on the command line
	Files []string `yaml:"files"`
	// Out is the output directory; empty means standard output
	Out string `yaml:"out"`
	// Source is the file the configuration was read from, empty for defaults
	Source string `yaml:"-"`
}

// DefaultConfig runs every pass
func DefaultConfig() *Config {
	return &Config{Passes: DefaultSteps()}
}

// Load reads the configuration for the project at rootPath: the
// package.json field first, then the .config files. Missing configuration
// is not an error; defaults are returned.
func Load(fs afero.Fs, rootPath string) (*Config, error) {
	cfg, err := readPackageJSON(fs, rootPath)
	if err != nil || cfg != nil {
		return cfg, err
	}

	for _, name := range configFiles {
		path := filepath.Join(rootPath, name)
		if ok, _ := afero.Exists(fs, path); ok {
			return LoadFile(fs, path)
		}
	}
	return DefaultConfig(), nil
}

// LoadFile reads a YAML or JSON configuration file. Comments are allowed in
// JSON.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if filepath.Ext(path) == ".json" {
		data = jsonc.ToJSON(data)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Source = path
	return withDefaults(&cfg), nil
}

// readPackageJSON returns nil without error when there is no package.json or
// it has no configuration field
func readPackageJSON(fs afero.Fs, rootPath string) (*Config, error) {
	path := filepath.Join(rootPath, "package.json")
	if ok, _ := afero.Exists(fs, path); !ok {
		return nil, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	// Parse as JSONC (allows comments)
	var pkg map[string]yaml.Node
	if err := yaml.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	field, ok := pkg[PackageJSONField]
	if !ok {
		return nil, nil
	}
	if field.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s must be an object", PackageJSONField)
	}

	var cfg Config
	if err := field.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", PackageJSONField, err)
	}
	cfg.Source = path
	return withDefaults(&cfg), nil
}

func withDefaults(cfg *Config) *Config {
	if cfg.Passes == nil {
		cfg.Passes = DefaultSteps()
	}
	return cfg
}
