package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultTreeCacheSize     = 512
	defaultEmbeddingProvider = "mock"
	defaultEmbeddingDim      = 384
	defaultBatchSize         = 64
	defaultRequestsPerSecond = 5
	defaultStoreType         = "none"
	defaultStorePath         = ".repominer/vectors.db"
)

// Settings is the top-level configuration for repominer.
type Settings struct {
	Name      string            `yaml:"name"`    // Repository name override
	Exclude   []string          `yaml:"exclude"` // Glob patterns relative to the repository root
	Workers   int               `yaml:"workers"`
	History   HistoryOptions    `yaml:"history"`
	Embedding EmbeddingSettings `yaml:"embedding"`
	Store     StoreSettings     `yaml:"store"`
}

// EmbeddingSettings selects and configures the embedding provider.
type EmbeddingSettings struct {
	Provider          string  `yaml:"provider"` // "mock", "openai", "gemini", "ollama"
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"api_key"` // Inline or ${ENV_VAR}
	BaseURL           string  `yaml:"base_url"`
	Dimension         int     `yaml:"dimension"`
	BatchSize         int     `yaml:"batch_size"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// StoreSettings selects where embedded snapshots are persisted.
type StoreSettings struct {
	Type string `yaml:"type"` // "none", "bbolt", "sqlite"
	Path string `yaml:"path"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the configuration used when no file is found.
func DefaultSettings() *Settings {
	settings := &Settings{}
	applyDefaults(settings)
	return settings
}

// NewSettings reads and parses a configuration file, loading a .env file if
// present and expanding ${ENV_VAR} references in secrets.
func NewSettings(path string) (*Settings, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Embedding.APIKey = expandEnv(settings.Embedding.APIKey)
	settings.Embedding.BaseURL = expandEnv(settings.Embedding.BaseURL)
	applyDefaults(&settings)

	if validateErr := validate(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// LoadSettings loads the given file, or the first one found in the default
// locations, falling back to defaults when there is none.
func LoadSettings(path string) (*Settings, error) {
	if path != "" {
		return NewSettings(path)
	}
	found, err := FindConfigFile()
	if err != nil {
		logger.Debug("No config file found, using defaults")
		_ = godotenv.Load()
		return DefaultSettings(), nil
	}
	logger.Infof("Using config file: %s", found)
	return NewSettings(found)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".repominer.yaml",
		".repominer.yml",
		"repominer.yaml",
		"repominer.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv expands ${ENV_VAR} references, warning about unset variables.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

func applyDefaults(settings *Settings) {
	if settings.Workers <= 0 {
		settings.Workers = runtime.NumCPU()
	}
	if settings.History.TreeCacheSize <= 0 {
		settings.History.TreeCacheSize = defaultTreeCacheSize
	}
	if settings.Embedding.Provider == "" {
		settings.Embedding.Provider = defaultEmbeddingProvider
	}
	if settings.Embedding.Dimension <= 0 {
		settings.Embedding.Dimension = defaultEmbeddingDim
	}
	if settings.Embedding.BatchSize <= 0 {
		settings.Embedding.BatchSize = defaultBatchSize
	}
	if settings.Embedding.RequestsPerSecond <= 0 {
		settings.Embedding.RequestsPerSecond = defaultRequestsPerSecond
	}
	if settings.Store.Type == "" {
		settings.Store.Type = defaultStoreType
	}
	if settings.Store.Path == "" {
		settings.Store.Path = defaultStorePath
	}
}

// validate checks for invalid configuration values.
func validate(settings *Settings) error {
	switch settings.Embedding.Provider {
	case "mock", "ollama":
	case "openai", "gemini":
		if settings.Embedding.APIKey == "" {
			return fmt.Errorf(
				"embedding.api_key is required for provider %q (set inline or via ${ENV_VAR})",
				settings.Embedding.Provider,
			)
		}
	default:
		return fmt.Errorf("unknown embedding provider: %q", settings.Embedding.Provider)
	}

	switch settings.Store.Type {
	case "none", "bbolt", "sqlite":
	default:
		return fmt.Errorf("unknown store type: %q", settings.Store.Type)
	}

	for i, pattern := range settings.Exclude {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude[%d] must not be empty", i)
		}
	}

	return nil
}
