package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultProvider = "openai"
	DefaultModel    = "gpt-5.1"
	DefaultTimeout  = 2 * time.Minute
	DefaultAddr     = ":8501"
)

// Config holds application configuration
type Config struct {
	Provider             string        `yaml:"provider"`
	APIKey               string        `yaml:"api_key"`  // Can be ${ENV_VAR} reference
	BaseURL              string        `yaml:"base_url"` // Optional custom endpoint
	Model                string        `yaml:"model"`
	PricePer1KPrompt     float64       `yaml:"price_per_1k_prompt_tokens"`
	PricePer1KCompletion float64       `yaml:"price_per_1k_completion_tokens"`
	Timeout              time.Duration `yaml:"timeout"`
	RollbackOnFailure    bool          `yaml:"rollback_on_failure"`
	RulesFile            string        `yaml:"rules_file"`
	Addr                 string        `yaml:"addr"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Provider: DefaultProvider,
		Model:    DefaultModel,
		Timeout:  DefaultTimeout,
		Addr:     DefaultAddr,
	}
}

// EnvFiles are read, in order, before the environment is consulted.
// Variables already present in the environment win.
var EnvFiles = []string{".env", ".env.local"}

// Load builds the configuration: defaults, then the optional yaml file at path,
// then .env files, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	for _, f := range EnvFiles {
		if err := LoadEnvFile(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.APIKey = resolveEnvRef(cfg.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile loads config from a yaml file
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from environment variables
func (c *Config) applyEnv() error {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("TUTOR_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("TUTOR_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := firstEnv("MODEL_ID", "MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("TUTOR_RULES_FILE"); v != "" {
		c.RulesFile = v
	}
	if v := os.Getenv("TUTOR_ADDR"); v != "" {
		c.Addr = v
	}

	var err error
	if c.PricePer1KPrompt, err = envFloat("PRICE_PER_1K_PROMPT_TOKENS", c.PricePer1KPrompt); err != nil {
		return err
	}
	if c.PricePer1KCompletion, err = envFloat("PRICE_PER_1K_COMPLETION_TOKENS", c.PricePer1KCompletion); err != nil {
		return err
	}
	if v := os.Getenv("TUTOR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TUTOR_TIMEOUT %q: %w", v, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("TUTOR_ROLLBACK_ON_FAILURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TUTOR_ROLLBACK_ON_FAILURE %q: %w", v, err)
		}
		c.RollbackOnFailure = b
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.PricePer1KPrompt < 0 {
		return fmt.Errorf("price per 1k prompt tokens must not be negative, got %v", c.PricePer1KPrompt)
	}
	if c.PricePer1KCompletion < 0 {
		return fmt.Errorf("price per 1k completion tokens must not be negative, got %v", c.PricePer1KCompletion)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// HasAPIKey reports whether a credential is configured
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// LoadEnvFile reads KEY=VALUE lines into the environment without overriding set variables.
func LoadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// resolveEnvRef replaces a ${ENV_VAR} reference with its value
func resolveEnvRef(v string) string {
	if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") {
		return os.Getenv(v[2 : len(v)-1])
	}
	return v
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}
