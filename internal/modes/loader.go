package modes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleConfig is a keyword rule as written in a rules file
type RuleConfig struct {
	Mode     string   `yaml:"mode"`
	Keywords []string `yaml:"keywords"`
}

// Config is the root of a rules file
type Config struct {
	Rules []RuleConfig `yaml:"rules"`
}

// Loader handles parsing of classifier rule files
type Loader struct{}

// Load parses a YAML file into a Config struct
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rules config: %w", err)
	}

	return &cfg, nil
}

// ToRules converts the file entries into classifier rules, validating each mode.
func (c *Config) ToRules() ([]Rule, error) {
	rules := make([]Rule, 0, len(c.Rules))
	for i, rc := range c.Rules {
		mode, err := ParseMode(rc.Mode)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if len(rc.Keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no keywords", i, mode)
		}
		rules = append(rules, Rule{Mode: mode, Keywords: rc.Keywords})
	}
	return rules, nil
}

// LoadClassifier builds the default classifier with rules from path placed ahead of the defaults.
// An empty path yields the defaults.
func LoadClassifier(path string) (*Classifier, error) {
	c := NewClassifier()
	if path == "" {
		return c, nil
	}

	cfg, err := (&Loader{}).Load(path)
	if err != nil {
		return nil, err
	}
	rules, err := cfg.ToRules()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Prepend(rules...)
	return c, nil
}
