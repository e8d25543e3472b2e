package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "ngodocs.yaml"

// Config represents the top-level ngodocs.yaml configuration.
type Config struct {
	Organization OrganizationConfig `yaml:"organization"`
	Locale       LocaleConfig       `yaml:"locale"`
	Forms        FormsConfig        `yaml:"forms"`
	Batch        BatchConfig        `yaml:"batch"`
}

// OrganizationConfig prefills the organization fields of every form.
type OrganizationConfig struct {
	Name               string `yaml:"name"`
	RegistrationNumber string `yaml:"registration_number,omitempty"`
	AuthorityName      string `yaml:"authority_name,omitempty"`
}

// LocaleConfig controls currency rendering.
type LocaleConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	CurrencyName   string `yaml:"currency_name"`
}

// FormsConfig holds the values a blank form starts with.
type FormsConfig struct {
	PaymentMode          string `yaml:"payment_mode"`
	MembershipType       string `yaml:"membership_type"`
	Designation          string `yaml:"designation"`
	AuthorityDesignation string `yaml:"authority_designation"`
	MeetingTime          string `yaml:"meeting_time"`
	ValidityDays         int    `yaml:"validity_days"`
}

// BatchConfig controls bulk generation.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Load reads an ngodocs.yaml file from disk. Keys missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate rejects values that cannot be used.
func (c *Config) Validate() error {
	if c.Forms.ValidityDays < 0 {
		return fmt.Errorf("config error: 'forms.validity_days' must be non-negative")
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("config error: 'batch.workers' must be non-negative")
	}
	return nil
}

// Default returns a Config with sensible defaults for a new organization.
func Default(orgName string) *Config {
	return &Config{
		Organization: OrganizationConfig{
			Name: orgName,
		},
		Locale: LocaleConfig{
			CurrencySymbol: "₹",
			CurrencyName:   "Rupees",
		},
		Forms: FormsConfig{
			PaymentMode:          "Cash",
			MembershipType:       "General Member",
			Designation:          "Volunteer",
			AuthorityDesignation: "President",
			MeetingTime:          "10:00",
			ValidityDays:         365,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}
