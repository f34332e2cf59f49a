package config

import (
	"os"
	"path/filepath"

	"github.com/andy/billbook/internal/schema"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// PDF export settings
	Export ExportConfig `yaml:"export"`

	// Seller details applied to fresh documents
	Seller SellerConfig `yaml:"seller"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type ExportConfig struct {
	OutputDir string `yaml:"output_dir"` // Directory for generated PDFs
}

type SellerConfig struct {
	CompanyName       string `yaml:"company_name"`
	ContactName       string `yaml:"contact_name"`
	Address           string `yaml:"address"`
	CityStatePin      string `yaml:"city_state_pin"`
	Country           string `yaml:"country"`
	PANNo             string `yaml:"pan_no"`
	GSTRegistrationNo string `yaml:"gst_registration_no"`
	Currency          string `yaml:"currency"`
}

// Apply fills the seller block of a fresh document with configured values.
// Empty config values leave the document defaults in place.
func (s SellerConfig) Apply(inv *schema.Invoice) {
	if s.CompanyName != "" {
		inv.CompanyName = s.CompanyName
	}
	if s.ContactName != "" {
		inv.Name = s.ContactName
	}
	if s.Address != "" {
		inv.CompanyAddress = s.Address
	}
	if s.CityStatePin != "" {
		inv.CityStatePin = s.CityStatePin
	}
	if s.Country != "" {
		inv.CompanyCountry = s.Country
	}
	if s.PANNo != "" {
		inv.PANNo = s.PANNo
	}
	if s.GSTRegistrationNo != "" {
		inv.GSTRegistrationNo = s.GSTRegistrationNo
	}
	if s.Currency != "" {
		inv.Currency = s.Currency
	}
}

// DefaultConfigPath returns ~/.config/billbook/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "billbook", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "billbook", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "billbook", "billbook.db"),
		},
		Export: ExportConfig{
			OutputDir: filepath.Join(homeDir, ".config", "billbook", "exports"),
		},
		Seller: SellerConfig{},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for database, exports, etc.)
func (c *Config) EnsureDirectories() error {
	// Create database directory
	dbDir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	// Create PDF export directory
	if err := os.MkdirAll(c.Export.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}
