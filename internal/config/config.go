package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dmitrijs2005/savelinks/internal/cryptox"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
)

// Config holds runtime settings for the savelinks CLI.
type Config struct {
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
	Security SecurityConfig `yaml:"security" json:"security"`
	Log      LogConfig      `yaml:"log" json:"log"`
	Search   SearchConfig   `yaml:"search" json:"search"`
}

// StorageConfig selects the backend. DSN is a file path for sqlite and bolt
// and a connection string for postgres.
type StorageConfig struct {
	Driver string `yaml:"driver" json:"driver"`
	DSN    string `yaml:"dsn" json:"dsn"`
}

// SecurityConfig holds the key derivation cost and the cipher for new records.
// Changing KDF or Iterations makes existing accounts unable to log in, since
// neither is stored per user.
type SecurityConfig struct {
	KDF        string `yaml:"kdf" json:"kdf"`
	Iterations int    `yaml:"iterations" json:"iterations"`
	Cipher     string `yaml:"cipher" json:"cipher"`
}

type LogConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
}

type SearchConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// Override mutates a loaded Config before validation.
type Override func(*Config)

// DefaultDataDir returns ~/.savelinks, or a relative .savelinks when the home
// directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".savelinks"
	}
	return filepath.Join(home, ".savelinks")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	dir := DefaultDataDir()

	c.Storage = StorageConfig{
		Driver: DriverSQLite,
		DSN:    filepath.Join(dir, "savelinks.db"),
	}
	c.Security = SecurityConfig{
		KDF:        string(cryptox.KDFPBKDF2),
		Iterations: cryptox.DefaultIterations,
		Cipher:     string(cryptox.CipherAESGCM),
	}
	c.Log = LogConfig{
		Level:      "info",
		File:       filepath.Join(dir, "app.log"),
		MaxSizeMB:  1,
		MaxBackups: 5,
	}
	c.Search = SearchConfig{Workers: 4}
}

// Load constructs a Config from defaults, the optional file at path and the
// given overrides, in that order, and validates the result.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	for _, o := range overrides {
		o(cfg)
	}

	if cfg.Storage.Driver != DriverPostgres {
		cfg.Storage.DSN = expandHome(cfg.Storage.DSN)
	}
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Security.Validate(); err != nil {
		return fmt.Errorf("security: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverSQLite, DriverPostgres, DriverBolt)),
		validation.Field(&c.DSN, validation.Required),
	)
}

func (c *SecurityConfig) Validate() error {
	kdfs := make([]any, 0, len(cryptox.KDFs()))
	for _, k := range cryptox.KDFs() {
		kdfs = append(kdfs, string(k))
	}
	ciphers := make([]any, 0, len(cryptox.Ciphers()))
	for _, c := range cryptox.Ciphers() {
		ciphers = append(ciphers, string(c))
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.KDF, validation.Required, validation.In(kdfs...)),
		validation.Field(&c.Iterations,
			validation.When(c.KDF == string(cryptox.KDFPBKDF2), validation.Required, validation.Min(cryptox.MinIterations)),
		),
		validation.Field(&c.Cipher, validation.Required, validation.In(ciphers...)),
	)
}

// EngineOptions translates the section into cryptox options.
func (c *SecurityConfig) EngineOptions() []cryptox.Option {
	return []cryptox.Option{
		cryptox.WithKDF(cryptox.KDF(c.KDF)),
		cryptox.WithIterations(c.Iterations),
		cryptox.WithCipher(cryptox.Cipher(c.Cipher)),
	}
}

func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.MaxSizeMB, validation.When(c.File != "", validation.Required, validation.Min(1))),
		validation.Field(&c.MaxBackups, validation.Min(0)),
	)
}

func (c *SearchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Required, validation.Min(1), validation.Max(64)),
	)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
