package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TABLEGEN_DATABASE.
const EnvPrefix = "TABLEGEN"

// Configuration keys. Cobra flags are bound to these with viper.BindPFlag.
const (
	KeyDatabase   = "database"
	KeyFile       = "file"
	KeyModels     = "models"
	KeyOutput     = "output"
	KeyStudioPort = "studio.port"
)

// Config holds the resolved tablegen settings.
type Config struct {
	// Database is the SQLite file path or "file:" DSN tables are created in.
	Database string
	// File is the YAML or HCL record declaration file.
	File string
	// Models is a directory of Go source declaring records as structs.
	// When set it takes precedence over File.
	Models string
	// Output is the directory generated schema files are written to.
	Output string
	// StudioPort is the port the studio preview server listens on.
	StudioPort string
}

// LoadEnv loads a .env file from the working directory if one exists.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Setup registers defaults, environment overrides and the optional
// tablegen.yaml config file on v.
func Setup(v *viper.Viper) error {
	v.SetDefault(KeyDatabase, "company.db")
	v.SetDefault(KeyFile, "records.yaml")
	v.SetDefault(KeyModels, "")
	v.SetDefault(KeyOutput, "schemas")
	v.SetDefault(KeyStudioPort, "8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("tablegen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

// FromViper resolves a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Database:   strings.TrimSpace(v.GetString(KeyDatabase)),
		File:       strings.TrimSpace(v.GetString(KeyFile)),
		Models:     strings.TrimSpace(v.GetString(KeyModels)),
		Output:     strings.TrimSpace(v.GetString(KeyOutput)),
		StudioPort: strings.TrimSpace(v.GetString(KeyStudioPort)),
	}

	if cfg.Database == "" {
		return nil, fmt.Errorf("database location is empty (set --db or %s_DATABASE)", EnvPrefix)
	}
	if cfg.File == "" && cfg.Models == "" {
		return nil, fmt.Errorf("no record source: set --file or --models")
	}

	return cfg, nil
}

// Load resolves the Config from the global viper instance, which the CLI
// sets up once and binds its flags to.
func Load() (*Config, error) {
	return FromViper(viper.GetViper())
}
