package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	} `mapstructure:"server"`

	Invoice struct {
		CurrencySymbol string `mapstructure:"currency_symbol"`
		ShowTax        bool   `mapstructure:"show_tax"`
		SeedNumber     string `mapstructure:"seed_number"`
	} `mapstructure:"invoice"`

	Export struct {
		Dir string `mapstructure:"dir"`
		S3  struct {
			Bucket    string `mapstructure:"bucket"`
			Region    string `mapstructure:"region"`
			Endpoint  string `mapstructure:"endpoint"`
			Prefix    string `mapstructure:"prefix"`
			AccessKey string `mapstructure:"access_key"`
			SecretKey string `mapstructure:"secret_key"`
		} `mapstructure:"s3"`
	} `mapstructure:"export"`

	Archive struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"archive"`
}

// Load reads configs/config.yaml (or path when given), then INVOICE_*
// environment variables, then defaults. A .env file in the working directory
// is loaded into the environment first.
func Load(path string) (*Config, error) {
	// .env is optional
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigFile("configs/config.yaml")
	}

	v.SetEnvPrefix("INVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("invoice.currency_symbol", "₹")
	v.SetDefault("invoice.show_tax", false)
	v.SetDefault("invoice.seed_number", "1")
	v.SetDefault("export.dir", "")
	v.SetDefault("export.s3.bucket", "")
	v.SetDefault("export.s3.region", "us-east-1")
	v.SetDefault("export.s3.endpoint", "")
	v.SetDefault("export.s3.prefix", "invoices")
	v.SetDefault("export.s3.access_key", "")
	v.SetDefault("export.s3.secret_key", "")
	v.SetDefault("archive.dsn", "")

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server.port %d", c.Server.Port)
	}
	if c.Export.Dir != "" && c.Export.S3.Bucket != "" {
		return errors.New("config: export.dir and export.s3.bucket are mutually exclusive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
