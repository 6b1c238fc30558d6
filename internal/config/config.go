package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable through STORE_BACKEND.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreS3       = "s3"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Catalog *Catalog `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	JwtSecretKey       string        `env:"JWT_SECRET_KEY"`
	RecipeAPIKey       string        `env:"RECIPE_API_KEY"`
	RecipeAPIURL       string        `env:"RECIPE_API_URL" envDefault:"https://api.api-ninjas.com/v1/recipe"`
	ImageAPIKey        string        `env:"IMAGE_API_KEY"`
	ImageAPIURL        string        `env:"IMAGE_API_URL" envDefault:"https://api.unsplash.com/photos/random"`
	StoreBackend       string        `env:"STORE_BACKEND" envDefault:"memory"`
	DatabaseUrl        string        `env:"DATABASE_URL" optional:"true"`
	RedisURL           string        `env:"REDIS_URL" optional:"true"`
	RedisTTL           time.Duration `env:"REDIS_TTL" optional:"true"`
	AWSRegion          string        `env:"AWS_REGION" optional:"true"`
	AWSAccessKeyID     string        `env:"AWS_ACCESS_KEY_ID" optional:"true"`
	AWSSecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY" optional:"true"`
	S3Bucket           string        `env:"S3_BUCKET" optional:"true"`
	CatalogPath        string        `env:"CATALOG_PATH" optional:"true"`
	IDHeader           string        `env:"ID_HEADER" optional:"true"`
	AllowedOrigins     []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RateLimitRPS       int           `env:"RATE_LIMIT_RPS" envDefault:"10"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	MaxResults         int           `env:"MAX_RESULTS" envDefault:"10"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

// CheckStoreFields validates the settings needed by the selected store backend.
func (c *Config) CheckStoreFields() error {
	e := c.EnvVars
	switch e.StoreBackend {
	case StoreMemory:
		return nil
	case StorePostgres:
		if e.DatabaseUrl == "" {
			return fmt.Errorf("$DatabaseUrl must be set for store backend %q", e.StoreBackend)
		}
	case StoreRedis:
		if e.RedisURL == "" {
			return fmt.Errorf("$RedisURL must be set for store backend %q", e.StoreBackend)
		}
	case StoreS3:
		if e.S3Bucket == "" || e.AWSRegion == "" {
			return fmt.Errorf("$S3Bucket and $AWSRegion must be set for store backend %q", e.StoreBackend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", e.StoreBackend)
	}
	return nil
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
