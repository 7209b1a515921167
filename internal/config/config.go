// Package config loads tokenguard settings from an optional config file,
// a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tokenguard/internal/logger"
)

const (
	EnvProd = "production"
	EnvDev  = "development"
	EnvTest = "test"
)

// Config holds application configuration.
type Config struct {
	AppEnv             string   `mapstructure:"app_env" default:"development" validate:"required"`
	Port               string   `mapstructure:"port" default:"8080" validate:"required,numeric"`
	LogLevel           string   `mapstructure:"log_level" default:"INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	Secret     SecretConfig     `mapstructure:"secret"`
	TokenStore TokenStoreConfig `mapstructure:"token_store"`
}

// SecretConfig says where the server finds its verification secret.
type SecretConfig struct {
	Source    string `mapstructure:"source" default:"env" validate:"oneof=env kubernetes"`
	EnvName   string `mapstructure:"env_name" default:"JWT_SECRET" validate:"required_if=Source env"`
	Namespace string `mapstructure:"namespace" default:"default"`
	Name      string `mapstructure:"name" validate:"required_if=Source kubernetes"`
	Key       string `mapstructure:"key" default:"jwt-secret"`
}

// TokenStoreConfig selects where the client side keeps its token.
type TokenStoreConfig struct {
	Driver      string `mapstructure:"driver" default:"file" validate:"oneof=memory file redis kubernetes"`
	FilePath    string `mapstructure:"file_path"`
	RedisURL    string `mapstructure:"redis_url" secret:"true" validate:"required_if=Driver redis"`
	RedisPrefix string `mapstructure:"redis_prefix" default:"tokenguard:"`
	Namespace   string `mapstructure:"namespace" default:"default"`
	SecretName  string `mapstructure:"secret_name" default:"tokenguard-client"`
}

// Load reads configuration. configFile may be empty, in which case config.yaml
// is looked up in . and ./config and its absence is not an error.
func Load(configFile string) (*Config, error) {
	// .env is a development convenience, a missing file is fine
	_ = godotenv.Load()

	cfg := Config{}
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, reflect.TypeOf(cfg), "")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug("no config file found, using environment variables")
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// slog level names are case-insensitive, the validator is not
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))

	if cfg.TokenStore.FilePath == "" {
		cfg.TokenStore.FilePath = defaultTokenFile()
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	logger.Debug("loaded config", "config", cfg.String())
	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// bindEnvs registers every mapstructure key so nested fields can come from the
// environment too, e.g. secret.source <- SECRET_SOURCE.
func bindEnvs(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if field.Type.Kind() == reflect.Struct {
			bindEnvs(v, field.Type, key)
			continue
		}
		_ = v.BindEnv(key)
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "tokenguard", "token.json")
}

// String returns a string representation of the config with secret fields redacted.
func (c *Config) String() string {
	var sb strings.Builder
	writeStruct(&sb, reflect.ValueOf(*c))
	return sb.String()
}

func writeStruct(sb *strings.Builder, v reflect.Value) {
	t := v.Type()
	sb.WriteString(t.Name() + "{")
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(field.Name + ": ")
		switch {
		case field.Tag.Get("secret") == "true":
			sb.WriteString("***REDACTED***")
		case field.Type.Kind() == reflect.Struct:
			writeStruct(sb, v.Field(i))
		default:
			fmt.Fprintf(sb, "%v", v.Field(i).Interface())
		}
	}
	sb.WriteString("}")
}
