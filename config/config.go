package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Password digest schemes.
const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Storage struct {
		Driver    string `mapstructure:"driver"`
		BankFile  string `mapstructure:"bank_file"`
		UsersFile string `mapstructure:"users_file"`
	} `mapstructure:"storage"`
	Database Database `mapstructure:"database"`
	JWT      struct {
		SecretKey string        `mapstructure:"secret_key"`
		TTL       time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`
	Auth struct {
		Hasher string `mapstructure:"hasher"`
	} `mapstructure:"auth"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.bank_file", "bank_data.json")
	v.SetDefault("storage.users_file", "users.json")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "bank")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("jwt.secret_key", "change-me")
	v.SetDefault("jwt.ttl", time.Hour)
	v.SetDefault("auth.hasher", HasherSHA256)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads config.yml from path if present. Every key can be
// overridden with a BANK_ prefixed environment variable, e.g.
// BANK_STORAGE_DRIVER=postgres.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("bank")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Auth.Hasher {
	case HasherSHA256, HasherBcrypt:
	default:
		return fmt.Errorf("unknown password hasher %q", c.Auth.Hasher)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %s", c.JWT.TTL)
	}
	return nil
}

// DSN returns the lib/pq connection string. RedactedDSN omits the password
// so it can be logged.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d Database) RedactedDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Name, d.SSLMode)
}
