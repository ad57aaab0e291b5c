package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	RepositoryPostgres = "postgres"
	RepositorySQLite   = "sqlite"
	RepositoryInMemory = "inmemory"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Repository RepositoryConfig `mapstructure:"repository"`
}

type AppConfig struct {
	Env string `mapstructure:"env" validate:"oneof=development production test"`
	// StoreCheckInterval paces the background store check; 0 disables it.
	StoreCheckInterval time.Duration `mapstructure:"store_check_interval" validate:"gte=0"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	RateLimitRPM    int           `mapstructure:"rate_limit_rpm" validate:"gte=0"`
}

type DatabaseConfig struct {
	Host              string        `mapstructure:"host" validate:"required"`
	Port              int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	Name              string        `mapstructure:"name" validate:"required"`
	User              string        `mapstructure:"user" validate:"required"`
	Password          string        `mapstructure:"password"`
	SSLMode           string        `mapstructure:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConnections    int32         `mapstructure:"max_connections" validate:"gt=0"`
	MinConnections    int32         `mapstructure:"min_connections" validate:"gte=0,ltefield=MaxConnections"`
	AcquireTimeout    time.Duration `mapstructure:"acquire_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ConnectAttempts   int           `mapstructure:"connect_attempts" validate:"gt=0"`
	ConnectRetryDelay time.Duration `mapstructure:"connect_retry_delay"`
}

type LoggingConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type RepositoryConfig struct {
	Type       string `mapstructure:"type" validate:"oneof=postgres sqlite inmemory"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

var envBindings = map[string]string{
	"app.env":                "APP_ENV",
	"server.port":            "PORT",
	"server.rate_limit_rpm":  "RATE_LIMIT_RPM",
	"database.host":          "DB_HOST",
	"database.port":          "DB_PORT",
	"database.name":          "DB_NAME",
	"database.user":          "DB_USER",
	"database.password":      "DB_PASSWORD",
	"database.sslmode":       "DB_SSLMODE",
	"repository.type":        "REPOSITORY_TYPE",
	"repository.sqlite_path": "SQLITE_PATH",
	"logging.file":           "LOG_FILE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", EnvDevelopment)
	v.SetDefault("app.store_check_interval", 30*time.Second)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit_rpm", 0)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "loadtesting")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres123")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_connections", 5)
	v.SetDefault("database.min_connections", 0)
	v.SetDefault("database.acquire_timeout", 30*time.Second)
	v.SetDefault("database.idle_timeout", 10*time.Second)
	v.SetDefault("database.connect_attempts", 5)
	v.SetDefault("database.connect_retry_delay", 5*time.Second)

	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 50)
	v.SetDefault("logging.max_age_days", 7)

	v.SetDefault("repository.type", RepositoryPostgres)
	v.SetDefault("repository.sqlite_path", "data/tasks.db")
}

// Load reads defaults, then the optional config file, then the environment.
// An empty path looks for config.yml in the working directory; a missing
// file is not an error in that case.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == EnvDevelopment
}

func (c *Config) GetServerAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// DatabaseURL renders the connection settings as a postgres:// URL.
func (d DatabaseConfig) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
