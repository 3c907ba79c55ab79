package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultCollaboratorURL - адрес сервиса объявлений по умолчанию.
const DefaultCollaboratorURL = "https://gobasera-backend-1.onrender.com"

// Config - общая конфигурация сервисов.
type Config struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`
	Server struct {
		Host            string        `mapstructure:"host"`
		Port            int           `mapstructure:"port"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`
	Collaborator struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"collaborator"`
	Session struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"session"`
	Database struct {
		URL           string `mapstructure:"url"`
		MigrationsDir string `mapstructure:"migrations_dir"`
	} `mapstructure:"database"`
	Log struct {
		Level      string `mapstructure:"level"`
		Encoding   string `mapstructure:"encoding"`
		AccessFile string `mapstructure:"access_file"`
	} `mapstructure:"log"`
}

// Addr возвращает адрес для http.Server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsDevelopment сообщает, запущен ли сервис в режиме разработки.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

// New создает viper с настройками по умолчанию. port - порт сервиса по умолчанию.
func New(port int) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GOBASERA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "GOBASERA_DATABASE_URL", "DATABASE_URL")

	v.SetDefault("app.env", "development")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", port)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("collaborator.base_url", DefaultCollaboratorURL)
	v.SetDefault("collaborator.timeout", "10s")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrations_dir", "collabapp/migrations")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.access_file", "access.log")
	return v
}

// Load читает config.yaml (если он есть) и переменные окружения GOBASERA_*.
func Load(port int) (Config, error) {
	return Decode(New(port))
}

// Decode читает конфигурацию из подготовленного viper.
func Decode(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return Config{}, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	cfg.Collaborator.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Collaborator.BaseURL), "/")
	if cfg.Collaborator.BaseURL == "" {
		return Config{}, errors.New("collaborator.base_url не может быть пустым")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("неверный server.port: %d", cfg.Server.Port)
	}
	if cfg.Collaborator.Timeout < 0 {
		return Config{}, errors.New("collaborator.timeout не может быть отрицательным")
	}
	if cfg.Session.TTL <= 0 {
		return Config{}, errors.New("session.ttl должен быть положительным")
	}
	return cfg, nil
}
