// Package config はアプリケーション設定を .env と環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	Env       string `validate:"oneof=development testing production"`
	Port      int    `validate:"gt=0,lt=65536"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	Database DatabaseConfig

	CORSAllowedOrigins []string      `validate:"min=1,dive,required"`
	JWTSecret          string        `validate:"omitempty,min=16"` // 空なら認証なし
	ShutdownTimeout    time.Duration `validate:"gt=0"`
}

// DatabaseConfig はデータベース接続の設定です。
// 環境変数名は DB_HOST / DB_PORT / DB_USER / DB_PASS / DB_NAME を使います。
type DatabaseConfig struct {
	Driver   string `validate:"oneof=mysql postgres sqlite"`
	Host     string `validate:"required_unless=Driver sqlite"`
	Port     string `validate:"required_unless=Driver sqlite"`
	User     string `validate:"required_unless=Driver sqlite"`
	Password string
	Name     string `validate:"required_unless=Driver sqlite"`
	SSLMode  string
	Path     string `validate:"required_if=Driver sqlite"` // sqlite のファイルパス (":memory:" 可)

	MaxOpenConns    int `validate:"gte=0"`
	MaxIdleConns    int `validate:"gte=0"`
	ConnMaxLifetime time.Duration
}

// IsTesting はテスト用設定かどうかを返します。
func (c *Config) IsTesting() bool { return c.Env == EnvTesting }

// IsProduction は本番設定かどうかを返します。
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Addr は http.Server に渡すリッスンアドレスを返します。
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// AuthEnabled は JWT 認証が有効かどうかを返します。
func (c *Config) AuthEnabled() bool { return c.JWTSecret != "" }

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "todos.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

// Load は .env ファイル (存在すれば) と環境変数から設定を読み込み、検証します。
// envFiles を省略した場合はカレントディレクトリの .env を読みます。
// 既に設定済みの環境変数は .env の値で上書きされません。
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load env file %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Env:       strings.ToLower(v.GetString("APP_ENV")),
		Port:      v.GetInt("PORT"),
		LogLevel:  strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat: strings.ToLower(v.GetString("LOG_FORMAT")),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASS"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			Path:            v.GetString("DB_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		JWTSecret:          v.GetString("AUTH_JWT_SECRET"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ForTesting はテスト用の設定 (インメモリ sqlite, 認証なし) を返します。
func ForTesting() *Config {
	return &Config{
		Env:       EnvTesting,
		Port:      8080,
		LogLevel:  "error",
		LogFormat: "text",
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   ":memory:",
		},
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		ShutdownTimeout:    time.Second,
	}
}

// Validate は validate タグに従って設定を検証します。
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
