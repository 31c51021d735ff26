package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const keyLength = 32

// Arguments are the raw settings read from the environment.
type Arguments struct {
	Port               string `env:"PORT" envDefault:"8585"`
	DatabaseURL        string `env:"DATABASE_URL" envDefault:"./manufacturing.db"`
	SessionKey         string `env:"SESSION_KEY"`
	CSRFKey            string `env:"CSRF_KEY"`
	CookieDomain       string `env:"COOKIE_DOMAIN"`
	CookieSecure       bool   `env:"COOKIE_SECURE" envDefault:"false"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat          string `env:"LOG_FORMAT" envDefault:"text"`
	LoginRatePerMinute int    `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
	SeedOnStart        bool   `env:"SEED_ON_START" envDefault:"false"`
}

type Config struct {
	Port               string
	DatabaseURL        string
	CSRFKey            []byte
	SessionKey         []byte
	CookieDomain       string
	CookieSecure       bool
	LogLevel           string
	LogFormat          string
	LoginRatePerMinute int
	SeedOnStart        bool
}

// Load reads envFile (when it exists), then the environment, then args.
// Later sources win.
func Load(envFile string, args []string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var a Arguments
	if err := env.Parse(&a); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	flags := pflag.NewFlagSet("manufacturing-dashboard", pflag.ContinueOnError)
	flags.StringVarP(&a.Port, "port", "p", a.Port, "HTTP listen port.")
	flags.StringVarP(&a.DatabaseURL, "database-url", "d", a.DatabaseURL, "SQLite path or postgres:// URL.")
	flags.StringVar(&a.CookieDomain, "cookie-domain", a.CookieDomain, "Session cookie domain.")
	flags.BoolVar(&a.CookieSecure, "cookie-secure", a.CookieSecure, "Send cookies over HTTPS only.")
	flags.StringVarP(&a.LogLevel, "log-level", "l", a.LogLevel, "Log level (debug, info, warn, error).")
	flags.StringVar(&a.LogFormat, "log-format", a.LogFormat, "Log format (text, json).")
	flags.IntVar(&a.LoginRatePerMinute, "login-rate", a.LoginRatePerMinute, "Login and registration attempts per minute per client.")
	flags.BoolVar(&a.SeedOnStart, "seed", a.SeedOnStart, "Seed demo data on start.")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               a.Port,
		DatabaseURL:        a.DatabaseURL,
		CookieDomain:       a.CookieDomain,
		CookieSecure:       a.CookieSecure,
		LogLevel:           a.LogLevel,
		LogFormat:          a.LogFormat,
		LoginRatePerMinute: a.LoginRatePerMinute,
		SeedOnStart:        a.SeedOnStart,
		CSRFKey:            decodeKey("CSRF_KEY", a.CSRFKey),
		SessionKey:         decodeKey("SESSION_KEY", a.SessionKey),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT. Falling back to default.", "PORT", cfg.Port)
		cfg.Port = "8585"
	}
	if cfg.LoginRatePerMinute <= 0 {
		cfg.LoginRatePerMinute = 10
	}

	return cfg, nil
}

// decodeKey decodes a base64 key of at least 32 bytes. A missing or bad key
// is replaced by a random one, which does not survive a restart.
func decodeKey(name, encoded string) []byte {
	if encoded == "" {
		slog.Warn(name + " not set. Generating a random key for development. PLEASE SET " + name + " IN PRODUCTION!")
		return randomKey()
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(key) < keyLength {
		slog.Warn(name + " is invalid or shorter than 32 bytes. Generating a random key for development.")
		return randomKey()
	}
	return key
}

func randomKey() []byte {
	b := make([]byte, keyLength)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("read random key: %v", err))
	}
	return b
}

// Logger builds the process logger from LogLevel and LogFormat.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
