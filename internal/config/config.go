// Package config loads dashboard settings from .env, an optional YAML file
// and CLUBADMIN_* environment variables, in that order of precedence.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvProduction is the only environment with mandatory secrets.
const EnvProduction = "production"

// Config holds every setting the server needs.
type Config struct {
	Addr           string        `yaml:"addr"`
	APIURL         string        `yaml:"api_url"`
	APITimeout     time.Duration `yaml:"api_timeout"`
	DBPath         string        `yaml:"db"`
	Env            string        `yaml:"env"`
	PublicURL      string        `yaml:"public_url"`
	CSRFKey        string        `yaml:"csrf_key"`
	SessionKey     string        `yaml:"session_key"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	ResendKey      string        `yaml:"resend_key"`
	MailFrom       string        `yaml:"mail_from"`
	SlowRequestMs  int           `yaml:"slow_request_ms"`
	SlowUpstreamMs int           `yaml:"slow_upstream_ms"`
	TimeZone       string        `yaml:"time_zone"`

	csrfKey    []byte
	sessionKey []byte
	location   *time.Location
	generated  []string
}

// Validation errors
var (
	ErrInvalidAPIURL      = errors.New("CLUBADMIN_API_URL must be an absolute http(s) URL")
	ErrInvalidKey         = errors.New("keys must be 64 hex characters (32 bytes)")
	ErrMissingCSRFKey     = errors.New("CLUBADMIN_CSRF_KEY is required in production")
	ErrMissingSessionKey  = errors.New("CLUBADMIN_SESSION_KEY is required in production")
	ErrInvalidTimeZone    = errors.New("CLUBADMIN_TZ is not a known time zone")
	ErrInvalidThreshold   = errors.New("slow thresholds must be positive")
	ErrInvalidAPITimeout  = errors.New("CLUBADMIN_API_TIMEOUT must be positive")
	ErrInvalidLogSettings = errors.New("CLUBADMIN_LOG_FORMAT must be text or json")
)

// Defaults returns the development configuration.
func Defaults() Config {
	return Config{
		Addr:           ":8080",
		APIURL:         "http://localhost:3000",
		APITimeout:     15 * time.Second,
		DBPath:         "clubadmin.db",
		Env:            "development",
		PublicURL:      "http://localhost:8080",
		LogLevel:       "info",
		LogFormat:      "text",
		MailFrom:       "Club <noreply@club.local>",
		SlowRequestMs:  200,
		SlowUpstreamMs: 500,
		TimeZone:       "America/Bogota",
	}
}

// Load reads .env (if present), the YAML file named by CLUBADMIN_CONFIG (if
// set) and then environment overrides.
// PRE: none
// POST: Returns a validated config, or an error naming the bad setting
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := Defaults()
	if path := getenv("CLUBADMIN_CONFIG"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("CLUBADMIN_ADDR", &c.Addr)
	str("CLUBADMIN_API_URL", &c.APIURL)
	str("CLUBADMIN_DB", &c.DBPath)
	str("CLUBADMIN_ENV", &c.Env)
	str("CLUBADMIN_PUBLIC_URL", &c.PublicURL)
	str("CLUBADMIN_CSRF_KEY", &c.CSRFKey)
	str("CLUBADMIN_SESSION_KEY", &c.SessionKey)
	str("CLUBADMIN_LOG_LEVEL", &c.LogLevel)
	str("CLUBADMIN_LOG_FORMAT", &c.LogFormat)
	str("CLUBADMIN_RESEND_KEY", &c.ResendKey)
	str("CLUBADMIN_MAIL_FROM", &c.MailFrom)
	str("CLUBADMIN_TZ", &c.TimeZone)

	if v := getenv("CLUBADMIN_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CLUBADMIN_API_TIMEOUT: %w", err)
		}
		c.APITimeout = d
	}
	if v := getenv("CLUBADMIN_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if err := num("CLUBADMIN_SLOW_REQUEST_MS", &c.SlowRequestMs); err != nil {
		return err
	}
	return num("CLUBADMIN_SLOW_UPSTREAM_MS", &c.SlowUpstreamMs)
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAPIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.APITimeout <= 0 {
		return ErrInvalidAPITimeout
	}
	if c.SlowRequestMs <= 0 || c.SlowUpstreamMs <= 0 {
		return ErrInvalidThreshold
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return ErrInvalidLogSettings
	}

	keys := []struct {
		name    string
		hex     string
		missing error
		dst     *[]byte
	}{
		{"CLUBADMIN_CSRF_KEY", c.CSRFKey, ErrMissingCSRFKey, &c.csrfKey},
		{"CLUBADMIN_SESSION_KEY", c.SessionKey, ErrMissingSessionKey, &c.sessionKey},
	}
	for _, k := range keys {
		key, random, err := decodeKey(k.hex, c.IsProduction(), k.missing)
		if err != nil {
			return err
		}
		*k.dst = key
		if random {
			c.generated = append(c.generated, k.name)
		}
	}

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeZone, c.TimeZone)
	}
	c.location = loc
	return nil
}

// decodeKey parses a 32-byte hex key. Outside production a missing key is
// replaced with a random one and random is true.
func decodeKey(h string, production bool, missing error) (key []byte, random bool, err error) {
	if h == "" {
		if production {
			return nil, false, missing
		}
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, false, fmt.Errorf("generate key: %w", err)
		}
		return key, true, nil
	}
	key, err = hex.DecodeString(h)
	if err != nil || len(key) != 32 {
		return nil, false, ErrInvalidKey
	}
	return key, false, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// CSRFAuthKey returns the decoded CSRF key.
func (c *Config) CSRFAuthKey() []byte {
	return c.csrfKey
}

// SessionSealKey returns the decoded key that seals bearer tokens.
func (c *Config) SessionSealKey() []byte {
	return c.sessionKey
}

// Location returns the club's display time zone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// GeneratedKeys names the keys that were missing and replaced with random
// ones. Sessions and CSRF tokens signed with them die with the process.
func (c *Config) GeneratedKeys() []string {
	return c.generated
}

// SlogLevel maps LogLevel onto slog levels, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
