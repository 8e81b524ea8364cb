// Package config reads settings from the environment, optionally seeded
// from a .env file. Every variable is prefixed HEATCALC_.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration.
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	// RedisAddr enables the Redis session store; empty keeps sessions in memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	TemplatesDir  string // extra property templates
	PriceBookPath string // price book overlay
	LabourRegion  string
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:         8080,
		LogLevel:     "info",
		LogFormat:    "text",
		SessionTTL:   24 * time.Hour,
		LabourRegion: "default",
	}
}

// Load reads the environment after loading envPath (default ".env"). A
// missing .env file is not an error; variables already set in the
// environment win over the file.
func Load(envPath ...string) (Config, error) {
	var err error
	if len(envPath) > 0 && envPath[0] != "" {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a configuration from a lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not an integer", key, v))
			return
		}
		*dst = n
	}

	num("HEATCALC_PORT", &cfg.Port)
	str("HEATCALC_LOG_LEVEL", &cfg.LogLevel)
	str("HEATCALC_LOG_FORMAT", &cfg.LogFormat)
	str("HEATCALC_REDIS_ADDR", &cfg.RedisAddr)
	str("HEATCALC_REDIS_PASSWORD", &cfg.RedisPassword)
	num("HEATCALC_REDIS_DB", &cfg.RedisDB)
	str("HEATCALC_TEMPLATES_DIR", &cfg.TemplatesDir)
	str("HEATCALC_PRICES", &cfg.PriceBookPath)
	str("HEATCALC_LABOUR_REGION", &cfg.LabourRegion)

	if v, ok := lookup("HEATCALC_SESSION_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("HEATCALC_SESSION_TTL: %w", err))
		} else {
			cfg.SessionTTL = d
		}
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("HEATCALC_PORT: %d out of range", cfg.Port))
	}
	if cfg.SessionTTL < 0 {
		errs = append(errs, errors.New("HEATCALC_SESSION_TTL must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
