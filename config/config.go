// Package config loads the application configuration from the environment
// with optional command line overrides.
package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config carries every knob the application reads at startup.
type Config struct {
	Env             string
	HTTPAddr        string
	DBPath          string
	SecretKey       string
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getdur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getfloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// Load reads the configuration. Flags win over environment variables,
// environment variables win over defaults.
func Load() Config {
	var addr, dbPath, env string
	flag.StringVar(&addr, "http", getenv("HTTP_ADDR", ":8080"), "listen address")
	flag.StringVar(&dbPath, "db", getenv("DB_PATH", "tasks.db"), "sqlite database file")
	flag.StringVar(&env, "env", getenv("APP_ENV", "dev"), "environment name")
	flag.Parse()
	return Config{
		Env:             env,
		HTTPAddr:        addr,
		DBPath:          dbPath,
		SecretKey:       getenv("SECRET_KEY", "dev-secret-key"),
		RateLimit:       getfloat("RATE_LIMIT", 2),
		RateBurst:       getint("RATE_BURST", 20),
		ShutdownTimeout: getdur("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}
