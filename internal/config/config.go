// Package config loads application configuration from environment
// variables.  Every knob has a default so the console binary runs with no
// environment at all; the HTTP server validates the handful of values it
// additionally needs at startup.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	StoreBackend string // "file" or "mysql"
	DataDir      string // data directory for the file backend

	DBUser string // mysql username
	DBPass string // mysql password (optional)
	DBHost string // mysql host
	DBPort string // mysql port
	DBName string // mysql database name

	PaymentApproveRate float64       // probability a payment is approved
	PaymentDelay       time.Duration // simulated payment processing time

	JWTSecret     string // secret used to sign staff access tokens
	AccessTTLMin  int    // staff access token time-to-live in minutes
	BcryptCost    int    // bcrypt cost for hashing the staff password
	StaffEmail    string // staff login email; empty disables staff routes
	StaffPassword string // staff login password, hashed at startup

	AMQPURL string // RabbitMQ URL; empty disables event publication
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Env:  getenv("APP_ENV", "dev"),
		Port: getenv("APP_PORT", "8080"),

		StoreBackend: getenv("STORE_BACKEND", "file"),
		DataDir:      getenv("DATA_DIR", "data"),

		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: getenv("DB_HOST", "localhost"),
		DBPort: getenv("DB_PORT", "3306"),
		DBName: getenv("DB_NAME", "hotel"),

		PaymentApproveRate: envFloat("PAYMENT_APPROVE_RATE", 0.85),
		PaymentDelay:       envDur("PAYMENT_DELAY", 400*time.Millisecond),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:    envInt("BCRYPT_COST", 10),
		StaffEmail:    os.Getenv("STAFF_EMAIL"),
		StaffPassword: os.Getenv("STAFF_PASSWORD"),

		AMQPURL: os.Getenv("RABBITMQ_URL"),
	}
}

// StaffEnabled reports whether the staff surface can be served: it needs
// credentials to check and a secret to sign tokens with.
func (c Config) StaffEnabled() bool {
	return c.StaffEmail != "" && c.StaffPassword != "" && c.JWTSecret != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}
