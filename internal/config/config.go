package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to verify (and in dev, sign) JWTs
	AccessTTLMin   int    // access token time-to-live in minutes (dev token endpoint)
	HoldTTLSeconds int    // seat hold lease duration in seconds
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  HOLD_TTL_SECONDS is
// optional and defaults to five minutes.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),                      // environment (dev/test/prod)
		Port:           must("APP_PORT"),                     // port to bind the HTTP server
		DBUser:         must("DB_USER"),                      // database user
		DBPass:         os.Getenv("DB_PASS"),                 // database password (empty allowed)
		DBHost:         must("DB_HOST"),                      // database host
		DBPort:         must("DB_PORT"),                      // database port
		DBName:         must("DB_NAME"),                      // database name
		JWTSecret:      must("JWT_SECRET"),                   // secret used for verifying JWTs
		AccessTTLMin:   intOr("ACCESS_TOKEN_TTL_MIN", 30),    // TTL for dev-issued access tokens
		HoldTTLSeconds: intOr("HOLD_TTL_SECONDS", 300),       // seat hold lease in seconds
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr retrieves an optional integer environment variable, falling back to
// def when unset.  A set-but-invalid value is treated as a fatal error so
// misconfiguration fails loudly instead of silently using the default.
func intOr(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
