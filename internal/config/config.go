package config // package config loads application configuration from environment variables

import (
    "log"
    "os"
    "strconv"
    "time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
    Env       string // application environment (e.g. "dev", "prod")
    Port      string // HTTP port to listen on
    DBUser    string // database username
    DBPass    string // database password (optional)
    DBHost    string // database host address
    DBPort    string // database port number
    DBName    string // database name
    JWTSecret string // secret used to verify access tokens
    AMQPURL   string // RabbitMQ URL for booking events; empty disables them

    // Location is where "today" is judged when deciding whether a
    // reservation still occupies its vehicle.
    Location *time.Location

    // SwallowWriteErrors restores the legacy booking contract: write
    // failures are rolled back and logged, and the caller sees no error.
    SwallowWriteErrors bool
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:                must("APP_ENV"),
        Port:               must("APP_PORT"),
        DBUser:             must("DB_USER"),
        DBPass:             os.Getenv("DB_PASS"), // empty allowed
        DBHost:             must("DB_HOST"),
        DBPort:             must("DB_PORT"),
        DBName:             must("DB_NAME"),
        JWTSecret:          must("JWT_SECRET"),
        AMQPURL:            os.Getenv("AMQP_URL"),
        Location:           location("RENTAL_TIMEZONE"),
        SwallowWriteErrors: envBool("RENTAL_SWALLOW_WRITE_ERRORS", false),
    }
}

// TokenConfig is what cmd/issuetoken needs to sign an access token.
type TokenConfig struct {
    JWTSecret    string
    AccessTTLMin int
}

// LoadTokenConfig reads JWT_SECRET and ACCESS_TOKEN_TTL_MIN.
func LoadTokenConfig() TokenConfig {
    return TokenConfig{
        JWTSecret:    must("JWT_SECRET"),
        AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
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

// location loads the IANA zone named by key, defaulting to the server's
// local zone.  An unknown zone is fatal.
func location(key string) *time.Location {
    name := envStr(key, "Local")
    loc, err := time.LoadLocation(name)
    if err != nil {
        log.Fatalf("invalid time zone for %s: %q", key, name)
    }
    return loc
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
