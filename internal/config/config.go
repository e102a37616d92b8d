package config // loads application configuration from environment variables

import (
    "log"
    "os"
    "strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. KaraokeEnabled is a deployment feature
// flag: it decides at boot whether the karaoke queue exists and cannot
// be toggled from the dashboard.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign DJ session tokens
    SessionTTLMin  int    // DJ session token time-to-live in minutes
    BcryptCost     int    // bcrypt cost for password hashing
    InitialDJUser  string // username for the seeded DJ account
    InitialDJPass  string // password for the seeded DJ account (empty skips seeding)
    KaraokeEnabled bool   // whether the karaoke request queue is available
}

// Load reads configuration from environment variables. Missing required
// variables abort startup with a fatal log message.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),
        Port:           must("APP_PORT"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"),
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        SessionTTLMin:  mustInt("SESSION_TTL_MIN"),
        BcryptCost:     mustInt("BCRYPT_COST"),
        InitialDJUser:  getenv("INITIAL_DJ_USERNAME", "admin"),
        InitialDJPass:  os.Getenv("INITIAL_DJ_PASSWORD"),
        KaraokeEnabled: os.Getenv("KARAOKE_ENABLED") == "true",
    }
}

// must retrieves a required environment variable or exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
