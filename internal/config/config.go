package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	GinMode string
	Port    string
	TZ      string

	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPass         string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int

	LogDir        string
	LogMaxSizeMB  int
	LogMaxBackups int
}

func Load() *Config {
	envFile := getenv("ENV_FILE", ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("warning: could not load %s: %v", envFile, err)
		} else {
			log.Printf("loaded %s", envFile)
		}
	}

	cfg := &Config{
		GinMode: getenv("GIN_MODE", "debug"),
		Port:    getenv("PORT", "8080"),
		TZ:      getenv("TZ", "UTC"),

		DBDriver:       getenv("DB_DRIVER", "postgres"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBUser:         getenv("DB_USER", "postgres"),
		DBPass:         getenv("DB_PASS", ""),
		DBName:         getenv("DB_NAME", "biblioteca_db"),
		DBSSLMode:      os.Getenv("DB_SSLMODE"),
		DBMaxOpenConns: getenvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getenvInt("DB_MAX_IDLE_CONNS", 5),

		LogDir:        getenv("LOG_DIR", "logs"),
		LogMaxSizeMB:  getenvInt("LOG_MAX_SIZE_MB", 5),
		LogMaxBackups: getenvInt("LOG_MAX_BACKUPS", 3),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	return cfg
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// DSN returns the connection string for the configured driver. For sqlite
// DB_NAME is the database file.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBName + "?_foreign_keys=on"
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

// RedactedDSN is DSN with the password masked, safe to log or expose.
func (c *Config) RedactedDSN() string {
	if c.DBDriver == "sqlite" {
		return "sqlite://" + c.DBName
	}

	pass := ""
	if c.DBPass != "" {
		pass = ":***"
	}
	return fmt.Sprintf("postgresql://%s%s@%s:%s/%s", c.DBUser, pass, c.DBHost, c.DBPort, c.DBName)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}
