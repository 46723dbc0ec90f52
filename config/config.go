package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Origin        string
	Destination   string
	DepartureDate string // ISO date, optional
	ReturnDate    string // ISO date, optional

	StorageBackend string // "sqlite" (default) or "postgres"
	SQLitePath     string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SearchAssistSeconds int
	HistoryWindowDays   int
	MaxRetries          int

	CSVOutputPath string
	ChromeBin     string
	LogLevel      string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Origin:        getEnv("ORIGIN", "JFK"),
		Destination:   getEnv("DESTINATION", "LAX"),
		DepartureDate: getEnv("DEPARTURE_DATE", ""),
		ReturnDate:    getEnv("RETURN_DATE", ""),

		StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),
		SQLitePath:     getEnv("SQLITE_PATH", "data/flight_history.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "flights"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "flights123"),
		PostgresDB:       getEnv("POSTGRES_DB", "flight_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SearchAssistSeconds: getEnvInt("SEARCH_ASSIST_SECONDS", 45),
		HistoryWindowDays:   getEnvInt("HISTORY_WINDOW_DAYS", 30),
		MaxRetries:          getEnvInt("MAX_RETRIES", 3),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/flight_records.csv"),
		ChromeBin:     getEnv("CHROME_BIN", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
