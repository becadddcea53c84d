package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultSearchURL  = "https://www.118000.fr/search"
	defaultDataSource = "https://www.118000.fr"
	defaultCarrierURL = "https://www.arcep.fr/demarches-et-services/professionnels/base-numerotation.html"
	defaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Fetch modes for the directory page transport.
const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SearchURL  string
	DataSource string
	CarrierURL string
	PageSize   int

	StrictMode          bool
	AccumulateAddresses bool

	FetchMode   string
	HTTPTimeout time.Duration
	UserAgent   string
	ChromeBin   string

	LogLevel      string
	CSVOutputPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "opse"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "opse123"),
		PostgresDB:       getEnv("POSTGRES_DB", "opse_records"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SearchURL:  getEnv("RECORDS_SEARCH_URL", defaultSearchURL),
		DataSource: getEnv("RECORDS_DATA_SOURCE", defaultDataSource),
		CarrierURL: getEnv("RECORDS_CARRIER_URL", defaultCarrierURL),
		PageSize:   getEnvInt("RECORDS_PAGE_SIZE", 25),

		StrictMode:          getEnvBool("STRICT_MODE", false),
		AccumulateAddresses: getEnvBool("ACCUMULATE_ADDRESSES", true),

		FetchMode:   strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_MS", 0)) * time.Millisecond,
		UserAgent:   getEnv("USER_AGENT", defaultUserAgent),
		ChromeBin:   getEnv("CHROME_BIN", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/records.csv"),
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

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
