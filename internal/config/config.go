package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is the optional dotenv file read from the working directory
const EnvFile = ".env"

// Config holds ambient settings for the fetch-servings command.
// Credentials are never read from here; they are positional arguments.
type Config struct {
	// Logging
	LogLevel    slog.Level
	Environment string

	// Provider
	Synthetic bool
}

// FileReader abstracts file access so the .env lookup can be tested
type FileReader interface {
	Open(filename string) (io.ReadCloser, error)
	Stat(filename string) (os.FileInfo, error)
}

type osFileReader struct{}

func (osFileReader) Open(filename string) (io.ReadCloser, error) {
	return os.Open(filename)
}

func (osFileReader) Stat(filename string) (os.FileInfo, error) {
	return os.Stat(filename)
}

// Load reads configuration from .env (if present) and environment variables
func Load() *Config {
	return LoadWithFileReader(osFileReader{})
}

// LoadWithFileReader is Load with a custom file reader
func LoadWithFileReader(reader FileReader) *Config {
	loadEnvFileWithReader(reader)

	return &Config{
		LogLevel:    GetLogLevel(),
		Environment: getEnv("ENV", "production"),
		Synthetic:   getEnvBool("CRONOMETER_SYNTHETIC", false),
	}
}

// IsDevelopment reports whether ENV=development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// loadEnvFileWithReader exports variables from .env. Variables already set
// in the environment take precedence over the file.
func loadEnvFileWithReader(reader FileReader) {
	if _, err := reader.Stat(EnvFile); err != nil {
		return
	}

	f, err := reader.Open(EnvFile)
	if err != nil {
		return
	}
	defer f.Close()

	envs, err := godotenv.Parse(f)
	if err != nil {
		return
	}

	for key, value := range envs {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		os.Setenv(key, value)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
