package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the pipeline binaries.
// Environment variables (and an optional .env file) provide defaults;
// CLI flags override.
type Config struct {
	App       AppConfig
	Generator GeneratorConfig
	Transform TransformConfig
	Logger    LoggerConfig
}

// AppConfig identifies the running binary.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// GeneratorConfig holds default parameters for ticket generation.
type GeneratorConfig struct {
	Count       int
	DaysBack    int
	BatchSize   int
	Seed        int64
	OutputDir   string
	WeightsPath string
	Compress    bool
}

// TransformConfig holds default parameters for the columnar transform.
type TransformConfig struct {
	Inputs        []string
	OutputDir     string
	MaxRejectRate float64
	FragmentRows  int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying
// defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "ticket-pipeline"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Generator: GeneratorConfig{
			Count:       getEnvAsInt("GENERATOR_COUNT", 5000),
			DaysBack:    getEnvAsInt("GENERATOR_DAYS_BACK", 90),
			BatchSize:   getEnvAsInt("GENERATOR_BATCH_SIZE", 1000),
			Seed:        getEnvAsInt64("GENERATOR_SEED", 42),
			OutputDir:   getEnv("GENERATOR_OUTPUT_DIR", "data/raw"),
			WeightsPath: getEnv("GENERATOR_WEIGHTS_PATH", ""),
			Compress:    getEnvAsBool("GENERATOR_COMPRESS", false),
		},
		Transform: TransformConfig{
			Inputs:        getEnvAsList("TRANSFORM_INPUTS", []string{"data/raw"}),
			OutputDir:     getEnv("TRANSFORM_OUTPUT_DIR", "data/curated"),
			MaxRejectRate: getEnvAsFloat("TRANSFORM_MAX_REJECT_RATE", 1.0),
			FragmentRows:  getEnvAsInt("TRANSFORM_FRAGMENT_ROWS", 0),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsInt64(key string, fallback int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
