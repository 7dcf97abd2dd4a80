package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file named by BAYES_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("BAYES_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are not an error
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func MigrationsPath() string {
	p := os.Getenv("MIGRATIONS_PATH")
	if p == "" {
		return "migrations"
	}
	return p
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// IndependenceTolerance is the absolute difference under which two
// probabilities count as equal in independence tests. Defaults to 1e-10.
func IndependenceTolerance() float64 {
	tol, err := strconv.ParseFloat(os.Getenv("INDEPENDENCE_TOLERANCE"), 64)
	if err != nil || tol <= 0 {
		return 1e-10
	}
	return tol
}

// MaxFreeVariables caps how many unassigned variables a single query may
// enumerate over. Zero disables the cap. Defaults to 20.
func MaxFreeVariables() int {
	n, err := strconv.Atoi(os.Getenv("MAX_FREE_VARIABLES"))
	if err != nil || n < 0 {
		return 20
	}
	return n
}
