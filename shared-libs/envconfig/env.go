package envconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// LoadDotEnv reads KEY=VALUE pairs from the given files into the process environment
// without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// Get returns the value of the requested environment variable or the supplied fallback when empty.
func Get(name string, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

// GetFloat parses a float variable, returning fallback when unset or malformed.
func GetFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(Get(name, ""))
	if raw == "" {
		return fallback
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return val
}

// GetDuration parses a time.Duration variable, returning fallback when unset or malformed.
func GetDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(Get(name, ""))
	if raw == "" {
		return fallback
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

// GetBool treats 1/true/yes/on as true.
func GetBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(Get(name, ""))
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetList splits a comma separated variable, dropping blanks.
func GetList(name string) []string {
	raw := Get(name, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate validates a struct using validator tags.
func Validate(v any) error {
	return validate.Struct(v)
}
