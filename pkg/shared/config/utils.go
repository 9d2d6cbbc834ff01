package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// GetBoolValue retrieves a boolean value from a nested struct based on a dot-separated path.
// It returns the provided defaultValue if the specified field is not explicitly set or is nil.
func GetBoolValue(config interface{}, fieldPath string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	fields := strings.Split(fieldPath, ".")
	val := reflect.ValueOf(config)

	for _, field := range fields {
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}

		val = val.FieldByName(field)
		if !val.IsValid() {
			return defaultValue
		}
	}

	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Bool()
	} else if val.Kind() == reflect.Bool {
		return val.Bool()
	}

	return defaultValue
}

// SetThen provides a utility to select the first value if set, otherwise defaults.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}

// GetScanwatchHome returns the resolved home folder of the client.
func GetScanwatchHome(cfg *Config) string {
	return cfg.Scanwatch.HomeFolder
}

// GetReportsHome returns the folder where exported reports are written.
func GetReportsHome(cfg *Config) string {
	if cfg.Scanwatch.ReportsFolder != "" {
		return cfg.Scanwatch.ReportsFolder
	}
	return filepath.Join(GetScanwatchHome(cfg), "reports")
}

// GetHistoryHome returns the folder holding the local scan history database.
func GetHistoryHome(cfg *Config) string {
	if cfg.Scanwatch.HistoryFolder != "" {
		return cfg.Scanwatch.HistoryFolder
	}
	return filepath.Join(GetScanwatchHome(cfg), "history")
}

// GetServerToken returns the API token, preferring the environment over the config file.
func GetServerToken(cfg *Config) string {
	if token := os.Getenv("SCANWATCH_TOKEN"); token != "" {
		return token
	}
	return cfg.Server.Token
}
