package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cody-foxy/scanwatch/pkg/shared/files"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validateScanwatchConfig(cfg); err != nil {
		return fmt.Errorf("YAML global config: scanwatch directive is invalid: %w", err)
	}
	if err := validateServerConfig(&cfg.Server); err != nil {
		return fmt.Errorf("YAML global config: server directive is invalid: %w", err)
	}
	if err := validateHTTPConfig(&cfg.HttpClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := validatePollerConfig(&cfg.Poller); err != nil {
		return fmt.Errorf("YAML global config: poller directive is invalid: %w", err)
	}
	return nil
}

// validateScanwatchConfig resolves and creates the local working folders.
func validateScanwatchConfig(cfg *Config) error {
	if err := updateHome(cfg); err != nil {
		return fmt.Errorf("failed to update home folder: %w", err)
	}
	if err := updateFolder(&cfg.Scanwatch.ReportsFolder, "SCANWATCH_REPORTS_FOLDER", "reports", cfg); err != nil {
		return fmt.Errorf("failed to update reports folder: %w", err)
	}
	if err := updateFolder(&cfg.Scanwatch.HistoryFolder, "SCANWATCH_HISTORY_FOLDER", "history", cfg); err != nil {
		return fmt.Errorf("failed to update history folder: %w", err)
	}
	return nil
}

// validateServerConfig checks the remote service address.
func validateServerConfig(server *Server) error {
	if server == nil {
		return fmt.Errorf("server configuration is nil")
	}
	if envURL := os.Getenv("SCANWATCH_SERVER_URL"); envURL != "" {
		server.BaseURL = envURL
	}
	if server.BaseURL == "" {
		return nil
	}
	if !strings.Contains(server.BaseURL, "://") {
		server.BaseURL = "https://" + server.BaseURL
	}
	server.BaseURL = strings.TrimRight(server.BaseURL, "/")
	if _, err := url.Parse(server.BaseURL); err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	return nil
}

// validateHTTPConfig checks if the HTTP configurations have valid values.
func validateHTTPConfig(httpConfig *HttpClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := map[string]time.Duration{
		"RetryMaxWaitTime": httpConfig.RetryMaxWaitTime,
		"RetryWaitTime":    httpConfig.RetryWaitTime,
		"Timeout":          httpConfig.Timeout,
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 100*time.Second); err != nil {
			return err
		}
	}

	return nil
}

// validatePollerConfig checks the polling interval.
func validatePollerConfig(poller *Poller) error {
	if poller == nil {
		return fmt.Errorf("poller configuration is nil")
	}
	if poller.Interval < 0 {
		return fmt.Errorf("poll interval cannot be negative: %v", poller.Interval)
	}
	if poller.Interval > time.Minute {
		return fmt.Errorf("poll interval is too long: %v exceeds maximum of 1m", poller.Interval)
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// updateHome updates the HomeFolder in the Scanwatch config from environment variables or sets a default value.
func updateHome(cfg *Config) error {
	if homeFolder := os.Getenv("SCANWATCH_HOME"); homeFolder != "" {
		cfg.Scanwatch.HomeFolder = homeFolder
	} else if cfg.Scanwatch.HomeFolder == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to get user home folder: %w", err)
		}
		cfg.Scanwatch.HomeFolder = filepath.Join(userHome, ".scanwatch")
	}

	expandedHomePath, err := files.ExpandPath(cfg.Scanwatch.HomeFolder)
	if err != nil {
		return fmt.Errorf("failed to expand new home path %q: %w", cfg.Scanwatch.HomeFolder, err)
	}
	cfg.Scanwatch.HomeFolder = expandedHomePath

	if err := files.CreateFolderIfNotExists(expandedHomePath); err != nil {
		return fmt.Errorf("failed to create home folder %q: %w", cfg.Scanwatch.HomeFolder, err)
	}
	return nil
}

// updateFolder updates a folder path in the Scanwatch configuration.
func updateFolder(folder *string, envVar, defaultSubFolder string, cfg *Config) error {
	if envVarValue := os.Getenv(envVar); envVarValue != "" {
		*folder = envVarValue
	} else if *folder == "" {
		*folder = filepath.Join(GetScanwatchHome(cfg), defaultSubFolder)
	}

	expandedPath, err := files.ExpandPath(*folder)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", *folder, err)
	}
	*folder = expandedPath

	if err := files.CreateFolderIfNotExists(expandedPath); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", expandedPath, err)
	}
	return nil
}
