package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig holds all user-defined persistent settings.
// Passwords and session tokens are never written here.
type AppConfig struct {
	Login        string `json:"login,omitempty"`
	SemesterCode string `json:"semester,omitempty"`
	ExportFormat string `json:"export_format,omitempty"`
	AccentColor  string `json:"accent_color,omitempty"`
}

// getConfigPath returns the absolute path to ~/.sevsuctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".sevsuctl.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just return an empty default configuration
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Apply overlays user settings on the endpoints. SEVSU_SEMESTER in the
// environment wins over the saved semester.
func (c *AppConfig) Apply(e Endpoints) Endpoints {
	if c == nil {
		return e
	}
	if c.SemesterCode != "" && os.Getenv("SEVSU_SEMESTER") == "" {
		e.SemesterCode = c.SemesterCode
	}
	return e
}
