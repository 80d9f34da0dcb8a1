package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preferences are per-user planner choices stored in ~/.ficsit-planner/preferences.json.
// They override the config file but not explicit CLI flags.
type Preferences struct {
	DefaultPolicy string `json:"default_policy,omitempty"`
	AllowLocked   *bool  `json:"allow_locked,omitempty"`
}

// PreferencesHandler loads and saves user preferences
type PreferencesHandler struct {
	path string
}

// NewPreferencesHandler creates a handler for the current user's preferences file
func NewPreferencesHandler() (*PreferencesHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewPreferencesHandlerAt(filepath.Join(homeDir, ".ficsit-planner", "preferences.json")), nil
}

// NewPreferencesHandlerAt creates a handler for an explicit preferences file
func NewPreferencesHandlerAt(path string) *PreferencesHandler {
	return &PreferencesHandler{path: path}
}

// Load reads the preferences file. A missing file yields empty preferences.
func (h *PreferencesHandler) Load() (*Preferences, error) {
	data, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		return &Preferences{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return &prefs, nil
}

// Save writes the preferences file, creating its directory if needed
func (h *PreferencesHandler) Save(prefs *Preferences) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(h.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// Apply overlays the preferences onto the planner section
func (p *Preferences) Apply(cfg *PlannerConfig) {
	if p.DefaultPolicy != "" {
		cfg.DefaultPolicy = p.DefaultPolicy
	}
	if p.AllowLocked != nil {
		cfg.AllowLocked = *p.AllowLocked
	}
}

// Path returns the preferences file location
func (h *PreferencesHandler) Path() string {
	return h.path
}
