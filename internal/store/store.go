// Package store provides functionality for storing and retrieving application data.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/bank-import/internal/config"
	"fjacquet/bank-import/internal/csvparse"
	"fjacquet/bank-import/internal/importer"

	"github.com/sirupsen/logrus"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Profile bundles the per-bank settings needed to import one institution's
// export files: the column mapping plus the formatting quirks of the file.
type Profile struct {
	Mapping            importer.ColumnMapping `yaml:"mapping"`
	Delimiter          string                 `yaml:"delimiter,omitempty"`
	DateFormat         string                 `yaml:"date_format,omitempty"`
	ThousandsSeparator string                 `yaml:"thousands_separator,omitempty"`
	DecimalSeparator   string                 `yaml:"decimal_separator,omitempty"`
	FlipAmount         bool                   `yaml:"flip_amount,omitempty"`
	AmountInMinorUnits bool                   `yaml:"amount_in_minor_units,omitempty"`
}

// Apply overlays the profile's overrides onto the effective formatting and
// import options. Empty profile fields leave the target values unchanged.
func (p Profile) Apply(formatting *csvparse.FormattingOptions, opts *importer.Options) {
	if p.Delimiter != "" {
		formatting.Separator = []rune(p.Delimiter)[0]
	}
	if p.DateFormat != "" {
		formatting.DateFormat = p.DateFormat
	}
	if p.ThousandsSeparator != "" {
		formatting.ThousandsSeparator = p.ThousandsSeparator
	}
	if p.DecimalSeparator != "" {
		formatting.DecimalSeparator = p.DecimalSeparator
	}
	if p.FlipAmount {
		opts.FlipAmount = true
	}
	if p.AmountInMinorUnits {
		opts.AmountInMinorUnits = true
	}
}

// ProfileStore manages loading and saving of named import profiles
type ProfileStore struct {
	ProfilesFile string
}

// NewProfileStore creates a new store for import profile data
func NewProfileStore(profilesFile string) *ProfileStore {
	return &ProfileStore{
		ProfilesFile: profilesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *ProfileStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	// Try each location
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/bank-import/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configDir := filepath.Join(homeDir, ".config", "bank-import")
		configPath := filepath.Join(configDir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// resolveConfigFile gets the full path to a config file
func (s *ProfileStore) resolveConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		log.Warnf("Configuration file not found: %s", filename)
		return "", err
	}

	return path, nil
}

// LoadProfiles loads named import profiles from the YAML file
func (s *ProfileStore) LoadProfiles() (map[string]Profile, error) {
	filename := s.ProfilesFile
	if filename == "" {
		filename = "profiles.yaml"
	}

	filePath, err := s.resolveConfigFile(filename)
	if err != nil {
		// If file doesn't exist, return empty map (not an error)
		if os.IsNotExist(err) {
			log.Warnf("Profiles file not found: %s", filename)
			return map[string]Profile{}, nil
		}
		return nil, fmt.Errorf("error resolving profiles file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading profiles file: %w", err)
	}

	var profiles map[string]Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("error parsing profiles file: %w", err)
	}

	for name, profile := range profiles {
		if err := profile.Mapping.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
	}

	log.Debugf("Loaded %d import profiles from %s", len(profiles), filePath)
	return profiles, nil
}

// LoadProfile loads one named profile, erroring when it does not exist
func (s *ProfileStore) LoadProfile(name string) (Profile, error) {
	profiles, err := s.LoadProfiles()
	if err != nil {
		return Profile{}, err
	}
	profile, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown import profile: %s", name)
	}
	return profile, nil
}

// SaveProfiles saves named import profiles to YAML
func (s *ProfileStore) SaveProfiles(profiles map[string]Profile) error {
	filename := s.ProfilesFile
	if filename == "" {
		filename = "profiles.yaml"
	}

	// Find the existing file or use standard locations
	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving profiles file: %w", err)
	}

	// If file not found, use the config directory by default
	if err == os.ErrNotExist {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("config", filename)
		} else {
			filePath = filename
		}
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("error marshaling profiles: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing profiles: %w", err)
	}

	log.Debugf("Saved %d import profiles to %s", len(profiles), filePath)
	return nil
}
