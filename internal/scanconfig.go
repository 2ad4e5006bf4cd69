package internal

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScanProfile configures a scan run loaded from YAML, so recurring scans
// (CI jobs, scheduled audits) don't need the full flag set every time.
type ScanProfile struct {
	// Paths are the files or directories to scan.
	Paths []string `yaml:"paths"`
	// Passwords are extra passwords for encrypted keys and containers.
	Passwords []string `yaml:"passwords,omitempty"`
	// PasswordFile names a file with one password per line.
	PasswordFile string `yaml:"passwordFile,omitempty"`
	// DBPath is the classification store location (empty for in-memory).
	DBPath string `yaml:"db,omitempty"`
}

// LoadScanProfile loads and validates a scan profile from a YAML file.
func LoadScanProfile(path string) (*ScanProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scan profile %s: %w", path, err)
	}

	var profile ScanProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing scan profile %s: %w", path, err)
	}

	if len(profile.Paths) == 0 {
		return nil, errors.New("scan profile has no paths")
	}
	return &profile, nil
}
