package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"solar-finance/internal/model"
	"solar-finance/internal/portfolio"
)

// SiteEntry is one building in a portfolio file: its energy profile, the design to
// simulate, and any manual overrides.
type SiteEntry struct {
	Profile   model.SiteEnergyProfile `json:"profile"`
	Design    model.SystemDesign      `json:"design"`
	Overrides portfolio.Overrides     `json:"overrides"`
}

// PortfolioFile is the JSON shape consumed by `cli portfolio`.
type PortfolioFile struct {
	Name      string      `json:"name"`
	UpdatedAt string      `json:"updated_at,omitempty"` // ISO 8601 timestamp
	Sites     []SiteEntry `json:"sites"`
}

// LoadPortfolio loads a portfolio definition from a JSON file.
func LoadPortfolio(filePath string) (*PortfolioFile, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio file: %w", err)
	}

	var pf PortfolioFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio file: %w", err)
	}
	for i, s := range pf.Sites {
		if s.Profile.SiteID == "" {
			return nil, fmt.Errorf("site %d: site_id is required", i)
		}
	}
	return &pf, nil
}

// SavePortfolio saves a portfolio definition to a JSON file.
func SavePortfolio(pf *PortfolioFile, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write portfolio file: %w", err)
	}
	return nil
}

// LoadProfile reads a single SiteEnergyProfile from JSON.
func LoadProfile(path string) (*model.SiteEnergyProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p model.SiteEnergyProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &p, nil
}
