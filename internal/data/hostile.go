package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HostileTemplate holds static data for a hostile type loaded from YAML.
// Health and speed scale linearly with the wave index.
type HostileTemplate struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Radius        float64 `yaml:"radius"`
	Damage        int     `yaml:"damage"`
	BaseHealth    int     `yaml:"base_health"`
	HealthPerWave int     `yaml:"health_per_wave"`
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerWave  float64 `yaml:"speed_per_wave"`
}

// HealthAt returns max health for the given wave index.
func (h *HostileTemplate) HealthAt(wave int) int {
	return h.BaseHealth + wave*h.HealthPerWave
}

// SpeedAt returns movement speed (units per tick) for the given wave index.
func (h *HostileTemplate) SpeedAt(wave int) float64 {
	return h.BaseSpeed + float64(wave)*h.SpeedPerWave
}

type hostileListFile struct {
	Hostiles []HostileTemplate `yaml:"hostiles"`
}

// HostileTable holds all hostile templates indexed by ID. The first entry
// is the wave default.
type HostileTable struct {
	templates map[string]*HostileTemplate
	defaultID string
}

// LoadHostileTable loads hostile templates from a YAML file.
func LoadHostileTable(path string) (*HostileTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hostile_list: %w", err)
	}
	var f hostileListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse hostile_list: %w", err)
	}
	if len(f.Hostiles) == 0 {
		return nil, fmt.Errorf("hostile_list %s: no hostiles defined", path)
	}
	return NewHostileTable(f.Hostiles), nil
}

// NewHostileTable builds a table from in-memory templates (used by tests).
func NewHostileTable(templates []HostileTemplate) *HostileTable {
	t := &HostileTable{templates: make(map[string]*HostileTemplate, len(templates))}
	for i := range templates {
		h := &templates[i]
		t.templates[h.ID] = h
		if t.defaultID == "" {
			t.defaultID = h.ID
		}
	}
	return t
}

// Get returns a hostile template by ID, or nil if not found.
func (t *HostileTable) Get(id string) *HostileTemplate {
	return t.templates[id]
}

// Default returns the template waves spawn.
func (t *HostileTable) Default() *HostileTemplate {
	return t.templates[t.defaultID]
}

// Count returns the number of loaded templates.
func (t *HostileTable) Count() int {
	return len(t.templates)
}
