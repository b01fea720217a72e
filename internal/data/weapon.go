package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WeaponTemplate holds static data for a weapon type loaded from YAML.
type WeaponTemplate struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Damage       int    `yaml:"damage"`
	FireRateMs   int    `yaml:"fire_rate_ms"`
	MagazineSize int    `yaml:"magazine_size"`
	ReloadMs     int    `yaml:"reload_ms"`
	Cost         int    `yaml:"cost"`
}

type weaponListFile struct {
	Weapons []WeaponTemplate `yaml:"weapons"`
}

// WeaponTable holds all weapon templates indexed by ID.
type WeaponTable struct {
	templates map[string]*WeaponTemplate
	defaultID string
}

// LoadWeaponTable loads weapon templates from a YAML file.
func LoadWeaponTable(path string) (*WeaponTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weapon_list: %w", err)
	}
	var f weaponListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse weapon_list: %w", err)
	}
	if len(f.Weapons) == 0 {
		return nil, fmt.Errorf("weapon_list %s: no weapons defined", path)
	}
	return NewWeaponTable(f.Weapons), nil
}

// NewWeaponTable builds a table from in-memory templates (used by tests).
// The first zero-cost weapon is the starting loadout.
func NewWeaponTable(templates []WeaponTemplate) *WeaponTable {
	t := &WeaponTable{templates: make(map[string]*WeaponTemplate, len(templates))}
	for i := range templates {
		w := &templates[i]
		t.templates[w.ID] = w
		if t.defaultID == "" && w.Cost == 0 {
			t.defaultID = w.ID
		}
	}
	if t.defaultID == "" {
		t.defaultID = templates[0].ID
	}
	return t
}

// Get returns a weapon template by ID, or nil if not found.
func (t *WeaponTable) Get(id string) *WeaponTemplate {
	return t.templates[id]
}

// DefaultID returns the weapon every player spawns with.
func (t *WeaponTable) DefaultID() string {
	return t.defaultID
}

// Count returns the number of loaded templates.
func (t *WeaponTable) Count() int {
	return len(t.templates)
}
