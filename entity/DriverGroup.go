package entity

import "encoding/json"

// DriverGroup maps an external driver subgroup code to a display label.
type DriverGroup struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DriverGroupConfig holds the ordered group columns for the owned (自車) and
// outsourced (傭車) sides of the driver panel.
type DriverGroupConfig struct {
	Owned      []DriverGroup `json:"owned"`
	Outsourced []DriverGroup `json:"outsourced"`
}

// DefaultDriverGroups returns the built-in group columns.
func DefaultDriverGroups() DriverGroupConfig {
	return DriverGroupConfig{
		Owned: []DriverGroup{
			{Key: "ドレー", Label: "ドレー"},
			{Key: "ポジション", Label: "ポジ"},
		},
		Outsourced: []DriverGroup{
			{Key: "ガレージ", Label: "ガレージ"},
			{Key: "山翔", Label: "山翔"},
			{Key: "セトリヤマ", Label: "セトリヤマ"},
		},
	}
}

// ParseDriverGroupConfig validates a persisted config blob of unknown shape.
// Anything that does not decode to the owned/outsourced object form (including
// the legacy flat-array format) falls back to the documented defaults; the
// result is always fully typed.
func ParseDriverGroupConfig(raw []byte) DriverGroupConfig {
	if len(raw) == 0 {
		return DefaultDriverGroups()
	}
	var cfg DriverGroupConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return DefaultDriverGroups()
	}
	if cfg.Owned == nil || cfg.Outsourced == nil {
		return DefaultDriverGroups()
	}
	return cfg
}

// Normalize drops entries with an empty subgroup key and falls back to the
// defaults when a side would end up empty.
func (c DriverGroupConfig) Normalize() DriverGroupConfig {
	trim := func(in []DriverGroup) []DriverGroup {
		out := make([]DriverGroup, 0, len(in))
		for _, g := range in {
			if g.Key == "" {
				continue
			}
			if g.Label == "" {
				g.Label = g.Key
			}
			out = append(out, g)
		}
		return out
	}
	c.Owned = trim(c.Owned)
	c.Outsourced = trim(c.Outsourced)
	if len(c.Owned) == 0 && len(c.Outsourced) == 0 {
		return DefaultDriverGroups()
	}
	return c
}
