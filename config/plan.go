package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"raidcalc/capacity"
)

// DriveGroup is a run of identical drives.
type DriveGroup struct {
	Size  float64 `yaml:"size"`
	Count int     `yaml:"count"`
}

// PlanTopology mirrors capacity.Topology in the plan file.
type PlanTopology struct {
	Groups   int `yaml:"groups"`
	PerGroup int `yaml:"per_group"`
}

// Plan is a saved calculation request.
type Plan struct {
	Scheme      string        `yaml:"scheme"`
	DriveSizes  []float64     `yaml:"drives,omitempty,flow"`
	DriveGroups []DriveGroup  `yaml:"drive_groups,omitempty"`
	Topology    *PlanTopology `yaml:"topology,omitempty"`
}

// Drives returns the explicit drive list followed by the expanded drive groups.
func (p Plan) Drives() []float64 {
	drives := append([]float64(nil), p.DriveSizes...)
	for _, g := range p.DriveGroups {
		for i := 0; i < g.Count; i++ {
			drives = append(drives, g.Size)
		}
	}
	return drives
}

// CapacityTopology converts the plan topology, or returns nil when unset.
func (p Plan) CapacityTopology() *capacity.Topology {
	if p.Topology == nil {
		return nil
	}
	return &capacity.Topology{Groups: p.Topology.Groups, PerGroup: p.Topology.PerGroup}
}

// Validate checks the plan's shape. Capacity rules are left to the engine.
func (p Plan) Validate() error {
	if p.Scheme == "" {
		return errors.New("plan has no scheme")
	}
	if len(p.DriveSizes) == 0 && len(p.DriveGroups) == 0 {
		return errors.New("plan has no drives")
	}
	for i, g := range p.DriveGroups {
		if g.Count <= 0 {
			return fmt.Errorf("drive group %d: count must be positive, got %d", i+1, g.Count)
		}
	}
	return nil
}

// ParsePlan decodes and validates a YAML plan.
func ParsePlan(data []byte) (Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("failed to parse plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// LoadPlan reads a YAML plan from path.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read plan: %w", err)
	}
	return ParsePlan(data)
}

// MarshalPlan encodes a plan as YAML.
func MarshalPlan(p Plan) ([]byte, error) {
	return yaml.Marshal(p)
}

// SavePlan writes a plan to path.
func SavePlan(path string, p Plan) error {
	data, err := MarshalPlan(p)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}
