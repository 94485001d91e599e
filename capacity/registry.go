package capacity

import (
	"fmt"
)

// Family selects the capacity algorithm used for a scheme.
type Family int

const (
	FamilyStripe Family = iota
	FamilyMirror
	FamilyParity
	FamilyMirroredStripe
	FamilyHybrid
	FamilyFlexArray
)

var familyNames = map[Family]string{
	FamilyStripe:         "stripe",
	FamilyMirror:         "mirror",
	FamilyParity:         "parity",
	FamilyMirroredStripe: "mirrored-stripe",
	FamilyHybrid:         "hybrid",
	FamilyFlexArray:      "flex-array",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// Scheme describes one redundancy layout.
type Scheme struct {
	ID               string
	Name             string
	Description      string
	MinDrives        int
	FaultTolerance   int
	ReadPerformance  string
	WritePerformance string
	// Efficiency is nil when it depends on the drive sizes.
	Efficiency *float64

	Family Family
	// Parity is the number of parity drives for parity, hybrid and flex-array families.
	Parity int
	// Groupable schemes accept a vdev topology.
	Groupable bool
}

// FixedEfficiency returns the scheme's fixed usable/raw ratio, if it has one.
func (s Scheme) FixedEfficiency() (float64, bool) {
	if s.Efficiency == nil {
		return 0, false
	}
	return *s.Efficiency, true
}

func (s Scheme) clone() Scheme {
	if s.Efficiency != nil {
		eff := *s.Efficiency
		s.Efficiency = &eff
	}
	return s
}

func fixed(v float64) *float64 { return &v }

var defaultSchemes = []Scheme{
	{
		ID: "raid0", Name: "RAID 0",
		Description: "Striping - Maximum performance, no redundancy",
		MinDrives:   2, FaultTolerance: 0,
		ReadPerformance: "Excellent", WritePerformance: "Excellent",
		Efficiency: fixed(1.0),
		Family:     FamilyStripe,
	},
	{
		ID: "raid1", Name: "RAID 1",
		Description: "Mirroring - 100% redundancy",
		MinDrives:   2, FaultTolerance: 1,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Efficiency: fixed(0.5),
		Family:     FamilyMirror,
	},
	{
		ID: "raid5", Name: "RAID 5",
		Description: "Single parity - Good balance of performance and redundancy",
		MinDrives:   3, FaultTolerance: 1,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Family: FamilyParity, Parity: 1,
	},
	{
		ID: "raid6", Name: "RAID 6",
		Description: "Double parity - Enhanced fault tolerance",
		MinDrives:   4, FaultTolerance: 2,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Family: FamilyParity, Parity: 2,
	},
	{
		ID: "raid10", Name: "RAID 10",
		Description: "Mirrored stripes - Best performance with redundancy",
		MinDrives:   4, FaultTolerance: 1,
		ReadPerformance: "Excellent", WritePerformance: "Good",
		Efficiency: fixed(0.5),
		Family:     FamilyMirroredStripe,
	},
	{
		ID: "shr", Name: "Synology Hybrid RAID",
		Description: "Flexible RAID with single disk fault tolerance",
		MinDrives:   2, FaultTolerance: 1,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Family: FamilyHybrid, Parity: 1,
	},
	{
		ID: "shr2", Name: "Synology Hybrid RAID 2",
		Description: "Flexible RAID with dual disk fault tolerance",
		MinDrives:   4, FaultTolerance: 2,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Family: FamilyHybrid, Parity: 2,
	},
	{
		ID: "zfs-stripe", Name: "ZFS Stripe",
		Description: "No redundancy - Maximum capacity",
		MinDrives:   1, FaultTolerance: 0,
		ReadPerformance: "Excellent", WritePerformance: "Excellent",
		Efficiency: fixed(1.0),
		Family:     FamilyStripe,
	},
	{
		ID: "zfs-mirror", Name: "ZFS Mirror",
		Description: "Mirrored vdevs - High redundancy",
		MinDrives:   2, FaultTolerance: 1,
		ReadPerformance: "Excellent", WritePerformance: "Good",
		Efficiency: fixed(0.5),
		Family:     FamilyMirror, Groupable: true,
	},
	{
		ID: "raidz1", Name: "RAIDZ1",
		Description: "Single parity - ZFS equivalent to RAID 5",
		MinDrives:   3, FaultTolerance: 1,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Family: FamilyParity, Parity: 1, Groupable: true,
	},
	{
		ID: "raidz2", Name: "RAIDZ2",
		Description: "Double parity - ZFS equivalent to RAID 6",
		MinDrives:   4, FaultTolerance: 2,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Family: FamilyParity, Parity: 2, Groupable: true,
	},
	{
		ID: "raidz3", Name: "RAIDZ3",
		Description: "Triple parity - Maximum fault tolerance",
		MinDrives:   5, FaultTolerance: 3,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Family: FamilyParity, Parity: 3, Groupable: true,
	},
	{
		ID: "unraid-1", Name: "Unraid (1 Parity)",
		Description: "Flexible array with single parity drive - Individual drive access",
		MinDrives:   2, FaultTolerance: 1,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Family: FamilyFlexArray, Parity: 1,
	},
	{
		ID: "unraid-2", Name: "Unraid (2 Parity)",
		Description: "Flexible array with dual parity drives - Individual drive access",
		MinDrives:   3, FaultTolerance: 2,
		ReadPerformance: "Good", WritePerformance: "Moderate",
		Family: FamilyFlexArray, Parity: 2,
	},
}

// Registry is an immutable table of schemes keyed by identifier.
type Registry struct {
	schemes map[string]Scheme
	order   []string
}

// Default is the registry of every built-in scheme.
var Default = MustNewRegistry(defaultSchemes)

// NewRegistry builds a registry, rejecting duplicate identifiers, families
// without a calculator and minimum drive counts the scheme's math cannot run with.
func NewRegistry(schemes []Scheme) (*Registry, error) {
	r := &Registry{
		schemes: make(map[string]Scheme, len(schemes)),
		order:   make([]string, 0, len(schemes)),
	}
	for _, s := range schemes {
		if s.ID == "" {
			return nil, fmt.Errorf("scheme %q has no identifier", s.Name)
		}
		if _, dup := r.schemes[s.ID]; dup {
			return nil, fmt.Errorf("duplicate scheme %q", s.ID)
		}
		if _, ok := calculators[s.Family]; !ok {
			return nil, fmt.Errorf("scheme %q: no calculator for family %s", s.ID, s.Family)
		}
		if s.Groupable {
			if _, ok := groupCalculators[s.Family]; !ok {
				return nil, fmt.Errorf("scheme %q: family %s cannot be grouped", s.ID, s.Family)
			}
		}
		if s.Parity < 0 {
			return nil, fmt.Errorf("scheme %q: negative parity %d", s.ID, s.Parity)
		}
		if s.MinDrives < 1 || s.MinDrives < s.Parity+1 {
			return nil, fmt.Errorf("scheme %q: minimum of %d drives cannot hold %d parity", s.ID, s.MinDrives, s.Parity)
		}
		if s.Family == FamilyMirroredStripe && s.MinDrives%2 != 0 {
			return nil, fmt.Errorf("scheme %q: minimum of %d drives is not a pair count", s.ID, s.MinDrives)
		}
		r.schemes[s.ID] = s.clone()
		r.order = append(r.order, s.ID)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on an invalid table.
func MustNewRegistry(schemes []Scheme) *Registry {
	r, err := NewRegistry(schemes)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id string) (Scheme, error) {
	s, ok := r.schemes[id]
	if !ok {
		return Scheme{}, &UnknownSchemeError{Scheme: id}
	}
	return s.clone(), nil
}

// Schemes returns every descriptor in registration order.
func (r *Registry) Schemes() []Scheme {
	out := make([]Scheme, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.schemes[id].clone())
	}
	return out
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Validate checks driveCount against the scheme's structural limits.
func (r *Registry) Validate(id string, driveCount int) error {
	s, err := r.Lookup(id)
	if err != nil {
		return err
	}
	return validateCount(s, driveCount)
}

func validateCount(s Scheme, driveCount int) error {
	// pair schemes report an odd count before the minimum, so 3 drives reads as a pairing problem
	if s.Family == FamilyMirroredStripe && driveCount%2 != 0 {
		return &ParityMismatchError{Scheme: s.Name, Actual: driveCount}
	}
	if driveCount < s.MinDrives {
		return &InsufficientDrivesError{Scheme: s.Name, Required: s.MinDrives, Actual: driveCount}
	}
	return nil
}

// Lookup returns the descriptor for id from the Default registry.
func Lookup(id string) (Scheme, error) { return Default.Lookup(id) }

// Validate checks driveCount for id against the Default registry.
func Validate(id string, driveCount int) error { return Default.Validate(id, driveCount) }
