package capacity

import (
	"math"
)

// Topology splits the drive list into Groups vdevs of PerGroup drives each.
type Topology struct {
	Groups   int
	PerGroup int
}

// Total is the number of drives the topology covers.
func (t Topology) Total() int { return t.Groups * t.PerGroup }

// Result holds the capacity figures of one calculation, all in TiB.
type Result struct {
	Scheme   Scheme
	Drives   int
	Topology *Topology

	Usable     float64
	Raw        float64
	Efficiency float64
	Wasted     float64
}

// Calculate runs id against drives (advertised TB) on the Default registry.
func Calculate(id string, drives []float64, topo *Topology) (Result, error) {
	return Default.Calculate(id, drives, topo)
}

// Calculate validates the request and computes usable, raw, efficiency and
// wasted capacity. A non-nil topology is only accepted by groupable schemes.
// All validation happens before any arithmetic.
func (r *Registry) Calculate(id string, drives []float64, topo *Topology) (Result, error) {
	s, err := r.Lookup(id)
	if err != nil {
		return Result{}, err
	}
	for i, tb := range drives {
		if tb <= 0 || math.IsNaN(tb) || math.IsInf(tb, 0) {
			return Result{}, &InvalidDriveSizeError{Index: i, Size: tb}
		}
	}

	if topo != nil {
		if err := validateTopology(s, len(drives), *topo); err != nil {
			return Result{}, err
		}
	} else if err := validateCount(s, len(drives)); err != nil {
		return Result{}, err
	}

	inTiB := toBinaryAll(drives)

	var usable float64
	if topo != nil {
		usable, err = groupedCapacity(inTiB, s, *topo)
	} else {
		usable, err = calculators[s.Family](inTiB, s)
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Scheme: s,
		Drives: len(drives),
		Usable: usable,
		Raw:    sum(inTiB),
	}
	if topo != nil {
		t := *topo
		res.Topology = &t
	}
	res.Efficiency = res.Usable / res.Raw
	res.Wasted = res.Raw - res.Usable
	return res, nil
}

func validateTopology(s Scheme, driveCount int, topo Topology) error {
	if !s.Groupable {
		return &UnsupportedTopologyError{Scheme: s.Name}
	}
	if topo.Groups <= 0 || topo.PerGroup <= 0 {
		return &TopologyMismatchError{
			Scheme: s.Name, Groups: topo.Groups, PerGroup: topo.PerGroup, Actual: driveCount,
			Err: ErrInvalidTopology,
		}
	}
	if topo.Total() != driveCount {
		return &TopologyMismatchError{Scheme: s.Name, Groups: topo.Groups, PerGroup: topo.PerGroup, Actual: driveCount}
	}
	if driveCount < s.MinDrives {
		return &InsufficientDrivesError{Scheme: s.Name, Required: s.MinDrives, Actual: driveCount}
	}
	if least := vdevMinimum(s); topo.PerGroup < least {
		return &InsufficientDrivesError{Scheme: s.Name, Required: least, Actual: topo.PerGroup, PerGroup: true}
	}
	return nil
}

// vdevMinimum is the smallest vdev that still holds data: a mirror needs a
// pair, a parity vdev one drive beyond its parity.
func vdevMinimum(s Scheme) int {
	if s.Family == FamilyMirror {
		return 2
	}
	return s.Parity + 1
}
