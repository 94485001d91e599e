package capacity

import (
	"fmt"
	"sort"
)

// calcFunc computes usable capacity in TiB from drives already converted to TiB.
type calcFunc func(drives []float64, s Scheme) (float64, error)

// groupCalcFunc computes usable capacity of a single vdev.
type groupCalcFunc func(group []float64, s Scheme) float64

var calculators = map[Family]calcFunc{
	FamilyStripe: func(drives []float64, _ Scheme) (float64, error) {
		return sum(drives), nil
	},
	FamilyMirror: func(drives []float64, _ Scheme) (float64, error) {
		// every drive mirrors down to the smallest one
		return smallest(drives), nil
	},
	FamilyParity: func(drives []float64, s Scheme) (float64, error) {
		return float64(len(drives)-s.Parity) * smallest(drives), nil
	},
	FamilyMirroredStripe: func(drives []float64, s Scheme) (float64, error) {
		if len(drives)%2 != 0 {
			return 0, &ParityMismatchError{Scheme: s.Name, Actual: len(drives)}
		}
		return float64(len(drives)/2) * smallest(drives), nil
	},
	FamilyHybrid: func(drives []float64, s Scheme) (float64, error) {
		return hybridCapacity(drives, s.Parity, s.Name)
	},
	FamilyFlexArray: func(drives []float64, s Scheme) (float64, error) {
		return flexArrayCapacity(drives, s.Parity, s.Name)
	},
}

var groupCalculators = map[Family]groupCalcFunc{
	FamilyMirror: func(group []float64, _ Scheme) float64 {
		return smallest(group)
	},
	FamilyParity: func(group []float64, s Scheme) float64 {
		return float64(len(group)-s.Parity) * smallest(group)
	},
}

// hybridCapacity builds capacity up by size tiers. Drives are sorted ascending;
// each step adds the size increase over the previous drive, spread across the
// drives still at or above that size, minus their parity share. Tiers where no
// more than parity drives remain add nothing.
func hybridCapacity(drives []float64, parity int, name string) (float64, error) {
	if len(drives) < parity+1 {
		return 0, &InsufficientDrivesError{Scheme: name, Required: parity + 1, Actual: len(drives)}
	}

	sorted := append([]float64(nil), drives...)
	sort.Float64s(sorted)

	var usable, previous float64
	for i, size := range sorted {
		available := len(sorted) - i
		if available > parity {
			usable += (size - previous) * float64(available-parity) / float64(available)
		}
		previous = size
	}
	return usable, nil
}

// flexArrayCapacity removes the parity largest drives and sums the rest, since
// every data drive is addressed on its own.
func flexArrayCapacity(drives []float64, parity int, name string) (float64, error) {
	if len(drives) < parity+1 {
		return 0, &InsufficientDrivesError{Scheme: name, Required: parity + 1, Actual: len(drives)}
	}

	sorted := append([]float64(nil), drives...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	return sum(sorted[parity:]), nil
}

// groupedCapacity splits drives into contiguous vdevs of perGroup drives in
// input order and sums their usable capacity.
func groupedCapacity(drives []float64, s Scheme, topo Topology) (float64, error) {
	calc, ok := groupCalculators[s.Family]
	if !ok {
		return 0, fmt.Errorf("%s: no vdev calculator for family %s", s.Name, s.Family)
	}

	var usable float64
	for g := 0; g < topo.Groups; g++ {
		start := g * topo.PerGroup
		usable += calc(drives[start:start+topo.PerGroup], s)
	}
	return usable, nil
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func smallest(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	least := values[0]
	for _, v := range values[1:] {
		if v < least {
			least = v
		}
	}
	return least
}
