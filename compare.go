package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"raidcalc/capacity"
)

// comparison is one scheme's outcome for a shared drive set.
type comparison struct {
	Scheme capacity.Scheme
	Result capacity.Result
	Err    error
}

// compareSchemes runs drives through every scheme in reg. Accepted schemes
// come first ordered by usable capacity, then rejected ones in registry order.
func compareSchemes(reg *capacity.Registry, drives []float64) []comparison {
	var accepted, rejected []comparison
	for _, s := range reg.Schemes() {
		res, err := reg.Calculate(s.ID, drives, nil)
		if err != nil {
			rejected = append(rejected, comparison{Scheme: s, Err: err})
			continue
		}
		accepted = append(accepted, comparison{Scheme: s, Result: res})
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Result.Usable > accepted[j].Result.Usable
	})
	return append(accepted, rejected...)
}

func renderComparison(w io.Writer, rows []comparison, drives []float64) {
	fmt.Fprintf(w, "Drives: %d (%s)\n\n", len(drives), capacity.FormatDriveList(drives))
	fmt.Fprintf(w, "%-24s %12s %12s %8s %6s\n", "SCHEME", "USABLE", "WASTED", "EFF", "FAULTS")
	fmt.Fprintln(w, strings.Repeat("-", 66))
	for _, row := range rows {
		name := fmt.Sprintf("%s (%s)", row.Scheme.Name, row.Scheme.ID)
		if len(name) > 24 {
			name = row.Scheme.ID
		}
		if row.Err != nil {
			fmt.Fprintf(w, "%-24s %s\n", name, row.Err)
			continue
		}
		fmt.Fprintf(w, "%-24s %12s %12s %8s %6d\n",
			name,
			capacity.FormatCapacity(row.Result.Usable, false),
			capacity.FormatCapacity(row.Result.Wasted, false),
			capacity.FormatPercentage(row.Result.Efficiency),
			row.Scheme.FaultTolerance)
	}
}

func renderSchemes(w io.Writer, reg *capacity.Registry) {
	fmt.Fprintf(w, "%-11s %-23s %4s %6s %-10s %-10s %s\n", "ID", "NAME", "MIN", "FAULTS", "READ", "WRITE", "EFFICIENCY")
	for _, s := range reg.Schemes() {
		eff := "varies"
		if v, ok := s.FixedEfficiency(); ok {
			eff = capacity.FormatPercentage(v)
		}
		if s.Groupable {
			eff += " (vdevs)"
		}
		fmt.Fprintf(w, "%-11s %-23s %4d %6d %-10s %-10s %s\n",
			s.ID, s.Name, s.MinDrives, s.FaultTolerance, s.ReadPerformance, s.WritePerformance, eff)
	}
}
