package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"raidcalc/capacity"
	"raidcalc/config"
	"raidcalc/logger"
)

// fail prints err and exits, using a distinct code for input validation errors.
func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	if capacity.IsValidationError(err) {
		logger.Warn("invalid request", "error", err.Error())
		logger.Sync()
		os.Exit(exitValidation)
	}
	logger.Error("command failed", "error", err.Error())
	logger.Sync()
	os.Exit(exitFailure)
}

// logMode picks the logger preset: --verbose wins, otherwise the configured
// mode, which is empty (silent) by default.
func logMode(settings config.Settings, verbose bool) string {
	if verbose {
		return "dev"
	}
	return settings.LogMode
}

// parseSize parses an advertised drive size such as "12", "12TB" or "1.5tb".
func parseSize(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSuffix(strings.TrimSuffix(trimmed, "TB"), "tb")
	size, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("invalid drive size %q", s)
	}
	return size, nil
}

// parseDrives expands drive arguments. Each argument may hold a comma
// separated list and each entry may carry a multiplier, e.g. "3x12,8TB".
func parseDrives(args []string) ([]float64, error) {
	var drives []float64
	for _, arg := range args {
		for _, entry := range strings.Split(arg, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			count := 1
			if idx := strings.IndexAny(entry, "x*"); idx > 0 {
				n, err := strconv.Atoi(entry[:idx])
				if err != nil || n <= 0 {
					return nil, fmt.Errorf("invalid drive count in %q", entry)
				}
				count = n
				entry = entry[idx+1:]
			}
			size, err := parseSize(entry)
			if err != nil {
				return nil, err
			}
			for i := 0; i < count; i++ {
				drives = append(drives, size)
			}
		}
	}
	return drives, nil
}

func uniformDrives(count int, size float64) []float64 {
	drives := make([]float64, count)
	for i := range drives {
		drives[i] = size
	}
	return drives
}

// resolveRequest turns command line input into a calculation request. A plan
// file supplies defaults that explicit arguments override.
func resolveRequest(in calcInput, settings config.Settings) (calcRequest, error) {
	req := calcRequest{Scheme: in.Scheme}

	if in.File != "" {
		plan, err := config.LoadPlan(in.File)
		if err != nil {
			return calcRequest{}, err
		}
		if req.Scheme == "" {
			req.Scheme = plan.Scheme
		}
		req.Drives = plan.Drives()
		req.Topology = plan.CapacityTopology()
	}
	if req.Scheme == "" {
		req.Scheme = settings.DefaultScheme
	}

	if len(in.Drives) > 0 {
		drives, err := parseDrives(in.Drives)
		if err != nil {
			return calcRequest{}, err
		}
		req.Drives = drives
	}

	if len(req.Drives) == 0 || in.Count > 0 {
		size := settings.DefaultDriveSize
		if in.Size != "" {
			s, err := parseSize(in.Size)
			if err != nil {
				return calcRequest{}, err
			}
			size = s
		}
		count := in.Count
		if count == 0 && in.Groups > 0 && in.PerGroup > 0 {
			count = in.Groups * in.PerGroup
		}
		if count <= 0 {
			return calcRequest{}, errors.New("no drives given: pass drive sizes, --count or --file")
		}
		req.Drives = uniformDrives(count, size)
	}

	if in.Groups != 0 || in.PerGroup != 0 {
		topo := capacity.Topology{Groups: in.Groups, PerGroup: in.PerGroup}
		// derive the missing side when it divides evenly
		if topo.PerGroup == 0 && topo.Groups > 0 && len(req.Drives)%topo.Groups == 0 {
			topo.PerGroup = len(req.Drives) / topo.Groups
		}
		if topo.Groups == 0 && topo.PerGroup > 0 && len(req.Drives)%topo.PerGroup == 0 {
			topo.Groups = len(req.Drives) / topo.PerGroup
		}
		req.Topology = &topo
	}

	return req, nil
}

func (r calcRequest) plan() config.Plan {
	p := config.Plan{Scheme: r.Scheme, DriveSizes: r.Drives}
	if r.Topology != nil {
		p.Topology = &config.PlanTopology{Groups: r.Topology.Groups, PerGroup: r.Topology.PerGroup}
	}
	return p
}

func (r calcRequest) calculate() (capacity.Result, error) {
	res, err := capacity.Calculate(r.Scheme, r.Drives, r.Topology)
	if err != nil {
		return capacity.Result{}, err
	}
	logger.Debug("calculated",
		"scheme", r.Scheme,
		"drives", r.Drives,
		"usable_tib", res.Usable,
		"raw_tib", res.Raw)
	return res, nil
}
