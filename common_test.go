package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raidcalc/capacity"
	"raidcalc/config"
)

func TestParseDrives(t *testing.T) {
	drives, err := parseDrives([]string{"12", "3x8,4TB", " 2*1.5tb "})
	require.NoError(t, err)
	assert.Equal(t, []float64{12, 8, 8, 8, 4, 1.5, 1.5}, drives)

	drives, err = parseDrives(nil)
	require.NoError(t, err)
	assert.Empty(t, drives)
}

func TestParseDrivesErrors(t *testing.T) {
	for _, arg := range []string{"0", "x12", "abc", "-3x4", "2x", "-1"} {
		_, err := parseDrives([]string{arg})
		assert.Error(t, err, arg)
	}
}

func testSettings() config.Settings {
	s := config.Defaults()
	s.DefaultScheme = "raid5"
	s.DefaultDriveSize = 12
	return s
}

func TestResolveRequest(t *testing.T) {
	tests := []struct {
		name   string
		in     calcInput
		scheme string
		drives []float64
		topo   *capacity.Topology
	}{
		{
			name:   "explicit drives",
			in:     calcInput{Scheme: "shr", Drives: []string{"4", "4", "8"}},
			scheme: "shr",
			drives: []float64{4, 4, 8},
		},
		{
			name:   "uniform drives",
			in:     calcInput{Scheme: "raid6", Count: 6, Size: "16TB"},
			scheme: "raid6",
			drives: []float64{16, 16, 16, 16, 16, 16},
		},
		{
			name:   "default scheme and size from topology",
			in:     calcInput{Groups: 2, PerGroup: 3},
			scheme: "raid5",
			drives: []float64{12, 12, 12, 12, 12, 12},
			topo:   &capacity.Topology{Groups: 2, PerGroup: 3},
		},
		{
			name:   "drives per vdev derived",
			in:     calcInput{Scheme: "zfs-mirror", Drives: []string{"4x10"}, Groups: 2},
			scheme: "zfs-mirror",
			drives: []float64{10, 10, 10, 10},
			topo:   &capacity.Topology{Groups: 2, PerGroup: 2},
		},
		{
			name:   "vdev count derived",
			in:     calcInput{Scheme: "raidz1", Drives: []string{"6x4"}, PerGroup: 3},
			scheme: "raidz1",
			drives: []float64{4, 4, 4, 4, 4, 4},
			topo:   &capacity.Topology{Groups: 2, PerGroup: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := resolveRequest(tt.in, testSettings())
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, req.Scheme)
			assert.Equal(t, tt.drives, req.Drives)
			assert.Equal(t, tt.topo, req.Topology)
		})
	}
}

func TestResolveRequestNoDrives(t *testing.T) {
	_, err := resolveRequest(calcInput{Scheme: "raid0"}, testSettings())
	assert.ErrorContains(t, err, "no drives given")

	_, err = resolveRequest(calcInput{Scheme: "raid0", Count: 2, Size: "big"}, testSettings())
	assert.ErrorContains(t, err, "invalid drive size")
}

func TestResolveRequestFromPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	plan := "scheme: raidz2\ndrive_groups: [{size: 8, count: 8}]\ntopology: {groups: 2, per_group: 4}\n"
	require.NoError(t, os.WriteFile(path, []byte(plan), 0o600))

	req, err := resolveRequest(calcInput{File: path}, testSettings())
	require.NoError(t, err)
	assert.Equal(t, "raidz2", req.Scheme)
	assert.Len(t, req.Drives, 8)
	assert.Equal(t, &capacity.Topology{Groups: 2, PerGroup: 4}, req.Topology)

	res, err := req.calculate()
	require.NoError(t, err)
	assert.InDelta(t, 4*capacity.ToBinaryUnits(8), res.Usable, 1e-9)

	req, err = resolveRequest(calcInput{File: path, Scheme: "raidz1"}, testSettings())
	require.NoError(t, err)
	assert.Equal(t, "raidz1", req.Scheme)

	saved := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, config.SavePlan(saved, req.plan()))
	again, err := resolveRequest(calcInput{File: saved}, testSettings())
	require.NoError(t, err)
	assert.Equal(t, req, again)

	_, err = resolveRequest(calcInput{File: filepath.Join(t.TempDir(), "none.yaml")}, testSettings())
	assert.Error(t, err)
}

func TestLogMode(t *testing.T) {
	assert.Equal(t, "", logMode(config.Defaults(), false), "silent by default")
	assert.Equal(t, "dev", logMode(config.Defaults(), true))

	configured := config.Defaults()
	configured.LogMode = "prod"
	assert.Equal(t, "prod", logMode(configured, false))
	assert.Equal(t, "dev", logMode(configured, true))
}
