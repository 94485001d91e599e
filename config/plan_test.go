package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raidcalc/capacity"
)

func TestParsePlan(t *testing.T) {
	data := []byte(`
scheme: raidz2
drives: [12, 12]
drive_groups:
  - size: 8
    count: 2
  - size: 4
    count: 2
topology:
  groups: 1
  per_group: 6
`)
	p, err := ParsePlan(data)
	require.NoError(t, err)

	assert.Equal(t, "raidz2", p.Scheme)
	assert.Equal(t, []float64{12, 12, 8, 8, 4, 4}, p.Drives())
	assert.Equal(t, &capacity.Topology{Groups: 1, PerGroup: 6}, p.CapacityTopology())

	res, err := capacity.Calculate(p.Scheme, p.Drives(), p.CapacityTopology())
	require.NoError(t, err)
	assert.InDelta(t, 4*capacity.ToBinaryUnits(4), res.Usable, 1e-9)
}

func TestParsePlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		errPart string
	}{
		{"bad yaml", "scheme: [", "failed to parse plan"},
		{"no scheme", "drives: [1, 2]", "no scheme"},
		{"no drives", "scheme: raid1", "no drives"},
		{"bad group count", "scheme: raid1\ndrive_groups: [{size: 4, count: 0}]", "count must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tt.data))
			assert.ErrorContains(t, err, tt.errPart)
		})
	}
}

func TestSaveAndLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	want := Plan{
		Scheme:     "shr",
		DriveSizes: []float64{4, 4, 8},
	}
	require.NoError(t, SavePlan(path, want))

	got, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Nil(t, got.CapacityTopology())

	_, err = LoadPlan(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read plan")
}
