package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCapacity(t *testing.T) {
	assert.Equal(t, "10.91 TiB (12.00 TB)", FormatCapacity(ToBinaryUnits(12), true))
	assert.Equal(t, "10.91 TiB", FormatCapacity(ToBinaryUnits(12), false))
	assert.Equal(t, "0.00 TiB (0.00 TB)", FormatCapacity(0, true))
}

func TestFormatPercentage(t *testing.T) {
	tests := map[float64]string{
		1:       "100.0%",
		0.8:     "80.0%",
		2.0 / 3: "66.7%",
		0:       "0.0%",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPercentage(in))
	}
}

func TestFormatDriveList(t *testing.T) {
	assert.Equal(t, "2x 8TB, 1x 10TB", FormatDriveList([]float64{8, 10, 8}))
	assert.Equal(t, "1x 1.5TB", FormatDriveList([]float64{1.5}))
	assert.Equal(t, "", FormatDriveList(nil))
}

func TestFaultToleranceText(t *testing.T) {
	assert.Equal(t, "No redundancy - any drive failure results in data loss", FaultToleranceText(0))
	assert.Equal(t, "Can survive 1 drive failure without data loss", FaultToleranceText(1))
	assert.Equal(t, "Can survive 3 drive failures without data loss", FaultToleranceText(3))
}

func TestPerformanceText(t *testing.T) {
	s, err := Lookup("raid10")
	assert.NoError(t, err)
	assert.Equal(t, "Read: Excellent | Write: Good", PerformanceText(s))
}
