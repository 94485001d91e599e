package capacity

const (
	// BytesPerTB is the decimal terabyte used on drive labels.
	BytesPerTB = 1000000000000
	// BytesPerTiB is the binary terabyte reported by operating systems.
	BytesPerTiB = 1 << 40
)

// ToBinaryUnits converts an advertised size in TB to TiB.
// Example: 12 TB = 10.91 TiB
func ToBinaryUnits(tb float64) float64 {
	bytes := tb * BytesPerTB
	return bytes / BytesPerTiB
}

// ToDecimalUnits converts a size in TiB back to its TB equivalent.
func ToDecimalUnits(tib float64) float64 {
	return (tib * BytesPerTiB) / BytesPerTB
}

func toBinaryAll(drives []float64) []float64 {
	out := make([]float64, len(drives))
	for i, tb := range drives {
		out[i] = ToBinaryUnits(tb)
	}
	return out
}
