package capacity

import (
	"errors"
	"fmt"
)

// ErrInvalidTopology is wrapped when a group count or group size is not positive.
var ErrInvalidTopology = errors.New("groups and drives per group must be positive")

// UnknownSchemeError is returned for an identifier missing from the registry.
type UnknownSchemeError struct {
	Scheme string
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown scheme %q", e.Scheme)
}

// InsufficientDrivesError is returned when fewer drives are supplied than the
// scheme needs. PerGroup is set when the limit applies to each vdev.
type InsufficientDrivesError struct {
	Scheme   string
	Required int
	Actual   int
	PerGroup bool
}

func (e *InsufficientDrivesError) Error() string {
	if e.PerGroup {
		return fmt.Sprintf("%s requires at least %d drives per vdev, got %d", e.Scheme, e.Required, e.Actual)
	}
	return fmt.Sprintf("%s requires at least %d drives, got %d", e.Scheme, e.Required, e.Actual)
}

// ParityMismatchError is returned when a pairwise scheme gets an odd drive count.
type ParityMismatchError struct {
	Scheme string
	Actual int
}

func (e *ParityMismatchError) Error() string {
	return fmt.Sprintf("%s requires an even number of drives, got %d", e.Scheme, e.Actual)
}

// TopologyMismatchError is returned when groups × perGroup does not cover the drive list.
type TopologyMismatchError struct {
	Scheme   string
	Groups   int
	PerGroup int
	Actual   int
	Err      error
}

func (e *TopologyMismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v (vdevs %d, drives per vdev %d)", e.Scheme, e.Err, e.Groups, e.PerGroup)
	}
	return fmt.Sprintf("%s: total drives (%d) must equal vdevs (%d) × drives per vdev (%d)",
		e.Scheme, e.Actual, e.Groups, e.PerGroup)
}

func (e *TopologyMismatchError) Unwrap() error { return e.Err }

// UnsupportedTopologyError is returned when a topology is given for a scheme
// that is not built from vdevs.
type UnsupportedTopologyError struct {
	Scheme string
}

func (e *UnsupportedTopologyError) Error() string {
	return fmt.Sprintf("%s does not support vdev groups", e.Scheme)
}

// InvalidDriveSizeError is returned for a drive size that is not a positive finite number.
type InvalidDriveSizeError struct {
	Index int
	Size  float64
}

func (e *InvalidDriveSizeError) Error() string {
	return fmt.Sprintf("drive %d: invalid size %v TB", e.Index+1, e.Size)
}

// IsValidationError reports whether err is one of the input validation errors
// of this package.
func IsValidationError(err error) bool {
	var (
		unknown      *UnknownSchemeError
		insufficient *InsufficientDrivesError
		parity       *ParityMismatchError
		topology     *TopologyMismatchError
		unsupported  *UnsupportedTopologyError
		size         *InvalidDriveSizeError
	)
	return errors.As(err, &unknown) ||
		errors.As(err, &insufficient) ||
		errors.As(err, &parity) ||
		errors.As(err, &topology) ||
		errors.As(err, &unsupported) ||
		errors.As(err, &size)
}
