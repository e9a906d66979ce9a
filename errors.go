package uksim

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error message formats, mirroring the teacher's parameterised
// constant-string approach instead of building strings ad hoc at each
// call site.
const (
	IntKeyNotFoundError     = "key %d not found"
	IntKeyExistsError       = "key %d already exists"
	InvalidFloatParamError  = "invalid %s %f, %s"
	InvalidIntParamError    = "invalid %s %d, %s"
	InvalidStringParamError = "invalid %s %s, %s"
	UnequalIntParamError    = "expected %s %d, instead got %d"
	DanglingBuildingError   = "building %s referenced by citizen %d does not exist"
	DuplicateOccupantError  = "citizen %d appears more than once in building %s"
	MissingScheduleError    = "citizen %d has no schedule entry for hour %d"
)

// ConfigurationError reports a problem discovered before any tick runs:
// a missing region, a malformed disease model, or a config file that
// fails validation. The driver aborts on this error without simulating.
type ConfigurationError struct {
	cause error
}

func NewConfigurationError(cause error) *ConfigurationError {
	return &ConfigurationError{cause: cause}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.cause)
}

func (e *ConfigurationError) Unwrap() error { return e.cause }

// InvariantError reports a fatal violation of a data-model invariant: a
// dangling building id, a duplicate occupant, or a missing schedule
// entry. It always carries the id of the offending entity and the tick
// at which the violation was detected so operators can reproduce it.
type InvariantError struct {
	Tick     int
	EntityID string
	cause    error
}

func NewInvariantError(tick int, entityID string, cause error) *InvariantError {
	return &InvariantError{Tick: tick, EntityID: entityID, cause: cause}
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at tick %d (entity %s): %s", e.Tick, e.EntityID, e.cause)
}

func (e *InvariantError) Unwrap() error { return e.cause }

// ResourceError reports that the process could not allocate the memory
// required for the citizen or occupant arrays. Always fatal.
type ResourceError struct {
	cause error
}

func NewResourceError(cause error) *ResourceError {
	return &ResourceError{cause: cause}
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error: %s", e.cause)
}

func (e *ResourceError) Unwrap() error { return e.cause }

// clampProbability clamps p into [0, 1]. Per spec §7, a probability that
// falls outside [0,1] after multiplier composition is clamped rather
// than treated as fatal.
func clampProbability(p float64) (clamped float64, wasOutOfRange bool) {
	if p < 0 {
		return 0, true
	}
	if p > 1 {
		return 1, true
	}
	return p, false
}

// wrapConfig is a thin helper around pkg/errors.Wrapf, kept as a named
// function so every configuration validation failure goes through the
// same annotation shape the teacher used in its Validate() chain.
func wrapConfig(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
