// Package forgeerr defines the domain's named error kinds as sentinel error
// types the caller can test for with errors.As instead of string matching.
package forgeerr

import "fmt"

// StaleSpecError is returned by the runner's first stale gate: its compiled-in
// spec hash no longer matches the FI it just fetched. Policy: exit
// success-noop, no Bundle write, no status change.
type StaleSpecError struct {
	FIName   string
	Expected string
	Actual   string
}

func (e *StaleSpecError) Error() string {
	return fmt.Sprintf("stale spec for %q: runner has %q, FI now has %q", e.FIName, e.Expected, e.Actual)
}

// StaleStatusError is returned by the runner's second stale gate (pre-write
// poll): the FI's observed_spec_hash has moved on to a newer dispatch.
// Policy: exit, no Bundle write.
type StaleStatusError struct {
	FIName   string
	Expected string
	Observed string
}

func (e *StaleStatusError) Error() string {
	return fmt.Sprintf("stale status for %q: expected observed spec hash %q, controller reports %q", e.FIName, e.Expected, e.Observed)
}

// UnsupportedEngineVersionError is returned by the manifest dispatcher for an
// unrecognized builder.engineVersion. Policy: runner fails; controller marks
// phase=Failed with a message naming the version.
type UnsupportedEngineVersionError struct {
	Version string
}

func (e *UnsupportedEngineVersionError) Error() string {
	return fmt.Sprintf("unsupported engine version %q", e.Version)
}

// InvalidPlacementError is returned by the v1 renderer for a menu placement
// outside {global, cluster, workspace}.
type InvalidPlacementError struct {
	Placement string
}

func (e *InvalidPlacementError) Error() string {
	return fmt.Sprintf("invalid menu placement %q", e.Placement)
}

// BuildFailedError is returned when the build service reports a terminal
// FAILED status. Policy: runner fails; controller marks phase=Failed.
type BuildFailedError struct {
	BuildID string
	Message string
}

func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("build %s failed: %s", e.BuildID, e.Message)
}

// BuildTimeoutError is returned when BUILD_SERVICE_TIMEOUT_SECONDS elapses
// before the build reaches a terminal status.
type BuildTimeoutError struct {
	BuildID string
}

func (e *BuildTimeoutError) Error() string {
	return fmt.Sprintf("build %s timed out", e.BuildID)
}

// InvalidRoutingPathError is returned when spec.routing.path is empty or
// starts with '/'.
type InvalidRoutingPathError struct {
	FIName string
	Path   string
}

func (e *InvalidRoutingPathError) Error() string {
	return fmt.Sprintf("invalid routing path %q for %q: must be non-empty and relative", e.Path, e.FIName)
}

// MissingCrdColumnsError is returned when a CRD-mode FI has no columns
// anywhere (spec nor integration.crd defaults).
type MissingCrdColumnsError struct {
	FIName string
}

func (e *MissingCrdColumnsError) Error() string {
	return fmt.Sprintf("frontendintegration %q is in crd mode but declares no columns", e.FIName)
}

// InvalidIntegrationShapeError is returned when integration.type names a
// payload that is nil.
type InvalidIntegrationShapeError struct {
	FIName          string
	IntegrationType string
}

func (e *InvalidIntegrationShapeError) Error() string {
	return fmt.Sprintf("frontendintegration %q declares integration type %q but its payload is missing", e.FIName, e.IntegrationType)
}
