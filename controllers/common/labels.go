// Package common holds label/annotation constants and the Job-builder logic
// shared by the FrontendIntegration reconciler, in the spirit of the
// teacher's controllers/common package (constant.go, pod.go) generalized
// from pod-building to Job-building.
package common

const (
	// ManagedByValue identifies resources created by this controller.
	ManagedByValue = "frontend-forge-builder-controller"

	LabelManagedBy    = "frontend-forge.io/managed-by"
	LabelFIName       = "frontend-forge.io/fi-name"
	LabelSpecHash     = "frontend-forge.io/spec-hash"
	LabelManifestHash = "frontend-forge.io/manifest-hash"
	LabelBuildKind    = "frontend-forge.io/build-kind"

	BuildKindValue = "frontend-forge"

	AnnotationBuildJob           = "frontend-forge.io/build-job"
	AnnotationObservedGeneration = "frontend-forge.io/observed-generation"

	RunnerContainerName = "runner"
	RunnerAppLabelKey   = "app.kubernetes.io/name"
	RunnerAppLabelValue = "frontend-forge-runner"
)

// LabelsFor returns the base label set {managed-by, fi-name, spec-hash}
// every Job and Bundle this controller writes carries; specHash is written
// already stripped of its "sha256:" prefix, since ':' is not a legal label
// character.
func LabelsFor(fiName, strippedSpecHash string) map[string]string {
	return map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelFIName:    fiName,
		LabelSpecHash:  strippedSpecHash,
	}
}
