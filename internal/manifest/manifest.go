// Package manifest renders a FrontendIntegration into the intermediate
// Manifest document the build service consumes. Rendering is a versioned,
// pure transform; v1 is the only implemented version today.
package manifest

import (
	"strings"

	forgev1alpha1 "github.com/frontend-forge/forge-operator/api/v1alpha1"
	"github.com/frontend-forge/forge-operator/internal/forgeerr"
)

// Render normalizes engineVersion and dispatches to the matching renderer.
// Normalization is case-insensitive and trims whitespace; an empty version
// defaults to v1. Aliases v1, v1alpha1, 1, and 1.0 all select the v1
// renderer; anything else is a fatal, non-retryable
// UnsupportedEngineVersionError.
func Render(fi *forgev1alpha1.FrontendIntegration, engineVersion string) (map[string]interface{}, error) {
	normalized := strings.ToLower(strings.TrimSpace(engineVersion))
	if normalized == "" {
		normalized = "v1"
	}
	switch normalized {
	case "v1", "v1alpha1", "1", "1.0":
		return renderV1(fi)
	default:
		return nil, &forgeerr.UnsupportedEngineVersionError{Version: engineVersion}
	}
}
