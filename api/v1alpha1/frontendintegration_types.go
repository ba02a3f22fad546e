package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// IntegrationType discriminates the payload carried by an Integration.
type IntegrationType string

const (
	IntegrationTypeCRD    IntegrationType = "crd"
	IntegrationTypeIframe IntegrationType = "iframe"
)

// MenuPlacement is a UI mount location that expands into one route, one
// optional menu entry, and one page.
type MenuPlacement string

const (
	MenuPlacementGlobal    MenuPlacement = "global"
	MenuPlacementCluster   MenuPlacement = "cluster"
	MenuPlacementWorkspace MenuPlacement = "workspace"
)

// FrontendIntegrationPhase is the authoritative lifecycle phase reported in status.
type FrontendIntegrationPhase string

const (
	PhasePending   FrontendIntegrationPhase = "Pending"
	PhaseBuilding  FrontendIntegrationPhase = "Building"
	PhaseSucceeded FrontendIntegrationPhase = "Succeeded"
	PhaseFailed    FrontendIntegrationPhase = "Failed"
)

// RoutingSpec describes where the integration's page is mounted relative to
// its placement prefix.
type RoutingSpec struct {
	// Path is relative; it must not start with "/".
	Path string `json:"path"`
}

// IframeIntegration points the rendered page at an externally hosted frame.
// Src is canonical; Url is accepted as an alias and loses to Src when both
// are set.
type IframeIntegration struct {
	Src string `json:"src,omitempty"`
	Url string `json:"url,omitempty"`
}

// CrdIntegration describes the custom resource a CrdTable page lists.
type CrdIntegration struct {
	Group   string       `json:"group"`
	Version string       `json:"version"`
	Names   CrdNames     `json:"names"`
	Scope   string       `json:"scope,omitempty"`
	Columns []Column     `json:"columns,omitempty"`
}

type CrdNames struct {
	Kind   string `json:"kind"`
	Plural string `json:"plural"`
}

// Integration is the exactly-one-of wrapper for CRD vs iframe payloads.
type Integration struct {
	Type   IntegrationType    `json:"type"`
	Crd    *CrdIntegration    `json:"crd,omitempty"`
	Iframe *IframeIntegration `json:"iframe,omitempty"`
}

// ColumnRenderType is the widget used to render a table cell.
type ColumnRenderType string

const (
	ColumnRenderText ColumnRenderType = "text"
	ColumnRenderTime ColumnRenderType = "time"
	ColumnRenderLink ColumnRenderType = "link"
)

// ColumnRender describes how a column's value is rendered. Format, Pattern,
// and Link are hoisted into Payload by the v1 renderer rather than emitted
// at the top level.
type ColumnRender struct {
	Type    ColumnRenderType       `json:"type"`
	Path    string                 `json:"path"`
	Format  string                 `json:"format,omitempty"`
	Pattern string                 `json:"pattern,omitempty"`
	Link    string                 `json:"link,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Column is one entry of the CRD table schema.
type Column struct {
	Key            string       `json:"key"`
	Title          string       `json:"title"`
	Render         ColumnRender `json:"render"`
	EnableSorting  *bool        `json:"enableSorting,omitempty"`
	EnableHiding   *bool        `json:"enableHiding,omitempty"`
}

// MenuSpec configures the optional menu entries placements expand into.
type MenuSpec struct {
	Name       string          `json:"name,omitempty"`
	Placements []MenuPlacement `json:"placements,omitempty"`
}

// BuilderSpec selects the manifest renderer.
type BuilderSpec struct {
	// EngineVersion selects the renderer; defaults to v1. Accepted aliases:
	// v1, v1alpha1, 1, 1.0.
	EngineVersion string `json:"engineVersion,omitempty"`
}

// FrontendIntegrationSpec defines the desired state of a FrontendIntegration.
type FrontendIntegrationSpec struct {
	// Enabled gates reconciliation entirely; when false the reconciler holds
	// state and produces no builds.
	// +kubebuilder:default=true
	Enabled *bool `json:"enabled,omitempty"`

	DisplayName string `json:"displayName,omitempty"`

	Integration Integration `json:"integration"`

	Routing RoutingSpec `json:"routing"`

	// Columns is required for CRD mode; tolerated empty for iframe mode.
	Columns []Column `json:"columns,omitempty"`

	Menu *MenuSpec `json:"menu,omitempty"`

	Builder BuilderSpec `json:"builder,omitempty"`
}

// EnabledOrDefault reports whether reconciliation is enabled, defaulting to
// true when unset.
func (s FrontendIntegrationSpec) EnabledOrDefault() bool {
	if s.Enabled == nil {
		return true
	}
	return *s.Enabled
}

// ResourceRef is a lightweight pointer to another object in the same or a
// well-known namespace.
type ResourceRef struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	UID       string `json:"uid,omitempty"`
}

// ActiveBuildStatus tracks the in-flight build dispatched for the current
// observed spec hash.
type ActiveBuildStatus struct {
	JobRef    *ResourceRef `json:"jobRef,omitempty"`
	StartedAt *metav1.Time `json:"startedAt,omitempty"`
}

// SimpleCondition is a minimal Condition shape rather than a general-purpose
// condition framework. The reconciler writes no conditions; Phase and
// Message carry the authoritative status.
type SimpleCondition struct {
	Type               string       `json:"type"`
	Status             string       `json:"status"`
	Reason             string       `json:"reason,omitempty"`
	Message            string       `json:"message,omitempty"`
	ObservedGeneration int64        `json:"observedGeneration,omitempty"`
	LastTransitionTime *metav1.Time `json:"lastTransitionTime,omitempty"`
}

// FrontendIntegrationStatus defines the observed state of a FrontendIntegration.
type FrontendIntegrationStatus struct {
	Phase FrontendIntegrationPhase `json:"phase,omitempty"`

	// ObservedSpecHash is the last spec hash the system has acted upon.
	ObservedSpecHash string `json:"observedSpecHash,omitempty"`

	// ObservedManifestHash is reflected back from the bundle for
	// traceability, and retained for upgrades from controllers that only
	// ever wrote this field.
	ObservedManifestHash string `json:"observedManifestHash,omitempty"`

	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	ActiveBuild *ActiveBuildStatus `json:"activeBuild,omitempty"`

	BundleRef *ResourceRef `json:"bundleRef,omitempty"`

	Message string `json:"message,omitempty"`

	Conditions []SimpleCondition `json:"conditions,omitempty"`
}

// +genclient
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=fi
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`

// FrontendIntegration is the Schema for the frontendintegrations API.
type FrontendIntegration struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   FrontendIntegrationSpec   `json:"spec,omitempty"`
	Status FrontendIntegrationStatus `json:"status,omitempty"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// FrontendIntegrationList contains a list of FrontendIntegration.
type FrontendIntegrationList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []FrontendIntegration `json:"items"`
}

func init() {
	SchemeBuilder.Register(&FrontendIntegration{}, &FrontendIntegrationList{})
}
