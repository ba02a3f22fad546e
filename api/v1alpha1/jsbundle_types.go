package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// JSBundleFileEncoding is the transport encoding of a bundled file's content.
type JSBundleFileEncoding string

const (
	JSBundleFileEncodingUTF8   JSBundleFileEncoding = "utf8"
	JSBundleFileEncodingBase64 JSBundleFileEncoding = "base64"
)

// JSBundleFile is one built artifact file, embedded directly in the Bundle
// spec rather than indirected through a ConfigMap.
type JSBundleFile struct {
	Path        string               `json:"path"`
	Encoding    JSBundleFileEncoding `json:"encoding"`
	Content     string               `json:"content"`
	SHA256      string               `json:"sha256,omitempty"`
	Size        int64                `json:"size,omitempty"`
	ContentType string               `json:"contentType,omitempty"`
}

// JSBundleSpec defines the desired (and, for this resource, actual) state of
// a built artifact. The runner upserts this resource directly; the
// controller only reads it.
type JSBundleSpec struct {
	// ManifestHash includes the "sha256:" prefix.
	ManifestHash string         `json:"manifestHash"`
	Files        []JSBundleFile `json:"files,omitempty"`
}

// JSBundleStatus is deliberately minimal; this resource carries no rich
// condition history.
type JSBundleStatus struct {
	Ready   *bool  `json:"ready,omitempty"`
	Message string `json:"message,omitempty"`
}

// +genclient
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=jsb

// JSBundle is the Schema for the jsbundles API.
type JSBundle struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   JSBundleSpec   `json:"spec,omitempty"`
	Status JSBundleStatus `json:"status,omitempty"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// JSBundleList contains a list of JSBundle.
type JSBundleList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []JSBundle `json:"items"`
}

func init() {
	SchemeBuilder.Register(&JSBundle{}, &JSBundleList{})
}
