// Code generated by hand in lieu of controller-gen (unavailable in this
// environment); shape matches what `controller-gen object:headerFile=...`
// would produce for these types.

package v1alpha1

import (
	runtime "k8s.io/apimachinery/pkg/runtime"
)

func (in *RoutingSpec) DeepCopy() *RoutingSpec {
	if in == nil {
		return nil
	}
	out := new(RoutingSpec)
	*out = *in
	return out
}

func (in *IframeIntegration) DeepCopy() *IframeIntegration {
	if in == nil {
		return nil
	}
	out := new(IframeIntegration)
	*out = *in
	return out
}

func (in *CrdNames) DeepCopy() *CrdNames {
	if in == nil {
		return nil
	}
	out := new(CrdNames)
	*out = *in
	return out
}

func (in *CrdIntegration) DeepCopy() *CrdIntegration {
	if in == nil {
		return nil
	}
	out := new(CrdIntegration)
	*out = *in
	out.Names = in.Names
	if in.Columns != nil {
		out.Columns = make([]Column, len(in.Columns))
		for i := range in.Columns {
			in.Columns[i].DeepCopyInto(&out.Columns[i])
		}
	}
	return out
}

func (in *Integration) DeepCopyInto(out *Integration) {
	*out = *in
	if in.Crd != nil {
		out.Crd = in.Crd.DeepCopy()
	}
	if in.Iframe != nil {
		out.Iframe = in.Iframe.DeepCopy()
	}
}

func (in *Integration) DeepCopy() *Integration {
	if in == nil {
		return nil
	}
	out := new(Integration)
	in.DeepCopyInto(out)
	return out
}

func (in *ColumnRender) DeepCopyInto(out *ColumnRender) {
	*out = *in
	if in.Payload != nil {
		payload := make(map[string]interface{}, len(in.Payload))
		for k, v := range in.Payload {
			payload[k] = v
		}
		out.Payload = payload
	}
}

func (in *ColumnRender) DeepCopy() *ColumnRender {
	if in == nil {
		return nil
	}
	out := new(ColumnRender)
	in.DeepCopyInto(out)
	return out
}

func (in *Column) DeepCopyInto(out *Column) {
	*out = *in
	in.Render.DeepCopyInto(&out.Render)
	if in.EnableSorting != nil {
		v := *in.EnableSorting
		out.EnableSorting = &v
	}
	if in.EnableHiding != nil {
		v := *in.EnableHiding
		out.EnableHiding = &v
	}
}

func (in *Column) DeepCopy() *Column {
	if in == nil {
		return nil
	}
	out := new(Column)
	in.DeepCopyInto(out)
	return out
}

func (in *MenuSpec) DeepCopyInto(out *MenuSpec) {
	*out = *in
	if in.Placements != nil {
		out.Placements = make([]MenuPlacement, len(in.Placements))
		copy(out.Placements, in.Placements)
	}
}

func (in *MenuSpec) DeepCopy() *MenuSpec {
	if in == nil {
		return nil
	}
	out := new(MenuSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *BuilderSpec) DeepCopy() *BuilderSpec {
	if in == nil {
		return nil
	}
	out := new(BuilderSpec)
	*out = *in
	return out
}

func (in *FrontendIntegrationSpec) DeepCopyInto(out *FrontendIntegrationSpec) {
	*out = *in
	if in.Enabled != nil {
		v := *in.Enabled
		out.Enabled = &v
	}
	in.Integration.DeepCopyInto(&out.Integration)
	out.Routing = in.Routing
	if in.Columns != nil {
		out.Columns = make([]Column, len(in.Columns))
		for i := range in.Columns {
			in.Columns[i].DeepCopyInto(&out.Columns[i])
		}
	}
	if in.Menu != nil {
		out.Menu = in.Menu.DeepCopy()
	}
	out.Builder = in.Builder
}

func (in *FrontendIntegrationSpec) DeepCopy() *FrontendIntegrationSpec {
	if in == nil {
		return nil
	}
	out := new(FrontendIntegrationSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *ResourceRef) DeepCopy() *ResourceRef {
	if in == nil {
		return nil
	}
	out := new(ResourceRef)
	*out = *in
	return out
}

func (in *ActiveBuildStatus) DeepCopyInto(out *ActiveBuildStatus) {
	*out = *in
	if in.JobRef != nil {
		out.JobRef = in.JobRef.DeepCopy()
	}
	if in.StartedAt != nil {
		out.StartedAt = in.StartedAt.DeepCopy()
	}
}

func (in *ActiveBuildStatus) DeepCopy() *ActiveBuildStatus {
	if in == nil {
		return nil
	}
	out := new(ActiveBuildStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *SimpleCondition) DeepCopyInto(out *SimpleCondition) {
	*out = *in
	if in.LastTransitionTime != nil {
		out.LastTransitionTime = in.LastTransitionTime.DeepCopy()
	}
}

func (in *SimpleCondition) DeepCopy() *SimpleCondition {
	if in == nil {
		return nil
	}
	out := new(SimpleCondition)
	in.DeepCopyInto(out)
	return out
}

func (in *FrontendIntegrationStatus) DeepCopyInto(out *FrontendIntegrationStatus) {
	*out = *in
	if in.ActiveBuild != nil {
		out.ActiveBuild = in.ActiveBuild.DeepCopy()
	}
	if in.BundleRef != nil {
		out.BundleRef = in.BundleRef.DeepCopy()
	}
	if in.Conditions != nil {
		out.Conditions = make([]SimpleCondition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

func (in *FrontendIntegrationStatus) DeepCopy() *FrontendIntegrationStatus {
	if in == nil {
		return nil
	}
	out := new(FrontendIntegrationStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *FrontendIntegration) DeepCopyInto(out *FrontendIntegration) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *FrontendIntegration) DeepCopy() *FrontendIntegration {
	if in == nil {
		return nil
	}
	out := new(FrontendIntegration)
	in.DeepCopyInto(out)
	return out
}

func (in *FrontendIntegration) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *FrontendIntegrationList) DeepCopyInto(out *FrontendIntegrationList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]FrontendIntegration, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *FrontendIntegrationList) DeepCopy() *FrontendIntegrationList {
	if in == nil {
		return nil
	}
	out := new(FrontendIntegrationList)
	in.DeepCopyInto(out)
	return out
}

func (in *FrontendIntegrationList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *JSBundleFile) DeepCopy() *JSBundleFile {
	if in == nil {
		return nil
	}
	out := new(JSBundleFile)
	*out = *in
	return out
}

func (in *JSBundleSpec) DeepCopyInto(out *JSBundleSpec) {
	*out = *in
	if in.Files != nil {
		out.Files = make([]JSBundleFile, len(in.Files))
		copy(out.Files, in.Files)
	}
}

func (in *JSBundleSpec) DeepCopy() *JSBundleSpec {
	if in == nil {
		return nil
	}
	out := new(JSBundleSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundleStatus) DeepCopyInto(out *JSBundleStatus) {
	*out = *in
	if in.Ready != nil {
		v := *in.Ready
		out.Ready = &v
	}
}

func (in *JSBundleStatus) DeepCopy() *JSBundleStatus {
	if in == nil {
		return nil
	}
	out := new(JSBundleStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundle) DeepCopyInto(out *JSBundle) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *JSBundle) DeepCopy() *JSBundle {
	if in == nil {
		return nil
	}
	out := new(JSBundle)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundle) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *JSBundleList) DeepCopyInto(out *JSBundleList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]JSBundle, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *JSBundleList) DeepCopy() *JSBundleList {
	if in == nil {
		return nil
	}
	out := new(JSBundleList)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundleList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
