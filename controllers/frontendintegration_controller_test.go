package controllers

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	forgev1alpha1 "github.com/frontend-forge/forge-operator/api/v1alpha1"
	"github.com/frontend-forge/forge-operator/controllers/common"
	"github.com/frontend-forge/forge-operator/internal/config"
	"github.com/frontend-forge/forge-operator/internal/hash"
)

func newFakeReconciler(objs ...client.Object) (*FrontendIntegrationReconciler, client.Client) {
	fakeClient := fake.NewClientBuilder().
		WithScheme(testScheme).
		WithStatusSubresource(&forgev1alpha1.FrontendIntegration{}).
		WithObjects(objs...).
		Build()

	return &FrontendIntegrationReconciler{
		Client: fakeClient,
		Log:    logf.Log.WithName("test"),
		Scheme: testScheme,
		Config: config.ControllerConfig{
			WorkNamespace:              "default",
			RunnerImage:                "ghcr.io/frontend-forge/runner:test",
			RunnerServiceAccount:       "forge-runner",
			BuildServiceBaseURL:        "http://build-service.default.svc",
			BuildServiceTimeoutSeconds: 600,
			StaleCheckGraceSeconds:     30,
			ReconcileRequeueSeconds:    5,
		},
	}, fakeClient
}

func iframeIntegrationFI(name string) *forgev1alpha1.FrontendIntegration {
	return &forgev1alpha1.FrontendIntegration{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default", Generation: 1},
		Spec: forgev1alpha1.FrontendIntegrationSpec{
			DisplayName: "SSS",
			Integration: forgev1alpha1.Integration{
				Type:   forgev1alpha1.IntegrationTypeIframe,
				Iframe: &forgev1alpha1.IframeIntegration{Src: "https://example.com/sss"},
			},
			Routing: forgev1alpha1.RoutingSpec{Path: "sss"},
		},
	}
}

var _ = Describe("FrontendIntegration Controller", func() {
	ctx := context.Background()

	It("leaves a disabled integration Pending without dispatching a Job", func() {
		disabled := iframeIntegrationFI("sss")
		falseVal := false
		disabled.Spec.Enabled = &falseVal

		reconciler, c := newFakeReconciler(disabled)

		_, err := reconciler.Reconcile(ctx, ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "sss"}})
		Expect(err).NotTo(HaveOccurred())

		updated := &forgev1alpha1.FrontendIntegration{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "default", Name: "sss"}, updated)).To(Succeed())
		Expect(updated.Status.Phase).To(Equal(forgev1alpha1.PhasePending))
		Expect(updated.Status.Message).To(Equal("Disabled"))

		var jobs batchv1.JobList
		Expect(c.List(ctx, &jobs, client.InNamespace("default"))).To(Succeed())
		Expect(jobs.Items).To(BeEmpty())
	})

	It("dispatches a Job and moves to Building on first reconcile", func() {
		fi := iframeIntegrationFI("sss")
		reconciler, c := newFakeReconciler(fi)

		_, err := reconciler.Reconcile(ctx, ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "sss"}})
		Expect(err).NotTo(HaveOccurred())

		updated := &forgev1alpha1.FrontendIntegration{}
		Expect(c.Get(ctx, types.NamespacedName{Namespace: "default", Name: "sss"}, updated)).To(Succeed())
		Expect(updated.Status.Phase).To(Equal(forgev1alpha1.PhaseBuilding))
		Expect(updated.Status.ObservedSpecHash).NotTo(BeEmpty())
		Expect(updated.Status.ActiveBuild).NotTo(BeNil())
		Expect(updated.Status.ActiveBuild.JobRef).NotTo(BeNil())

		var jobs batchv1.JobList
		Expect(c.List(ctx, &jobs, client.InNamespace("default"))).To(Succeed())
		Expect(jobs.Items).To(HaveLen(1))
		job := jobs.Items[0]
		Expect(job.Labels[common.LabelFIName]).To(Equal("sss"))
		Expect(job.OwnerReferences).To(HaveLen(1))
		Expect(job.OwnerReferences[0].Name).To(Equal("sss"))
	})

	It("does not dispatch a second Job once one already matches the spec hash", func() {
		fi := iframeIntegrationFI("sss")
		reconciler, c := newFakeReconciler(fi)
		req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "sss"}}

		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())
		_, err = reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		var jobs batchv1.JobList
		Expect(c.List(ctx, &jobs, client.InNamespace("default"))).To(Succeed())
		Expect(jobs.Items).To(HaveLen(1))
	})

	It("reports Failed once the dispatched Job fails", func() {
		fi := iframeIntegrationFI("sss")
		reconciler, c := newFakeReconciler(fi)
		req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "sss"}}

		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		var jobs batchv1.JobList
		Expect(c.List(ctx, &jobs, client.InNamespace("default"))).To(Succeed())
		Expect(jobs.Items).To(HaveLen(1))
		job := &jobs.Items[0]
		job.Status.Failed = 1
		job.Status.Conditions = []batchv1.JobCondition{{
			Type: batchv1.JobFailed, Status: corev1.ConditionTrue, Reason: "BackoffLimitExceeded", Message: "build service returned 500",
		}}
		Expect(c.Status().Update(ctx, job)).To(Succeed())

		_, err = reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		updated := &forgev1alpha1.FrontendIntegration{}
		Expect(c.Get(ctx, req.NamespacedName, updated)).To(Succeed())
		Expect(updated.Status.Phase).To(Equal(forgev1alpha1.PhaseFailed))
		Expect(updated.Status.Message).To(Equal("build service returned 500"))
	})

	It("reports Succeeded once the Job succeeds and a matching JSBundle appears", func() {
		fi := iframeIntegrationFI("sss")
		reconciler, c := newFakeReconciler(fi)
		req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "sss"}}

		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		afterDispatch := &forgev1alpha1.FrontendIntegration{}
		Expect(c.Get(ctx, req.NamespacedName, afterDispatch)).To(Succeed())
		specHash := afterDispatch.Status.ObservedSpecHash

		var jobs batchv1.JobList
		Expect(c.List(ctx, &jobs, client.InNamespace("default"))).To(Succeed())
		job := &jobs.Items[0]
		job.Status.Succeeded = 1
		job.Status.Conditions = []batchv1.JobCondition{{Type: batchv1.JobComplete, Status: corev1.ConditionTrue}}
		Expect(c.Status().Update(ctx, job)).To(Succeed())

		bundle := &forgev1alpha1.JSBundle{
			ObjectMeta: metav1.ObjectMeta{
				Name:      hash.BundleName("sss"),
				Namespace: "default",
				Labels:    common.LabelsFor("sss", hash.StripPrefix(specHash)),
			},
			Spec: forgev1alpha1.JSBundleSpec{ManifestHash: "sha256:deadbeef"},
		}
		Expect(c.Create(ctx, bundle)).To(Succeed())

		_, err = reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		updated := &forgev1alpha1.FrontendIntegration{}
		Expect(c.Get(ctx, req.NamespacedName, updated)).To(Succeed())
		Expect(updated.Status.Phase).To(Equal(forgev1alpha1.PhaseSucceeded))
		Expect(updated.Status.ObservedManifestHash).To(Equal("sha256:deadbeef"))
		Expect(updated.Status.BundleRef.Name).To(Equal(bundle.Name))
	})

	It("retries a build whose last attempt Failed", func() {
		fi := iframeIntegrationFI("sss")
		fi.Status.Phase = forgev1alpha1.PhaseFailed
		fi.Status.ObservedSpecHash, _ = specHashFor(fi)
		reconciler, c := newFakeReconciler(fi)
		req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "sss"}}

		_, err := reconciler.Reconcile(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		updated := &forgev1alpha1.FrontendIntegration{}
		Expect(c.Get(ctx, req.NamespacedName, updated)).To(Succeed())
		Expect(updated.Status.Phase).To(Equal(forgev1alpha1.PhaseBuilding))
	})
})

func specHashFor(fi *forgev1alpha1.FrontendIntegration) (string, error) {
	return hash.SerializableHash(fi.Spec)
}
