package controllers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-logr/logr"

	batchv1 "k8s.io/api/batch/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	forgev1alpha1 "github.com/frontend-forge/forge-operator/api/v1alpha1"
	"github.com/frontend-forge/forge-operator/controllers/common"
	"github.com/frontend-forge/forge-operator/internal/config"
	"github.com/frontend-forge/forge-operator/internal/hash"
)

// FrontendIntegrationReconciler reconciles a FrontendIntegration object,
// implementing the two-hash idempotent job-dispatch / stale-check /
// status-writeback protocol.
type FrontendIntegrationReconciler struct {
	client.Client
	Log    logr.Logger
	Scheme *runtime.Scheme
	Config config.ControllerConfig
}

// observedJobPhase is the Controller's classification of a Job's outcome.
type observedJobPhase string

const (
	jobPhasePending   observedJobPhase = "Pending"
	jobPhaseRunning   observedJobPhase = "Running"
	jobPhaseSucceeded observedJobPhase = "Succeeded"
	jobPhaseFailed    observedJobPhase = "Failed"
)

// +kubebuilder:rbac:groups=frontend-forge.io,resources=frontendintegrations,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=frontend-forge.io,resources=frontendintegrations/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=frontend-forge.io,resources=jsbundles,verbs=get;list;watch
// +kubebuilder:rbac:groups=batch,resources=jobs,verbs=get;list;watch;create
// +kubebuilder:rbac:groups=core,resources=events,verbs=create;patch

func (r *FrontendIntegrationReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := r.Log.WithValues("frontendintegration", req.NamespacedName)

	fi := &forgev1alpha1.FrontendIntegration{}
	if err := r.Get(ctx, req.NamespacedName, fi); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("get frontendintegration: %w", err)
	}

	if fi.DeletionTimestamp != nil {
		// Owner references cascade-delete the Job and Bundle; nothing to do.
		return ctrl.Result{}, nil
	}

	if !fi.Spec.EnabledOrDefault() {
		log.Info("frontendintegration disabled")
		err := r.patchStatus(ctx, req.NamespacedName, func(status *forgev1alpha1.FrontendIntegrationStatus) {
			status.Phase = forgev1alpha1.PhasePending
			status.Message = "Disabled"
			status.ObservedGeneration = fi.Generation
		})
		return ctrl.Result{}, err
	}

	specHash, err := hash.SerializableHash(fi.Spec)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("compute spec hash: %w", err)
	}
	bundleName := hash.BundleName(fi.Name)

	if needsNewBuild(fi, specHash) {
		return r.dispatchBuild(ctx, log, fi, specHash, bundleName)
	}

	return r.syncStatusFromChildren(ctx, log, fi, specHash, bundleName)
}

// needsNewBuild decides whether a fresh dispatch is owed: observed hash
// absent, drifted (with the observed_manifest_hash backward-compat
// fallback), no phase written yet, or the last build Failed (permit retry).
func needsNewBuild(fi *forgev1alpha1.FrontendIntegration, specHash string) bool {
	status := fi.Status
	observed := status.ObservedSpecHash
	if observed == "" {
		observed = status.ObservedManifestHash
	}
	hashChanged := observed != specHash
	pendingInitial := status.Phase == ""
	retryFailed := status.Phase == forgev1alpha1.PhaseFailed
	return hashChanged || pendingInitial || retryFailed
}

func (r *FrontendIntegrationReconciler) dispatchBuild(ctx context.Context, log logr.Logger, fi *forgev1alpha1.FrontendIntegration, specHash, bundleName string) (ctrl.Result, error) {
	job, err := r.findJobForHash(ctx, fi.Namespace, fi.Name, specHash)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("find job for spec hash: %w", err)
	}
	if job == nil {
		var generation *int64
		if fi.Generation != 0 {
			g := fi.Generation
			generation = &g
		}
		desired := common.BuildJob(common.JobConfig{
			Namespace:                  fi.Namespace,
			Name:                       hash.JobName(fi.Name, specHash),
			FIName:                     fi.Name,
			SpecHash:                   specHash,
			BundleName:                 bundleName,
			RunnerImage:                r.Config.RunnerImage,
			RunnerServiceAccount:       r.Config.RunnerServiceAccount,
			BuildServiceBaseURL:        r.Config.BuildServiceBaseURL,
			BuildServiceTimeoutSeconds: r.Config.BuildServiceTimeoutSeconds,
			StaleCheckGraceSeconds:     r.Config.StaleCheckGraceSeconds,
			ObservedGeneration:         generation,
			TTLSecondsAfterFinished:    r.Config.JobTTLSecondsAfterFinished,
		})
		if err := controllerutil.SetControllerReference(fi, desired, r.Scheme); err != nil {
			return ctrl.Result{}, fmt.Errorf("set owner reference on job: %w", err)
		}
		job, err = r.createOrGetJob(ctx, desired)
		if err != nil {
			return ctrl.Result{}, fmt.Errorf("create job: %w", err)
		}
		log.Info("dispatched build job", "job", job.Name, "specHash", specHash)
	}

	startedAt := metav1.Now()
	err = r.patchStatus(ctx, client.ObjectKeyFromObject(fi), func(status *forgev1alpha1.FrontendIntegrationStatus) {
		status.Phase = forgev1alpha1.PhaseBuilding
		status.ObservedSpecHash = specHash
		status.ObservedGeneration = fi.Generation
		status.Message = "Build job scheduled"
		status.ActiveBuild = &forgev1alpha1.ActiveBuildStatus{
			JobRef:    &forgev1alpha1.ResourceRef{Name: job.Name, Namespace: job.Namespace, UID: string(job.UID)},
			StartedAt: &startedAt,
		}
	})
	if err != nil {
		return ctrl.Result{}, err
	}
	return ctrl.Result{RequeueAfter: time.Duration(r.Config.ReconcileRequeueSeconds) * time.Second}, nil
}

func (r *FrontendIntegrationReconciler) syncStatusFromChildren(ctx context.Context, log logr.Logger, fi *forgev1alpha1.FrontendIntegration, specHash, bundleName string) (ctrl.Result, error) {
	requeue := ctrl.Result{RequeueAfter: time.Duration(r.Config.ReconcileRequeueSeconds) * time.Second}

	job, err := r.findJobForHash(ctx, fi.Namespace, fi.Name, specHash)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("find job for spec hash: %w", err)
	}

	if job != nil {
		switch classifyJobPhase(job) {
		case jobPhasePending, jobPhaseRunning:
			err := r.setBuildingStatus(ctx, fi, specHash, job, "Build in progress")
			return requeue, err
		case jobPhaseFailed:
			msg := jobFailureMessage(job)
			err := r.patchStatus(ctx, client.ObjectKeyFromObject(fi), func(status *forgev1alpha1.FrontendIntegrationStatus) {
				status.Phase = forgev1alpha1.PhaseFailed
				status.ObservedSpecHash = specHash
				status.ObservedGeneration = fi.Generation
				status.Message = msg
			})
			return ctrl.Result{}, err
		case jobPhaseSucceeded:
			bundle := &forgev1alpha1.JSBundle{}
			getErr := r.Get(ctx, types.NamespacedName{Namespace: fi.Namespace, Name: bundleName}, bundle)
			switch {
			case getErr == nil && bundleMatchesSpecHash(bundle, specHash):
				err := r.patchStatus(ctx, client.ObjectKeyFromObject(fi), func(status *forgev1alpha1.FrontendIntegrationStatus) {
					status.Phase = forgev1alpha1.PhaseSucceeded
					status.ObservedSpecHash = specHash
					status.ObservedManifestHash = bundle.Spec.ManifestHash
					status.ObservedGeneration = fi.Generation
					status.Message = "JSBundle ready"
					status.BundleRef = &forgev1alpha1.ResourceRef{Name: bundle.Name, Namespace: bundle.Namespace, UID: string(bundle.UID)}
				})
				return ctrl.Result{}, err
			case getErr == nil:
				err := r.setBuildingStatus(ctx, fi, specHash, job, "Job succeeded; waiting for JSBundle with matching spec-hash")
				return requeue, err
			case apierrors.IsNotFound(getErr):
				err := r.setBuildingStatus(ctx, fi, specHash, job, "Job succeeded; waiting for JSBundle materialization")
				return requeue, err
			default:
				return ctrl.Result{}, fmt.Errorf("get jsbundle: %w", getErr)
			}
		}
	}

	bundle := &forgev1alpha1.JSBundle{}
	if err := r.Get(ctx, types.NamespacedName{Namespace: fi.Namespace, Name: bundleName}, bundle); err == nil {
		if bundleMatchesSpecHash(bundle, specHash) {
			err := r.patchStatus(ctx, client.ObjectKeyFromObject(fi), func(status *forgev1alpha1.FrontendIntegrationStatus) {
				status.Phase = forgev1alpha1.PhaseSucceeded
				status.ObservedSpecHash = specHash
				status.ObservedManifestHash = bundle.Spec.ManifestHash
				status.ObservedGeneration = fi.Generation
				status.Message = "JSBundle ready"
				status.BundleRef = &forgev1alpha1.ResourceRef{Name: bundle.Name, Namespace: bundle.Namespace, UID: string(bundle.UID)}
			})
			return ctrl.Result{}, err
		}
	} else if !apierrors.IsNotFound(err) {
		return ctrl.Result{}, fmt.Errorf("get jsbundle: %w", err)
	}

	log.Info("no job found for current spec hash; awaiting next change")
	return ctrl.Result{}, nil
}

func (r *FrontendIntegrationReconciler) setBuildingStatus(ctx context.Context, fi *forgev1alpha1.FrontendIntegration, specHash string, job *batchv1.Job, message string) error {
	return r.patchStatus(ctx, client.ObjectKeyFromObject(fi), func(status *forgev1alpha1.FrontendIntegrationStatus) {
		var startedAt *metav1.Time
		if prev := status.ActiveBuild; prev != nil && prev.JobRef != nil && prev.JobRef.Name == job.Name {
			startedAt = prev.StartedAt
		}
		status.Phase = forgev1alpha1.PhaseBuilding
		status.ObservedSpecHash = specHash
		status.ObservedGeneration = fi.Generation
		status.Message = message
		status.ActiveBuild = &forgev1alpha1.ActiveBuildStatus{
			JobRef:    &forgev1alpha1.ResourceRef{Name: job.Name, Namespace: job.Namespace, UID: string(job.UID)},
			StartedAt: startedAt,
		}
	})
}

// findJobForHash looks up a Job by the {fi-name, spec-hash} label selector.
// When more than one Job happens to carry the same pair (e.g. a crash-retry
// race), the most recently created one is adopted.
func (r *FrontendIntegrationReconciler) findJobForHash(ctx context.Context, namespace, fiName, specHash string) (*batchv1.Job, error) {
	selector := labels.SelectorFromSet(common.LabelsFor(fiName, hash.StripPrefix(specHash)))
	var jobs batchv1.JobList
	if err := r.List(ctx, &jobs, client.InNamespace(namespace), client.MatchingLabelsSelector{Selector: selector}); err != nil {
		return nil, err
	}
	if len(jobs.Items) == 0 {
		return nil, nil
	}
	sort.Slice(jobs.Items, func(i, j int) bool {
		return jobs.Items[i].CreationTimestamp.Before(&jobs.Items[j].CreationTimestamp)
	})
	latest := jobs.Items[len(jobs.Items)-1]
	return &latest, nil
}

func (r *FrontendIntegrationReconciler) createOrGetJob(ctx context.Context, job *batchv1.Job) (*batchv1.Job, error) {
	if err := r.Create(ctx, job); err != nil {
		if apierrors.IsAlreadyExists(err) || apierrors.IsConflict(err) {
			existing := &batchv1.Job{}
			if getErr := r.Get(ctx, client.ObjectKeyFromObject(job), existing); getErr != nil {
				return nil, getErr
			}
			return existing, nil
		}
		return nil, err
	}
	return job, nil
}

func classifyJobPhase(job *batchv1.Job) observedJobPhase {
	status := job.Status
	if status.Failed > 0 {
		return jobPhaseFailed
	}
	if status.Succeeded > 0 {
		return jobPhaseSucceeded
	}
	if status.Active > 0 {
		return jobPhaseRunning
	}
	for _, cond := range status.Conditions {
		if cond.Status != "True" {
			continue
		}
		switch cond.Type {
		case batchv1.JobFailed:
			return jobPhaseFailed
		case batchv1.JobComplete:
			return jobPhaseSucceeded
		}
	}
	return jobPhasePending
}

func jobFailureMessage(job *batchv1.Job) string {
	for _, cond := range job.Status.Conditions {
		if cond.Status == "True" && cond.Type == batchv1.JobFailed {
			if cond.Message != "" {
				return cond.Message
			}
			return cond.Reason
		}
	}
	return "Build job failed"
}

func bundleMatchesSpecHash(bundle *forgev1alpha1.JSBundle, specHash string) bool {
	expected := hash.StripPrefix(specHash)
	return bundle.Labels[common.LabelSpecHash] == expected
}

// patchStatus re-reads the FI, applies mutate to its status, and writes it
// back with optimistic concurrency; on conflict it re-reads and retries
// without dispatching a new Job.
func (r *FrontendIntegrationReconciler) patchStatus(ctx context.Context, key types.NamespacedName, mutate func(*forgev1alpha1.FrontendIntegrationStatus)) error {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(50*time.Millisecond), 5)
	return backoff.Retry(func() error {
		current := &forgev1alpha1.FrontendIntegration{}
		if err := r.Get(ctx, key, current); err != nil {
			return backoff.Permanent(fmt.Errorf("re-read frontendintegration before status write: %w", err))
		}
		mutate(&current.Status)
		err := r.Status().Update(ctx, current)
		if err == nil {
			return nil
		}
		if apierrors.IsConflict(err) {
			return err // retry
		}
		return backoff.Permanent(fmt.Errorf("update frontendintegration status: %w", err))
	}, policy)
}

// SetupWithManager wires the reconciler to watch FrontendIntegration and its
// owned Jobs and Bundles.
func (r *FrontendIntegrationReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&forgev1alpha1.FrontendIntegration{}).
		Owns(&batchv1.Job{}).
		Owns(&forgev1alpha1.JSBundle{}).
		Complete(r)
}
