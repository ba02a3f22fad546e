// Package runner implements the Builder Job's one-shot pipeline: load env,
// fetch the FrontendIntegration, render and hash its manifest, round-trip the
// external build service, poll for staleness, and upsert the JSBundle.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-logr/logr"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	forgev1alpha1 "github.com/frontend-forge/forge-operator/api/v1alpha1"
	"github.com/frontend-forge/forge-operator/controllers/common"
	"github.com/frontend-forge/forge-operator/internal/buildclient"
	"github.com/frontend-forge/forge-operator/internal/config"
	"github.com/frontend-forge/forge-operator/internal/forgeerr"
	"github.com/frontend-forge/forge-operator/internal/hash"
	"github.com/frontend-forge/forge-operator/internal/manifest"
)

// staleCheckPollCap bounds the backoff used while polling the second stale
// gate so it never grows past a couple of seconds between checks.
const staleCheckPollCap = 2 * time.Second

// Deps lets tests substitute the build service client and/or the Kubernetes
// client without reaching into package internals.
type Deps struct {
	K8sClient    client.Client
	BuildClient  *buildclient.Client
	Log          logr.Logger
	Now          func() time.Time
	PollInterval time.Duration
}

// Run executes the full one-shot build pipeline for one FrontendIntegration.
// A StaleSpecError/StaleStatusError return is a success-noop from the
// caller's perspective: the process should exit 0.
func Run(ctx context.Context, cfg config.RunnerConfig, deps Deps) error {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.PollInterval == 0 {
		deps.PollInterval = 2 * time.Second
	}
	log := deps.Log

	fi := &forgev1alpha1.FrontendIntegration{}
	key := types.NamespacedName{Namespace: cfg.FINamespace, Name: cfg.FIName}
	if err := deps.K8sClient.Get(ctx, key, fi); err != nil {
		return fmt.Errorf("fetch frontendintegration %s: %w", key, err)
	}

	freshHash, err := hash.SerializableHash(fi.Spec)
	if err != nil {
		return fmt.Errorf("compute spec hash: %w", err)
	}
	if freshHash != cfg.SpecHash {
		log.Info("stale spec, exiting without building", "baked_in", cfg.SpecHash, "fresh", freshHash)
		return &forgeerr.StaleSpecError{FIName: cfg.FIName, Expected: cfg.SpecHash, Actual: freshHash}
	}

	rendered, err := manifest.Render(fi, fi.Spec.Builder.EngineVersion)
	if err != nil {
		return fmt.Errorf("render manifest: %w", err)
	}
	manifestJSON, err := json.Marshal(rendered)
	if err != nil {
		return fmt.Errorf("marshal rendered manifest: %w", err)
	}
	manifestHash, err := hash.SerializableHash(rendered)
	if err != nil {
		return fmt.Errorf("compute manifest hash: %w", err)
	}

	buildTimeout := time.Duration(cfg.BuildServiceTimeoutSeconds) * time.Second
	buildCtx, cancel := context.WithTimeout(ctx, buildTimeout)
	defer cancel()

	created, err := deps.BuildClient.CreateBuild(buildCtx, manifestHash, string(manifestJSON), buildclient.BuildContext{
		Namespace:           cfg.FINamespace,
		FrontendIntegration: cfg.FIName,
	})
	if err != nil {
		return fmt.Errorf("create build: %w", err)
	}

	final, err := deps.BuildClient.WaitForCompletion(buildCtx, created.BuildID)
	if err != nil {
		if buildCtx.Err() != nil {
			return &forgeerr.BuildTimeoutError{BuildID: created.BuildID}
		}
		return fmt.Errorf("wait for build completion: %w", err)
	}
	if final.Status == buildclient.StatusFailed {
		return &forgeerr.BuildFailedError{BuildID: created.BuildID, Message: final.Message}
	}

	files, err := deps.BuildClient.FetchFiles(buildCtx, created.BuildID)
	if err != nil {
		return fmt.Errorf("fetch build files: %w", err)
	}

	if err := staleCheck(ctx, deps, log, cfg, key); err != nil {
		return err
	}

	return upsertBundle(ctx, deps.K8sClient, fi, cfg, manifestHash, files)
}

// staleCheck polls status.observed_spec_hash on the FI, the second stale
// gate, until it matches the runner's spec hash or STALE_CHECK_GRACE_SECONDS
// elapses. A newer observed hash than ours means a later dispatch has already
// superseded this build; we must not write the Bundle.
func staleCheck(ctx context.Context, deps Deps, log logr.Logger, cfg config.RunnerConfig, key types.NamespacedName) error {
	deadline := deps.Now().Add(time.Duration(cfg.StaleCheckGraceSeconds) * time.Second)

	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = staleCheckPollCap

	for {
		fi := &forgev1alpha1.FrontendIntegration{}
		if err := deps.K8sClient.Get(ctx, key, fi); err != nil {
			return fmt.Errorf("re-read frontendintegration during stale check: %w", err)
		}

		observed := fi.Status.ObservedSpecHash
		if observed == "" {
			observed = fi.Status.ObservedManifestHash
		}
		if observed == cfg.SpecHash {
			return nil
		}
		if observed != "" && observed != cfg.SpecHash {
			return &forgeerr.StaleStatusError{FIName: cfg.FIName, Expected: cfg.SpecHash, Observed: observed}
		}

		if deps.Now().After(deadline) {
			log.Info("stale-check grace period elapsed with no observed_spec_hash written; proceeding")
			return nil
		}

		wait := policy.NextBackOff()
		if wait > staleCheckPollCap {
			wait = staleCheckPollCap
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func upsertBundle(ctx context.Context, c client.Client, fi *forgev1alpha1.FrontendIntegration, cfg config.RunnerConfig, manifestHash string, remote []buildclient.RemoteFile) error {
	files := make([]forgev1alpha1.JSBundleFile, 0, len(remote))
	for _, f := range remote {
		encoding := forgev1alpha1.JSBundleFileEncodingUTF8
		if f.Encoding == string(forgev1alpha1.JSBundleFileEncodingBase64) {
			encoding = forgev1alpha1.JSBundleFileEncodingBase64
		}
		files = append(files, forgev1alpha1.JSBundleFile{
			Path:        f.Path,
			Encoding:    encoding,
			Content:     f.Content,
			SHA256:      f.SHA256,
			Size:        f.Size,
			ContentType: f.ContentType,
		})
	}

	bundle := &forgev1alpha1.JSBundle{
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.JSBundleName,
			Namespace: cfg.FINamespace,
		},
	}

	_, err := controllerutil.CreateOrUpdate(ctx, c, bundle, func() error {
		bundle.Labels = common.LabelsFor(cfg.FIName, hash.StripPrefix(cfg.SpecHash))
		bundle.Labels[common.LabelManifestHash] = hash.StripPrefix(manifestHash)
		if bundle.Annotations == nil {
			bundle.Annotations = map[string]string{}
		}
		if hostname, err := os.Hostname(); err == nil {
			bundle.Annotations[common.AnnotationBuildJob] = hostname
		}
		bundle.Spec = forgev1alpha1.JSBundleSpec{
			ManifestHash: manifestHash,
			Files:        files,
		}
		return controllerutil.SetControllerReference(fi, bundle, c.Scheme())
	})
	if err != nil {
		if apierrors.IsConflict(err) {
			return fmt.Errorf("upsert jsbundle (conflict, will be retried by the next dispatch): %w", err)
		}
		return fmt.Errorf("upsert jsbundle: %w", err)
	}
	return nil
}
