package common

import (
	"strconv"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/frontend-forge/forge-operator/internal/hash"
)

// JobConfig carries everything BuildJob needs to construct a one-shot
// Builder Job for an FI at a given spec hash.
type JobConfig struct {
	Namespace                  string
	Name                       string
	FIName                     string
	SpecHash                   string
	BundleName                 string
	RunnerImage                string
	RunnerServiceAccount       string
	BuildServiceBaseURL        string
	BuildServiceTimeoutSeconds uint64
	StaleCheckGraceSeconds     uint64
	ObservedGeneration         *int64
	TTLSecondsAfterFinished    *int32
}

// BuildJob builds the one-shot Builder Job for an FI, carrying the env vars
// the runner needs plus an observed-generation annotation for traceability.
// It does not set an owner reference; callers set that with
// controllerutil.SetControllerReference once they hold the scheme.
func BuildJob(conf JobConfig) *batchv1.Job {
	strippedHash := hash.StripPrefix(conf.SpecHash)

	labels := LabelsFor(conf.FIName, strippedHash)
	labels[LabelBuildKind] = BuildKindValue

	annotations := map[string]string{}
	if conf.ObservedGeneration != nil {
		annotations[AnnotationObservedGeneration] = strconv.FormatInt(*conf.ObservedGeneration, 10)
	}

	env := []corev1.EnvVar{
		{Name: "FI_NAMESPACE", Value: conf.Namespace},
		{Name: "FI_NAME", Value: conf.FIName},
		{Name: "SPEC_HASH", Value: conf.SpecHash},
		{Name: "JSBUNDLE_NAME", Value: conf.BundleName},
		{Name: "BUILD_SERVICE_BASE_URL", Value: conf.BuildServiceBaseURL},
		{Name: "BUILD_SERVICE_TIMEOUT_SECONDS", Value: strconv.FormatUint(conf.BuildServiceTimeoutSeconds, 10)},
		{Name: "STALE_CHECK_GRACE_SECONDS", Value: strconv.FormatUint(conf.StaleCheckGraceSeconds, 10)},
	}

	container := corev1.Container{
		Name:  RunnerContainerName,
		Image: conf.RunnerImage,
		Env:   env,
	}

	backoffLimit := int32(0)

	return &batchv1.Job{
		TypeMeta: metav1.TypeMeta{APIVersion: "batch/v1", Kind: "Job"},
		ObjectMeta: metav1.ObjectMeta{
			Name:        conf.Name,
			Namespace:   conf.Namespace,
			Labels:      labels,
			Annotations: annotations,
		},
		Spec: batchv1.JobSpec{
			BackoffLimit:            &backoffLimit,
			TTLSecondsAfterFinished: conf.TTLSecondsAfterFinished,
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: map[string]string{RunnerAppLabelKey: RunnerAppLabelValue},
				},
				Spec: corev1.PodSpec{
					RestartPolicy:      corev1.RestartPolicyNever,
					ServiceAccountName: conf.RunnerServiceAccount,
					Containers:         []corev1.Container{container},
				},
			},
		},
	}
}
