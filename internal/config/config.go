// Package config loads the domain-specific, environment-driven settings of
// the Controller and Runner binaries: plain os.Getenv lookups with
// documented defaults, no configuration framework.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ControllerConfig configures the reconciler's domain behavior, distinct
// from the manager's own flags (metrics/probe addresses, leader election)
// which main.go parses directly via the standard flag package.
type ControllerConfig struct {
	WorkNamespace             string
	RunnerImage               string
	RunnerServiceAccount      string
	BuildServiceBaseURL       string
	BuildServiceTimeoutSeconds uint64
	StaleCheckGraceSeconds    uint64
	ReconcileRequeueSeconds   uint64
	JobTTLSecondsAfterFinished *int32
}

// ControllerConfigFromEnv loads a ControllerConfig, applying the same
// defaults the original controller used.
func ControllerConfigFromEnv() ControllerConfig {
	cfg := ControllerConfig{
		WorkNamespace:              getEnvDefault("WORK_NAMESPACE", "extension-frontend-forge"),
		RunnerImage:                getEnvDefault("RUNNER_IMAGE", "ghcr.io/frontend-forge/runner:latest"),
		RunnerServiceAccount:       os.Getenv("RUNNER_SERVICE_ACCOUNT"),
		BuildServiceBaseURL:        getEnvDefault("BUILD_SERVICE_BASE_URL", "http://build-service.extension-frontend-forge.svc.cluster.local"),
		BuildServiceTimeoutSeconds: getEnvUintDefault("BUILD_SERVICE_TIMEOUT_SECONDS", 600),
		StaleCheckGraceSeconds:     getEnvUintDefault("STALE_CHECK_GRACE_SECONDS", 30),
		ReconcileRequeueSeconds:    getEnvUintDefault("RECONCILE_REQUEUE_SECONDS", 5),
	}
	if raw := os.Getenv("JOB_TTL_SECONDS_AFTER_FINISHED"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			ttl := int32(v)
			cfg.JobTTLSecondsAfterFinished = &ttl
		}
	}
	return cfg
}

// RunnerConfig configures the one-shot Runner process. SpecHash resolves
// from SPEC_HASH, falling back to the legacy MANIFEST_HASH env var when
// absent.
type RunnerConfig struct {
	FINamespace                string
	FIName                     string
	SpecHash                   string
	JSBundleName               string
	BuildServiceBaseURL        string
	BuildServiceTimeoutSeconds uint64
	StaleCheckGraceSeconds     uint64
}

// RunnerConfigFromEnv loads a RunnerConfig or returns an error describing
// the first missing or malformed required variable.
func RunnerConfigFromEnv() (RunnerConfig, error) {
	fiNamespace := os.Getenv("FI_NAMESPACE")
	if fiNamespace == "" {
		fiNamespace = getEnvDefault("WORK_NAMESPACE", "default")
	}

	fiName, err := requiredEnv("FI_NAME")
	if err != nil {
		return RunnerConfig{}, err
	}

	specHash, err := requiredEnvAlias("SPEC_HASH", "MANIFEST_HASH")
	if err != nil {
		return RunnerConfig{}, err
	}

	jsBundleName, err := requiredEnv("JSBUNDLE_NAME")
	if err != nil {
		return RunnerConfig{}, err
	}

	baseURL, err := requiredEnv("BUILD_SERVICE_BASE_URL")
	if err != nil {
		return RunnerConfig{}, err
	}

	return RunnerConfig{
		FINamespace:                fiNamespace,
		FIName:                     fiName,
		SpecHash:                   specHash,
		JSBundleName:               jsBundleName,
		BuildServiceBaseURL:        baseURL,
		BuildServiceTimeoutSeconds: getEnvUintDefault("BUILD_SERVICE_TIMEOUT_SECONDS", 600),
		StaleCheckGraceSeconds:     getEnvUintDefault("STALE_CHECK_GRACE_SECONDS", 30),
	}, nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvUintDefault(key string, def uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func requiredEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return v, nil
}

func requiredEnvAlias(primary, legacy string) (string, error) {
	if v := os.Getenv(primary); v != "" {
		return v, nil
	}
	if v := os.Getenv(legacy); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("required environment variable %s (or legacy %s) is not set", primary, legacy)
}
