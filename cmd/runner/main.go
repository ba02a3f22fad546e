// Command runner is the one-shot Builder Job entrypoint: it renders and
// builds exactly one FrontendIntegration's manifest, then exits.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	forgev1alpha1 "github.com/frontend-forge/forge-operator/api/v1alpha1"
	"github.com/frontend-forge/forge-operator/internal/buildclient"
	"github.com/frontend-forge/forge-operator/internal/config"
	"github.com/frontend-forge/forge-operator/internal/forgeerr"
	"github.com/frontend-forge/forge-operator/internal/runner"
)

func main() {
	log := zap.New(func(o *zap.Options) { o.Development = true })
	ctrl.SetLogger(log)

	cfg, err := config.RunnerConfigFromEnv()
	if err != nil {
		log.Error(err, "invalid runner configuration")
		os.Exit(1)
	}

	scheme := runtime.NewScheme()
	_ = clientgoscheme.AddToScheme(scheme)
	_ = forgev1alpha1.AddToScheme(scheme)

	k8sClient, err := client.New(ctrl.GetConfigOrDie(), client.Options{Scheme: scheme})
	if err != nil {
		log.Error(err, "unable to build kubernetes client")
		os.Exit(1)
	}

	buildTimeout := time.Duration(cfg.BuildServiceTimeoutSeconds) * time.Second
	buildClient := buildclient.New(cfg.BuildServiceBaseURL, buildTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout+30*time.Second)
	defer cancel()

	err = runner.Run(ctx, cfg, runner.Deps{
		K8sClient:   k8sClient,
		BuildClient: buildClient,
		Log:         log.WithName("runner"),
	})
	if err != nil {
		var staleSpec *forgeerr.StaleSpecError
		var staleStatus *forgeerr.StaleStatusError
		if errors.As(err, &staleSpec) || errors.As(err, &staleStatus) {
			log.Info("exiting as a stale no-op", "reason", err.Error())
			os.Exit(0)
		}
		log.Error(err, "build failed")
		os.Exit(1)
	}
}
