// Command render-manifest is an offline demo tool: given a FrontendIntegration
// manifest file on disk, it prints the rendered v1 manifest JSON to stdout
// without touching a cluster or the build service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	forgev1alpha1 "github.com/frontend-forge/forge-operator/api/v1alpha1"
	"github.com/frontend-forge/forge-operator/internal/manifest"
)

func main() {
	var path string
	flag.StringVar(&path, "f", "", "path to a FrontendIntegration YAML or JSON file")
	flag.Parse()

	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: render-manifest -f <frontendintegration.yaml>")
		os.Exit(2)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}

	fi := &forgev1alpha1.FrontendIntegration{}
	if err := yaml.Unmarshal(raw, fi); err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", path, err)
		os.Exit(1)
	}

	rendered, err := manifest.Render(fi, fi.Spec.Builder.EngineVersion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render manifest: %v\n", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rendered); err != nil {
		fmt.Fprintf(os.Stderr, "encode manifest: %v\n", err)
		os.Exit(1)
	}
}
