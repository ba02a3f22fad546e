// Package buildclient implements the Runner's HTTP client for the external
// build service contract: POST /v1/builds, GET /v1/builds/{id},
// GET /v1/builds/{id}/files.
package buildclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

// Status is a build's lifecycle state as reported by the build service.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// BuildContext accompanies a create request so the build service can
// attribute the build to its originating FrontendIntegration.
type BuildContext struct {
	Namespace            string `json:"namespace"`
	FrontendIntegration  string `json:"frontendIntegration"`
}

type createBuildRequest struct {
	ManifestHash string       `json:"manifestHash"`
	Manifest     string       `json:"manifest"`
	Context      BuildContext `json:"context"`
}

// CreateBuildResponse is returned by POST /v1/builds.
type CreateBuildResponse struct {
	BuildID string `json:"buildId"`
	Status  Status `json:"status"`
}

// BuildStatusResponse is returned by GET /v1/builds/{id}.
type BuildStatusResponse struct {
	BuildID string `json:"buildId"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// RemoteFile is one entry of GET /v1/builds/{id}/files.
type RemoteFile struct {
	Path        string `json:"path"`
	Encoding    string `json:"encoding"`
	Content     string `json:"content"`
	SHA256      string `json:"sha256,omitempty"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type buildFilesResponse struct {
	BuildID string       `json:"buildId"`
	Files   []RemoteFile `json:"files"`
}

// Client talks to the external build service over HTTP, retrying transient
// failures (408/429/5xx, network flaps) with bounded exponential backoff.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	timeout      time.Duration
}

// New builds a Client whose individual HTTP requests, and the retries of
// each call, are bounded by timeout. The GET /v1/builds/{id} poll loop inside
// WaitForCompletion is bounded only by the ctx the caller passes in.
func New(baseURL string, timeout time.Duration) *Client {
	transport := cleanhttp.DefaultPooledTransport()
	return &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Transport: transport, Timeout: timeout},
		pollInterval: 2 * time.Second,
		timeout:      timeout,
	}
}

// CreateBuild submits a rendered manifest for building.
func (c *Client) CreateBuild(ctx context.Context, manifestHash, manifest string, buildCtx BuildContext) (CreateBuildResponse, error) {
	body, err := json.Marshal(createBuildRequest{ManifestHash: manifestHash, Manifest: manifest, Context: buildCtx})
	if err != nil {
		return CreateBuildResponse{}, fmt.Errorf("encode create-build request: %w", err)
	}

	var out CreateBuildResponse
	err = c.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/builds", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return c.httpClient.Do(req)
	}, &out)
	return out, err
}

// GetStatus fetches the current status of an in-flight or terminal build.
func (c *Client) GetStatus(ctx context.Context, buildID string) (BuildStatusResponse, error) {
	var out BuildStatusResponse
	err := c.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/builds/"+buildID, nil)
		if err != nil {
			return nil, err
		}
		return c.httpClient.Do(req)
	}, &out)
	return out, err
}

// FetchFiles retrieves the built artifact files of a SUCCEEDED build.
func (c *Client) FetchFiles(ctx context.Context, buildID string) ([]RemoteFile, error) {
	var out buildFilesResponse
	err := c.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/builds/"+buildID+"/files", nil)
		if err != nil {
			return nil, err
		}
		return c.httpClient.Do(req)
	}, &out)
	return out.Files, err
}

// WaitForCompletion polls GET /v1/builds/{id} until it reaches a terminal
// status or ctx's deadline (set by the caller to BUILD_SERVICE_TIMEOUT_SECONDS)
// elapses.
func (c *Client) WaitForCompletion(ctx context.Context, buildID string) (BuildStatusResponse, error) {
	for {
		status, err := c.GetStatus(ctx, buildID)
		if err != nil {
			return BuildStatusResponse{}, err
		}
		if status.Status.Terminal() {
			return status, nil
		}
		select {
		case <-ctx.Done():
			return BuildStatusResponse{}, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// doWithRetry issues request and decodes a JSON response into out, retrying
// transient failures (network errors, 408/429/5xx) with bounded exponential
// backoff up to the client's timeout. Other non-2xx statuses are fatal.
func (c *Client) doWithRetry(ctx context.Context, request func() (*http.Response, error), out interface{}) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxElapsedTime = c.timeout
	policy := backoff.WithContext(expBackoff, ctx)

	operation := func() error {
		resp, err := request()
		if err != nil {
			return err // network errors are always retried
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out == nil {
				return nil
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return backoff.Permanent(fmt.Errorf("decode response: %w", err))
			}
			return nil
		}

		data, _ := io.ReadAll(resp.Body)
		httpErr := fmt.Errorf("build service returned %d: %s", resp.StatusCode, string(data))
		if isTransientStatus(resp.StatusCode) {
			return httpErr
		}
		return backoff.Permanent(httpErr)
	}

	return backoff.Retry(operation, policy)
}

func isTransientStatus(code int) bool {
	return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500
}
