package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/muurk/vibetagger/internal/logging"
	"github.com/muurk/vibetagger/internal/version"
	"github.com/muurk/vibetagger/internal/vibe"
)

// Analyzer produces a VibeResult for an image data URL.
type Analyzer interface {
	Analyze(ctx context.Context, imageDataURL string) (*vibe.Result, error)
}

// Config configures a Client. There is no process-wide client; every
// component that needs one is handed its own Config.
type Config struct {
	// APIKey is the Gemini API key. An empty key is sent as an empty
	// credential and the service rejects the call. GOOGLE_API_KEY and
	// GEMINI_API_KEY are never consulted.
	APIKey string

	// Model defaults to DefaultModel.
	Model string

	// BaseURL overrides the service endpoint (tests, proxies).
	BaseURL string

	// HTTPClient overrides the transport. No client-side timeout is set by
	// default; callers bound a call through its context.
	HTTPClient *http.Client
}

// Client calls Gemini through google.golang.org/genai.
type Client struct {
	model   string
	genai   *genai.Client
	initErr error
}

// NewClient creates a Client. Construction never fails: SDK setup errors
// surface from Analyze as request errors.
func NewClient(ctx context.Context, cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	apiKey, httpClient := cfg.APIKey, cfg.HTTPClient
	if apiKey == "" {
		// genai refuses an empty key and would otherwise read one from the
		// environment. Hand it a placeholder and blank it on the wire.
		apiKey = unsetAPIKey
		httpClient = withEmptyCredential(httpClient)
	}

	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
			Headers: http.Header{"User-Agent": []string{version.UserAgent()}},
		},
	}

	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		err = fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		model:   model,
		genai:   gc,
		initErr: err,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Analyze issues exactly one generateContent call for the image. There is
// no retry, no streaming and no caching.
func (c *Client) Analyze(ctx context.Context, imageDataURL string) (result *vibe.Result, err error) {
	start := time.Now()
	payloadBytes := 0
	defer func() {
		logging.LogAnalysis(c.model, payloadBytes, time.Since(start), err)
	}()

	if c.initErr != nil {
		return nil, newError(StageRequest, c.model, c.initErr)
	}

	req, err := BuildRequest(c.model, imageDataURL)
	if err != nil {
		return nil, newError(StageRequest, c.model, err)
	}
	payloadBytes = req.ImageSize()

	resp, err := c.genai.Models.GenerateContent(ctx, req.Model, req.Contents(), req.Config())
	if err != nil {
		return nil, newError(StageRequest, c.model, err)
	}

	return parseResponse(c.model, resp)
}

func parseResponse(model string, resp *genai.GenerateContentResponse) (*vibe.Result, error) {
	if resp == nil {
		return nil, newError(StageResponse, model, ErrEmptyResponse)
	}

	text := resp.Text()
	if text == "" {
		return nil, newError(StageResponse, model, ErrEmptyResponse)
	}

	return ParseResult(model, text)
}

// ParseResult decodes the service's JSON text. Beyond JSON well-formedness
// no schema validation is done; the service enforces the schema.
func ParseResult(model, text string) (*vibe.Result, error) {
	var result vibe.Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, newError(StageParse, model, err)
	}
	return &result, nil
}

// unsetAPIKey stands in for a missing key until the request is sent
const unsetAPIKey = "unset"

// apiKeyHeader carries the Gemini API key
const apiKeyHeader = "x-goog-api-key"

// emptyCredentialTransport sends every request with an empty API key
type emptyCredentialTransport struct {
	base http.RoundTripper
}

func (t *emptyCredentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(apiKeyHeader, "")
	return t.base.RoundTrip(req)
}

// withEmptyCredential returns a copy of hc (or of a default client) whose
// requests carry an empty API key.
func withEmptyCredential(hc *http.Client) *http.Client {
	var c http.Client
	if hc != nil {
		c = *hc
	}
	base := c.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.Transport = &emptyCredentialTransport{base: base}
	return &c
}
