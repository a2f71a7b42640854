package analysis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/vibetagger/internal/ingest"
	"github.com/muurk/vibetagger/internal/vibe"
)

const goldenHourJSON = `{
  "vibe": "Golden Hour Energy",
  "captions": [
    {"style": "Short", "text": "Chasing light ☀️"},
    {"style": "Witty", "text": "My camera roll is 90% sunsets and I'm fine with it"},
    {"style": "Professional", "text": "Natural light makes every frame work harder."},
    {"style": "Aesthetic", "text": "honey skies & slow goodbyes 🍯"}
  ],
  "hashtags": ["#goldenhour","#sunset","#sunsetlover","#skyporn","#naturelovers","#photooftheday","#vibes","#goodvibes","#instagood","#travelgram","#wanderlust","#eveningsky","#chasingsunsets","#moodygrams","#aesthetic"]
}`

// wireRequest is the subset of the generateContent body the tests inspect.
type wireRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text       string `json:"text"`
			InlineData *struct {
				MIMEType string `json:"mimeType"`
				Data     string `json:"data"`
			} `json:"inlineData"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	GenerationConfig struct {
		ResponseMIMEType string         `json:"responseMimeType"`
		ResponseSchema   map[string]any `json:"responseSchema"`
	} `json:"generationConfig"`
}

// fakeGemini serves generateContent with a canned text answer.
type fakeGemini struct {
	calls  atomic.Int32
	status int
	body   string

	mu      sync.Mutex
	lastReq wireRequest
	path    string
	apiKeys []string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)

	raw, _ := io.ReadAll(r.Body)
	var req wireRequest
	_ = json.Unmarshal(raw, &req)

	f.mu.Lock()
	f.path = r.URL.Path
	f.lastReq = req
	f.apiKeys = r.Header.Values("X-Goog-Api-Key")
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeGemini) last() (wireRequest, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq, f.path
}

func candidateBody(text string) string {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func newTestClient(t *testing.T, fake *fakeGemini, apiKey string) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return NewClient(context.Background(), Config{
		APIKey:     apiKey,
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
}

func pngDataURL() string {
	return ingest.EncodeDataURL("image/png", []byte("\x89PNG\r\n\x1a\nfake-image-bytes"))
}

func TestClient_Analyze_Success(t *testing.T) {
	fake := &fakeGemini{body: candidateBody(goldenHourJSON)}
	client := newTestClient(t, fake, "test-key")

	result, err := client.Analyze(context.Background(), pngDataURL())
	require.NoError(t, err)

	var want vibe.Result
	require.NoError(t, json.Unmarshal([]byte(goldenHourJSON), &want))
	assert.Equal(t, &want, result)
	assert.Len(t, result.Captions, vibe.CaptionCount)
	assert.Len(t, result.Hashtags, vibe.HashtagCount)
	assert.EqualValues(t, 1, fake.calls.Load(), "exactly one request per Analyze")
	_, path := fake.last()
	assert.True(t, strings.HasSuffix(path, "models/"+DefaultModel+":generateContent"), "path = %s", path)
}

func TestClient_Analyze_RequestShape(t *testing.T) {
	fake := &fakeGemini{body: candidateBody(goldenHourJSON)}
	client := newTestClient(t, fake, "test-key")

	dataURL := pngDataURL()
	_, err := client.Analyze(context.Background(), dataURL)
	require.NoError(t, err)

	req, _ := fake.last()
	require.Len(t, req.Contents, 1)
	require.Len(t, req.Contents[0].Parts, 2)
	assert.Equal(t, "user", req.Contents[0].Role)

	inline := req.Contents[0].Parts[0].InlineData
	require.NotNil(t, inline)
	assert.Equal(t, "image/jpeg", inline.MIMEType, "PNG input is still declared as JPEG")
	assert.Equal(t, ingest.Payload(dataURL), inline.Data)

	assert.Equal(t, UserPrompt, req.Contents[0].Parts[1].Text)

	require.Len(t, req.SystemInstruction.Parts, 1)
	assert.Contains(t, req.SystemInstruction.Parts[0].Text, "social media trend expert")

	assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
	schema := req.GenerationConfig.ResponseSchema
	require.NotNil(t, schema)
	assert.Equal(t, "object", strings.ToLower(fmt.Sprint(schema["type"])))
	assert.ElementsMatch(t, []any{"vibe", "captions", "hashtags"}, schema["required"])
}

func TestClient_Analyze_EmptyResponse(t *testing.T) {
	fake := &fakeGemini{body: `{"candidates":[]}`}
	client := newTestClient(t, fake, "test-key")

	result, err := client.Analyze(context.Background(), pngDataURL())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsEmptyResponse(err), "err = %v", err)

	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, StageResponse, ae.Stage)
}

func TestClient_Analyze_MalformedJSON(t *testing.T) {
	fake := &fakeGemini{body: candidateBody(`{"vibe": "Broken`)}
	client := newTestClient(t, fake, "test-key")

	result, err := client.Analyze(context.Background(), pngDataURL())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsParseError(err), "err = %v", err)
}

func TestClient_Analyze_ServiceError(t *testing.T) {
	fake := &fakeGemini{
		status: http.StatusForbidden,
		body:   `{"error":{"code":403,"message":"API key not valid.","status":"PERMISSION_DENIED"}}`,
	}
	client := newTestClient(t, fake, "bad-key")

	result, err := client.Analyze(context.Background(), pngDataURL())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsRequestError(err), "err = %v", err)
	assert.EqualValues(t, 1, fake.calls.Load(), "no retry after a failure")
}

func TestClient_Analyze_EmptyAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-google-key")
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")

	fake := &fakeGemini{
		status: http.StatusBadRequest,
		body:   `{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}`,
	}
	client := newTestClient(t, fake, "")

	result, err := client.Analyze(context.Background(), pngDataURL())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsRequestError(err), "err = %v", err)
	assert.EqualValues(t, 1, fake.calls.Load(), "the request is still sent")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []string{""}, fake.apiKeys, "no key from the environment or placeholder may be sent")
}

func TestClient_Analyze_SendsAPIKey(t *testing.T) {
	fake := &fakeGemini{body: candidateBody(goldenHourJSON)}
	client := newTestClient(t, fake, "test-key")

	_, err := client.Analyze(context.Background(), pngDataURL())
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []string{"test-key"}, fake.apiKeys)
}

func TestClient_Analyze_NoCaching(t *testing.T) {
	fake := &fakeGemini{body: candidateBody(goldenHourJSON)}
	client := newTestClient(t, fake, "test-key")

	dataURL := pngDataURL()
	for i := 0; i < 3; i++ {
		_, err := client.Analyze(context.Background(), dataURL)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, fake.calls.Load())
}

func TestClient_Analyze_BadDataURL(t *testing.T) {
	fake := &fakeGemini{body: candidateBody(goldenHourJSON)}
	client := newTestClient(t, fake, "test-key")

	_, err := client.Analyze(context.Background(), "not-a-data-url")
	require.Error(t, err)
	assert.True(t, IsRequestError(err))
	assert.EqualValues(t, 0, fake.calls.Load())
}

func TestClient_DefaultModel(t *testing.T) {
	c := NewClient(context.Background(), Config{APIKey: "k"})
	assert.Equal(t, DefaultModel, c.Model())

	c = NewClient(context.Background(), Config{APIKey: "k", Model: "gemini-2.5-flash"})
	assert.Equal(t, "gemini-2.5-flash", c.Model())
}

func TestBuildRequest_PayloadRoundTrip(t *testing.T) {
	images := [][]byte{
		[]byte("a"),
		[]byte("\x00\x01\x02\x03\xff"),
		[]byte(strings.Repeat("vibes", 1000)),
	}

	for _, img := range images {
		dataURL := ingest.EncodeDataURL("image/png", img)

		req, err := BuildRequest(DefaultModel, dataURL)
		require.NoError(t, err)

		want := strings.SplitN(dataURL, ",", 2)[1]
		assert.Equal(t, want, req.Payload)

		// The bytes that go on the wire re-encode to the same payload.
		contents := req.Contents()
		require.Len(t, contents, 1)
		blob := contents[0].Parts[0].InlineData
		require.NotNil(t, blob)
		assert.Equal(t, want, base64.StdEncoding.EncodeToString(blob.Data))
		assert.Equal(t, DeclaredMIMEType, blob.MIMEType)
	}
}

func TestBuildRequest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dataURL string
	}{
		{"no comma", "data:image/png;base64"},
		{"empty payload", "data:image/png;base64,"},
		{"not base64", "data:image/png;base64,@@@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRequest(DefaultModel, tt.dataURL)
			assert.Error(t, err)
		})
	}
}

func TestRequest_Config(t *testing.T) {
	req, err := BuildRequest(DefaultModel, pngDataURL())
	require.NoError(t, err)

	cfg := req.Config()
	assert.Equal(t, ResponseMIMEType, cfg.ResponseMIMEType)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, SystemInstruction, cfg.SystemInstruction.Parts[0].Text)

	schema := cfg.ResponseSchema
	require.NotNil(t, schema)
	assert.Equal(t, []string{"vibe", "captions", "hashtags"}, schema.Required)
	assert.Equal(t, []string{"style", "text"}, schema.Properties["captions"].Items.Required)
}

func TestParseResult(t *testing.T) {
	r, err := ParseResult(DefaultModel, goldenHourJSON)
	require.NoError(t, err)
	assert.Equal(t, "Golden Hour Energy", r.Vibe)

	_, err = ParseResult(DefaultModel, "not json")
	assert.True(t, IsParseError(err))
}
