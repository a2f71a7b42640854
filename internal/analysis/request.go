package analysis

import (
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/muurk/vibetagger/internal/ingest"
)

// Request is one fully-built call to the remote service.
type Request struct {
	Model       string
	MIMEType    string
	Payload     string // base64 image content, data URL prefix stripped
	Instruction string
	Prompt      string

	image []byte
}

// BuildRequest strips the data URL prefix (everything up to and including
// the first comma) and attaches the fixed instruction, prompt and schema.
func BuildRequest(model, imageDataURL string) (*Request, error) {
	payload := ingest.Payload(imageDataURL)
	if payload == "" {
		return nil, errors.New("image data URL has no payload")
	}

	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("image payload is not valid base64: %w", err)
	}

	return &Request{
		Model:       model,
		MIMEType:    DeclaredMIMEType,
		Payload:     payload,
		Instruction: SystemInstruction,
		Prompt:      UserPrompt,
		image:       image,
	}, nil
}

// Contents returns the single user turn: the inline image then the prompt.
func (r *Request) Contents() []*genai.Content {
	parts := []*genai.Part{
		genai.NewPartFromBytes(r.image, r.MIMEType),
		genai.NewPartFromText(r.Prompt),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

// Config returns the generation config carrying the system instruction and
// the JSON response schema.
func (r *Request) Config() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(r.Instruction)},
		},
		ResponseMIMEType: ResponseMIMEType,
		ResponseSchema:   ResponseSchema(),
	}
}

// ImageSize is the decoded image size in bytes.
func (r *Request) ImageSize() int {
	return len(r.image)
}
