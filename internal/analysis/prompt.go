package analysis

import "google.golang.org/genai"

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-3-flash-preview"

	// DeclaredMIMEType is sent for every image regardless of its real type.
	// PNG and other formats are labelled image/jpeg too; the service accepts
	// this and the behaviour is kept as-is.
	DeclaredMIMEType = "image/jpeg"

	// ResponseMIMEType asks the service for a JSON document.
	ResponseMIMEType = "application/json"

	// UserPrompt accompanies the image in the user turn.
	UserPrompt = "Analyze this image and generate creative social media content."
)

// SystemInstruction directs the model to act as a social media trend expert.
const SystemInstruction = `You are a social media trend expert and creative writer for Gen Z and Millennial audiences.
Your task is to analyze the provided image and generate perfectly styled captions and hashtags.

Return a JSON object with:
1. 'vibe': A short (2-3 word) description of the image's energy.
2. 'captions': An array of 4 objects, each with 'style' (Short, Witty, Professional, Aesthetic) and 'text'.
3. 'hashtags': An array of 15 trending, relevant hashtags.

Ensure the captions are engaging, emoji-inclusive, and contextually aware of the image content.`

// ResponseSchema is the output schema the service must conform to.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"vibe": {Type: genai.TypeString},
			"captions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"style": {Type: genai.TypeString},
						"text":  {Type: genai.TypeString},
					},
					Required: []string{"style", "text"},
				},
			},
			"hashtags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"vibe", "captions", "hashtags"},
	}
}
