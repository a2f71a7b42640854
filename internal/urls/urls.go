package urls

// External documentation linked from error messages and help text

// APIKeys is where a Gemini API key is created.
const APIKeys = "https://aistudio.google.com/app/apikey"

// GeminiModels lists the model identifiers accepted by --model.
const GeminiModels = "https://ai.google.dev/gemini-api/docs/models"

// GeminiTroubleshooting covers quota, region and key errors returned by
// the Gemini API.
const GeminiTroubleshooting = "https://ai.google.dev/gemini-api/docs/troubleshooting"
