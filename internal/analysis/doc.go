// Package analysis is the client for the remote vibe service (Google Gemini).
//
// A call takes an image data URL and returns a vibe.Result:
//
//	client := analysis.NewClient(ctx, analysis.Config{APIKey: key})
//	result, err := client.Analyze(ctx, dataURL)
//
// # Request
//
// The data URL prefix is stripped (everything up to and including the first
// comma) and the raw image is sent inline, always declared as image/jpeg.
// The request carries a fixed system instruction, a fixed user prompt, and a
// strict JSON output schema:
//
//	{
//	  "vibe":     string,                      // required
//	  "captions": [{"style": string, "text": string}],  // required
//	  "hashtags": [string]                     // required
//	}
//
// # Errors
//
// Every failure is an *AnalysisError tagged with the stage it happened in:
//   - request: credentials, transport, or service error
//   - response: no text in the response (wraps ErrEmptyResponse)
//   - parse: the text is not a valid JSON document
//
// Each Analyze call issues exactly one request. There is no retry.
package analysis
