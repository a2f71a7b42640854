// Package ui provides terminal rendering for the one-shot vibetagger
// commands and the shared styles used by the interactive TUI.
//
// Components follow a "render once and exit" pattern: they produce styled
// strings, and a Printer writes them out.
//
//   - Header: command banner showing the operation and its parameters
//   - RenderVibe: the result card (vibe, captions, hashtags)
//   - RenderCaptionList: caption lines with an optional selection cursor
//   - RenderFailure: error box with troubleshooting tips
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Vibe Check", "vibetagger analyze",
//	    ui.Param{Key: "File", Value: "photo.png"},
//	    ui.Param{Key: "Model", Value: client.Model()},
//	)
//	p.PrintVibe(result)
//
// # Logging Integration
//
// Logging is controlled via the VIBETAGGER_LOG_LEVEL environment variable.
// When unset or empty, zap logging is silent, so the styled output is
// displayed cleanly.
package ui
