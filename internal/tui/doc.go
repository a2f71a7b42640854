// Package tui implements the interactive terminal front-end for Vibe-Tagger.
//
// The main TUI is a Bubble Tea model over an app.Controller. It follows
// the Elm architecture: key presses become controller operations, and the
// completion channels those operations return are turned into messages that
// refresh the rendered snapshot.
//
// # Views
//
// The view is picked from the controller phase:
//   - Idle, ImageSelected, Failed: a path input, the loaded image and any error
//   - Analyzing: a spinner
//   - Resolved: the result card with a caption cursor
//
// Every view is wrapped in RenderApplicationContainer, which provides the
// header and the context-sensitive help footer (bubbles/help).
//
// # Server browser
//
// BrowserModel backs `vibetagger discover`. It browses mDNS for the
// configured timeout (spinner and progress bar), then lists the servers
// found. Choosing one copies its URL to the clipboard.
//
// # Usage Example
//
//	controller := app.NewController(analysis.NewClient(ctx, cfg))
//	if err := tui.Run(ctx, controller, clipboard.System{}); err != nil {
//	    return err
//	}
//
//	chosen, err := tui.Browse(ctx, discovery.NewScanner().Scan, 5*time.Second, clipboard.System{})
package tui
