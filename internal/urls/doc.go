// Package urls provides centralized constants for the documentation URLs
// shown to users, so they can be updated in one place.
//
// Usage:
//
//	import "github.com/muurk/vibetagger/internal/urls"
//
//	fmt.Printf("Create a key at %s\n", urls.APIKeys)
package urls
