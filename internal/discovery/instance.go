package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Instance represents a Vibe-Tagger server discovered on the network
type Instance struct {
	// Name is the mDNS instance name (e.g., "studio")
	Name string

	// Hostname is the mDNS hostname (e.g., "studio-mac.local.")
	Hostname string

	// IP is the IPv4 address, or IPv6 when the server has none
	IP string

	// Port is the HTTP port of the browser front-end
	Port int

	// Metadata contains the TXT record data
	// Common fields: "version=1.2.0", "model=gemini-3-flash-preview", "path=/"
	Metadata map[string]string

	// DiscoveredAt is when the instance was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the instance
func (i *Instance) String() string {
	return fmt.Sprintf("Vibe-Tagger %q (%s) at %s", i.Name, i.Hostname, net.JoinHostPort(i.IP, strconv.Itoa(i.Port)))
}

// BaseURL returns the HTTP base URL of the instance
func (i *Instance) BaseURL() string {
	return "http://" + net.JoinHostPort(i.IP, strconv.Itoa(i.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}
