// Package discovery finds Vibe-Tagger servers on the local network.
//
// A server started with `vibetagger serve --advertise` registers itself
// under the "_vibetagger._tcp" mDNS service type. `vibetagger discover`
// browses for that type and lists every instance it hears from, so a phone
// or another laptop on the same Wi-Fi can open the browser front-end.
//
// # Usage Example
//
//	adv, err := discovery.Advertise("studio", 8080, map[string]string{"version": version.Version})
//	if err != nil {
//	    return err
//	}
//	defer adv.Shutdown()
//
//	scanner := discovery.NewScanner()
//	instances, err := scanner.Scan(ctx)
//	for _, inst := range instances {
//	    fmt.Println(inst.Name, inst.BaseURL())
//	}
//
// # Instance Information
//
// Each discovered instance includes:
//   - Name: mDNS instance name
//   - Hostname: advertised host (e.g., "studio-mac.local.")
//   - IP: IPv4 address, IPv6 when no IPv4 is advertised
//   - Port: HTTP port of the browser front-end
//   - Metadata: TXT records (version, model, path)
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Server and client must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
