// internal/requestinfo/requestinfo.go
//
// Per-request visitor diagnostics: user-agent fingerprint and best-effort
// geolocation.
//
// Context
//   Journal rows carry a little context about who submitted the form so
//   operators can spot bot floods without reading raw headers.  The uasurfer
//   wrapper isolates the third-party enums, so if we swap parsers only this
//   file changes.  Geo lookup is optional: no database path, no lookup.
//   Everything here is operator-facing; nothing reaches a visitor.
//
//------------------------------------------------------------------------------

package requestinfo

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	surfer "github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

// UA carries the parsed user-agent attributes the journal records.
type UA struct {
	Browser string // "Chrome", "Firefox", "Safari", …
	Version string // "125.0.6422"
	OS      string // "Mac OS X", "Windows", "Android", …
	Device  string // "Desktop", "Mobile", "Tablet", or "Other"
	IsBot   bool
	Raw     string
}

// Info is the diagnostics bundle attached to one submission attempt.
type Info struct {
	UA         UA
	RemoteIP   string
	CountryISO string // empty when geo lookup is disabled or missed
}

// Resolver builds Info structs.  The geo reader may be nil.
type Resolver struct {
	geo *geoip2.Reader
}

// NewResolver opens the GeoLite2 database at dbPath when non-empty.  A
// missing or unreadable database is an error; pass "" to run without geo.
func NewResolver(dbPath string) (*Resolver, error) {
	if dbPath == "" {
		return &Resolver{}, nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open geoip db %s: %w", dbPath, err)
	}
	return &Resolver{geo: r}, nil
}

// Close releases the geo reader, if any.
func (r *Resolver) Close() {
	if r.geo != nil {
		_ = r.geo.Close()
	}
}

// FromRequest collects diagnostics for req.
func (r *Resolver) FromRequest(req *http.Request) Info {
	ip := clientIP(req)
	info := Info{
		UA:       ParseUA(req.UserAgent()),
		RemoteIP: ip,
	}
	if r.geo != nil {
		if parsed := net.ParseIP(ip); parsed != nil {
			if country, err := r.geo.Country(parsed); err == nil {
				info.CountryISO = country.Country.IsoCode
			}
		}
	}
	return info
}

// ParseUA converts a raw User-Agent header into a UA struct.
func ParseUA(raw string) UA {
	ua := surfer.Parse(raw)

	info := UA{
		Browser: ua.Browser.Name.String(),
		Version: versionToString(ua.Browser.Version),
		OS:      ua.OS.Name.String(),
		IsBot:   ua.IsBot(),
		Raw:     raw,
	}

	switch ua.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}

	return info
}

// clientIP strips the port from RemoteAddr.  We deliberately ignore
// X-Forwarded-For; the journal wants the peer we actually heard from.
func clientIP(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

// versionToString renders a semantic version in dotted form while trimming
// trailing zeros, e.g. 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func versionToString(v surfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor != 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}

// DeviceLabel joins browser and device for compact journal storage, e.g.
// "Chrome/Desktop".
func (u UA) DeviceLabel() string {
	return strings.TrimSuffix(u.Browser+"/"+u.Device, "/")
}
