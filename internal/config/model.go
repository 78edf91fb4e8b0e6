// internal/config/model.go
//
// Typed configuration model for Formrelay.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                            – dotenv values,
//   • `conf/global.yaml`                         – primary static file,
//   • `FORMRELAY_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling (see Relay.AuthSecret), so
// secrets never sit in flat files or git history.
//
// Validation happens immediately after unmarshal; the binary fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Relay section
//

// Relay configures the outbound leg: the third-party form-processing
// endpoint every accepted submission is forwarded to.
//
// AuthHeader and AuthSecret are both optional; the reference deployment uses
// no authentication.  When AuthSecret starts with `vault:`, the loader's
// caller resolves it through the Vault wrapper before wiring the Submitter.
type Relay struct {
	EndpointURL    string `koanf:"endpoint_url" validate:"required,url"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"gte=0"`
	AuthHeader     string `koanf:"auth_header"`
	AuthSecret     string `koanf:"auth_secret"`
}

//
// Page section
//

// Page holds presentation tunables for the rendered contact page.
//
// HeaderOffsetPx is the fixed header height; scroll targets (first failing
// field, the notification banner) sit this many pixels below the viewport
// top so the header never obscures them.
type Page struct {
	HeaderOffsetPx int    `koanf:"header_offset_px" validate:"gte=0"`
	FormDef        string `koanf:"form_def" validate:"required"`
}

//
// Journal section
//

// Journal configures the optional MySQL submission journal.  An empty DSN
// disables it; the service runs fine without persistence.
type Journal struct {
	DSN string `koanf:"dsn"`
}

//
// GeoIP section
//

// GeoIP points at an optional GeoLite2 database used to country-tag journal
// rows.  Empty path disables the lookup.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or FORMRELAY_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // FORMRELAY_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Relay   Relay   `koanf:"relay"`
	Page    Page    `koanf:"page"`
	Journal Journal `koanf:"journal"`
	GeoIP   GeoIP   `koanf:"geoip"`
	Paths   Paths   `koanf:"-"` // not loaded from config files
}
