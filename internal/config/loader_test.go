// internal/config/loader_test.go
//
// Loader layering tests.
//
// Context
// -------
// Each test builds a throwaway root with a minimal conf/global.yaml and
// points FORMRELAY_ROOT at it, so Load() runs the real three-layer merge
// without touching the repository's own config.
//
//------------------------------------------------------------------------------

package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `http:
  listen_addr: ":8080"
relay:
  endpoint_url: "https://forms.example.com/f/test"
  timeout_seconds: 15
page:
  header_offset_px: 80
  form_def: "conf/forms/contact.yaml"
`

// writeTestRoot lays out <tmp>/conf/global.yaml and returns the root.
func writeTestRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	confDir := filepath.Join(root, "conf")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(confDir, "global.yaml"), []byte(testYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestLoad_YAMLValues(t *testing.T) {
	root := writeTestRoot(t)
	t.Setenv("FORMRELAY_ROOT", root)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.ListenAddr != ":8080" {
		t.Errorf("listen_addr = %q, want :8080", cfg.HTTP.ListenAddr)
	}
	if cfg.Relay.TimeoutSeconds != 15 {
		t.Errorf("timeout_seconds = %d, want 15", cfg.Relay.TimeoutSeconds)
	}
	if got, want := cfg.Page.FormDef, filepath.Join(root, "conf", "forms", "contact.yaml"); got != want {
		t.Errorf("form_def = %q, want %q", got, want)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	root := writeTestRoot(t)
	t.Setenv("FORMRELAY_ROOT", root)
	t.Setenv("FORMRELAY_HTTP__LISTEN_ADDR", ":9999")
	t.Setenv("FORMRELAY_RELAY__ENDPOINT_URL", "https://forms.example.com/f/override")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.ListenAddr != ":9999" {
		t.Errorf("env override ignored: listen_addr = %q, want :9999", cfg.HTTP.ListenAddr)
	}
	if cfg.Relay.EndpointURL != "https://forms.example.com/f/override" {
		t.Errorf("env override ignored: endpoint_url = %q", cfg.Relay.EndpointURL)
	}
	// Keys the overlay does not touch keep their YAML values.
	if cfg.Page.HeaderOffsetPx != 80 {
		t.Errorf("header_offset_px = %d, want 80", cfg.Page.HeaderOffsetPx)
	}
}

func TestLoad_ValidationRejectsBadOverride(t *testing.T) {
	root := writeTestRoot(t)
	t.Setenv("FORMRELAY_ROOT", root)
	t.Setenv("FORMRELAY_RELAY__ENDPOINT_URL", "not-a-url")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a malformed endpoint_url override")
	}
}
