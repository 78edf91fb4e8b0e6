// internal/vault/vault.go
//
// Vault client wrapper for Formrelay.
//
// Context
// -------
//   - Concurrency-safe wrapper around the HashiCorp Vault Go SDK with simple
//     KV-v2 helpers, per-key caching, and background token renewal.
//   - Its single consumer today is the optional relay auth secret: operators
//     may set `relay.auth_secret` to `vault:<mount>/<path>#<key>` and the
//     real value never touches flat files.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx, log)                  // during boot.
//  2. val, err := cli.Resolve(ctx, cfgValue)           // vault: indirection.
//     val, err := cli.GetKV(ctx, path, key, ttl)       // direct fetch.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

// Prefix marks a config value that must be resolved through Vault.
const Prefix = "vault:"

// IsReference reports whether raw carries the Vault indirection prefix.
func IsReference(raw string) bool { return strings.HasPrefix(raw, Prefix) }

// Client is safe for concurrent use.  Create once at startup and inject it.
// Zero value is invalid.
type Client struct {
	api *vault.Client
	log *zap.SugaredLogger

	cacheMu sync.RWMutex
	cache   map[string]cached // canonical path#key → value + expiry.
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a Vault client and starts a background token-renewal loop.
func New(ctx context.Context, log *zap.SugaredLogger) (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	c := &Client{
		api:   apiCli,
		log:   log,
		cache: make(map[string]cached),
	}

	go c.renewLoop(ctx)

	return c, nil
}

// Resolve returns raw unchanged unless it carries the `vault:` prefix, in
// which case the referenced KV-v2 entry is fetched.  The reference format is
// `vault:<mount>/<path>#<key>`.
func (c *Client) Resolve(ctx context.Context, raw string) (string, error) {
	if !strings.HasPrefix(raw, Prefix) {
		return raw, nil
	}

	ref := strings.TrimPrefix(raw, Prefix)
	path, key, ok := strings.Cut(ref, "#")
	if !ok || path == "" || key == "" {
		return "", fmt.Errorf("malformed vault reference %q", raw)
	}
	return c.GetKV(ctx, path, key, time.Hour)
}

// GetKV fetches a single key from a KV-v2 secret.  If ttl > 0 the result is
// cached for that duration; subsequent callers within the TTL receive the
// cached copy.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	if ttl > 0 {
		c.cacheMu.RLock()
		if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
			c.cacheMu.RUnlock()
			return cv.val, nil
		}
		c.cacheMu.RUnlock()
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}

	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	if ttl > 0 {
		c.cacheMu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.cacheMu.Unlock()
	}

	return sval, nil
}

// renewLoop keeps the token alive for the process lifetime.  Renewal
// failures are logged and retried with a flat backoff; a non-renewable token
// is rechecked hourly in case the operator rotates it in place.
func (c *Client) renewLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		sec, err := c.api.Auth().Token().RenewSelf(0)
		if err != nil {
			c.log.Warnw("vault token renew failed", "err", err)
			sleep(ctx, 30*time.Second)
			continue
		}
		if sec == nil || sec.Auth == nil || !sec.Auth.Renewable {
			sleep(ctx, time.Hour)
			continue
		}

		// Sleep for two thirds of the lease, then renew again.
		lease := time.Duration(sec.Auth.LeaseDuration) * time.Second
		if lease < time.Minute {
			lease = time.Minute
		}
		sleep(ctx, lease*2/3)
	}
}

func splitMount(p string) (mount, rel string) {
	if p == "" {
		return "", ""
	}
	parts := strings.SplitN(p, "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = parts[1]
	}
	return
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
