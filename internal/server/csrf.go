// internal/server/csrf.go
//
// Stateless CSRF token utilities for the contact form.
//
// Context
//   The rendered page embeds a hidden `csrf_token` input.  The POST handler
//   verifies it before any validation runs, so relayed submissions always
//   originate from a page we served.  The token is stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(secret, nonce+unixMicro) )
//
//   No server-side sessions are required, which keeps the service
//   multi-instance safe behind a load balancer.
//
//------------------------------------------------------------------------------

package server

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"os"
	"sync"
	"time"
)

const (
	tokenBytes   = 16 + 8 + sha256.Size // nonce + ts + sig
	tokenMaxAge  = 2 * time.Hour
	secretEnvKey = "FORMRELAY_CSRF_KEY" // 32-byte base64url key suggested
)

var (
	secretOnce sync.Once
	secretKey  []byte
)

// newToken creates a CSRF token.  Call once per page render.
func newToken() (string, error) {
	sec := csrfSecret()

	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(time.Now().UnixMicro()))

	mac := hmac.New(sha256.New, sec)
	mac.Write(nonce)
	mac.Write(ts)

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = mac.Sum(buf)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// checkToken returns true if tok passes HMAC and age checks.
func checkToken(tok string) bool {
	sec := csrfSecret()

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:16]
	tsBytes := raw[16:24]
	sig := raw[24:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	if time.Since(issued) > tokenMaxAge || time.Until(issued) > time.Minute {
		// Older than the window, or from the future (clock skew).
		return false
	}

	mac := hmac.New(sha256.New, sec)
	mac.Write(nonce)
	mac.Write(tsBytes)
	want := mac.Sum(nil)

	return hmac.Equal(sig, want)
}

// csrfSecret returns the process-wide CSRF secret, loading (or generating)
// it exactly once.  In production set FORMRELAY_CSRF_KEY to a 32-byte
// base64url string; without it each restart invalidates outstanding tokens.
func csrfSecret() []byte {
	secretOnce.Do(func() {
		if env := os.Getenv(secretEnvKey); env != "" {
			if b, err := base64.RawURLEncoding.DecodeString(env); err == nil && len(b) >= 32 {
				secretKey = b
				return
			}
		}
		secretKey = make([]byte, 32)
		_, _ = rand.Read(secretKey)
		os.Stderr.WriteString("[formrelay] WARNING: FORMRELAY_CSRF_KEY not set – using random key\n")
	})
	return secretKey
}
