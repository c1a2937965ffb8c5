// internal/form/csrf.go
//
// Onboard – Forms subsystem: stateless CSRF token utilities.
//
// Context
//   Every rendered page embeds a hidden `csrf_token` input, and the page
//   script echoes it on each live-validation call.  The server verifies it
//   on every POST.  Tokens are stateless and bound to the browser session:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, nonce+unixMicro+session) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – microseconds since Unix epoch, 8 bytes, big-endian.
//   •  HMAC – keyed with the configured secret.  Verifies authenticity and
//      ties the token to one session ID.
//
// Workflow
//   •  NewCSRF(key, maxAge)     → signer; random key when key is unusable.
//   •  Generate(session)        → token string for the renderer.
//   •  Verify(tok, session)     → constant-time verify; false on any failure.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"time"

	"go.uber.org/zap"
)

const (
	nonceBytes    = 16
	tokenBytes    = nonceBytes + 8 + sha256.Size // nonce + ts + sig
	defaultMaxAge = 2 * time.Hour
)

// CSRF signs and verifies tokens.  Safe for concurrent use.
type CSRF struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewCSRF returns a signer keyed by key, a base64url string of at least 32
// bytes.  When key is empty or too short a random key is generated; tokens
// then stop verifying after a restart.
func NewCSRF(key string, maxAge time.Duration) *CSRF {
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}
	c := &CSRF{maxAge: maxAge, now: time.Now}

	if b, err := base64.RawURLEncoding.DecodeString(key); err == nil && len(b) >= 32 {
		c.key = b
		return c
	}

	c.key = make([]byte, 32)
	_, _ = rand.Read(c.key)
	zap.S().Warnw("csrf key not set or too short, using ephemeral random key")
	return c
}

// Generate creates a token bound to session.  Call once per page render.
func (c *CSRF) Generate(session string) (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(c.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, c.sign(nonce, ts, session)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify returns true if tok was issued for session and is within maxAge.
func (c *CSRF) Verify(tok, session string) bool {
	if tok == "" {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:nonceBytes]
	tsBytes := raw[nonceBytes : nonceBytes+8]
	sig := raw[nonceBytes+8:]

	// Timestamp window check.  Future timestamps allow one minute of skew.
	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	now := c.now()
	if now.Sub(issued) > c.maxAge || issued.Sub(now) > time.Minute {
		return false
	}

	return hmac.Equal(sig, c.sign(nonce, tsBytes, session))
}

func (c *CSRF) sign(nonce, ts []byte, session string) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(nonce)
	mac.Write(ts)
	mac.Write([]byte(session))
	return mac.Sum(nil)
}
