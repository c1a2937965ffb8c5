// internal/vault/vault.go
//
// Vault client wrapper for Onboard.
//
// Context
// -------
//   - Thin, concurrency-safe wrapper around the HashiCorp Vault Go SDK.
//   - Serves KV-v2 reads with optional per-key caching.  Onboard reads its
//     CSRF signing key this way at boot when csrf.vault_path is set.
//   - Header block, section underlines, Oxford commas, two spaces after
//     periods.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(vault.Options{}, log)      // during boot.
//  2. key, err := cli.GetKV(ctx, path, key, ttl)        // anywhere after.
//
// Build tags: none.
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

// EnvAddr is the variable that switches Vault lookups on.
const EnvAddr = "VAULT_ADDR"

// Enabled reports whether a Vault server is configured in the environment.
func Enabled() bool { return os.Getenv(EnvAddr) != "" }

//
// SECTION 1.  Public façade
//

// Options override the VAULT_* environment.  Zero values keep the
// environment's settings.
type Options struct {
	Address string
	Token   string
}

// Client is safe for concurrent use.  Zero value is invalid.
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

// New constructs a client from VAULT_ADDR, VAULT_TOKEN, and friends, then
// applies opts.
func New(opts Options, log *zap.SugaredLogger) (*Client, error) {
	if log == nil {
		log = zap.S()
	}

	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}
	if opts.Address != "" {
		cfg.Address = opts.Address
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if opts.Token != "" {
		apiCli.SetToken(opts.Token)
	}

	log.Debugw("vault client ready", "addr", cfg.Address)
	return &Client{
		api:   apiCli,
		log:   log,
		cache: make(map[string]cached),
	}, nil
}

// GetKV fetches a single string key from a KV-v2 secret ("secret/onboard").
// If ttl > 0 the value is cached for that long.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key
	if ttl > 0 {
		c.cacheMu.RLock()
		cv, ok := c.cache[canonical]
		c.cacheMu.RUnlock()
		if ok && time.Now().Before(cv.exp) {
			return cv.val, nil
		}
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
		return "", fmt.Errorf("value at %s is not a string", canonical)
	}

	if ttl > 0 {
		c.cacheMu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.cacheMu.Unlock()
	}
	c.log.Debugw("vault secret read", "path", secretPath, "key", key)
	return sval, nil
}

//
// SECTION 2.  Helpers
//

// splitMount turns "secret/onboard/csrf" into ("secret", "onboard/csrf").
func splitMount(p string) (mount, rel string) {
	mount, rel, _ = strings.Cut(p, "/")
	return mount, rel
}
