// cmd/onboard/secrets.go
//
// CSRF key resolution for serve.  Vault wins when VAULT_ADDR is set and
// csrf.vault_path names a secret; otherwise, or when the read fails, the
// plain csrf.key from config is used.
package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/onboard/internal/config"
	"github.com/yanizio/onboard/internal/vault"
)

func csrfKey(ctx context.Context, c config.CSRF, log *zap.SugaredLogger) string {
	if c.VaultPath == "" || !vault.Enabled() {
		return c.Key
	}

	cli, err := vault.New(vault.Options{}, log)
	if err != nil {
		log.Errorw("vault unavailable, using csrf.key", "err", err)
		return c.Key
	}
	key, err := cli.GetKV(ctx, c.VaultPath, c.VaultKey, 0)
	if err != nil {
		log.Errorw("csrf key lookup failed, using csrf.key", "path", c.VaultPath, "key", c.VaultKey, "err", err)
		return c.Key
	}
	log.Infow("csrf key loaded from vault", "path", c.VaultPath)
	return key
}
