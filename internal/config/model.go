// internal/config/model.go
//
// Typed configuration model for Onboard.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                      – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `ONBOARD_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.  Durations are written
//     as Go duration strings ("10s", "2h").
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gte=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gte=0"`
}

//
// Submit section
//

// Submit points the form at the remote signup API.  Timeout of zero means
// no per-request deadline.
type Submit struct {
	Endpoint string        `koanf:"endpoint" validate:"required,url"`
	Timeout  time.Duration `koanf:"timeout"  validate:"gte=0"`
}

//
// Session section
//

// Session bounds the in-memory per-browser form store.
type Session struct {
	Capacity   int    `koanf:"capacity"    validate:"required,min=1"`
	CookieName string `koanf:"cookie_name"`
}

//
// CSRF section
//

// CSRF configures the token signer.  Key is a base64url string of at least
// 32 bytes; when empty an ephemeral key is generated at startup.
//
// VaultPath names a KV-v2 secret ("secret/onboard").  When it is set and
// VAULT_ADDR is present, serve reads the key from VaultKey in that secret
// and Key becomes the fallback.
type CSRF struct {
	Key       string        `koanf:"key"`
	MaxAge    time.Duration `koanf:"max_age" validate:"gte=0"`
	VaultPath string        `koanf:"vault_path"`
	VaultKey  string        `koanf:"vault_key" validate:"required_with=VaultPath"`
}

//
// Log section
//

// Log tunes the zap logger.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

//
// Form section
//

// Form optionally replaces the embedded signup schema with a YAML file.
type Form struct {
	Schema string `koanf:"schema"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // ONBOARD_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Submit  Submit  `koanf:"submit"`
	Session Session `koanf:"session"`
	CSRF    CSRF    `koanf:"csrf"`
	Log     Log     `koanf:"log"`
	Form    Form    `koanf:"form"`
	Paths   Paths   `koanf:"-"` // not loaded from config files
}
