// internal/config/loader.go
//
// Onboard – configuration loader.
//
// Context
//   Both front-ends (serve and tui) start from the same Config.  It is
//   assembled from four layers, later layers winning:
//
//     1.  Built-in defaults (the `defaults` map below).
//     2.  `<root>/conf/.env`, exported into the process environment.
//     3.  `<root>/conf/global.yaml`.
//     4.  `ONBOARD_*` environment variables, “__” standing for “.”
//         (ONBOARD_SUBMIT__ENDPOINT → submit.endpoint).
//
//   The merged tree is unmarshalled, the schema path is anchored to root,
//   and the result is validated before it is cached for Get.
//
// Instrumentation
//   DEBUG for root discovery and each layer, ERROR for any failing layer,
//   one INFO line with the effective endpoint and listen address.  The
//   global sugared logger is used because the file logger is built from
//   this very Config.
//
//------------------------------------------------------------------------------

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment variables that override YAML keys.
const EnvPrefix = "ONBOARD_"

// RootEnv names the variable that pins the root directory.
const RootEnv = EnvPrefix + "ROOT"

// defaults are loaded before any file so a sparse global.yaml still yields
// a runnable Config.
var defaults = map[string]any{
	"http.listen_addr":    ":8080",
	"http.read_timeout":   "10s",
	"http.write_timeout":  "15s",
	"http.idle_timeout":   "60s",
	"submit.endpoint":     "https://reqres.in/api/users",
	"submit.timeout":      "10s",
	"session.capacity":    10000,
	"session.cookie_name": "onboard_session",
	"csrf.max_age":        "2h",
	"csrf.vault_key":      "csrf_key",
	"log.level":           "info",
}

var current atomic.Pointer[Config]

// Get returns the config cached by the last successful load, or nil.
func Get() *Config { return current.Load() }

// Load discovers the root directory and defers to LoadFrom.
func Load() (*Config, error) {
	root := findRoot()
	zap.S().Debugw("config root resolved", "root", root)
	return LoadFrom(root)
}

// LoadFrom builds, validates, and caches the Config rooted at root.
func LoadFrom(root string) (*Config, error) {
	k := koanf.New(".")
	if err := loadLayers(k, root); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Paths.Root = root
	if cfg.Form.Schema != "" && !filepath.IsAbs(cfg.Form.Schema) {
		cfg.Form.Schema = filepath.Join(root, cfg.Form.Schema)
	}

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"root", root,
		"listen_addr", cfg.HTTP.ListenAddr,
		"endpoint", cfg.Submit.Endpoint,
		"custom_schema", cfg.Form.Schema != "",
	)
	return &cfg, nil
}

/*──────────────────────────── layers ───────────────────────────────────────*/

func loadLayers(k *koanf.Koanf, root string) error {
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("config default %s: %w", key, err)
		}
	}

	// The .env file is optional; it only feeds the env layer below.
	dotenv := filepath.Join(root, "conf", ".env")
	if err := godotenv.Load(dotenv); err == nil {
		zap.S().Debugw("config dotenv loaded", "file", dotenv)
	}

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return fmt.Errorf("config %s: %w", yamlPath, err)
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return fmt.Errorf("config env: %w", err)
	}
	return nil
}

// envKey maps ONBOARD_SUBMIT__ENDPOINT to submit.endpoint.
func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// findRoot honours ONBOARD_ROOT, then climbs from the working directory
// until conf/global.yaml appears, then tries <exe>/../ for a bin/ layout.
// The working directory is the last resort.
func findRoot() string {
	if r := os.Getenv(RootEnv); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	for dir := wd; ; {
		if hasConfig(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if exe, err := os.Executable(); err == nil {
		if dir := filepath.Dir(filepath.Dir(exe)); hasConfig(dir) {
			return dir
		}
	}
	return wd
}

func hasConfig(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "conf", "global.yaml"))
	return err == nil
}
