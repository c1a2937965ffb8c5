// cmd/onboard/main.go
//
// Onboard – command-line entry point.
//
// Commands
// --------
//
//	onboard serve              web front-end on http.listen_addr
//	onboard tui                the same form in the terminal
//	onboard validate <schema>  lint a YAML form schema and exit
//
// Boot sequence (serve and tui)
// -----------------------------
//
//  1. Load config (conf/.env → conf/global.yaml → ONBOARD_* env).
//
//  2. Start the rotating logger.  serve tees to the console when stdout is
//     a TTY; tui never does, since the console belongs to the UI.
//
//  3. Load the form schema (embedded default or form.schema) and build the
//     validator and HTTP submitter.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanizio/onboard/internal/config"
	"github.com/yanizio/onboard/internal/form"
)

var rootCmd = &cobra.Command{
	Use:           "onboard",
	Short:         "Signup form with live validation",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "onboard:", err)
		os.Exit(1)
	}
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// buildForm returns the validator and submitter every session's form uses.
func buildForm(cfg *config.Config) (*form.Validator, form.Submitter, error) {
	schema := form.DefaultSchema()
	if cfg.Form.Schema != "" {
		s, err := form.LoadSchema(cfg.Form.Schema)
		if err != nil {
			return nil, nil, fmt.Errorf("load schema: %w", err)
		}
		schema = s
	}
	return form.NewValidator(schema), form.NewHTTPSubmitter(cfg.Submit.Endpoint, cfg.Submit.Timeout), nil
}
