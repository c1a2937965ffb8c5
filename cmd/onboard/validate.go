// cmd/onboard/validate.go
//
// validate – parse a YAML form schema, compile every rule, and list the
// rule tags that fall back to the generic message.  Exits non-zero when the
// schema does not load.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanizio/onboard/internal/form"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema.yaml>",
	Short: "Check a form schema file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := form.LoadSchema(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d fields OK\n", s.ID, len(s.Fields))
		for _, m := range s.MissingMessages() {
			fmt.Fprintf(out, "  warning: %s uses the generic message\n", m)
		}
		return nil
	},
}
