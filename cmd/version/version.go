/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for buster-configuration.
package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/busterjs/buster-configuration/internal/version"
)

// Cmd is the version cobra command.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version of buster-configuration. The text format adds the
commit, build time and Go version when the binary carries them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("error reading format flag: %w", err)
		}
		return Write(cmd.OutOrStdout(), version.Current(), format)
	},
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, short, json)")
}

// Write prints b in format.
func Write(w io.Writer, b version.Build, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case "short":
		_, err := fmt.Fprintln(w, b.Version)
		return err
	case "text":
		fmt.Fprintf(w, "buster-configuration %s\n", b.Version)
		for _, field := range []struct{ label, value string }{
			{"commit", b.GitCommit},
			{"built", b.BuildTime},
			{"go", b.GoVersion},
		} {
			if field.value != "" {
				fmt.Fprintf(w, "  %-7s %s\n", field.label+":", field.value)
			}
		}
		if b.Dirty {
			fmt.Fprintln(w, "  (modified working tree)")
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text, short or json)", format)
	}
}
