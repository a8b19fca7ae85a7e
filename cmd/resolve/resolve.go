/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for buster-configuration.
package resolve

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/busterjs/buster-configuration/config"
	"github.com/busterjs/buster-configuration/group"
	"github.com/busterjs/buster-configuration/internal/logger"
	"github.com/busterjs/buster-configuration/resource"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve groups into resource sets",
	Long: `Resolve every configured group and print its resource set: the
resources keyed by served path and the ordered load path.

Examples:
  # Resolve all groups of ./buster.yml as JSON
  buster-configuration resolve

  # Only node groups, as YAML
  buster-configuration resolve --env node --format yaml`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "json", "Output format: json, yaml")
}

// Output is the printed form of one resolved group.
type Output struct {
	Name        string            `json:"name" yaml:"name"`
	Environment string            `json:"environment" yaml:"environment"`
	RootPath    string            `json:"rootPath" yaml:"rootPath"`
	Server      string            `json:"server,omitempty" yaml:"server,omitempty"`
	Manifest    resource.Manifest `json:"resourceSet" yaml:"resourceSet"`
}

func run(cmd *cobra.Command, args []string) error {
	c, err := config.Open(viper.GetString("config"))
	if err != nil {
		return err
	}
	if err := c.Select(viper.GetString("env"), viper.GetString("group")); err != nil {
		return err
	}

	if len(c.Groups()) == 0 {
		logger.Warn("no groups match env %q and group %q", viper.GetString("env"), viper.GetString("group"))
	}

	groups, err := c.ResolveGroups(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info("resolved %d group(s)", len(groups))
	return Write(cmd.OutOrStdout(), groups, viper.GetString("format"))
}

// Write prints the resolved groups in format.
func Write(w io.Writer, groups []*group.Group, format string) error {
	out := make([]Output, 0, len(groups))
	for _, g := range groups {
		set := g.ResourceSet()
		if set == nil {
			return fmt.Errorf("group %s is not resolved", g.Name)
		}
		o := Output{
			Name:        g.Name,
			Environment: g.Environment,
			RootPath:    g.RootPath,
			Manifest:    set.Manifest(),
		}
		if g.Server != nil {
			o.Server = g.Server.String()
		}
		out = append(out, o)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", format)
	}
}
