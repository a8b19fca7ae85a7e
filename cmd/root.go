/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for buster-configuration.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/busterjs/buster-configuration/cmd/groups"
	"github.com/busterjs/buster-configuration/cmd/resolve"
	"github.com/busterjs/buster-configuration/cmd/version"
	"github.com/busterjs/buster-configuration/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "buster-configuration",
	Short: "Resolve buster test configuration groups",
	Long: `buster-configuration reads a buster.yaml, buster.yml or buster.json file,
expands the resources and load lists of every group and prints the
resulting resource sets.

Flags may also be set through the environment, e.g. BUSTER_ENV=node.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		logger.SetVerbose(viper.GetBool("verbose"))
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("BUSTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().StringP("config", "c", ".", "Config file, or directory to search for buster.{yaml,yml,json}")
	rootCmd.PersistentFlags().StringP("env", "e", "", "Only use groups for this environment (browser, node)")
	rootCmd.PersistentFlags().StringP("group", "g", "", "Only use groups whose name matches this regular expression")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug output")

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(groups.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
