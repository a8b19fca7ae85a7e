/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package groups provides the groups command for buster-configuration.
package groups

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/busterjs/buster-configuration/builder"
	"github.com/busterjs/buster-configuration/config"
	"github.com/busterjs/buster-configuration/group"
	"github.com/busterjs/buster-configuration/internal/logger"
)

// Cmd is the groups cobra command.
var Cmd = &cobra.Command{
	Use:   "groups",
	Short: "List configured groups",
	Long:  `List every configured group with its environment, root path and declared load lists, without touching the files they name.`,
	Args:  cobra.NoArgs,
	RunE:  run,
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
	Write(cmd.OutOrStdout(), c.Groups())
	return nil
}

// Write prints a summary of each group.
func Write(w io.Writer, groups []*group.Group) {
	caser := cases.Title(language.English)
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s [%s]\n", g.Name, caser.String(g.Environment))
		fmt.Fprintf(w, "  %-12s %s\n", "Root:", g.RootPath)
		if g.Server != nil {
			fmt.Fprintf(w, "  %-12s %s\n", "Server:", g.Server.String())
		}
		if len(g.Extensions) > 0 {
			fmt.Fprintf(w, "  %-12s %s\n", "Extensions:", strings.Join(g.Extensions, ", "))
		}
		if g.Err != nil {
			fmt.Fprintf(w, "  %-12s %s\n", "Error:", strings.ReplaceAll(g.Err.Error(), "\n", " "))
		}

		fmt.Fprintf(w, "  %-12s %d\n", "Resources:", len(g.Resources()))
		lists := g.LoadLists()
		for _, c := range builder.Categories {
			if len(lists[c]) == 0 {
				continue
			}
			fmt.Fprintf(w, "  %-12s %s\n", Label(c)+":", strings.Join(lists[c], ", "))
		}
	}
}

// Label returns the title-cased words of a category, e.g. "Test Libs".
func Label(c builder.Category) string {
	var words []string
	start := 0
	s := string(c)
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return cases.Title(language.English).String(strings.Join(words, " "))
}
