// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"snapui/internal/generation"
)

var stacksCmd = &cobra.Command{
	Use:   "stacks",
	Short: "List the supported target stacks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printStacks(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(stacksCmd)
}

func printStacks(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL")
	for _, s := range generation.Stacks() {
		fmt.Fprintf(tw, "%s\t%s\n", s.Value, s.Label)
	}
	return tw.Flush()
}
