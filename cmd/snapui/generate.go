// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"snapui/internal/generation"
)

var (
	genStack string
	genOut   string
)

var generateCmd = &cobra.Command{
	Use:   "generate [description]",
	Short: "Generate one component and print the HTML",
	Long: `Generate sends a single request through the configured provider and
writes the resulting HTML document to stdout, or to --out when given.`,
	Example: `  snapui generate --stack html-tailwind "pricing table with three tiers"
  snapui generate --stack html-css --out card.html "profile card"`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Validation needs no provider, so check the request first.
		req := generation.Request{Description: strings.Join(args, " ")}
		if s, ok := generation.ParseStack(genStack); ok {
			req.Stack = s
		}
		if f := generation.Validate(req); f != nil {
			return errors.New(f.Message())
		}

		registry, err := newRegistry(cfg)
		if err != nil {
			return err
		}

		res, err := generation.New(registry, cfg.Generation.Timeout).Generate(cmd.Context(), req)
		if err != nil {
			if f, ok := generation.AsFailure(err); ok {
				return errors.New(f.Message())
			}
			return err
		}

		return writeSnippet(cmd.OutOrStdout(), genOut, res.Snippet)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&genStack, "stack", "s", "", "target stack (see \"snapui stacks\")")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "write the snippet to this file")
	rootCmd.AddCommand(generateCmd)
}

// writeSnippet writes snippet to path, or to w when path is empty.
func writeSnippet(w io.Writer, path, snippet string) error {
	if !strings.HasSuffix(snippet, "\n") {
		snippet += "\n"
	}
	if path == "" {
		_, err := io.WriteString(w, snippet)
		return err
	}
	if err := os.WriteFile(path, []byte(snippet), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
