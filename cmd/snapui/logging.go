// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// newLogger returns coloured text logs on stderr in development and JSON on
// stdout otherwise.
func newLogger(dev, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || dev {
		level = slog.LevelDebug
	}

	if !dev {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Stack traces from the recoverer are unreadable on one line.
			if a.Key == "stack" && len(groups) == 0 {
				return slog.String("stack", "\n"+a.Value.String())
			}
			return a
		},
	}))
}
