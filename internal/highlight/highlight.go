// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package highlight renders a generated snippet as syntax-highlighted HTML
// for the code view. The snippet is wrapped in a fenced block and passed
// through goldmark, whose highlighting extension hands it to chroma.
package highlight

import (
	"bytes"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// Style is the chroma style used for the code view.
const Style = "monokai"

// md is the configured goldmark instance, reused across calls. Raw HTML is
// left disabled: the snippet only ever reaches goldmark inside a fence.
var md = goldmark.New(
	goldmark.WithExtensions(
		highlighting.NewHighlighting(
			highlighting.WithStyle(Style),
			highlighting.WithFormatOptions(
				chromahtml.WithLineNumbers(true),
				chromahtml.TabWidth(2),
			),
		),
	),
)

// HTML renders the snippet as highlighted markup. An empty snippet renders
// as an empty string.
func HTML(snippet string) (template.HTML, error) {
	if snippet == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(fence(snippet, "html")), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// fence wraps src in a backtick fence longer than any backtick run inside
// it, so a snippet containing ``` cannot close the block early.
func fence(src, lang string) string {
	longest, run := 0, 0
	for _, r := range src {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	marker := strings.Repeat("`", max(3, longest+1))

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(lang)
	b.WriteByte('\n')
	b.WriteString(src)
	if !strings.HasSuffix(src, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(marker)
	b.WriteByte('\n')
	return b.String()
}
