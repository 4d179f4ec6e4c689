// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package extract pulls the source snippet out of a raw model response.
//
// Models are asked to answer inside a single Markdown fenced block, but they
// often add prose around it, omit the fence or emit several blocks. Code
// treats the first well-formed fenced block as authoritative. Nested fences
// are not understood: the first closing marker always ends the block.
package extract

import (
	"regexp"
	"strings"
)

// fenceRe matches an opening ``` marker with an optional language tag and an
// optional newline, then lazily captures up to the next ``` marker.
var fenceRe = regexp.MustCompile("(?s)```(?:\\w+)?\\n?(.*?)```")

// Code returns the trimmed contents of the first fenced code block in
// response. When no complete block exists (including an opening marker
// without a closing one) the whole response is returned trimmed.
func Code(response string) string {
	if m := fenceRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(response)
}

// HasFence reports whether response contains a complete fenced block.
func HasFence(response string) bool {
	return fenceRe.MatchString(response)
}
