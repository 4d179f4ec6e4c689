// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export turns a generated snippet into the artifacts the user can
// take away: clipboard text, a downloadable file, a standalone document and
// the sandboxed preview document.
package export

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// DownloadFilename is the name offered for downloaded snippets.
const DownloadFilename = "SnapUI-Code.html"

// ErrNoSnippet is returned when there is nothing to export.
var ErrNoSnippet = errors.New("export: no snippet")

// Action names one export operation.
type Action string

const (
	ActionCopy     Action = "copy"
	ActionDownload Action = "download"
	ActionOpen     Action = "open"
)

// Notice returns the message shown when the action has nothing to export.
func (a Action) Notice() string {
	switch a {
	case ActionCopy:
		return "No code to copy"
	case ActionDownload:
		return "No code to download"
	case ActionOpen:
		return "No code to open"
	}
	return "No code available"
}

// standaloneStyle keeps a document scrollable when opened on its own.
const standaloneStyle = "<style>body{overflow:auto !important;}</style>"

// previewReset is prepended to the snippet inside the preview frame.
const previewReset = `<style>
html, body { margin:0; padding:0; height:auto !important; min-height:100%; overflow:auto !important; }
</style>
`

// Copy returns the text to place on the clipboard.
func Copy(snippet string) (string, error) {
	if snippet == "" {
		return "", ErrNoSnippet
	}
	return snippet, nil
}

// Download writes the snippet as an HTML attachment.
func Download(w http.ResponseWriter, snippet string) error {
	if snippet == "" {
		return ErrNoSnippet
	}
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Disposition", `attachment; filename="`+DownloadFilename+`"`)
	h.Set("Content-Length", strconv.Itoa(len(snippet)))
	h.Set("X-Content-Type-Options", "nosniff")
	_, err := w.Write([]byte(snippet))
	return err
}

// Standalone returns the document for a new browsing context. The scroll
// style goes before the first </head>; a snippet without one is returned
// as is.
func Standalone(snippet string) (string, error) {
	if snippet == "" {
		return "", ErrNoSnippet
	}
	i := strings.Index(snippet, "</head>")
	if i < 0 {
		return snippet, nil
	}
	return snippet[:i] + standaloneStyle + snippet[i:], nil
}

// Preview returns the sandbox document for the snippet. It is a pure
// function, so refreshing the preview re-renders the same document.
func Preview(snippet string) string {
	return previewReset + snippet
}
