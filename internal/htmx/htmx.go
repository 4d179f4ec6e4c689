// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package htmx holds the few HTMX request/response conventions the server
// relies on: detecting partial requests and raising client-side events.
package htmx

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// NotifyEvent is the client event that shows a toast.
const NotifyEvent = "notify"

// Notice levels understood by the toast script.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notice is the payload of a notify event.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// IsRequest reports whether the request was made by HTMX.
func IsRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Trigger sets the HX-Trigger header so HTMX dispatches event with the
// given detail once the response is processed. It must be called before
// the header is written.
func Trigger(w http.ResponseWriter, event string, detail any) {
	b, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		slog.Error("encode hx-trigger", "event", event, "error", err)
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}

// Notify raises a toast on the client.
func Notify(w http.ResponseWriter, level, message string) {
	Trigger(w, NotifyEvent, Notice{Level: level, Message: message})
}
