// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"snapui/internal/generation"
)

// maxFormBytes caps the generate form body. It sits well above what a
// 1000-character description can take, so oversized bodies are refused
// before the length check runs.
const maxFormBytes = 64 << 10

// requestFromForm reads the generate form. The description is passed on
// untouched so its length is measured as typed; an unknown stack value is
// treated as no selection.
func requestFromForm(w http.ResponseWriter, r *http.Request) (generation.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return generation.Request{}, err
	}
	stack, _ := generation.ParseStack(r.PostFormValue("stack"))
	return generation.Request{
		Description: r.PostFormValue("description"),
		Stack:       stack,
	}, nil
}
