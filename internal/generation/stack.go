// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

// Stack identifies the framework/style combination a component is generated
// for. The zero value means no stack was selected.
type Stack string

// Supported target stacks.
const (
	StackHTMLCSS               Stack = "html-css"
	StackHTMLTailwind          Stack = "html-tailwind"
	StackHTMLBootstrap         Stack = "html-bootstrap"
	StackHTMLCSSJS             Stack = "html-css-js"
	StackHTMLBootstrapTailwind Stack = "html-bootstrap-tailwind"
)

// StackOption pairs a stack with its display label for select inputs.
type StackOption struct {
	Value Stack
	Label string
}

// stacks is the fixed, ordered set of selectable stacks.
var stacks = []StackOption{
	{StackHTMLCSS, "HTML + CSS"},
	{StackHTMLTailwind, "HTML + Tailwind CSS"},
	{StackHTMLBootstrap, "HTML + Bootstrap"},
	{StackHTMLCSSJS, "HTML + CSS + JS"},
	{StackHTMLBootstrapTailwind, "HTML + Bootstrap + Tailwind"},
}

// Stacks returns the selectable stacks in display order.
func Stacks() []StackOption {
	out := make([]StackOption, len(stacks))
	copy(out, stacks)
	return out
}

// ParseStack resolves a submitted stack identifier. Unknown or empty values
// return the zero Stack and false.
func ParseStack(s string) (Stack, bool) {
	for _, opt := range stacks {
		if string(opt.Value) == s {
			return opt.Value, true
		}
	}
	return "", false
}

// Label returns the display label, or the raw identifier if unknown.
func (s Stack) Label() string {
	for _, opt := range stacks {
		if opt.Value == s {
			return opt.Label
		}
	}
	return string(s)
}
