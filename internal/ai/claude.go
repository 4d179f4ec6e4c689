// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// newClaude creates an Anthropic provider backed by the OpenAI-compatible
// chat completions endpoint of the Claude API. Error bodies there use the
// OpenAI shape, with Anthropic's error types ("rate_limit_error",
// "overloaded_error") in the type field.
func newClaude(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-5"
	}
	return newChatProvider("claude", cfg)
}
