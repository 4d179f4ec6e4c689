// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// openAIProvider implements the Provider interface using the OpenAI
// chat completions API. Mistral reuses it with a different base URL.
type openAIProvider struct {
	name   string
	config ProviderConfig
	client *openai.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	return newChatProvider("openai", cfg)
}

// newChatProvider builds a go-openai client for any OpenAI-compatible
// chat completions endpoint.
func newChatProvider(name string, cfg ProviderConfig) *openAIProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}

	return &openAIProvider{
		name:   name,
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (p *openAIProvider) Name() string { return p.name }

// Generate sends a chat completion request and returns the assistant's
// response text.
func (p *openAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.config.Model,
		Messages: messages,
	})
	if err != nil {
		return "", p.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned: %w", p.name, ErrEmptyResponse)
	}
	if resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%s: no text in response: %w", p.name, ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// wrapError maps go-openai errors onto *Error. APIError is returned when the
// server sent a JSON error body; RequestError when it did not.
func (p *openAIProvider) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Type
		if s, ok := apiErr.Code.(string); ok && s != "" {
			code = s
		}
		return &Error{Provider: p.name, StatusCode: apiErr.HTTPStatusCode, Code: code, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Provider: p.name, StatusCode: reqErr.HTTPStatusCode, Message: reqErr.HTTPStatus, Err: err}
	}
	return transportError(p.name, err)
}
