// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no GEMINI_MODEL is configured.
const DefaultGeminiModel = "gemini-3-flash-preview"

// geminiProvider implements the Provider interface using the Google Gen AI
// SDK against the Gemini Developer API.
type geminiProvider struct {
	config ProviderConfig
	client *genai.Client
}

// newGemini creates a new Google Gemini provider. BaseURL is optional and
// only needed to point the SDK at a proxy or a test server.
func newGemini(cfg ProviderConfig) (*geminiProvider, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL, APIVersion: "v1beta"}
	}

	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &geminiProvider{config: cfg, client: client}, nil
}

func (p *geminiProvider) Name() string { return "gemini" }

// Generate sends a generateContent request with the system prompt as the
// system instruction and returns the text of the first candidate.
func (p *geminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var config *genai.GenerateContentConfig
	if systemPrompt != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			},
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.Model, genai.Text(userPrompt), config)
	if err != nil {
		return "", geminiError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: no candidates returned: %w", ErrEmptyResponse)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini: no text in response: %w", ErrEmptyResponse)
	}
	return b.String(), nil
}

// geminiError maps an SDK error onto *Error. The SDK reports HTTP failures
// as genai.APIError carrying the numeric code and the canonical status.
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Provider: "gemini", StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &Error{Provider: "gemini", StatusCode: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message, Err: err}
	}
	return transportError("gemini", err)
}
