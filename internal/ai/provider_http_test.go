// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The server is closed when the test ends.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func openAISuccessBody(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": text}, "finish_reason": "stop"},
		},
	})
	return b
}

func geminiSuccessBody(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}}},
		},
	})
	return b
}

func geminiErrorBody(code int, status string) []byte {
	b, _ := json.Marshal(map[string]any{
		"error": map[string]any{"code": code, "message": "upstream says no", "status": status},
	})
	return b
}

// requireAIError asserts err is an *Error and returns it.
func requireAIError(t *testing.T, err error) *Error {
	t.Helper()
	var aiErr *Error
	if !errors.As(err, &aiErr) {
		t.Fatalf("expected *ai.Error, got %T: %v", err, err)
	}
	return aiErr
}

// =====================================================================
// OpenAI / Mistral (go-openai)
// =====================================================================

func TestOpenAIGenerate_Success(t *testing.T) {
	want := "```html\n<div>hi</div>\n```"
	srv := newTestServer(t, http.StatusOK, openAISuccessBody(want))

	p := newOpenAI(ProviderConfig{APIKey: "test-key", Model: "gpt-4o", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), "You build UI.", "A button")
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Generate: got %q, want %q", got, want)
	}
}

func TestOpenAIGenerate_SendsMessages(t *testing.T) {
	var capturedAuth string
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAISuccessBody("ok"))
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test-12345", Model: "gpt-4o", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), "system prompt", "user prompt"); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if capturedAuth != "Bearer sk-test-12345" {
		t.Errorf("Authorization header: got %q", capturedAuth)
	}
	if captured.Model != "gpt-4o" {
		t.Errorf("model: got %q, want %q", captured.Model, "gpt-4o")
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("messages: got %d, want 2", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != "system prompt" {
		t.Errorf("system message: got %+v", captured.Messages[0])
	}
	if captured.Messages[1].Role != "user" || captured.Messages[1].Content != "user prompt" {
		t.Errorf("user message: got %+v", captured.Messages[1])
	}
}

func TestOpenAIGenerate_QuotaError(t *testing.T) {
	body := []byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`)
	srv := newTestServer(t, http.StatusTooManyRequests, body)

	p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), "s", "u")

	aiErr := requireAIError(t, err)
	if aiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode: got %d, want 429", aiErr.StatusCode)
	}
	if aiErr.Code != "insufficient_quota" {
		t.Errorf("Code: got %q, want %q", aiErr.Code, "insufficient_quota")
	}
	if aiErr.Provider != "openai" {
		t.Errorf("Provider: got %q", aiErr.Provider)
	}
}

func TestOpenAIGenerate_EmptyChoices(t *testing.T) {
	body := []byte(`{"id":"x","object":"chat.completion","choices":[]}`)
	srv := newTestServer(t, http.StatusOK, body)

	p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), "s", "u")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAIGenerate_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: url})
	_, err := p.Generate(context.Background(), "s", "u")

	aiErr := requireAIError(t, err)
	if aiErr.StatusCode != 0 {
		t.Errorf("StatusCode: got %d, want 0 for transport failure", aiErr.StatusCode)
	}
}

func TestOpenAIDefaults(t *testing.T) {
	p := newOpenAI(ProviderConfig{APIKey: "k"})
	if p.config.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL: got %q", p.config.BaseURL)
	}
	if p.config.Model == "" {
		t.Error("expected a default model")
	}
	if p.Name() != "openai" {
		t.Errorf("Name: got %q", p.Name())
	}
}

func TestMistralGenerate_ServiceUnavailable(t *testing.T) {
	body := []byte(`{"error":{"message":"service unavailable","type":"service_unavailable"}}`)
	srv := newTestServer(t, http.StatusServiceUnavailable, body)

	p := newMistral(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), "s", "u")

	aiErr := requireAIError(t, err)
	if aiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode: got %d, want 503", aiErr.StatusCode)
	}
	if aiErr.Provider != "mistral" {
		t.Errorf("Provider: got %q, want mistral", aiErr.Provider)
	}
}

func TestMistralDefaults(t *testing.T) {
	p := newMistral(ProviderConfig{APIKey: "k"})
	if p.config.BaseURL != "https://api.mistral.ai/v1" {
		t.Errorf("BaseURL: got %q", p.config.BaseURL)
	}
	if p.Name() != "mistral" {
		t.Errorf("Name: got %q", p.Name())
	}
}

// =====================================================================
// Claude (OpenAI-compatible endpoint)
// =====================================================================

func TestClaudeGenerate_VerifiesRequest(t *testing.T) {
	var (
		path, auth string
		reqBody    struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &reqBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAISuccessBody("<section>ok</section>"))
	}))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "sk-ant-test", Model: "claude-test", BaseURL: srv.URL})
	got, err := p.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != "<section>ok</section>" {
		t.Errorf("Generate: got %q", got)
	}
	if path != "/chat/completions" {
		t.Errorf("path: got %q, want /chat/completions", path)
	}
	if auth != "Bearer sk-ant-test" {
		t.Errorf("Authorization: got %q", auth)
	}
	if reqBody.Model != "claude-test" {
		t.Errorf("model: got %q", reqBody.Model)
	}
	if len(reqBody.Messages) != 2 || reqBody.Messages[0].Role != "system" || reqBody.Messages[1].Content != "user prompt" {
		t.Errorf("messages: got %+v", reqBody.Messages)
	}
}

func TestClaudeGenerate_ErrorTypes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{"rate limit", http.StatusTooManyRequests, `{"error":{"type":"rate_limit_error","message":"slow down"}}`, "rate_limit_error"},
		{"overloaded", 529, `{"error":{"type":"overloaded_error","message":"Overloaded"}}`, "overloaded_error"},
		{"plain body", http.StatusInternalServerError, `boom`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, []byte(tt.body))
			p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})

			_, err := p.Generate(context.Background(), "s", "u")
			aiErr := requireAIError(t, err)
			if aiErr.StatusCode != tt.status {
				t.Errorf("StatusCode: got %d, want %d", aiErr.StatusCode, tt.status)
			}
			if aiErr.Code != tt.wantCode {
				t.Errorf("Code: got %q, want %q", aiErr.Code, tt.wantCode)
			}
		})
	}
}

func TestClaudeGenerate_CancelledContext(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, openAISuccessBody("late"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Generate(ctx, "s", "u")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestClaudeDefaults(t *testing.T) {
	p := newClaude(ProviderConfig{APIKey: "k"})
	if p.Name() != "claude" {
		t.Errorf("Name: got %q", p.Name())
	}
	if p.config.BaseURL != "https://api.anthropic.com/v1" {
		t.Errorf("BaseURL: got %q", p.config.BaseURL)
	}
	if p.config.Model != "claude-sonnet-4-5" {
		t.Errorf("Model: got %q", p.config.Model)
	}
}

// =====================================================================
// Gemini (Gen AI SDK)
// =====================================================================

func TestGeminiGenerate_Success(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write(geminiSuccessBody("```html\n<p>gem</p>\n```"))
	}))
	defer srv.Close()

	p, err := newGemini(ProviderConfig{APIKey: "k", Model: "test-model", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("newGemini: %v", err)
	}

	got, err := p.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != "```html\n<p>gem</p>\n```" {
		t.Errorf("Generate: got %q", got)
	}
	if path != "/v1beta/models/test-model:generateContent" {
		t.Errorf("path: got %q", path)
	}
}

func TestGeminiGenerate_APIErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		statusText string
	}{
		{"quota", http.StatusTooManyRequests, "RESOURCE_EXHAUSTED"},
		{"unavailable", http.StatusServiceUnavailable, "UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, geminiErrorBody(tt.status, tt.statusText))
			p, err := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("newGemini: %v", err)
			}

			_, err = p.Generate(context.Background(), "s", "u")
			aiErr := requireAIError(t, err)
			if aiErr.StatusCode != tt.status {
				t.Errorf("StatusCode: got %d, want %d", aiErr.StatusCode, tt.status)
			}
			if aiErr.Status != tt.statusText {
				t.Errorf("Status: got %q, want %q", aiErr.Status, tt.statusText)
			}
		})
	}
}

func TestGeminiGenerate_NoCandidates(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"candidates":[]}`))
	p, err := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("newGemini: %v", err)
	}

	_, err = p.Generate(context.Background(), "s", "u")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGeminiDefaults(t *testing.T) {
	p, err := newGemini(ProviderConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("newGemini: %v", err)
	}
	if p.config.Model != DefaultGeminiModel {
		t.Errorf("Model: got %q, want %q", p.config.Model, DefaultGeminiModel)
	}
	if p.Name() != "gemini" {
		t.Errorf("Name: got %q", p.Name())
	}
}

// =====================================================================
// Error formatting
// =====================================================================

func TestErrorMessage(t *testing.T) {
	err := &Error{Provider: "gemini", StatusCode: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}
	want := "gemini API error (status 429) RESOURCE_EXHAUSTED: quota"
	if err.Error() != want {
		t.Errorf("Error(): got %q, want %q", err.Error(), want)
	}

	cause := errors.New("dial tcp: refused")
	wrapped := transportError("claude", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("transportError should unwrap to its cause")
	}
}
