package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateContentSendsRequest(t *testing.T) {
	var got GenerateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-test:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "secret" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello "},{"text":"world"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL))
	budget := 0
	resp, err := c.GenerateContent(context.Background(), "gemini-test", GenerateContentRequest{
		Contents:         []Content{{Parts: []Part{{Text: "prompt"}}}},
		GenerationConfig: &GenerationConfig{ThinkingConfig: &ThinkingConfig{ThinkingBudget: &budget}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Hello world" {
		t.Fatalf("unexpected text %q", resp.Text())
	}
	if got.Contents[0].Parts[0].Text != "prompt" {
		t.Fatalf("prompt not sent: %+v", got)
	}
	if got.GenerationConfig.ThinkingConfig.ThinkingBudget == nil || *got.GenerationConfig.ThinkingConfig.ThinkingBudget != 0 {
		t.Fatalf("expected explicit zero thinking budget")
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	c := NewClient("bad", WithBaseURL(srv.URL))
	_, err := c.GenerateContent(context.Background(), "m", GenerateContentRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != 400 || apiErr.Message != "API key not valid" || apiErr.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error fields: %+v", apiErr)
	}
}

func TestInlineAudio(t *testing.T) {
	var resp GenerateContentResponse
	if resp.InlineAudio() != "" {
		t.Fatal("expected empty audio for empty response")
	}
	if err := json.Unmarshal([]byte(`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/L16;codec=pcm;rate=24000","data":"AAA="}}]}}]}`), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.InlineAudio() != "AAA=" {
		t.Fatalf("unexpected audio %q", resp.InlineAudio())
	}
}
