package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suplio/internal/config"
	"suplio/internal/port"
	"suplio/internal/provider"
	claude "suplio/internal/provider/claude"
)

func newTestProvider(serverURL string) *claude.Provider {
	cfg := &config.ProviderSettings{
		Provider:     "claude",
		APIKey:       "test-api-key",
		DefaultModel: "claude-sonnet-4-20250514",
		TimeoutSecs:  30,
	}
	return claude.NewProviderWithEndpoint(cfg, serverURL)
}

func TestClaudeProvider_Analyze_PDF_Success(t *testing.T) {
	responseBody := map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": `{"document_type":"price_list","supplier_name":"CV Sumber Segar","currency":"IDR","language":"id","products":[{"name":"Wortel","price":"15k","unit":"kg","category":"vegetable","confidence":0.9}]}`,
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		content := msg["content"].([]interface{})
		assert.Len(t, content, 2)

		docBlock := content[0].(map[string]interface{})
		assert.Equal(t, "document", docBlock["type"])

		textBlock := content[1].(map[string]interface{})
		assert.Equal(t, "text", textBlock["type"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	p := newTestProvider(server.URL)

	result, err := p.Analyze(context.Background(), port.AnalyzeInput{
		FileBytes:   []byte("%PDF-1.4 test content"),
		ContentType: "application/pdf",
		Prompt:      "extract every product",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "claude-sonnet-4-20250514", result.ModelUsed)
	assert.Equal(t, "extract every product", result.PromptUsed)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(result.StructuredData, &data))
	assert.Equal(t, "price_list", data["document_type"])
}

func TestClaudeProvider_Analyze_TextInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)

		messages := reqBody["messages"].([]interface{})
		content := messages[0].(map[string]interface{})["content"].([]interface{})
		assert.Len(t, content, 2)

		textBlock := content[0].(map[string]interface{})
		assert.Equal(t, "text", textBlock["type"])
		assert.Contains(t, textBlock["text"], "DOCUMENT CONTENT:")
		assert.Contains(t, textBlock["text"], "Wortel,15000,kg")

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{{"type": "text", "text": `{"products":[]}`}},
		})
	}))
	defer server.Close()

	p := newTestProvider(server.URL)

	result, err := p.Analyze(context.Background(), port.AnalyzeInput{
		Text:   "Wortel,15000,kg",
		Prompt: "extract",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[]}`, string(result.StructuredData))
}

func TestClaudeProvider_Analyze_StripsCodeFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": "```json\n{\"products\":[]}\n```"},
			},
		})
	}))
	defer server.Close()

	p := newTestProvider(server.URL)

	result, err := p.Analyze(context.Background(), port.AnalyzeInput{Text: "x", Prompt: "extract"})
	require.NoError(t, err)
	assert.Equal(t, `{"products":[]}`, result.RawText)
	assert.JSONEq(t, `{"products":[]}`, string(result.StructuredData))
}

func TestClaudeProvider_Analyze_NonJSONAnswerKeptAsRawText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": "Wortel|15k|kg|vegetable|0.9"},
			},
		})
	}))
	defer server.Close()

	p := newTestProvider(server.URL)

	result, err := p.Analyze(context.Background(), port.AnalyzeInput{Text: "x", Prompt: "extract"})
	require.NoError(t, err)
	assert.Empty(t, result.StructuredData)
	assert.Equal(t, "Wortel|15k|kg|vegetable|0.9", result.RawText)
}

func TestClaudeProvider_Analyze_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "17")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)

	_, err := p.Analyze(context.Background(), port.AnalyzeInput{Text: "x", Prompt: "extract"})
	require.Error(t, err)

	var rlErr *provider.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, 17*time.Second, rlErr.RetryAfter)
}

func TestClaudeProvider_Analyze_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"type":"overloaded"}}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)

	_, err := p.Analyze(context.Background(), port.AnalyzeInput{Text: "x", Prompt: "extract"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClaudeProvider_Analyze_EmptyInput(t *testing.T) {
	p := newTestProvider("http://unused.invalid")

	_, err := p.Analyze(context.Background(), port.AnalyzeInput{Prompt: "extract"})
	assert.Error(t, err)
}
