package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"suplio/internal/provider"
)

func TestBuildExtractionPrompt_Envelope(t *testing.T) {
	prompt := provider.BuildExtractionPrompt(provider.PromptOptions{Currency: "IDR", Language: "id"})

	assert.Contains(t, prompt, `"document_type"`)
	assert.Contains(t, prompt, `"products"`)
	assert.Contains(t, prompt, "assume IDR")
	assert.Contains(t, prompt, `"id"`)
	assert.NotContains(t, prompt, "pages")
}

func TestBuildExtractionPrompt_PageRange(t *testing.T) {
	prompt := provider.BuildExtractionPrompt(provider.PromptOptions{PageStart: 3, PageEnd: 5})
	assert.Contains(t, prompt, "pages 3 through 5")
}

func TestBuildExtractionPrompt_MaxProducts(t *testing.T) {
	prompt := provider.BuildExtractionPrompt(provider.PromptOptions{MaxProducts: 50})
	assert.Contains(t, prompt, "at most 50 products")
}

func TestBuildExtractionPrompt_Compact(t *testing.T) {
	prompt := provider.BuildExtractionPrompt(provider.PromptOptions{Compact: true, Currency: "IDR"})
	assert.Contains(t, prompt, "name|price|unit|category|confidence")
	assert.NotContains(t, prompt, `"document_type"`)
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, provider.StripCodeFences(tc.in), "input %q", tc.in)
	}
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, provider.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, provider.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, provider.ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
}
