package provider

import "strings"

// StripCodeFences removes a leading/trailing markdown code fence from model
// output. Providers are instructed to return raw JSON, but some models wrap
// it anyway.
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
