package port

import (
	"context"
	"encoding/json"
)

// AnalyzeInput carries the content for one provider call. Visual documents
// (PDF, images) are sent as FileBytes with their content type; text pages
// and spreadsheet batches are sent as Text. Prompt is built by the caller
// so that page-range and batch instructions stay with the orchestrator.
type AnalyzeInput struct {
	FileBytes   []byte
	ContentType string
	Text        string
	Prompt      string
}

// AnalyzeOutput is the structured result of one provider call.
// StructuredData holds the provider's JSON object; RawText holds the
// unparsed model text for compact-format responses.
type AnalyzeOutput struct {
	StructuredData json.RawMessage
	RawText        string
	ModelUsed      string
	PromptUsed     string
}

// ModelProvider abstracts the generative text/vision model that turns
// document content into structured product data.
type ModelProvider interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error)
}
