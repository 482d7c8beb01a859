package provider

import (
	"fmt"
	"strings"
)

// PromptOptions parameterize the extraction prompt for one provider call.
type PromptOptions struct {
	Currency    string
	Language    string
	MaxProducts int
	// PageStart/PageEnd restrict extraction to a page range of a multi-page
	// document; both zero means the whole document.
	PageStart int
	PageEnd   int
	// Compact requests the terse pipe-delimited line format instead of the
	// JSON envelope.
	Compact bool
}

// BuildExtractionPrompt returns the prompt for supplier price-list
// extraction. The provider must answer with raw JSON matching the partial
// result envelope.
func BuildExtractionPrompt(opts PromptOptions) string {
	if opts.Compact {
		return buildCompactPrompt(opts)
	}

	var b strings.Builder
	b.WriteString(`You are a supplier price-list extraction assistant. Analyze the provided document and extract EVERY product with its price and unit.

IMPORTANT INSTRUCTIONS:
- Extract ALL products. Do not skip, summarize, or omit any rows.
- Keep product names exactly as written in the document, including the original language.
- Keep prices verbatim as strings (e.g. "Rp 10.000", "15k"); do not convert them.
- Use null for a missing price or unit rather than guessing.
- The "confidence" value is your certainty for that product row, between 0.0 and 1.0.
`)
	if opts.PageStart > 0 && opts.PageEnd >= opts.PageStart {
		fmt.Fprintf(&b, "- Only extract products that appear on pages %d through %d of the document; ignore every other page.\n", opts.PageStart, opts.PageEnd)
	}
	if opts.MaxProducts > 0 {
		fmt.Fprintf(&b, "- Extract at most %d products.\n", opts.MaxProducts)
	}
	if opts.Currency != "" {
		fmt.Fprintf(&b, "- When the document does not state a currency, assume %s.\n", opts.Currency)
	}
	if opts.Language != "" {
		fmt.Fprintf(&b, "- Product names are most likely written in language code %q.\n", opts.Language)
	}

	b.WriteString(`
Return ONLY valid JSON with no markdown formatting, no code fences, no explanation — just the raw JSON object:
{
  "document_type": "price_list | invoice | catalog | order | unknown",
  "supplier_name": "",
  "supplier_contact": "",
  "currency": "",
  "language": "",
  "products": [
    {"name": "", "price": "", "unit": "", "category": "", "confidence": 0.0}
  ]
}

If a field is not present in the document, use empty string for text and null for price/unit.`)
	return b.String()
}

func buildCompactPrompt(opts PromptOptions) string {
	var b strings.Builder
	b.WriteString(`You are a supplier price-list extraction assistant. Extract EVERY product from the provided content.

Respond with ONE line per product in exactly this pipe-delimited format, nothing else:
name|price|unit|category|confidence

- Keep names and prices verbatim from the document.
- Leave a field empty when it is not present (keep the pipes).
- confidence is your certainty for that row, between 0.0 and 1.0.
- No headers, no numbering, no markdown.
`)
	if opts.MaxProducts > 0 {
		fmt.Fprintf(&b, "- Extract at most %d products.\n", opts.MaxProducts)
	}
	if opts.Currency != "" {
		fmt.Fprintf(&b, "- Assume currency %s when the document states none.\n", opts.Currency)
	}
	return b.String()
}
