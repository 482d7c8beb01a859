package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FlexiblePrice holds a provider-reported price verbatim. Providers return
// prices as strings ("Rp 10.000", "15k"), bare numbers, or null; all three
// decode into the raw textual form for downstream parsing.
type FlexiblePrice string

func (p *FlexiblePrice) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = FlexiblePrice(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = FlexiblePrice(n.String())
	return nil
}

func (p FlexiblePrice) String() string { return string(p) }

// RawProductObservation is one product row as reported by the model provider
// for a single page or batch. Confidence is provider-reported.
type RawProductObservation struct {
	Name       string        `json:"name"`
	Price      FlexiblePrice `json:"price"`
	Unit       string        `json:"unit"`
	Category   string        `json:"category"`
	Confidence float64       `json:"confidence"`
}

// NormalizedProduct is the canonical form of a raw observation. Confidence
// here is recomputed from linguistic clarity signals, independent of the
// provider's score.
type NormalizedProduct struct {
	OriginalName   string   `json:"original_name"`
	StandardName   string   `json:"standard_name"`
	LocalName      string   `json:"local_name,omitempty"`
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory,omitempty"`
	Price          float64  `json:"price"`
	PriceKnown     bool     `json:"price_known"`
	Currency       string   `json:"currency"`
	Quantity       float64  `json:"quantity"`
	Unit           string   `json:"unit"`
	UnitResolved   bool     `json:"unit_resolved"`
	UnitMultiplier float64  `json:"unit_multiplier"`
	Brand          string   `json:"brand,omitempty"`
	Grade          string   `json:"grade,omitempty"`
	Origin         string   `json:"origin,omitempty"`
	Attributes     []string `json:"attributes,omitempty"`
	Confidence     float64  `json:"confidence"`
}

// ExtractionMetadata describes how a document was processed.
type ExtractionMetadata struct {
	TotalPages       int      `json:"total_pages"`
	Language         string   `json:"language"`
	Currency         string   `json:"currency"`
	ProcessingMethod Strategy `json:"processing_method"`
	TotalBatches     int      `json:"total_batches,omitempty"`
	BatchSize        int      `json:"batch_size,omitempty"`
}

// ExtractionResult is the document-level outcome of one extraction run.
// Products preserve the page order in which they were first observed.
type ExtractionResult struct {
	DocumentType      DocumentType            `json:"document_type"`
	SupplierName      string                  `json:"supplier_name,omitempty"`
	SupplierContact   string                  `json:"supplier_contact,omitempty"`
	Products          []RawProductObservation `json:"products"`
	ExtractionQuality float64                 `json:"extraction_quality"`
	Metadata          ExtractionMetadata      `json:"metadata"`
}

// Document is the input handed to the extraction core. Exactly one of Bytes
// or Text carries the content; Pages optionally holds pre-split text pages.
type Document struct {
	FileName    string
	ContentType string
	Bytes       []byte
	Text        string
	Pages       []string
}

// CatalogProduct is the shortlist entry the matcher compares against. The
// catalog itself is owned by an external collaborator.
type CatalogProduct struct {
	ID           uuid.UUID `json:"id"`
	StandardName string    `json:"standard_name"`
	Unit         string    `json:"unit"`
	Category     string    `json:"category"`
}

// MatchCandidate is a proposed identity link between a normalized product
// and an existing catalog product. BestMatchID is nil when no known product
// scored above the matcher threshold.
type MatchCandidate struct {
	Product     NormalizedProduct `json:"product"`
	BestMatchID *uuid.UUID        `json:"best_match_id,omitempty"`
	Similarity  float64           `json:"similarity"`
}

// DictionaryEntry is one row of a translation table. Language entries map a
// source word to its canonical target word; unit entries additionally carry
// a conversion factor into the canonical unit.
type DictionaryEntry struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Kind             EntryKind `db:"kind" json:"kind"`
	Source           string    `db:"source" json:"source"`
	Target           string    `db:"target" json:"target"`
	Language         string    `db:"language" json:"language,omitempty"`
	ConversionFactor float64   `db:"conversion_factor" json:"conversion_factor,omitempty"`
	Category         string    `db:"category" json:"category,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// ClampConfidence bounds a confidence score to [0, 1].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
