package extract

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"suplio/internal/domain"
)

// PartialResult is the validated shape of one unit's provider output.
type PartialResult struct {
	DocumentType    string                         `json:"document_type"`
	SupplierName    string                         `json:"supplier_name"`
	SupplierContact string                         `json:"supplier_contact"`
	Currency        string                         `json:"currency"`
	Language        string                         `json:"language"`
	Products        []domain.RawProductObservation `json:"products"`
}

// ValidationError reports a partial result that failed schema validation
// after all repair rules ran. The unit's products are dropped from the
// merge; the document is not failed.
type ValidationError struct {
	Unit int
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("unit %d failed validation: %v", e.Unit, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DecodePartial repairs, validates and unmarshals one unit's raw JSON
// output. The applied repair rule names are returned for logging.
func DecodePartial(unitIndex int, raw json.RawMessage) (*PartialResult, []string, error) {
	repaired, applied, err := repairPartial(raw)
	if err != nil {
		return nil, applied, &ValidationError{Unit: unitIndex, Err: err}
	}
	if err := validatePartial(repaired); err != nil {
		return nil, applied, &ValidationError{Unit: unitIndex, Err: err}
	}
	var partial PartialResult
	if err := json.Unmarshal(repaired, &partial); err != nil {
		return nil, applied, &ValidationError{Unit: unitIndex, Err: err}
	}
	return &partial, applied, nil
}

// DecodeCompact parses the pipe-delimited compact response format:
// one "name|price|unit|category|confidence" line per product.
func DecodeCompact(unitIndex int, text string) (*PartialResult, error) {
	partial := &PartialResult{DocumentType: string(domain.DocumentTypePriceList)}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		fields := strings.Split(line, "|")
		for len(fields) < 5 {
			fields = append(fields, "")
		}
		name := strings.TrimSpace(fields[0])
		if name == "" {
			continue
		}
		confidence := 0.5
		if c, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64); err == nil {
			confidence = domain.ClampConfidence(c)
		}
		partial.Products = append(partial.Products, domain.RawProductObservation{
			Name:       name,
			Price:      domain.FlexiblePrice(strings.TrimSpace(fields[1])),
			Unit:       strings.TrimSpace(fields[2]),
			Category:   strings.TrimSpace(fields[3]),
			Confidence: confidence,
		})
	}
	if len(partial.Products) == 0 {
		return nil, &ValidationError{Unit: unitIndex, Err: fmt.Errorf("compact response contained no product lines")}
	}
	return partial, nil
}

// Merge validates and combines the ordered unit results into one
// document-level result. Partial product lists are concatenated in unit
// order; cross-page dedup is deliberately left to the similarity matcher
// downstream.
func Merge(results []UnitResult, plan Plan, meta DocumentMeta, fallbackCurrency, fallbackLanguage string) domain.ExtractionResult {
	merged := domain.ExtractionResult{
		DocumentType: domain.DocumentTypeUnknown,
		Products:     []domain.RawProductObservation{},
		Metadata: domain.ExtractionMetadata{
			TotalPages:       meta.PageCount,
			ProcessingMethod: plan.Strategy,
		},
	}
	if plan.Strategy == domain.StrategyBatched || plan.Strategy == domain.StrategyCompact {
		merged.Metadata.TotalBatches = len(results)
		merged.Metadata.BatchSize = plan.BatchSize
	}
	if merged.Metadata.TotalPages == 0 {
		merged.Metadata.TotalPages = 1
	}

	succeeded := 0
	for _, r := range results {
		if r.Err != nil {
			log.Printf("extract.Merge: unit %d failed at provider: %v", r.Index, r.Err)
			continue
		}

		partial, err := decodeUnit(r, plan)
		if err != nil {
			log.Printf("extract.Merge: dropping unit %d: %v", r.Index, err)
			continue
		}

		succeeded++
		merged.Products = append(merged.Products, clampObservations(partial.Products)...)

		if merged.DocumentType == domain.DocumentTypeUnknown {
			if dt := domain.DocumentType(partial.DocumentType); domain.KnownDocumentTypes[dt] {
				merged.DocumentType = dt
			}
		}
		if merged.SupplierName == "" {
			merged.SupplierName = partial.SupplierName
		}
		if merged.SupplierContact == "" {
			merged.SupplierContact = partial.SupplierContact
		}
		if merged.Metadata.Currency == "" {
			merged.Metadata.Currency = partial.Currency
		}
		if merged.Metadata.Language == "" {
			merged.Metadata.Language = partial.Language
		}
	}

	if merged.Metadata.Currency == "" {
		merged.Metadata.Currency = fallbackCurrency
	}
	if merged.Metadata.Language == "" {
		merged.Metadata.Language = fallbackLanguage
	}

	merged.ExtractionQuality = quality(merged.Products, succeeded, len(results))
	return merged
}

func decodeUnit(r UnitResult, plan Plan) (*PartialResult, error) {
	if plan.Strategy == domain.StrategyCompact {
		return DecodeCompact(r.Index, r.Output.RawText)
	}
	if len(r.Output.StructuredData) == 0 {
		return nil, &ValidationError{Unit: r.Index, Err: fmt.Errorf("provider returned no JSON object")}
	}
	partial, applied, err := DecodePartial(r.Index, r.Output.StructuredData)
	if err != nil {
		return nil, err
	}
	if len(applied) > 0 {
		log.Printf("extract.Merge: unit %d repaired (%s)", r.Index, strings.Join(applied, ", "))
	}
	return partial, nil
}

func clampObservations(products []domain.RawProductObservation) []domain.RawProductObservation {
	for i := range products {
		products[i].Confidence = domain.ClampConfidence(products[i].Confidence)
	}
	return products
}

// quality scores the run as page success ratio weighted by the mean
// provider confidence across extracted products; zero when nothing was
// extracted from any unit.
func quality(products []domain.RawProductObservation, succeeded, total int) float64 {
	if len(products) == 0 || total == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range products {
		sum += p.Confidence
	}
	meanConfidence := sum / float64(len(products))
	return domain.ClampConfidence(float64(succeeded) / float64(total) * meanConfidence)
}
