package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"suplio/internal/config"
	"suplio/internal/domain"
	"suplio/internal/extract"
	"suplio/internal/normalize"
	"suplio/internal/port"
	"suplio/internal/provider"
)

// ExtractionOutput is the full result of one extract-and-normalize run.
type ExtractionOutput struct {
	Extraction domain.ExtractionResult    `json:"extraction"`
	Products   []domain.NormalizedProduct `json:"products"`
	// DetectedLanguage is the majority language of the product names, which
	// may differ from the provider-reported document language.
	DetectedLanguage string `json:"detected_language"`
}

// ExtractionService orchestrates one document through strategy selection,
// provider calls, merging and normalization.
type ExtractionService struct {
	provider   port.ModelProvider
	normalizer *normalize.Normalizer
	cfg        *config.Config
}

// NewExtractionService creates an ExtractionService.
func NewExtractionService(p port.ModelProvider, n *normalize.Normalizer, cfg *config.Config) *ExtractionService {
	return &ExtractionService{provider: p, normalizer: n, cfg: cfg}
}

// ExtractAndNormalize runs the whole pipeline for one document: detect the
// file type, probe its shape, select a strategy, fan the units out to the
// model provider, merge the partial results and normalize every product.
func (s *ExtractionService) ExtractAndNormalize(ctx context.Context, doc domain.Document, opts extract.Options) (*ExtractionOutput, error) {
	if len(doc.Bytes) == 0 && doc.Text == "" && len(doc.Pages) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	ft, err := extract.DetectFileType(doc)
	if err != nil {
		return nil, fmt.Errorf("detecting file type of %q: %w", doc.FileName, err)
	}

	meta, content, err := extract.Probe(doc, ft)
	if err != nil {
		return nil, fmt.Errorf("probing %q: %w", doc.FileName, err)
	}

	plan := extract.SelectStrategy(meta, opts, extract.Limits{
		PageCap:          s.cfg.Extraction.PageCap,
		BatchSize:        s.cfg.Extraction.BatchSize,
		CompactThreshold: s.cfg.Extraction.CompactThreshold,
	})
	log.Printf("service.ExtractionService: %s (%s) -> strategy=%s pages=%d rows=%d",
		doc.FileName, ft, plan.Strategy, meta.PageCount, meta.RowCount)

	units, err := extract.Split(doc, ft, plan, content)
	if err != nil {
		return nil, fmt.Errorf("splitting %q: %w", doc.FileName, err)
	}
	if len(units) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	currency := opts.Currency
	if currency == "" {
		currency = s.cfg.Extraction.DefaultCurrency
	}
	language := opts.Language
	if language == "" {
		language = s.cfg.Extraction.DefaultLanguage
	}

	executor := extract.NewExecutor(s.provider, s.execConfig(opts))
	results := executor.Run(ctx, units, func(u extract.Unit) string {
		return provider.BuildExtractionPrompt(provider.PromptOptions{
			Currency:    currency,
			Language:    language,
			MaxProducts: s.maxProducts(opts),
			PageStart:   u.PageStart,
			PageEnd:     u.PageEnd,
			Compact:     plan.Strategy == domain.StrategyCompact,
		})
	})

	merged := extract.Merge(results, plan, meta, currency, language)

	normalized := make([]domain.NormalizedProduct, 0, len(merged.Products))
	idCount, unresolved := 0, 0
	for _, raw := range merged.Products {
		product, lang := s.normalizer.Normalize(raw, merged.Metadata.Currency)
		if lang == "id" {
			idCount++
		}
		if product.Unit != "" && !product.UnitResolved {
			unresolved++
		}
		normalized = append(normalized, product)
	}
	if unresolved > 0 {
		log.Printf("service.ExtractionService: %s has %d products with unresolved units", doc.FileName, unresolved)
	}

	detected := "en"
	if idCount*2 >= len(normalized) && len(normalized) > 0 {
		detected = "id"
	}
	if len(normalized) == 0 {
		detected = merged.Metadata.Language
	}
	merged.Metadata.Language = detected

	log.Printf("service.ExtractionService: %s extracted %d products, quality=%.2f",
		doc.FileName, len(normalized), merged.ExtractionQuality)

	return &ExtractionOutput{
		Extraction:       merged,
		Products:         normalized,
		DetectedLanguage: detected,
	}, nil
}

func (s *ExtractionService) execConfig(opts extract.Options) extract.ExecConfig {
	cfg := extract.ExecConfig{
		Concurrency:   s.cfg.Extraction.Concurrency,
		CallTimeout:   s.cfg.Extraction.Timeout(),
		MaxRetries:    s.cfg.Extraction.MaxRetries,
		Backoff:       s.cfg.Extraction.Backoff(),
		RatePerSecond: s.cfg.Extraction.RatePerSecond,
	}
	if opts.Timeout > 0 {
		cfg.CallTimeout = time.Duration(opts.Timeout) * time.Second
	}
	switch {
	case opts.Retries < 0:
		cfg.MaxRetries = 0
	case opts.Retries > 0:
		cfg.MaxRetries = opts.Retries
	}
	return cfg
}

func (s *ExtractionService) maxProducts(opts extract.Options) int {
	if opts.MaxProducts > 0 {
		return opts.MaxProducts
	}
	return s.cfg.Extraction.MaxProducts
}
