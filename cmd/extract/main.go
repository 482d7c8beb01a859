// Command extract runs one document through the full extraction and
// normalization pipeline and prints the result as JSON.
// Usage: go run ./cmd/extract -file pricelist.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"suplio/internal/config"
	"suplio/internal/dictionary"
	"suplio/internal/domain"
	"suplio/internal/extract"
	"suplio/internal/match"
	"suplio/internal/normalize"
	"suplio/internal/port"
	"suplio/internal/provider"
	"suplio/internal/provider/claude"
	"suplio/internal/provider/gemini"
	"suplio/internal/provider/openai"
	"suplio/internal/repository/memory"
	"suplio/internal/repository/postgres"
	"suplio/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		filePath    = flag.String("file", "", "path to the document to extract (required)")
		contentType = flag.String("content-type", "", "override the detected content type")
		strategy    = flag.String("strategy", "", "force a strategy: single, paged, batched, compact")
		maxProducts = flag.Int("max-products", 0, "cap the number of extracted products (0 = no cap)")
		currency    = flag.String("currency", "", "assumed currency when the document states none")
		language    = flag.String("language", "", "expected document language code")
		catalogPath = flag.String("catalog", "", "JSON catalog shortlist to match extracted products against")
		outPath     = flag.String("out", "", "write JSON result to this file instead of stdout")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	registerProviders()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	modelProvider, err := buildProviderChain(cfg)
	if err != nil {
		return err
	}

	store, err := buildDictionaryStore(ctx, cfg)
	if err != nil {
		return err
	}

	normalizer := normalize.NewNormalizer(store)
	svc := service.NewExtractionService(modelProvider, normalizer, cfg)

	data, err := os.ReadFile(*filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *filePath, err)
	}

	doc := domain.Document{
		FileName:    filepath.Base(*filePath),
		ContentType: *contentType,
		Bytes:       data,
	}

	out, err := svc.ExtractAndNormalize(ctx, doc, extract.Options{
		MaxProducts: *maxProducts,
		Strategy:    domain.Strategy(*strategy),
		Currency:    *currency,
		Language:    *language,
	})
	if err != nil {
		return fmt.Errorf("extracting %s: %w", doc.FileName, err)
	}

	result := struct {
		*service.ExtractionOutput
		Matches []domain.MatchCandidate `json:"matches,omitempty"`
	}{ExtractionOutput: out}

	if *catalogPath != "" {
		catalog, err := loadCatalog(*catalogPath)
		if err != nil {
			return err
		}
		matching := service.NewMatchingService(match.NewMatcher(cfg.Matching.Threshold), normalizer)
		for _, product := range out.Products {
			result.Matches = append(result.Matches, matching.FindBestMatch(product, catalog))
		}
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if *outPath != "" {
		return os.WriteFile(*outPath, append(encoded, '\n'), 0o644)
	}
	fmt.Println(string(encoded))
	return nil
}

func registerProviders() {
	provider.Register("claude", func(cfg *config.ProviderSettings) (port.ModelProvider, error) {
		return claude.NewProvider(cfg), nil
	})
	provider.Register("openai", func(cfg *config.ProviderSettings) (port.ModelProvider, error) {
		return openai.NewProvider(cfg), nil
	})
	provider.Register("gemini", func(cfg *config.ProviderSettings) (port.ModelProvider, error) {
		return gemini.NewProvider(cfg), nil
	})
}

// buildProviderChain wires the configured providers into a fallback chain,
// or returns the primary directly when it is the only one configured.
func buildProviderChain(cfg *config.Config) (port.ModelProvider, error) {
	chain := cfg.Provider.Chain()
	built := make([]port.ModelProvider, 0, len(chain))
	names := make([]string, 0, len(chain))
	for _, settings := range chain {
		p, err := provider.New(settings)
		if err != nil {
			return nil, err
		}
		built = append(built, p)
		names = append(names, settings.Provider)
	}
	if len(built) == 1 {
		return built[0], nil
	}
	return provider.NewFallbackProvider(built, names), nil
}

// buildDictionaryStore loads the dictionary from PostgreSQL when a database
// host is configured, and from the embedded seed otherwise.
func buildDictionaryStore(ctx context.Context, cfg *config.Config) (*dictionary.Store, error) {
	var repo port.DictionaryRepository
	if cfg.DB.Host != "" {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		repo = postgres.NewDictionaryRepo(db)
	} else {
		entries, err := dictionary.SeedEntries()
		if err != nil {
			return nil, fmt.Errorf("loading embedded seed: %w", err)
		}
		repo = memory.NewSeededDictionaryRepo(entries)
	}

	store := dictionary.NewStore(repo, cfg.Dictionary.RefreshTTL)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// loadCatalog reads a JSON array of catalog products used as the match
// shortlist.
func loadCatalog(path string) ([]domain.CatalogProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var catalog []domain.CatalogProduct
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decoding catalog %s: %w", path, err)
	}
	return catalog, nil
}
