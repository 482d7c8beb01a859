// Command seeddict converts the embedded dictionary seed into a SQL seed
// file for the PostgreSQL dictionary repository.
// Usage: go run ./cmd/seeddict
// Output: db/seeds/dictionary_entries.sql
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"suplio/internal/dictionary"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outPath := "db/seeds/dictionary_entries.sql"

	entries, err := dictionary.SeedEntries()
	if err != nil {
		return fmt.Errorf("loading embedded seed: %w", err)
	}

	var b strings.Builder
	b.WriteString("-- Dictionary seed generated from internal/dictionary/seed.yaml.\n")
	b.WriteString("-- Re-run cmd/seeddict after editing the seed file.\n\n")
	b.WriteString("INSERT INTO dictionary_entries (id, kind, source, target, language, conversion_factor, category) VALUES\n")

	for i, e := range entries {
		fmt.Fprintf(&b, "    ('%s', '%s', '%s', '%s', '%s', %g, '%s')",
			e.ID, e.Kind, sqlEscape(e.Source), sqlEscape(e.Target), e.Language, e.ConversionFactor, sqlEscape(e.Category))
		if i < len(entries)-1 {
			b.WriteString(",\n")
		}
	}
	b.WriteString("\nON CONFLICT (kind, source) DO UPDATE SET\n")
	b.WriteString("    target = EXCLUDED.target,\n")
	b.WriteString("    conversion_factor = EXCLUDED.conversion_factor,\n")
	b.WriteString("    category = EXCLUDED.category;\n")

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return err
	}
	log.Printf("wrote %d entries to %s", len(entries), outPath)
	return nil
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
