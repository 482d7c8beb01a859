package dictionary

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"suplio/internal/domain"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Languages []seedLanguage `yaml:"languages"`
	Units     []seedUnit     `yaml:"units"`
}

type seedLanguage struct {
	Source   string `yaml:"source"`
	Target   string `yaml:"target"`
	Language string `yaml:"language"`
	Category string `yaml:"category"`
}

type seedUnit struct {
	Source   string  `yaml:"source"`
	Target   string  `yaml:"target"`
	Factor   float64 `yaml:"factor"`
	Category string  `yaml:"category"`
}

// SeedEntries parses the embedded default translation tables into
// dictionary entries. Source tokens are lowercased and trimmed.
func SeedEntries() ([]domain.DictionaryEntry, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("parsing dictionary seed: %w", err)
	}

	now := time.Now().UTC()
	entries := make([]domain.DictionaryEntry, 0, len(f.Languages)+len(f.Units))
	for _, l := range f.Languages {
		entries = append(entries, domain.DictionaryEntry{
			ID:        uuid.New(),
			Kind:      domain.EntryKindLanguage,
			Source:    strings.ToLower(strings.TrimSpace(l.Source)),
			Target:    l.Target,
			Language:  l.Language,
			Category:  l.Category,
			CreatedAt: now,
		})
	}
	for _, u := range f.Units {
		factor := u.Factor
		if factor == 0 {
			factor = 1
		}
		entries = append(entries, domain.DictionaryEntry{
			ID:               uuid.New(),
			Kind:             domain.EntryKindUnit,
			Source:           strings.ToLower(strings.TrimSpace(u.Source)),
			Target:           u.Target,
			ConversionFactor: factor,
			Category:         u.Category,
			CreatedAt:        now,
		})
	}
	return entries, nil
}
