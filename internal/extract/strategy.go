package extract

import (
	"mime"
	"path/filepath"
	"strings"

	"suplio/internal/domain"
)

// DocumentMeta is the document shape the strategy selector decides from.
type DocumentMeta struct {
	FileType  domain.FileType
	PageCount int
	RowCount  int
	SizeBytes int64
}

// Options are the caller-supplied hints for one extraction run. Zero values
// fall back to configured defaults.
type Options struct {
	MaxProducts int
	Strategy    domain.Strategy
	BatchSize   int
	Language    string
	Currency    string
	Timeout     int // seconds; 0 = config default
	Retries     int // 0 = config default; -1 disables retries
}

// Plan is the selected strategy with its per-strategy parameters.
type Plan struct {
	Strategy  domain.Strategy
	PageCap   int
	BatchSize int
}

// Limits carry the configured defaults the selector works within.
type Limits struct {
	PageCap          int
	BatchSize        int
	CompactThreshold int
}

// SelectStrategy is a pure decision function from document shape and caller
// options to an execution plan. An explicit caller strategy always wins.
func SelectStrategy(meta DocumentMeta, opts Options, limits Limits) Plan {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = limits.BatchSize
	}
	plan := Plan{PageCap: limits.PageCap, BatchSize: batchSize}

	if opts.Strategy != "" {
		plan.Strategy = opts.Strategy
		return plan
	}

	switch meta.FileType {
	case domain.FileTypeJPG, domain.FileTypePNG:
		plan.Strategy = domain.StrategySingle
	case domain.FileTypeXLSX, domain.FileTypeCSV:
		if meta.RowCount > limits.CompactThreshold {
			plan.Strategy = domain.StrategyCompact
		} else {
			plan.Strategy = domain.StrategyBatched
		}
	case domain.FileTypePDF, domain.FileTypeTXT:
		switch {
		case meta.PageCount <= 1:
			plan.Strategy = domain.StrategySingle
		case meta.PageCount <= limits.PageCap:
			plan.Strategy = domain.StrategyPaged
		default:
			plan.Strategy = domain.StrategyPaged
			// beyond the cap, trailing pages are grouped into ranges
		}
	default:
		plan.Strategy = domain.StrategySingle
	}
	return plan
}

// DetectFileType resolves a document's file type from its content type,
// falling back to the file name extension.
func DetectFileType(doc domain.Document) (domain.FileType, error) {
	ct := doc.ContentType
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}
	if ft, ok := domain.AllowedContentTypes[ct]; ok {
		return ft, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(doc.FileName), "."))
	if ft, ok := domain.AllowedExtensions[ext]; ok {
		return ft, nil
	}
	if mt := mime.TypeByExtension("." + ext); mt != "" {
		if ft, ok := domain.AllowedContentTypes[mt]; ok {
			return ft, nil
		}
	}
	return "", domain.ErrUnsupportedFileType
}
