package domain

// DocumentType classifies the overall document handed to extraction.
type DocumentType string

const (
	DocumentTypePriceList DocumentType = "price_list"
	DocumentTypeInvoice   DocumentType = "invoice"
	DocumentTypeCatalog   DocumentType = "catalog"
	DocumentTypeOrder     DocumentType = "order"
	DocumentTypeUnknown   DocumentType = "unknown"
)

// KnownDocumentTypes is the closed set of document type values.
var KnownDocumentTypes = map[DocumentType]bool{
	DocumentTypePriceList: true,
	DocumentTypeInvoice:   true,
	DocumentTypeCatalog:   true,
	DocumentTypeOrder:     true,
	DocumentTypeUnknown:   true,
}

// Strategy selects how a document is dispatched to the model provider.
type Strategy string

const (
	StrategySingle  Strategy = "single"
	StrategyPaged   Strategy = "paged"
	StrategyBatched Strategy = "batched"
	StrategyCompact Strategy = "compact"
)

// FileType represents the supported document file types.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeXLSX FileType = "xlsx"
	FileTypeCSV  FileType = "csv"
	FileTypeTXT  FileType = "txt"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FileTypeXLSX,
	"text/csv":   FileTypeCSV,
	"text/plain": FileTypeTXT,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"xlsx": FileTypeXLSX,
	"csv":  FileTypeCSV,
	"txt":  FileTypeTXT,
}

// IsVisual reports whether the file type must be sent to the provider as
// raw bytes rather than extracted text.
func (f FileType) IsVisual() bool {
	return f == FileTypePDF || f == FileTypeJPG || f == FileTypePNG
}

// EntryKind distinguishes the two dictionary table kinds.
type EntryKind string

const (
	EntryKindLanguage EntryKind = "language"
	EntryKindUnit     EntryKind = "unit"
)
