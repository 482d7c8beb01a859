package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"suplio/internal/domain"
)

// Unit is one independently processed slice of a document: a page, a page
// range of a visual document, or a batch of spreadsheet/text rows.
type Unit struct {
	Index       int
	Text        string
	FileBytes   []byte
	ContentType string
	// PageStart/PageEnd restrict a visual unit to a page range; zero means
	// the whole document.
	PageStart int
	PageEnd   int
}

// Content is the probed document body reused between Probe and Split so
// spreadsheets are only parsed once.
type Content struct {
	Pages []string
	Rows  []string
}

// Probe inspects the document and returns its shape plus the extracted
// textual content for non-visual file types.
func Probe(doc domain.Document, ft domain.FileType) (DocumentMeta, Content, error) {
	meta := DocumentMeta{FileType: ft, SizeBytes: int64(len(doc.Bytes))}
	var content Content

	switch ft {
	case domain.FileTypeXLSX:
		rows, err := sheetRows(doc.Bytes)
		if err != nil {
			return meta, content, err
		}
		if len(rows) == 0 {
			return meta, content, domain.ErrEmptyDocument
		}
		content.Rows = rows
		meta.RowCount = len(rows)
	case domain.FileTypeCSV, domain.FileTypeTXT:
		text := doc.Text
		if text == "" {
			text = string(doc.Bytes)
		}
		if strings.TrimSpace(text) == "" {
			return meta, content, domain.ErrEmptyDocument
		}
		if ft == domain.FileTypeCSV {
			content.Rows = nonEmptyLines(text)
			meta.RowCount = len(content.Rows)
		} else {
			content.Pages = textPages(doc, text)
			meta.PageCount = len(content.Pages)
		}
	case domain.FileTypePDF:
		if len(doc.Bytes) == 0 {
			return meta, content, domain.ErrEmptyDocument
		}
		if len(doc.Pages) > 0 {
			content.Pages = doc.Pages
			meta.PageCount = len(doc.Pages)
		} else {
			meta.PageCount = countPDFPages(doc.Bytes)
		}
	case domain.FileTypeJPG, domain.FileTypePNG:
		if len(doc.Bytes) == 0 {
			return meta, content, domain.ErrEmptyDocument
		}
		meta.PageCount = 1
	}
	return meta, content, nil
}

// Split cuts the document into the units the executor will fan out.
func Split(doc domain.Document, ft domain.FileType, plan Plan, content Content) ([]Unit, error) {
	switch plan.Strategy {
	case domain.StrategySingle:
		return singleUnit(doc, ft, content), nil

	case domain.StrategyPaged:
		if len(content.Pages) > 0 {
			units := make([]Unit, len(content.Pages))
			for i, page := range content.Pages {
				units[i] = Unit{Index: i, Text: page}
			}
			return units, nil
		}
		if ft == domain.FileTypePDF {
			return pdfPageUnits(doc, plan), nil
		}
		return singleUnit(doc, ft, content), nil

	case domain.StrategyBatched, domain.StrategyCompact:
		rows := content.Rows
		if len(rows) == 0 {
			for _, page := range content.Pages {
				rows = append(rows, nonEmptyLines(page)...)
			}
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("batched strategy requires textual rows: %w", domain.ErrEmptyDocument)
		}
		return batchUnits(rows, plan.BatchSize), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q", plan.Strategy)
	}
}

func singleUnit(doc domain.Document, ft domain.FileType, content Content) []Unit {
	if ft.IsVisual() {
		return []Unit{{Index: 0, FileBytes: doc.Bytes, ContentType: doc.ContentType}}
	}
	text := strings.Join(content.Pages, "\n")
	if text == "" {
		text = strings.Join(content.Rows, "\n")
	}
	if text == "" {
		text = doc.Text
	}
	return []Unit{{Index: 0, Text: text}}
}

// pdfPageUnits fans a multi-page PDF out as page-range calls against the
// same bytes: one unit per page up to the cap, then equal ranges so the
// unit count never exceeds the cap.
func pdfPageUnits(doc domain.Document, plan Plan) []Unit {
	pages := countPDFPages(doc.Bytes)
	if pages <= 1 {
		return []Unit{{Index: 0, FileBytes: doc.Bytes, ContentType: doc.ContentType}}
	}

	pageCap := plan.PageCap
	if pageCap <= 0 {
		pageCap = pages
	}
	units := make([]Unit, 0, pageCap)
	if pages <= pageCap {
		for p := 1; p <= pages; p++ {
			units = append(units, Unit{
				Index:       p - 1,
				FileBytes:   doc.Bytes,
				ContentType: doc.ContentType,
				PageStart:   p,
				PageEnd:     p,
			})
		}
		return units
	}

	per := (pages + pageCap - 1) / pageCap
	idx := 0
	for start := 1; start <= pages; start += per {
		end := start + per - 1
		if end > pages {
			end = pages
		}
		units = append(units, Unit{
			Index:       idx,
			FileBytes:   doc.Bytes,
			ContentType: doc.ContentType,
			PageStart:   start,
			PageEnd:     end,
		})
		idx++
	}
	return units
}

func batchUnits(rows []string, batchSize int) []Unit {
	if batchSize <= 0 {
		batchSize = len(rows)
	}
	var units []Unit
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		units = append(units, Unit{
			Index: len(units),
			Text:  strings.Join(rows[start:end], "\n"),
		})
	}
	return units
}

// sheetRows flattens every sheet of an xlsx workbook into pipe-joined rows.
func sheetRows(data []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var out []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			joined := strings.TrimSpace(strings.Join(row, " | "))
			if joined != "" && strings.Trim(joined, " |") != "" {
				out = append(out, joined)
			}
		}
	}
	return out, nil
}

func textPages(doc domain.Document, text string) []string {
	if len(doc.Pages) > 0 {
		return doc.Pages
	}
	var pages []string
	for _, p := range strings.Split(text, "\f") {
		if strings.TrimSpace(p) != "" {
			pages = append(pages, p)
		}
	}
	if len(pages) == 0 {
		pages = []string{text}
	}
	return pages
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// countPDFPages estimates the page count from the PDF page-object markers.
// Good enough for strategy selection; a wrong guess only changes fan-out.
func countPDFPages(data []byte) int {
	n := bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
	if n <= 0 {
		n = bytes.Count(data, []byte("/Type/Page")) - bytes.Count(data, []byte("/Type/Pages"))
	}
	if n <= 0 {
		return 1
	}
	return n
}
