package extract_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"suplio/internal/domain"
	"suplio/internal/extract"
)

func fakePDF(pages int) []byte {
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n1 0 obj << /Type /Pages /Count 1 >> endobj\n")
	for i := 0; i < pages; i++ {
		fmt.Fprintf(&b, "%d 0 obj << /Type /Page >> endobj\n", i+2)
	}
	return b.Bytes()
}

func xlsxFixture(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, cell))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestProbe_TXTPages(t *testing.T) {
	doc := domain.Document{Text: "page one\fpage two\fpage three"}

	meta, content, err := extract.Probe(doc, domain.FileTypeTXT)
	require.NoError(t, err)
	assert.Equal(t, 3, meta.PageCount)
	assert.Len(t, content.Pages, 3)
}

func TestProbe_CSVRows(t *testing.T) {
	doc := domain.Document{Text: "Wortel,15000,kg\n\nKentang,12000,kg\n"}

	meta, content, err := extract.Probe(doc, domain.FileTypeCSV)
	require.NoError(t, err)
	assert.Equal(t, 2, meta.RowCount)
	assert.Equal(t, []string{"Wortel,15000,kg", "Kentang,12000,kg"}, content.Rows)
}

func TestProbe_XLSX(t *testing.T) {
	data := xlsxFixture(t, [][]string{
		{"Wortel", "15000", "kg"},
		{"Kentang", "12000", "kg"},
	})

	meta, content, err := extract.Probe(domain.Document{Bytes: data}, domain.FileTypeXLSX)
	require.NoError(t, err)
	assert.Equal(t, 2, meta.RowCount)
	require.Len(t, content.Rows, 2)
	assert.Equal(t, "Wortel | 15000 | kg", content.Rows[0])
}

func TestProbe_PDFPageCount(t *testing.T) {
	meta, _, err := extract.Probe(domain.Document{Bytes: fakePDF(5)}, domain.FileTypePDF)
	require.NoError(t, err)
	assert.Equal(t, 5, meta.PageCount)
}

func TestProbe_EmptyDocument(t *testing.T) {
	_, _, err := extract.Probe(domain.Document{Text: "   "}, domain.FileTypeTXT)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)

	_, _, err = extract.Probe(domain.Document{}, domain.FileTypePDF)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestSplit_PagedText(t *testing.T) {
	doc := domain.Document{Text: "page one\fpage two"}
	_, content, err := extract.Probe(doc, domain.FileTypeTXT)
	require.NoError(t, err)

	units, err := extract.Split(doc, domain.FileTypeTXT, extract.Plan{Strategy: domain.StrategyPaged}, content)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, 0, units[0].Index)
	assert.Equal(t, "page one", units[0].Text)
	assert.Equal(t, "page two", units[1].Text)
}

func TestSplit_PagedPDFUsesPageRanges(t *testing.T) {
	doc := domain.Document{Bytes: fakePDF(4), ContentType: "application/pdf"}

	units, err := extract.Split(doc, domain.FileTypePDF, extract.Plan{Strategy: domain.StrategyPaged, PageCap: 20}, extract.Content{})
	require.NoError(t, err)
	require.Len(t, units, 4)
	for i, u := range units {
		assert.Equal(t, i+1, u.PageStart)
		assert.Equal(t, i+1, u.PageEnd)
		assert.Equal(t, doc.Bytes, u.FileBytes)
	}
}

func TestSplit_PagedPDFCapGroupsRanges(t *testing.T) {
	doc := domain.Document{Bytes: fakePDF(50), ContentType: "application/pdf"}

	units, err := extract.Split(doc, domain.FileTypePDF, extract.Plan{Strategy: domain.StrategyPaged, PageCap: 20}, extract.Content{})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(units), 20)

	// the ranges must tile 1..50 without gaps
	next := 1
	for _, u := range units {
		assert.Equal(t, next, u.PageStart)
		assert.GreaterOrEqual(t, u.PageEnd, u.PageStart)
		next = u.PageEnd + 1
	}
	assert.Equal(t, 51, next)
}

func TestSplit_Batched(t *testing.T) {
	rows := make([]string, 0, 95)
	for i := 0; i < 95; i++ {
		rows = append(rows, fmt.Sprintf("Product %d,1000,kg", i))
	}
	doc := domain.Document{Text: strings.Join(rows, "\n")}
	_, content, err := extract.Probe(doc, domain.FileTypeCSV)
	require.NoError(t, err)

	units, err := extract.Split(doc, domain.FileTypeCSV, extract.Plan{Strategy: domain.StrategyBatched, BatchSize: 40}, content)
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Len(t, strings.Split(units[0].Text, "\n"), 40)
	assert.Len(t, strings.Split(units[2].Text, "\n"), 15)
}

func TestSplit_SingleImage(t *testing.T) {
	doc := domain.Document{Bytes: []byte{0xFF, 0xD8, 0xFF}, ContentType: "image/jpeg"}

	units, err := extract.Split(doc, domain.FileTypeJPG, extract.Plan{Strategy: domain.StrategySingle}, extract.Content{})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, doc.Bytes, units[0].FileBytes)
	assert.Equal(t, "image/jpeg", units[0].ContentType)
	assert.Empty(t, units[0].Text)
}
