// Package excel renders document listings as XLSX workbooks for
// offline review.
package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/smartdocs/smartdocs/internal/core/domain"
)

const sheet = "Documents"

var headers = []string{
	"ID",
	"Filename",
	"File Type",
	"Status",
	"Category",
	"Industries",
	"Sentiment",
	"Key Phrases",
	"Entities",
	"Summary",
	"Created At",
}

// Exporter writes one row per document; unanalyzed documents keep the
// metadata columns blank.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) Export(docs []domain.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header %q: %w", h, err)
		}
	}

	for rowIdx, doc := range docs {
		row := documentRow(doc)
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", rowIdx+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func documentRow(doc domain.Document) []any {
	row := []any{
		doc.ID,
		doc.Filename,
		string(doc.FileType),
		string(doc.Status),
		"", "", "", "", "", "",
		doc.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if doc.Metadata == nil {
		return row
	}

	meta := doc.Metadata
	row[4] = meta.Category
	row[5] = strings.Join(meta.IndustryClassification, ", ")
	row[6] = fmt.Sprintf("%s (%.2f)", meta.Sentiment.Label, meta.Sentiment.Score)
	row[7] = strings.Join(meta.KeyPhrases, ", ")
	row[8] = joinEntities(meta.Entities)
	row[9] = meta.Summary
	return row
}

func joinEntities(entities []domain.Entity) string {
	parts := make([]string, 0, len(entities))
	for _, e := range entities {
		parts = append(parts, fmt.Sprintf("%s [%s]", e.Text, e.Label))
	}
	return strings.Join(parts, ", ")
}
