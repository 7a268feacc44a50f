package excel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/giarcheuli/docparser/analyzers/contracts"
)

const legacyXlsMessage = "Legacy .xls files not supported. Please convert to .xlsx format."

// sampleRowLimit caps how many data rows per sheet end up in the extracted
// text.
const sampleRowLimit = 5

// ExcelAnalyzer extracts a per-sheet outline with sample rows from .xlsx
// workbooks. Legacy binary .xls files are reported, not parsed.
type ExcelAnalyzer struct{}

// NewExcelAnalyzer initializes a new ExcelAnalyzer.
func NewExcelAnalyzer() contracts.IFormatAnalyzer {
	return &ExcelAnalyzer{}
}

func (analyzer *ExcelAnalyzer) ExtractText(path string) (result string) {
	if isLegacyXls(path) {
		return legacyXlsMessage
	}
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("Error extracting workbook text: %v", r)
		}
	}()

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Sprintf("Error opening workbook: %v", err)
	}
	defer workbook.Close()

	var builder strings.Builder
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			builder.WriteString(fmt.Sprintf("--- Sheet: %s ---\n[Error reading sheet: %v]\n\n", sheet, err))
			continue
		}

		columns := 0
		for _, row := range rows {
			if len(row) > columns {
				columns = len(row)
			}
		}
		builder.WriteString(fmt.Sprintf("--- Sheet: %s ---\n", sheet))
		builder.WriteString(fmt.Sprintf("Dimensions: %d rows x %d columns\n", len(rows), columns))
		if len(rows) > 0 {
			builder.WriteString("Columns: " + strings.Join(rows[0], " | ") + "\n")
		}
		for i, row := range rows {
			if i == 0 {
				continue
			}
			if i > sampleRowLimit {
				builder.WriteString(fmt.Sprintf("... (%d more rows)\n", len(rows)-1-sampleRowLimit))
				break
			}
			builder.WriteString(strings.Join(row, " | ") + "\n")
		}
		builder.WriteString("\n")
	}
	return strings.TrimSpace(builder.String())
}

func (analyzer *ExcelAnalyzer) ExtractMetadata(path string) (metadata map[string]interface{}) {
	metadata = make(map[string]interface{})
	if isLegacyXls(path) {
		metadata["error"] = legacyXlsMessage
		return metadata
	}
	defer func() {
		if r := recover(); r != nil {
			metadata["error"] = fmt.Sprintf("Workbook metadata extraction failed: %v", r)
		}
	}()

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		metadata["error"] = err.Error()
		return metadata
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	metadata["sheet_count"] = len(sheets)
	metadata["sheet_names"] = sheets

	props, err := workbook.GetDocProps()
	if err != nil || props == nil {
		return metadata
	}
	if props.Title != "" {
		metadata["title"] = props.Title
	}
	if props.Creator != "" {
		metadata["author"] = props.Creator
	}
	if props.Subject != "" {
		metadata["subject"] = props.Subject
	}
	if props.Created != "" {
		metadata["created"] = props.Created
	}
	if props.Modified != "" {
		metadata["modified"] = props.Modified
	}
	return metadata
}

func isLegacyXls(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xls")
}
