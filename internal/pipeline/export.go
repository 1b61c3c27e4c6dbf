package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"zhlaw/internal"
)

var flatHeaders = []string{
	"erlasstitel", "abkuerzung", "kurztitel", "zhlaw_url_dynamic", "law_page_url", "law_text_url",
}

var recordHeaders = []string{"abbreviation", "url", "title", "canton", "language"}

// WriteJSON writes records as an indented JSON array. Non-ASCII text and
// characters such as & are written literally.
func WriteJSON(w io.Writer, records []internal.OutputRecord) error {
	if records == nil {
		records = []internal.OutputRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func ExportJSON(records []internal.OutputRecord, outputPath string) error {
	return writeFile(outputPath, func(w io.Writer) error {
		return WriteJSON(w, records)
	})
}

func WriteFlatCSV(w io.Writer, rows []internal.FlatRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(flatHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(flatValues(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportFlatCSV(rows []internal.FlatRecord, outputPath string) error {
	return writeFile(outputPath, func(w io.Writer) error {
		return WriteFlatCSV(w, rows)
	})
}

func ExportFlatXLSX(rows []internal.FlatRecord, outputPath string) error {
	values := make([][]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, flatValues(row))
	}
	return exportXLSX(flatHeaders, values, outputPath)
}

func ExportRecordsXLSX(records []internal.OutputRecord, outputPath string) error {
	values := make([][]string, 0, len(records))
	for _, r := range records {
		values = append(values, []string{r.Abbreviation, r.URL, r.Title, r.Canton, r.Language})
	}
	return exportXLSX(recordHeaders, values, outputPath)
}

func exportXLSX(headers []string, rows [][]string, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			// Explicit string cells keep abbreviations like "101" from turning into numbers.
			_ = f.SetCellStr(sheet, cell, value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func flatValues(row internal.FlatRecord) []string {
	return []string{row.Erlasstitel, row.Abkuerzung, row.Kurztitel, row.ZhlawURLDynamic, row.LawPageURL, row.LawTextURL}
}

func writeFile(outputPath string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
