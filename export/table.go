package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/scinet/mailris/bib"
	"github.com/scinet/mailris/sanitize"
	"github.com/xuri/excelize/v2"
)

// Delimiter joins multi-valued fields in tabular exports.
const Delimiter = "; "

// Columns is the fixed tabular header.
var Columns = []string{
	"Title", "Authors", "Year", "Journal", "DOI", "Type",
	"Keywords", "Abstract", "Volume", "Issue", "Pages", "URL",
}

func exportable(v string) string {
	if sanitize.Reject(v) {
		return ""
	}
	return v
}

func joined(values []string) string {
	var kept []string
	for _, v := range values {
		if !sanitize.Reject(v) {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, Delimiter)
}

// Row flattens a publication to one tabular row, in Columns order.
func Row(pub *bib.Publication) []string {
	return []string{
		exportable(pub.Title),
		joined(pub.Authors),
		exportable(pub.Year),
		exportable(pub.Journal),
		pub.DOI,
		exportable(pub.Type),
		joined(pub.Keywords),
		exportable(pub.Abstract),
		exportable(pub.Volume),
		exportable(pub.Issue),
		exportable(pub.Pages),
		exportable(pub.URL),
	}
}

// WriteCSV renders one row per publication, preceded by the header row.
func WriteCSV(w io.Writer, pubs []*bib.Publication) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, pub := range pubs {
		if err := bib.Validate(pub); err != nil {
			return err
		}
		if err := cw.Write(Row(pub)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX renders the same table as an xlsx workbook with a single
// "Publications" sheet.
func WriteXLSX(w io.Writer, pubs []*bib.Publication) error {
	const sheet = "Publications"
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, Columns); err != nil {
		return err
	}
	for i, pub := range pubs {
		if err := bib.Validate(pub); err != nil {
			return err
		}
		if err := setRow(f, sheet, i+2, Row(pub)); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("row %d: %w", n, err)
	}
	return nil
}
