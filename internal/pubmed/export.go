package pubmed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet names and column orders of the bibliography workbook. Columns use
// the export tag codes.
const (
	sheetArticles = "articles"
	sheetAuthors  = "authors"
	sheetKeywords = "keywords"
)

var (
	articleColumns = []string{"PMID", "TI", "TA", "JT", "VI", "IP", "DP", "SO", "AB"}
	authorColumns  = []string{"PMID", "SAU", "FAU", "AD"}
	keywordColumns = []string{"PMID", "MH"}
)

func (a Article) row() []string {
	return []string{a.PMID, a.Title, a.JournalAbbrev, a.Journal, a.Volume, a.Issue, a.Date, a.Source, a.Abstract}
}

func (a Author) row() []string {
	return []string{a.PMID, a.ShortName, a.FullName, a.Address}
}

func (k Keyword) row() []string {
	return []string{k.PMID, k.Term}
}

// ExportWorkbook writes the three tables as one workbook with one sheet
// per table.
func (d *Data) ExportWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetArticles)
	if _, err := f.NewSheet(sheetAuthors); err != nil {
		return fmt.Errorf("could not create sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetKeywords); err != nil {
		return fmt.Errorf("could not create sheet: %w", err)
	}

	if err := writeSheet(f, sheetArticles, articleColumns, len(d.Tables.Articles), func(i int) []string {
		return d.Tables.Articles[i].row()
	}); err != nil {
		return err
	}
	if err := writeSheet(f, sheetAuthors, authorColumns, len(d.Tables.Authors), func(i int) []string {
		return d.Tables.Authors[i].row()
	}); err != nil {
		return err
	}
	if err := writeSheet(f, sheetKeywords, keywordColumns, len(d.Tables.Keywords), func(i int) []string {
		return d.Tables.Keywords[i].row()
	}); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, n int, row func(int) []string) error {
	if err := setSheetRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := setSheetRow(f, sheet, i+2, row(i)); err != nil {
			return err
		}
	}
	return nil
}

func setSheetRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("could not address row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("could not write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

// ImportWorkbook reads tables back from a workbook produced by
// ExportWorkbook.
func ImportWorkbook(path string) (Tables, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("could not open workbook: %w", err)
	}
	defer f.Close()

	var tables Tables

	rows, err := sheetRows(f, sheetArticles, len(articleColumns))
	if err != nil {
		return Tables{}, err
	}
	for _, r := range rows {
		tables.Articles = append(tables.Articles, Article{
			PMID: r[0], Title: r[1], JournalAbbrev: r[2], Journal: r[3],
			Volume: r[4], Issue: r[5], Date: r[6], Source: r[7], Abstract: r[8],
		})
	}

	rows, err = sheetRows(f, sheetAuthors, len(authorColumns))
	if err != nil {
		return Tables{}, err
	}
	for _, r := range rows {
		tables.Authors = append(tables.Authors, Author{
			PMID: r[0], ShortName: r[1], FullName: r[2], Address: r[3],
		})
	}

	rows, err = sheetRows(f, sheetKeywords, len(keywordColumns))
	if err != nil {
		return Tables{}, err
	}
	for _, r := range rows {
		tables.Keywords = append(tables.Keywords, Keyword{PMID: r[0], Term: r[1]})
	}

	return tables, nil
}

// sheetRows returns data rows padded to width, skipping the header.
func sheetRows(f *excelize.File, sheet string, width int) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, width)
		copy(padded, row)
		out = append(out, padded)
	}
	return out, nil
}

// ExportCSV writes one CSV file per table into dir: articles.csv,
// authors.csv and keywords.csv.
func (d *Data) ExportCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	if err := writeCSV(filepath.Join(dir, "articles.csv"), articleColumns, len(d.Tables.Articles), func(i int) []string {
		return d.Tables.Articles[i].row()
	}); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "authors.csv"), authorColumns, len(d.Tables.Authors), func(i int) []string {
		return d.Tables.Authors[i].row()
	}); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "keywords.csv"), keywordColumns, len(d.Tables.Keywords), func(i int) []string {
		return d.Tables.Keywords[i].row()
	})
}

func writeCSV(path string, header []string, n int, row func(int) []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("could not write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
