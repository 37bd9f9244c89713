package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"radtools/internal/pubmed"
)

var pubmedExportCmd = &cobra.Command{
	Use:   "export <file-or-dir>",
	Short: "Parse PubMed exports and write the bibliography tables",
	Long: `Export parses one PubMed export file, or every export in a directory
(unioned with duplicate elimination), and writes the article, author and
keyword tables. An --out ending in .xlsx produces a three-sheet workbook;
otherwise --out names a directory receiving one CSV per table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := pubmed.Load(args[0], log)
		if err != nil {
			return err
		}

		fmt.Printf("Parsed %d file(s): %d rows (%d articles, %d authors, %d keywords)\n",
			len(data.Files), data.Tables.Len(), len(data.Tables.Articles),
			len(data.Tables.Authors), len(data.Tables.Keywords))

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return fmt.Errorf("--out is required")
		}
		if strings.HasSuffix(strings.ToLower(out), ".xlsx") {
			return data.ExportWorkbook(out)
		}
		return data.ExportCSV(out)
	},
}

func init() {
	pubmedExportCmd.Flags().String("out", "", "workbook path (.xlsx) or CSV output directory")

	pubmedCmd.AddCommand(pubmedExportCmd)
}
