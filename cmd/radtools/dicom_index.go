package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"radtools/internal/anonymize"
	"radtools/internal/config"
)

var dicomIndexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Build a review index of a DICOM directory",
	Long: `Index scans a directory for DICOM files and builds one table row per
file from a fixed tag projection, for review and sorting before
anonymization. The index is printed as CSV or written to --out as CSV or
xlsx depending on the extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromViper(viper.GetViper())
		recursive, _ := cmd.Flags().GetBool("recursive")
		if !cmd.Flags().Changed("recursive") {
			recursive = cfg.Anonymize.Recursive
		}

		dir, err := anonymize.OpenDirectory(args[0], recursive, cfg.Anonymize.OutputName, log)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return dir.WriteIndexCSV(os.Stdout)
		}
		if strings.HasSuffix(strings.ToLower(out), ".xlsx") {
			return dir.WriteIndexWorkbook(out)
		}

		file, err := os.Create(out)
		if err != nil {
			return err
		}
		defer file.Close()
		return dir.WriteIndexCSV(file)
	},
}

func init() {
	dicomIndexCmd.Flags().String("out", "", "output file (.csv or .xlsx); stdout when empty")
	dicomIndexCmd.Flags().Bool("recursive", true, "descend into subdirectories")

	dicomCmd.AddCommand(dicomIndexCmd)
}
