package main

import "github.com/spf13/cobra"

var dicomCmd = &cobra.Command{
	Use:   "dicom",
	Short: "DICOM directory indexing and anonymization",
}

func init() {
	rootCmd.AddCommand(dicomCmd)
}
