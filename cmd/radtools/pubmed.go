package main

import "github.com/spf13/cobra"

var pubmedCmd = &cobra.Command{
	Use:   "pubmed",
	Short: "PubMed export parsing and aggregation",
}

func init() {
	rootCmd.AddCommand(pubmedCmd)
}
