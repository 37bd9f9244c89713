package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"radtools/internal/pubmed"
)

var pubmedWordsCmd = &cobra.Command{
	Use:   "words <file-or-dir>",
	Short: "Compute term frequencies over a bibliography field",
	Long: `Words parses PubMed exports and prints normalized term counts for one
field (keyword, author, journal, title or abstract). The output feeds
external visualization; no rendering happens here.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := pubmed.Load(args[0], log)
		if err != nil {
			return err
		}

		field, _ := cmd.Flags().GetString("field")
		stop, _ := cmd.Flags().GetStringSlice("stop")
		top, _ := cmd.Flags().GetInt("top")

		counts, err := pubmed.WordFrequencies(data.Tables, pubmed.Field(field), stop)
		if err != nil {
			return err
		}

		if top > 0 && top < len(counts) {
			counts = counts[:top]
		}
		for _, tc := range counts {
			fmt.Printf("%6d  %s\n", tc.Count, tc.Term)
		}
		return nil
	},
}

func init() {
	pubmedWordsCmd.Flags().String("field", "keyword", "field: keyword, author, journal, title or abstract")
	pubmedWordsCmd.Flags().StringSlice("stop", nil, "additional terms to drop")
	pubmedWordsCmd.Flags().Int("top", 0, "keep only the N most frequent terms")

	pubmedCmd.AddCommand(pubmedWordsCmd)
}
