package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"radtools/internal/anonymize"
	"radtools/internal/config"
)

var dicomAnonymizeCmd = &cobra.Command{
	Use:   "anonymize <file-or-dir>",
	Short: "Anonymize a DICOM file or every file in a directory",
	Long: `Anonymize deterministically rewrites identifying tags and clears
free-text identifying fields.

A single file is processed fail-fast; without --output the result lands
next to the source with an "_anonymized.dcm" suffix. A directory is
processed as a sequential batch into <dir>/<output-name>/ following the
patient/accession/series layout; the on-error policy decides whether one
failing file stops the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromViper(viper.GetViper())
		tr := anonymize.New(log)

		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("could not stat %s: %w", args[0], err)
		}

		if !info.IsDir() {
			output, _ := cmd.Flags().GetString("output")
			outPath, err := anonymize.AnonymizeFile(tr, args[0], output)
			if err != nil {
				return err
			}
			fmt.Println(outPath)
			return nil
		}

		onError, _ := cmd.Flags().GetString("on-error")
		if onError == "" {
			onError = cfg.Anonymize.OnError
		}
		policy, err := anonymize.ParsePolicy(onError)
		if err != nil {
			return err
		}

		recursive, _ := cmd.Flags().GetBool("recursive")
		if !cmd.Flags().Changed("recursive") {
			recursive = cfg.Anonymize.Recursive
		}
		retry, _ := cmd.Flags().GetBool("retry")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		outputName, _ := cmd.Flags().GetString("output-name")
		if outputName == "" {
			outputName = cfg.Anonymize.OutputName
		}

		dir, err := anonymize.OpenDirectory(args[0], recursive, outputName, log)
		if err != nil {
			return err
		}

		stats, failures, err := dir.Run(tr, anonymize.Options{
			OutputName: outputName,
			Policy:     policy,
			Retry:      retry,
			DryRun:     dryRun,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Complete: %d succeeded, %d failed, %d skipped\n",
			stats.Succeeded, stats.Failed, stats.Skipped)
		if len(failures) > 0 {
			return fmt.Errorf("%d file(s) failed to anonymize", len(failures))
		}
		return nil
	},
}

func init() {
	dicomAnonymizeCmd.Flags().String("output", "", "destination directory for single-file anonymization")
	dicomAnonymizeCmd.Flags().String("output-name", "", "batch output subdirectory name (default from config)")
	dicomAnonymizeCmd.Flags().String("on-error", "", "batch policy: continue or abort (default from config)")
	dicomAnonymizeCmd.Flags().Bool("recursive", true, "descend into subdirectories")
	dicomAnonymizeCmd.Flags().Bool("retry", false, "re-run files that failed in a previous batch")
	dicomAnonymizeCmd.Flags().Bool("dry-run", false, "list work without modifying any file")

	dicomCmd.AddCommand(dicomAnonymizeCmd)
}
