package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seqann/bedann/internal/catalog"
)

func newConvertCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "convert [flags] <annotation.gtf[.gz]>",
		Short: "Convert a GTF annotation file to an indexed DuckDB catalog",
		Long: `Convert loads a GTF annotation file and writes it to a DuckDB database
indexed by genomic position, so that "bedann annotate" can query regions
without loading the whole catalog into memory.`,
		Example: `  bedann convert gencode.v46.annotation.gtf.gz -o hg38.duckdb
  bedann convert hg19.gtf -o hg19.duckdb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output DuckDB file path (required)")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runConvert(gtfPath, outputPath string) error {
	if ext := filepath.Ext(outputPath); ext != ".duckdb" && ext != ".db" {
		outputPath += ".duckdb"
	}

	// A stale catalog at the target path would mix old and new features.
	if _, err := os.Stat(outputPath); err == nil {
		if err := os.Remove(outputPath); err != nil {
			return fmt.Errorf("remove existing catalog: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Converting GTF to DuckDB catalog...\n")
	fmt.Fprintf(os.Stderr, "  Input:  %s\n", gtfPath)
	fmt.Fprintf(os.Stderr, "  Output: %s\n", outputPath)

	n, err := catalog.Convert(gtfPath, outputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Wrote %d features\n", n)
	return nil
}
