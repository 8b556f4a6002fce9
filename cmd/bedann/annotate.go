package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/seqann/bedann/internal/annotate"
	"github.com/seqann/bedann/internal/bed"
	"github.com/seqann/bedann/internal/catalog"
	"github.com/seqann/bedann/internal/output"
)

func newAnnotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate [flags] <intervals.bed>",
		Short: "Annotate BED intervals with overlapping transcripts",
		Example: `  bedann annotate --catalog hg38.duckdb intervals.bed
  bedann annotate --catalog gencode.v46.annotation.gtf.gz --ambiguities all intervals.bed
  cat intervals.bed | bedann annotate --catalog hg38.duckdb -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("catalog", "", "Feature catalog: .gtf/.gtf.gz file or .duckdb file from 'bedann convert'")
	flags.String("ambiguities", string(annotate.DefaultPolicy), "Ambiguity policy: best_one, best_all, or all")
	flags.Bool("tsl-bonus", true, "Include the transcript-support-level bonus in the priority score")
	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.StringP("format", "f", "tab", "Output format: tab, csv")
	flags.String("summary", "", "Summary file (default: stderr)")
	flags.Int("workers", 0, "Worker count (0 = number of CPUs)")

	viper.SetDefault("annotate.ambiguities", string(annotate.DefaultPolicy))
	viper.SetDefault("annotate.tsl_bonus", true)
	viper.SetDefault("annotate.workers", 0)

	viper.BindPFlag("annotate.catalog", flags.Lookup("catalog"))
	viper.BindPFlag("annotate.ambiguities", flags.Lookup("ambiguities"))
	viper.BindPFlag("annotate.tsl_bonus", flags.Lookup("tsl-bonus"))
	viper.BindPFlag("annotate.output", flags.Lookup("output"))
	viper.BindPFlag("annotate.format", flags.Lookup("format"))
	viper.BindPFlag("annotate.summary", flags.Lookup("summary"))
	viper.BindPFlag("annotate.workers", flags.Lookup("workers"))

	return cmd
}

func runAnnotate(inputPath string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	policy, err := annotate.ParsePolicy(viper.GetString("annotate.ambiguities"))
	if err != nil {
		return err
	}

	catalogPath := viper.GetString("annotate.catalog")
	if catalogPath == "" {
		return fmt.Errorf("no catalog given (use --catalog or set annotate.catalog in ~/.bedann.yaml)")
	}

	// Catalog problems are fatal before any interval is processed.
	cat, err := catalog.Open(catalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	parser, err := bed.NewParser(inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	out := os.Stdout
	if path := viper.GetString("annotate.output"); path != "" {
		out, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	var writer annotate.RowWriter
	switch format := viper.GetString("annotate.format"); format {
	case "tab", "":
		writer = output.NewTabWriter(out)
	case "csv":
		writer = output.NewCSVWriter(out)
	default:
		return fmt.Errorf("unknown output format %q (want tab or csv)", format)
	}

	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	ann := annotate.NewAnnotator(cat)
	ann.SetPolicy(policy)
	ann.SetScoreConfig(annotate.ScoreConfig{IncludeTSL: viper.GetBool("annotate.tsl_bonus")})
	ann.SetLogger(logger)

	summary, err := ann.AnnotateAll(parser, writer, viper.GetInt("annotate.workers"))
	if err != nil {
		return err
	}

	if n := parser.Skipped(); n > 0 {
		logger.Warn("skipped malformed interval lines", zap.Int("count", n))
	}

	summaryOut := os.Stderr
	if path := viper.GetString("annotate.summary"); path != "" {
		summaryOut, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("create summary file: %w", err)
		}
		defer summaryOut.Close()
	}
	return output.WriteSummary(summaryOut, summary)
}

// newLogger builds a stderr logger so annotation rows on stdout stay clean.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
