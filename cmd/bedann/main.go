// Package main provides the bedann command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cobra.OnInitialize(initConfig)

	root := &cobra.Command{
		Use:   "bedann",
		Short: "Annotate BED intervals against an indexed GTF transcript catalog",
		Long: `bedann annotates genomic intervals with the transcripts that overlap them,
ranking candidates by a composite priority score and resolving ambiguity
between equally good transcripts.

Catalogs are either plain (optionally gzipped) GTF files, loaded into
memory per run, or DuckDB files produced by "bedann convert" for indexed
queries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAnnotateCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bedann version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// initConfig loads ~/.bedann.yaml and BEDANN_* environment overrides.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".bedann")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("BEDANN")
	viper.AutomaticEnv()

	// Missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}
