package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jamesspalding/STAT543-grad/internal/config"
	"github.com/jamesspalding/STAT543-grad/internal/experiment"
	"github.com/jamesspalding/STAT543-grad/internal/report"
)

func main() {
	var (
		configFile string
		dataFile   string
		outputDir  string
		seed       int64
		fitOn      string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fit purchase-intent models on the online shoppers dataset and write the analysis report",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
				With().Timestamp().Logger()

			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.Data = dataFile
			}
			if outputDir != "" {
				cfg.Output = outputDir
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
				cfg.CrossValidation.Seed = seed
			}
			if fitOn != "" {
				cfg.Normalization.FitOn = fitOn
			}
			if cmd.Flags().Changed("workers") {
				cfg.Sweep.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			start := time.Now()
			runner := experiment.NewRunner(cfg, log)
			results, err := runner.Run()
			if err != nil {
				return err
			}
			log.Info().Dur("elapsed", time.Since(start)).Msg("analysis complete")

			if err := os.MkdirAll(cfg.Output, 0755); err != nil {
				return err
			}
			if err := runner.ExportSweeps(results, cfg.Output); err != nil {
				return fmt.Errorf("export sweeps: %w", err)
			}
			if err := report.SavePlots(results, cfg.Output); err != nil {
				return fmt.Errorf("save plots: %w", err)
			}

			reportPath := filepath.Join(cfg.Output, "report.txt")
			file, err := os.Create(reportPath)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := report.Write(file, results); err != nil {
				return err
			}
			if err := report.Write(os.Stdout, results); err != nil {
				return err
			}

			log.Info().Str("dir", cfg.Output).Msg("report written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "path to YAML configuration")
	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "path to the sessions CSV (overrides config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
	cmd.Flags().Int64Var(&seed, "seed", 543, "random seed for the split and CV folds (overrides config)")
	cmd.Flags().StringVar(&fitOn, "normalize-fit-on", "", "fit normalizer on \"full\" data or \"train\" only (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel workers for the mixing-weight sweep (overrides config)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
