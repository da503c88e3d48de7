// ticketgen produces synthetic aftersales support tickets as JSON-Lines
// batch files. All data is fake; output is fully deterministic for a
// fixed seed.
package main

import (
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-pipeline/internal/config"
	"github.com/spec-kit/ticket-pipeline/internal/generate"
	"github.com/spec-kit/ticket-pipeline/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	flags := pflag.NewFlagSet("ticketgen", pflag.ExitOnError)
	count := flags.Int("count", cfg.Generator.Count, "number of tickets to generate")
	daysBack := flags.Int("days-back", cfg.Generator.DaysBack, "spread tickets over this many past days")
	batchSize := flags.Int("batch-size", cfg.Generator.BatchSize, "max tickets per output file")
	seed := flags.Int64("seed", cfg.Generator.Seed, "random seed for reproducibility")
	output := flags.String("output", cfg.Generator.OutputDir, "output directory for JSON-Lines files")
	weightsPath := flags.String("weights", cfg.Generator.WeightsPath, "YAML file overriding distribution weights")
	compress := flags.Bool("compress", cfg.Generator.Compress, "gzip-compress output files")
	if err := flags.Parse(os.Args[1:]); err != nil {
		logger.Fatal("parse flags", zap.Error(err))
	}

	weights := generate.DefaultWeights()
	if *weightsPath != "" {
		weights, err = generate.LoadWeights(*weightsPath)
		if err != nil {
			logger.Fatal("load weights", zap.Error(err))
		}
	}

	genCfg := generate.Config{
		Count:     *count,
		DaysBack:  *daysBack,
		BatchSize: *batchSize,
		Seed:      *seed,
		Compress:  *compress,
	}
	gen, err := generate.New(genCfg, weights, time.Now().UTC())
	if err != nil {
		logger.Fatal("invalid generator configuration", zap.Error(err))
	}

	logger.Info("generating tickets",
		zap.Int("count", *count),
		zap.Int("days_back", *daysBack),
		zap.Int64("seed", *seed))

	tickets := gen.Generate()

	label := time.Now().UTC().Format("20060102_150405")
	files, err := generate.WriteBatches(tickets, *output, label, *batchSize, *compress)
	if err != nil {
		logger.Fatal("write batches", zap.Error(err))
	}

	summary := generate.Summarize(tickets, len(files))
	logger.Info("generation complete",
		zap.Int("generated", summary.Generated),
		zap.Int("files", summary.Files),
		zap.String("output", *output),
		zap.Float64("sla_breach_rate", summary.BreachRate()),
		zap.Any("severity_mix", summary.BySeverity))
}
