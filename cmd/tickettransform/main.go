// tickettransform converts row-oriented ticket records into a
// partitioned, snappy-compressed parquet dataset keyed by market.
package main

import (
	"log"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-pipeline/internal/config"
	"github.com/spec-kit/ticket-pipeline/internal/observability"
	"github.com/spec-kit/ticket-pipeline/internal/transform"
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

	flags := pflag.NewFlagSet("tickettransform", pflag.ExitOnError)
	inputs := flags.StringArray("input", cfg.Transform.Inputs, "input file or directory with .jsonl / .jsonl.gz records (repeatable)")
	output := flags.String("output", cfg.Transform.OutputDir, "destination root for the partitioned dataset")
	maxRejectRate := flags.Float64("max-reject-rate", cfg.Transform.MaxRejectRate, "fail when the rejected fraction exceeds this rate")
	fragmentRows := flags.Int("fragment-rows", cfg.Transform.FragmentRows, "max rows per parquet fragment (0 = single fragment per partition)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		logger.Fatal("parse flags", zap.Error(err))
	}

	tr, err := transform.New(transform.Config{
		Inputs:        *inputs,
		OutputDir:     *output,
		MaxRejectRate: *maxRejectRate,
		FragmentRows:  *fragmentRows,
	}, logger)
	if err != nil {
		logger.Fatal("invalid transform configuration", zap.Error(err))
	}

	summary, err := tr.Run()
	if summary != nil {
		fields := []zap.Field{
			zap.Int("records_read", summary.RecordsRead),
			zap.Int("validated", summary.Validated),
			zap.Int("rejected", summary.Rejected),
			zap.Int("partitions", len(summary.Partitions)),
		}
		if summary.Rejected > 0 {
			fields = append(fields,
				zap.Any("reject_reasons", summary.RejectReasons),
				zap.Strings("reject_samples", summary.RejectSamples))
		}
		logger.Info("transform summary", fields...)
	}
	if err != nil {
		logger.Fatal("transform failed", zap.Error(err))
	}
}
