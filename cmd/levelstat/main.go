// Package main provides levelstat, a CLI that computes structural metrics for
// ASCII dungeon levels and prints them as YAML.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/levelmetrics/internal/batch"
	"github.com/cory-johannsen/levelmetrics/internal/config"
	"github.com/cory-johannsen/levelmetrics/internal/filter"
	"github.com/cory-johannsen/levelmetrics/internal/level"
	"github.com/cory-johannsen/levelmetrics/internal/metrics"
	"github.com/cory-johannsen/levelmetrics/internal/observability"
	"github.com/cory-johannsen/levelmetrics/internal/scripting"
	"github.com/cory-johannsen/levelmetrics/internal/stats"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file")
	iconsPath := flag.String("icons", "", "path to icon set YAML (overrides analysis.icons_file)")
	scriptPath := flag.String("filter", "", "path to Lua predicate script (overrides filter.script)")
	targetsPath := flag.String("targets", "", "path to targets YAML keyed by level file name")
	interval := flag.Int("interval", 0, "difficulty curve interval (overrides analysis.difficulty_curve_interval)")
	workers := flag.Int("workers", 0, "concurrent levels (overrides batch.workers)")
	summary := flag.Bool("summary", false, "append mean/std summary over all levels")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: levelstat [flags] [level files...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	applyOverrides(&cfg, *iconsPath, *scriptPath, *interval, *workers)

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	icons := level.DefaultIconSet()
	if cfg.Analysis.IconsFile != "" {
		icons, err = level.LoadIconSetFromFile(cfg.Analysis.IconsFile)
		if err != nil {
			logger.Fatal("loading icons", zap.Error(err))
		}
	}

	var predicate filter.Predicate
	if cfg.Filter.Script != "" {
		src, err := os.ReadFile(cfg.Filter.Script)
		if err != nil {
			logger.Fatal("reading filter script", zap.Error(err))
		}
		p, err := scripting.CompilePredicate(string(src), cfg.Filter.InstructionLimit, logger)
		if err != nil {
			logger.Fatal("compiling filter script", zap.Error(err))
		}
		defer p.Close()
		predicate = p
	}

	var targets map[string]stats.Target
	if *targetsPath != "" {
		targets, err = stats.LoadTargetsFromFile(*targetsPath)
		if err != nil {
			logger.Fatal("loading targets", zap.Error(err))
		}
	}

	levels, err := readLevels(flag.Args(), os.Stdin)
	if err != nil {
		logger.Fatal("reading levels", zap.Error(err))
	}

	analyzer := metrics.NewAnalyzer(icons, cfg.Analysis.DifficultyCurveInterval, logger)
	rules := filter.Rules{
		MinRows:       cfg.Filter.MinRows,
		RequireBorder: cfg.Filter.RequireBorder,
		RequireEntry:  cfg.Filter.RequireEntry,
		RequireExit:   cfg.Filter.RequireExit,
	}
	runner := batch.NewRunner(analyzer, filter.New(rules, icons, predicate, logger), cfg.Batch.Workers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, err := runner.Run(ctx, levels)
	if err != nil {
		logger.Fatal("analyzing levels", zap.Error(err))
	}

	if err := writeReport(os.Stdout, buildReport(outcomes, *summary, targets)); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}
	logger.Info("levelstat complete",
		zap.Int("levels", len(levels)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// applyOverrides folds command-line flags over the loaded configuration.
// Zero-valued flags leave the configuration untouched.
func applyOverrides(cfg *config.Config, icons, script string, interval, workers int) {
	if icons != "" {
		cfg.Analysis.IconsFile = icons
	}
	if script != "" {
		cfg.Filter.Script = script
	}
	if interval > 0 {
		cfg.Analysis.DifficultyCurveInterval = interval
	}
	if workers > 0 {
		cfg.Batch.Workers = workers
	}
}

// readLevels loads the named files, or a single level from stdin when no
// paths are given.
func readLevels(paths []string, stdin io.Reader) ([]batch.Level, error) {
	if len(paths) > 0 {
		return batch.ReadFiles(paths)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return []batch.Level{{Name: "stdin", Text: string(data)}}, nil
}
