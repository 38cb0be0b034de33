// Command packingsolver reads a JSON packing instance, runs the
// orchestrator, and writes a JSON solution certificate and optional SVG
// certificates, per spec.md §6.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fontanf/packingsolver-go/internal/colgen"
	"github.com/fontanf/packingsolver-go/internal/ioformat"
	"github.com/fontanf/packingsolver-go/internal/model"
	"github.com/fontanf/packingsolver-go/internal/orchestrator"
)

type flags struct {
	input                 string
	objective              string
	itemBinMinimumSpacing  float64
	itemItemMinimumSpacing float64
	output                 string
	certificate            string
	logPath                string
	timeLimit              float64
	seed                   int64
	verbosityLevel         int
	log2stderr             bool
	onlyWriteAtTheEnd      bool
	optimizationMode       string
	numberOfThreads        int

	useTreeSearch                bool
	useSequentialSingleKnapsack  bool
	useSequentialValueCorrection bool
	useDichotomicSearch          bool
	useColumnGeneration          bool

	queueSizeTreeSearch                int
	queueSizeSequentialSingleKnapsack  int
	queueSizeSequentialValueCorrection int
	queueSizeDichotomicSearch          int
	queueSizeColumnGeneration          int
}

func main() {
	var f flags
	root := &cobra.Command{
		Use:           "packingsolver",
		Short:         "2D irregular cutting-and-packing solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}

	fl := root.Flags()
	fl.StringVar(&f.input, "input", "", "input instance JSON path (required)")
	fl.StringVar(&f.objective, "objective", "", "override the instance's objective")
	fl.Float64Var(&f.itemBinMinimumSpacing, "item-bin-minimum-spacing", -1, "override item-bin minimum spacing")
	fl.Float64Var(&f.itemItemMinimumSpacing, "item-item-minimum-spacing", -1, "override item-item minimum spacing")
	fl.StringVar(&f.output, "output", "", "output solution JSON path")
	fl.StringVar(&f.certificate, "certificate", "", "output SVG certificate path (one file per bin, suffixed _N.svg)")
	fl.StringVar(&f.logPath, "log", "", "log file path")
	fl.Float64Var(&f.timeLimit, "time-limit", 10, "time limit in seconds")
	fl.Int64Var(&f.seed, "seed", 0, "random seed (reserved; no randomized strategy currently consumes it)")
	fl.IntVar(&f.verbosityLevel, "verbosity-level", 1, "0=errors only .. 3=debug")
	fl.BoolVar(&f.log2stderr, "log2stderr", false, "also log to stderr")
	fl.BoolVar(&f.onlyWriteAtTheEnd, "only-write-at-the-end", false, "suppress intermediate certificate writes")
	fl.StringVar(&f.optimizationMode, "optimization-mode", "anytime", "anytime|not-anytime|not-anytime-sequential|not-anytime-deterministic")
	fl.IntVar(&f.numberOfThreads, "number-of-threads", 0, "max concurrent strategy workers (0 = unlimited)")

	fl.BoolVar(&f.useTreeSearch, "use-tree-search", true, "enable C6 tree search")
	fl.BoolVar(&f.useSequentialSingleKnapsack, "use-sequential-single-knapsack", true, "enable C7")
	fl.BoolVar(&f.useSequentialValueCorrection, "use-sequential-value-correction", true, "enable C8")
	fl.BoolVar(&f.useDichotomicSearch, "use-dichotomic-search", true, "enable C9")
	fl.BoolVar(&f.useColumnGeneration, "use-column-generation", true, "enable C10")

	fl.IntVar(&f.queueSizeTreeSearch, "queue-size-tree-search", 8, "starting queue size for C6")
	fl.IntVar(&f.queueSizeSequentialSingleKnapsack, "queue-size-sequential-single-knapsack", 16, "starting queue size for C7")
	fl.IntVar(&f.queueSizeSequentialValueCorrection, "queue-size-sequential-value-correction", 32, "starting queue size for C8")
	fl.IntVar(&f.queueSizeDichotomicSearch, "queue-size-dichotomic-search", 16, "starting queue size for C9")
	fl.IntVar(&f.queueSizeColumnGeneration, "queue-size-column-generation", 32, "starting queue size for C10")

	_ = root.MarkFlagRequired("input")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(f flags) error {
	logger, sync, err := buildLogger(f)
	if err != nil {
		return err
	}
	defer sync()

	data, err := os.ReadFile(f.input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	inst, err := ioformat.DecodeInstance(data)
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}
	applyOverrides(inst, f)

	params := orchestrator.DefaultParams()
	params.Logger = logger
	params.Mode = parseOptimizationMode(f.optimizationMode)
	params.TimeLimit = time.Duration(f.timeLimit * float64(time.Second))
	params.NumThreads = f.numberOfThreads

	params.UseTreeSearch = f.useTreeSearch
	params.UseSequentialSingleKnapsack = f.useSequentialSingleKnapsack
	params.UseSequentialValueCorrection = f.useSequentialValueCorrection
	params.UseDichotomicSearch = f.useDichotomicSearch
	params.UseColumnGeneration = f.useColumnGeneration

	params.QueueSizeTreeSearch = f.queueSizeTreeSearch
	params.QueueSizeSequentialSingleKnapsack = f.queueSizeSequentialSingleKnapsack
	params.QueueSizeSequentialValueCorrection = f.queueSizeSequentialValueCorrection
	params.QueueSizeDichotomicSearch = f.queueSizeDichotomicSearch
	params.QueueSizeColumnGeneration = f.queueSizeColumnGeneration

	params.LPSolverRule = lpSolverRuleFromEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := orchestrator.Run(ctx, inst, params)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if f.output != "" {
		if err := writeOutput(f, result); err != nil {
			return err
		}
	}
	if f.certificate != "" && result.Solution != nil {
		if err := writeCertificates(f, result); err != nil {
			return err
		}
	}
	return nil
}

func applyOverrides(inst *model.Instance, f flags) {
	if f.objective != "" {
		if obj, err := model.ParseObjective(f.objective); err == nil {
			inst.Objective = obj
		}
	}
	if f.itemBinMinimumSpacing >= 0 {
		inst.Parameters.ItemBinMinimumSpacing = f.itemBinMinimumSpacing
	}
	if f.itemItemMinimumSpacing >= 0 {
		inst.Parameters.ItemItemMinimumSpacing = f.itemItemMinimumSpacing
	}
}

func parseOptimizationMode(s string) orchestrator.OptimizationMode {
	switch s {
	case "not-anytime", "not-anytime-sequential":
		return orchestrator.NotAnytimeSequential
	case "not-anytime-deterministic":
		return orchestrator.NotAnytimeDeterministic
	default:
		return orchestrator.Anytime
	}
}

// lpSolverRuleFromEnv reads LP_SOLVER (spec.md §6's only environment
// variable), selecting which pivot rule C10's embedded simplex uses.
func lpSolverRuleFromEnv() colgen.PivotRule {
	if strings.ToLower(os.Getenv("LP_SOLVER")) == "bland" {
		return colgen.Bland
	}
	return colgen.Dantzig
}

func writeOutput(f flags, result orchestrator.Result) error {
	data, err := ioformat.EncodeSolution(result.Solution)
	if err != nil {
		return fmt.Errorf("encoding solution: %w", err)
	}
	return atomicWrite(f.output, data)
}

func writeCertificates(f flags, result orchestrator.Result) error {
	ext := filepath.Ext(f.certificate)
	base := strings.TrimSuffix(f.certificate, ext)
	for i := range result.Solution.Bins {
		svg, err := ioformat.EncodeBinSVG(result.Solution, i)
		if err != nil {
			return fmt.Errorf("encoding certificate for bin %d: %w", i, err)
		}
		path := fmt.Sprintf("%s_%d%s", base, i, ext)
		if err := atomicWrite(path, []byte(svg)); err != nil {
			return err
		}
	}
	return nil
}

// atomicWrite implements spec.md §7's "callbacks write atomically (write
// + rename)" requirement.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp." + strconv.Itoa(os.Getpid())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

func buildLogger(f flags) (*zap.SugaredLogger, func(), error) {
	level := verbosityToLevel(f.verbosityLevel)
	var cores []zapcore.Core
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if f.logPath != "" {
		file, err := os.OpenFile(f.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, func() {}, fmt.Errorf("opening log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), level))
	}
	if f.log2stderr || f.logPath == "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stderr), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	return logger.Sugar(), func() { _ = logger.Sync() }, nil
}

func verbosityToLevel(v int) zapcore.Level {
	switch {
	case v <= 0:
		return zapcore.ErrorLevel
	case v == 1:
		return zapcore.InfoLevel
	case v == 2:
		return zapcore.DebugLevel
	default:
		return zapcore.DebugLevel
	}
}
