// Command beast is a UCI chess engine with a pluggable evaluator: a classical
// heuristic or an ONNX neural network, optionally backed by Syzygy tablebases.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/maelic13/beast/internal/syzygy"
	"github.com/maelic13/beast/pkg/engine"
	"github.com/maelic13/beast/pkg/engine/console"
	"github.com/maelic13/beast/pkg/engine/uci"
	"github.com/maelic13/beast/pkg/eval"
	"github.com/maelic13/beast/pkg/search"
	"github.com/seekerror/logw"
)

var (
	heuristicFlag = flag.String("heuristic", "classical", "Evaluator to use: classical, neural or random")
	modelFile     = flag.String("model-file", "", "ONNX model path (required if -heuristic=neural)")
	netVer        = flag.String("net-version", "v2", "Neural net tensor encoding: v1 or v2")

	depth = flag.Uint("depth", 0, "Default search depth limit (0: no limit)")
	hash  = flag.Uint("hash", 64, "Transposition table size in MB (0: disabled)")
	noise = flag.Int("noise", 0, "Evaluation noise in centipawns (0: deterministic)")

	syzygyPath       = flag.String("syzygy-path", "", "Directory of Syzygy tablebase files (empty: disabled)")
	syzygyProbeLimit = flag.Int("syzygy-probe-limit", 7, "Maximum piece count to probe")
	syzygy50Move     = flag.Bool("syzygy-50-move-rule", true, "Respect the fifty-move rule in WDL classification")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: beast [options]

BEAST is a UCI chess engine with a pluggable evaluator.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e, err := newEvaluator(ctx)
	if err != nil {
		logw.Exitf(ctx, "Invalid evaluator configuration: %v", err)
	}
	sw := eval.NewSwitchable(e)

	root := search.AlphaBeta{
		Explore: search.FullExploration,
		Eval: search.Quiescence{
			Explore: search.TacticalExploration,
			Eval:    search.StaticEvaluator{Eval: sw},
		},
	}

	heuristic, err := eval.ParseVariant(expandHeuristicFlag(*heuristicFlag))
	if err != nil {
		logw.Exitf(ctx, "Invalid -heuristic: %v", err)
	}
	netVersion, err := eval.ParseNetVersion(*netVer)
	if err != nil {
		logw.Exitf(ctx, "Invalid -net-version: %v", err)
	}

	eng := engine.New(ctx, "beast", "maelic13", root,
		engine.WithOptions(engine.Options{
			Depth:            *depth,
			Hash:             *hash,
			Noise:            uint(*noise),
			Heuristic:        heuristic,
			ModelFile:        *modelFile,
			NetVersion:       netVersion,
			SyzygyPath:       *syzygyPath,
			SyzygyProbeLimit: *syzygyProbeLimit,
			Syzygy50MoveRule: *syzygy50Move,
			Threads:          1,
		}),
		engine.WithZobrist(time.Now().UnixNano()),
		engine.WithEvaluator(sw))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, eng, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, eng, root, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}

// expandHeuristicFlag maps the short -heuristic flag values onto the eval.Variant names
// used by the UCI Heuristic option, so the CLI and UCI surfaces agree on one vocabulary.
func expandHeuristicFlag(s string) string {
	if s == "neural" {
		return string(eval.VariantNeuralNetwork)
	}
	return s
}

func newEvaluator(ctx context.Context) (eval.Evaluator, error) {
	var base eval.Evaluator
	switch expandHeuristicFlag(*heuristicFlag) {
	case string(eval.VariantClassical):
		base = eval.Classical{}

	case string(eval.VariantNeuralNetwork):
		if *modelFile == "" {
			return nil, fmt.Errorf("-model-file is required for -heuristic=neural")
		}
		v, err := eval.ParseNetVersion(*netVer)
		if err != nil {
			return nil, fmt.Errorf("parse -net-version: %w", err)
		}
		nn, err := eval.NewNeuralNetwork(*modelFile, v)
		if err != nil {
			logw.Errorf(ctx, "Failed to load neural network, falling back to classical: %v", err)
			base = eval.Classical{}
			break
		}
		base = nn

	case string(eval.VariantRandom):
		base = eval.NewRandomEvaluator(time.Now().UnixNano())

	default:
		return nil, fmt.Errorf("unknown heuristic: %v", *heuristicFlag)
	}

	var prober syzygy.Prober = syzygy.NoProber{}
	if *syzygyPath != "" {
		prober = syzygy.NewDirProber(*syzygyPath, *syzygyProbeLimit, *syzygy50Move)
	}
	return eval.NewTablebase(base, prober), nil
}
