package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/maelic13/beast/internal/syzygy"
	"github.com/maelic13/beast/pkg/board"
	"github.com/maelic13/beast/pkg/board/fen"
	"github.com/maelic13/beast/pkg/eval"
	"github.com/maelic13/beast/pkg/search"
	"github.com/maelic13/beast/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 89, 3)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit. Overridden by search
	// options if provided.
	Depth uint
	// Hash is the transposition table size in MB. If zero, the engine will not use
	// a transposition table.
	Hash uint
	// Noise adds some centipawn randomness to the leaf evaluations.
	Noise uint

	// Heuristic selects the evaluator variant. The zero value behaves as VariantClassical.
	Heuristic eval.Variant
	// ModelFile is the ONNX model path used when Heuristic is VariantNeuralNetwork.
	ModelFile string
	// NetVersion is the tensor encoding used to load ModelFile.
	NetVersion eval.NetVersion

	// SyzygyPath is the directory of Syzygy tablebase files. Empty disables probing.
	SyzygyPath string
	// SyzygyProbeLimit bounds the total piece count a probe is attempted for.
	SyzygyProbeLimit int
	// Syzygy50MoveRule enables 50-move-rule-aware WDL classification.
	Syzygy50MoveRule bool

	// Threads is accepted and echoed per UCI convention but always clamped to 1: this
	// engine does not implement multi-threaded search.
	Threads uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v, heuristic=%v, model=%q, syzygy=%q, threads=%v}",
		o.Depth, o.Hash, o.Noise, o.Heuristic, o.ModelFile, o.SyzygyPath, o.Threads)
}

// CommandKind tags an EngineCommand.
type CommandKind int

const (
	CommandGo CommandKind = iota
	CommandStop
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandGo:
		return "go"
	case CommandStop:
		return "stop"
	case CommandQuit:
		return "quit"
	default:
		return "?"
	}
}

// EngineCommand is a message from a UCI Front-End to the Engine Worker: a tagged union of
// Go (carrying the sticky search options for that search), Stop and Quit.
type EngineCommand struct {
	Kind CommandKind
	Go   searchctl.Options // populated when Kind == CommandGo
}

// Engine encapsulates game-playing logic, search and evaluation.
type Engine struct {
	name, author string

	launcher   searchctl.Launcher
	factory    search.TranspositionTableFactory
	zt         *board.ZobristTable
	seed       int64
	opts       Options
	timeBudget searchctl.TimeBudgetFunc

	// evalSwitch is the runtime-swappable leaf evaluator wired into the search tree's
	// Quiescence/StaticEvaluator chain, if the caller provided one via WithEvaluator. It
	// lets setoption commands change Heuristic/ModelFile/Syzygy options on a running
	// engine without rebuilding the alpha-beta/quiescence tree itself.
	evalSwitch *eval.Switchable
	// evalErr records the diagnostic from the most recent evaluator (re)configuration
	// attempt, nil if it succeeded.
	evalErr error

	b      *board.Board
	tt     search.TranspositionTable
	noise  eval.Random
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithTable configures the engine to use the given transposition table factory.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) {
		e.factory = factory
	}
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of the
// default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithTimeBudget overrides the default §4.3 time allocation policy used by iterative
// deepening to turn clock time into a per-search budget.
func WithTimeBudget(fn searchctl.TimeBudgetFunc) Option {
	return func(e *Engine) {
		e.timeBudget = fn
	}
}

// WithEvaluator wires sw as the runtime-swappable leaf evaluator of the caller's search
// tree, so SetHeuristic/SetModelFile/SetSyzygy* can reconfigure a running engine. Without
// this option the Heuristic/ModelFile/Syzygy* options are still accepted and echoed, but
// have no effect on search (there is nothing to reconfigure).
func WithEvaluator(sw *eval.Switchable) Option {
	return func(e *Engine) {
		e.evalSwitch = sw
	}
}

func New(ctx context.Context, name, author string, root search.Search, opts ...Option) *Engine {
	e := &Engine{
		name:       name,
		author:     author,
		factory:    search.NewTranspositionTable,
		timeBudget: searchctl.DefaultTimeBudget,
		opts:       Options{Heuristic: eval.VariantClassical, NetVersion: eval.NetV2, Syzygy50MoveRule: true, Threads: 1},
	}
	for _, fn := range opts {
		fn(e)
	}
	e.launcher = &searchctl.Iterative{Root: root, Budget: e.timeBudget}
	e.zt = board.NewZobristTable(e.seed)

	_ = e.Reset(ctx, fen.Initial)
	e.applyEvaluator(ctx)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = size
}

func (e *Engine) SetNoise(centipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = centipawns
}

// SetHeuristic selects the evaluator variant, reconfiguring the evaluator in place if a
// Switchable was wired in via WithEvaluator.
func (e *Engine) SetHeuristic(ctx context.Context, v eval.Variant) {
	e.mu.Lock()
	e.opts.Heuristic = v
	e.mu.Unlock()

	e.applyEvaluator(ctx)
}

// SetModelFile sets the ONNX model path used by the NeuralNetwork variant, reconfiguring
// the evaluator in place.
func (e *Engine) SetModelFile(ctx context.Context, path string) {
	e.mu.Lock()
	e.opts.ModelFile = path
	e.mu.Unlock()

	e.applyEvaluator(ctx)
}

// SetNetVersion sets the tensor encoding used to load ModelFile.
func (e *Engine) SetNetVersion(ctx context.Context, v eval.NetVersion) {
	e.mu.Lock()
	e.opts.NetVersion = v
	e.mu.Unlock()

	e.applyEvaluator(ctx)
}

// SetSyzygyPath sets the directory of Syzygy tablebase files, reconfiguring the evaluator
// in place. An empty path disables probing.
func (e *Engine) SetSyzygyPath(ctx context.Context, path string) {
	e.mu.Lock()
	e.opts.SyzygyPath = path
	e.mu.Unlock()

	e.applyEvaluator(ctx)
}

// SetSyzygyProbeLimit sets the maximum total piece count a tablebase probe is attempted
// for.
func (e *Engine) SetSyzygyProbeLimit(ctx context.Context, limit int) {
	e.mu.Lock()
	e.opts.SyzygyProbeLimit = limit
	e.mu.Unlock()

	e.applyEvaluator(ctx)
}

// SetSyzygy50MoveRule toggles 50-move-rule-aware WDL classification.
func (e *Engine) SetSyzygy50MoveRule(ctx context.Context, enabled bool) {
	e.mu.Lock()
	e.opts.Syzygy50MoveRule = enabled
	e.mu.Unlock()

	e.applyEvaluator(ctx)
}

// SetThreads accepts and echoes the requested thread count, but always clamps the engine
// to single-threaded search, logging a diagnostic if a GUI asked for more than one.
func (e *Engine) SetThreads(ctx context.Context, n uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n > 1 {
		logw.Warningf(ctx, "Threads=%v requested, clamped to 1: multi-threaded search is not implemented", n)
	}
	e.opts.Threads = 1
}

// applyEvaluator rebuilds the evaluator from the current Options and installs it into the
// Switchable leaf of the search tree, falling back to Classical (with a logged diagnostic)
// if the requested variant cannot be constructed -- e.g. a missing or invalid ModelFile.
// This is the Engine Worker's "configure the Evaluator" step: since it runs synchronously
// on every setoption that touches Heuristic/ModelFile/NetVersion/Syzygy*, any subsequent Go
// command always observes the latest requested configuration (or its classical fallback).
func (e *Engine) applyEvaluator(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.applyEvaluatorLocked(ctx)
}

// applyEvaluatorLocked is applyEvaluator's body. Caller must hold e.mu.
func (e *Engine) applyEvaluatorLocked(ctx context.Context) {
	if e.evalSwitch == nil {
		return // no runtime-swappable leaf wired in; Heuristic/ModelFile are inert.
	}

	var base eval.Evaluator
	switch e.opts.Heuristic {
	case eval.VariantNeuralNetwork:
		nn, err := eval.NewNeuralNetwork(e.opts.ModelFile, e.opts.NetVersion)
		if err != nil {
			logw.Errorf(ctx, "Failed to load neural network %q, falling back to classical: %v", e.opts.ModelFile, err)
			e.evalErr = err
			base = eval.Classical{}
		} else {
			e.evalErr = nil
			base = nn
		}

	case eval.VariantRandom:
		e.evalErr = nil
		base = eval.NewRandomEvaluator(e.seed)

	default:
		e.evalErr = nil
		base = eval.Classical{}
	}

	var prober syzygy.Prober = syzygy.NoProber{}
	if e.opts.SyzygyPath != "" {
		prober = syzygy.NewDirProber(e.opts.SyzygyPath, e.opts.SyzygyProbeLimit, e.opts.Syzygy50MoveRule)
	}
	e.evalSwitch.Set(eval.NewTablebase(base, prober))
}

// Board returns a forked board.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Fork()
}

// Position returns the current position in FEN format. Convenience function.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b.Position(), e.b.Turn(), e.b.NoProgress(), e.b.FullMoves())
}

// Reset resets the engine to a new starting position in FEN format. Heuristic/ModelFile/
// Syzygy* options are sticky across Reset -- they are engine configuration, not position
// state, and only ucinewgame-triggered resets are expected to carry over a prior game's
// evaluator choice.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB, noise=%vcp", position, e.opts.Depth, e.opts.Hash, e.opts.Noise)

	_, _ = e.haltSearchIfActive(ctx)

	pos, turn, noprogress, fullmoves, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(e.zt, pos, turn, noprogress, fullmoves)

	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = e.factory(ctx, uint64(e.opts.Hash)<<20)
	}
	e.noise = eval.Random{}
	if e.opts.Noise > 0 {
		e.noise = eval.NewRandom(int(e.opts.Noise), e.seed)
	}

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// Move selects the given move, usually an opponent move.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %v", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	moves := e.b.Position().PseudoLegalMoves(e.b.Turn())
	for _, m := range moves {
		if !candidate.Equals(m) {
			continue
		}

		// Candidate is at least pseudo-legal.

		if !e.b.PushMove(m) {
			return fmt.Errorf("illegal move: %v", m)
		}

		logw.Infof(ctx, "Move %v: %v", m, e.b)
		return nil
	}
	return fmt.Errorf("invalid move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze analyzes the current position. Clamps the search to depth 1 if the active
// evaluator variant requires it (see eval.Variant.NeedsDepthClamp), since e.g. the Random
// variant's score carries no information across plies.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}
	if e.opts.Heuristic.NeedsDepthClamp() {
		opt.DepthLimit = lang.Some(uint(1))
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.b, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	handle, out := e.launcher.Launch(ctx, e.b.Fork(), e.tt, e.noise, opt)
	e.active = handle
	return out, nil
}

// Submit dispatches an EngineCommand to the worker: Go starts a new search (honoring
// whatever evaluator and depth clamp the current Options imply), Stop halts the active
// search, and Quit halts it as a final step before the driver exits.
func (e *Engine) Submit(ctx context.Context, cmd EngineCommand) (<-chan search.PV, error) {
	switch cmd.Kind {
	case CommandGo:
		return e.Analyze(ctx, cmd.Go)
	case CommandStop, CommandQuit:
		_, _ = e.Halt(ctx)
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown engine command: %v", cmd.Kind)
	}
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
