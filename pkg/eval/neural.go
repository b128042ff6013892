package eval

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/maelic13/beast/pkg/board"
	ort "github.com/yalue/onnxruntime_go"
)

// NetVersion identifies the tensor encoding a neural network model expects.
type NetVersion int

const (
	NetV1 NetVersion = iota + 1 // (7,8,8): 6 piece planes + side-to-move plane
	NetV2                       // (17,8,8): 12 piece planes + side-to-move + 4 castling planes
)

// ParseNetVersion parses a model_version string as found in a model's metadata.
func ParseNetVersion(s string) (NetVersion, error) {
	switch s {
	case "v1", "V1":
		return NetV1, nil
	case "v2", "V2":
		return NetV2, nil
	default:
		return 0, fmt.Errorf("invalid net version: %q", s)
	}
}

func (v NetVersion) shape() ort.Shape {
	switch v {
	case NetV1:
		return ort.NewShape(1, 7, 8, 8)
	case NetV2:
		return ort.NewShape(1, 17, 8, 8)
	default:
		return ort.NewShape(1, 7, 8, 8)
	}
}

// NeuralNetwork is an Evaluator backed by an ONNX Runtime inference session. It encodes
// the position as a fixed-shape tensor the way the original Python implementation's
// NetInputFactory did, keyed by the model's declared NetVersion, and rescales the raw
// model output into centipawns.
//
// onnxruntime_go does not expose a way to read a model's custom metadata map, unlike
// Python's onnxruntime; the caller therefore supplies the NetVersion explicitly (the engine
// takes it from the -net-version flag, default v2) rather than it being auto-detected from
// the model itself.
type NeuralNetwork struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	version NetVersion
}

// NewNeuralNetwork loads an ONNX model from modelFile and prepares a reusable inference
// session for the given tensor encoding version.
func NewNeuralNetwork(modelFile string, version NetVersion) (*NeuralNetwork, error) {
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	input, err := ort.NewEmptyTensor[float32](version.shape())
	if err != nil {
		return nil, fmt.Errorf("allocate input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelFile,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}, nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("create onnx session for %v: %w", modelFile, err)
	}

	return &NeuralNetwork{session: session, input: input, output: output, version: version}, nil
}

// Close releases the underlying ONNX Runtime session and tensors.
func (n *NeuralNetwork) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	err := n.session.Destroy()
	n.input.Destroy()
	n.output.Destroy()
	return err
}

func (n *NeuralNetwork) Evaluate(_ context.Context, b *board.Board) Score {
	n.mu.Lock()
	defer n.mu.Unlock()

	data := n.input.GetData()
	for i := range data {
		data[i] = 0 // the tensor is reused: clear the previous position's planes
	}
	switch n.version {
	case NetV2:
		encodeNetInputV2(b, data)
	default:
		encodeNetInputV1(b, data)
	}

	if err := n.session.Run(); err != nil {
		// A broken inference session cannot recover mid-search; treat it as a neutral,
		// non-fatal evaluation rather than panicking.
		return DrawScore
	}

	raw := n.output.GetData()[0]
	if n.version == NetV2 {
		// Log-odds scaling; p is kept away from 0 and 1 so the logarithm stays finite.
		p := math.Min(math.Max(float64(raw), 1e-6), 1-1e-6)
		return Crop(Score(math.Round(400 * math.Log10(p/(1-p)))))
	}
	return Crop(Score(raw * 2000))
}

// encodeNetInputV1 fills a (7,8,8) tensor: one plane per piece type (white positive,
// black negative, king and its opposing color collapsed per the original's layout) plus
// a side-to-move plane, indexed [plane][rank(0=rank8)][file].
func encodeNetInputV1(b *board.Board, data []float32) {
	pos := b.Position()
	planeOf := map[board.Piece]int{
		board.Pawn: 0, board.Knight: 1, board.Bishop: 2,
		board.Rook: 3, board.Queen: 4, board.King: 5,
	}

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		c, p, ok := pos.Square(sq)
		if !ok {
			continue
		}
		row, col := 7-int(sq.Rank()), int(sq.File())
		idx := planeOf[p]*64 + row*8 + col
		if c == board.White {
			data[idx] = 1
		} else {
			data[idx] = -1
		}
	}

	turn := float32(1)
	if b.Turn() == board.Black {
		turn = -1
	}
	for i := 0; i < 64; i++ {
		data[6*64+i] = turn
	}
}

// encodeNetInputV2 fills a (17,8,8) tensor: 12 one-hot piece planes, a side-to-move
// plane, and 4 castling-right planes.
func encodeNetInputV2(b *board.Board, data []float32) {
	pos := b.Position()
	planeOf := map[board.Color]map[board.Piece]int{
		board.White: {board.Pawn: 0, board.Knight: 1, board.Bishop: 2, board.Rook: 3, board.Queen: 4, board.King: 5},
		board.Black: {board.Pawn: 6, board.Knight: 7, board.Bishop: 8, board.Rook: 9, board.Queen: 10, board.King: 11},
	}

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		c, p, ok := pos.Square(sq)
		if !ok {
			continue
		}
		row, col := 7-int(sq.Rank()), int(sq.File())
		data[planeOf[c][p]*64+row*8+col] = 1
	}

	fill := func(plane int, v float32) {
		for i := 0; i < 64; i++ {
			data[plane*64+i] = v
		}
	}

	turn := float32(0)
	if b.Turn() == board.White {
		turn = 1
	}
	fill(12, turn)

	castling := pos.Castling()
	fill(13, boolF(castling.IsAllowed(board.WhiteKingSideCastle)))
	fill(14, boolF(castling.IsAllowed(board.WhiteQueenSideCastle)))
	fill(15, boolF(castling.IsAllowed(board.BlackKingSideCastle)))
	fill(16, boolF(castling.IsAllowed(board.BlackQueenSideCastle)))
}

func boolF(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
