package engine

import (
	"github.com/katalvlaran/dagflow/pkg/dag"
	"github.com/katalvlaran/dagflow/pkg/history"
)

// rootInput is the node the builder pre-inserts as id 0: its output equals
// whatever row it was just handed, verbatim.
type rootInput[T history.Tick, V history.Float] struct {
	mem []V
}

func newRootInput[T history.Tick, V history.Float](width int) *rootInput[T, V] {
	return &rootInput[T, V]{mem: make([]V, width)}
}

func (r *rootInput[T, V]) NumInputs() int  { return r.NumOutputs() }
func (r *rootInput[T, V]) NumOutputs() int { return len(r.mem) }
func (r *rootInput[T, V]) NumDepends() int { return 0 }

func (r *rootInput[T, V]) OnData(_ T, inputs [][]V) {
	if len(inputs) > 0 {
		copy(r.mem, inputs[0])
	}
}

func (r *rootInput[T, V]) Value(out []V) { copy(out, r.mem) }

func (r *rootInput[T, V]) Reset() {
	for i := range r.mem {
		r.mem[i] = 0
	}
}

// nodeInfo is the builder's working record for one committed node.
type nodeInfo[T history.Tick, V history.Float] struct {
	op           Operator[T, V]
	preds        []int
	outputOffset int
	outputCount  int
}

// Builder assembles an Engine one operator at a time. It pre-inserts the
// root input node at construction and is not reusable once Build succeeds.
type Builder[T history.Tick, V history.Float] struct {
	graph           *dag.Graph
	nodes           []nodeInfo[T, V]
	totalOutputSize int
	consumed        bool
}

// NewBuilder creates a builder whose root input node (id 0) has the given
// external row width.
func NewBuilder[T history.Tick, V history.Float](inputArity int) *Builder[T, V] {
	b := &Builder[T, V]{graph: dag.New(8, 16)}
	root := newRootInput[T, V](inputArity)
	b.graph.Add(nil) // root has no predecessors; cannot fail
	b.nodes = append(b.nodes, nodeInfo[T, V]{op: root, outputOffset: 0, outputCount: inputArity})
	b.totalOutputSize = inputArity
	return b
}

// NumNodes reports how many nodes (including the root input) are committed
// so far.
func (b *Builder[T, V]) NumNodes() int { return len(b.nodes) }

// TotalOutputSize reports the per-step output width committed so far.
func (b *Builder[T, V]) TotalOutputSize() int { return b.totalOutputSize }

// AddOp appends op with the given predecessor ids, returning its assigned
// node id. It fails with InvalidDependency if any predecessor id is
// out of range, or ArityMismatch if len(preds) does not equal
// op.NumDepends().
func (b *Builder[T, V]) AddOp(op Operator[T, V], preds []int) (int, error) {
	if b.consumed {
		return dag.InvalidID, &BuildError{Kind: EmptyBuild}
	}
	nextID := len(b.nodes)
	if len(preds) != op.NumDepends() {
		return dag.InvalidID, &BuildError{Kind: ArityMismatch, NodeID: nextID}
	}
	if !b.graph.Validate(preds) {
		return dag.InvalidID, &BuildError{Kind: InvalidDependency, NodeID: nextID}
	}

	id, err := b.graph.Add(preds)
	if err != nil {
		return dag.InvalidID, &BuildError{Kind: InvalidDependency, NodeID: nextID}
	}

	offset := b.totalOutputSize
	count := op.NumOutputs()
	b.totalOutputSize += count
	b.nodes = append(b.nodes, nodeInfo[T, V]{op: op, preds: preds, outputOffset: offset, outputCount: count})
	return id, nil
}

// Build finalises the builder into a running Engine with history pre-sized
// for initialHistoryCapacity steps. The builder is not reusable afterward.
func (b *Builder[T, V]) Build(initialHistoryCapacity int) (*Engine[T, V], error) {
	if b.consumed || len(b.nodes) == 0 {
		return nil, &BuildError{Kind: EmptyBuild}
	}
	b.consumed = true

	ops := make([]Operator[T, V], len(b.nodes))
	offsets := make([]int, len(b.nodes))
	watermarks := make([]T, len(b.nodes))
	for i, n := range b.nodes {
		ops[i] = n.op
		offsets[i] = n.outputOffset
	}

	return &Engine[T, V]{
		graph:        b.graph,
		ops:          ops,
		outputOffset: offsets,
		outputSize:   b.totalOutputSize,
		hist:         history.New[T, V](b.totalOutputSize, initialHistoryCapacity),
		watermarks:   watermarks,
	}, nil
}
