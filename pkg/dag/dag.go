package dag

import "github.com/katalvlaran/dagflow/pkg/collections"

// meta holds the degree/offset pair the reference container keeps per node.
type meta struct {
	degree int
	offset int
}

// Statistics summarises the shape of a built graph.
type Statistics struct {
	NodeCount int
	EdgeCount int
	MaxDegree int
	AvgDegree float64
	RootCount int
	LeafCount int
}

// Graph is an append-only, topologically-sorted dependency DAG. Nodes are
// assigned sequential, dense ids starting at 0; a node's predecessors must
// all already exist, so id order is always a valid evaluation order — the
// engine walks nodes 0..N-1 and is guaranteed every predecessor of node i
// was evaluated first.
type Graph struct {
	preds   *collections.FlatMultiVector[int]
	meta    []meta
	visited *collections.VersionedBitset // lazily built, reused across DependsOn calls
}

// New creates an empty graph with room for nodeCap nodes and edgeCap total
// predecessor edges before the first growth.
func New(nodeCap, edgeCap int) *Graph {
	return &Graph{
		preds: collections.NewFlatMultiVector[int](edgeCap),
		meta:  make([]meta, 0, nodeCap),
	}
}

// Size returns the number of nodes in the graph.
func (g *Graph) Size() int { return len(g.meta) }

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool { return len(g.meta) == 0 }

// TotalDependencies returns the total number of predecessor edges stored
// across all nodes.
func (g *Graph) TotalDependencies() int { return g.preds.TotalSize() }

// Contains reports whether id refers to an existing node.
func (g *Graph) Contains(id int) bool { return id >= 0 && id < g.Size() }

// Validate reports whether every id in preds is less than the id the next
// Add call would assign — i.e. whether preds is a legal predecessor list
// for the node about to be added.
func (g *Graph) Validate(preds []int) bool {
	next := g.Size()
	for _, p := range preds {
		if p < 0 || p >= next {
			return false
		}
	}
	return true
}

// Add appends a new node with the given predecessor ids, returning its
// assigned id. preds must reference only already-added nodes (ids strictly
// less than the new node's id); otherwise Add returns InvalidID and
// ErrInvalidDependency, leaving the graph unchanged.
func (g *Graph) Add(preds []int) (int, error) {
	if !g.Validate(preds) {
		return InvalidID, ErrInvalidDependency
	}
	id := g.Size()
	g.preds.PushBack(preds)
	g.meta = append(g.meta, meta{degree: len(preds), offset: g.preds.TotalSize() - len(preds)})
	return id, nil
}

// Predecessors returns a borrowed view of id's predecessor ids. Valid only
// until the next Add or Clear.
func (g *Graph) Predecessors(id int) []int {
	g.mustContain(id)
	return g.preds.Row(id)
}

// Degree returns the number of predecessors id has.
func (g *Graph) Degree(id int) int {
	g.mustContain(id)
	return g.meta[id].degree
}

// IsRoot reports whether id has no predecessors.
func (g *Graph) IsRoot(id int) bool {
	g.mustContain(id)
	return g.meta[id].degree == 0
}

// Roots returns every node id with no predecessors.
func (g *Graph) Roots() []int {
	roots := make([]int, 0, g.Size())
	for i := 0; i < g.Size(); i++ {
		if g.IsRoot(i) {
			roots = append(roots, i)
		}
	}
	return roots
}

// Leaves returns every node id that is not a predecessor of any other node.
func (g *Graph) Leaves() []int {
	hasDependent := collections.NewBitset(g.Size())
	for i := 0; i < g.Size(); i++ {
		for _, p := range g.Predecessors(i) {
			hasDependent.Set(p)
		}
	}
	leaves := make([]int, 0, g.Size())
	for i := 0; i < g.Size(); i++ {
		if !hasDependent.Test(i) {
			leaves = append(leaves, i)
		}
	}
	return leaves
}

// Successors returns every node id that lists id as a predecessor. This is
// an O(E) scan; the contract treats it as a build-time/diagnostic
// operation, not a hot path.
func (g *Graph) Successors(id int) []int {
	g.mustContain(id)
	var successors []int
	for i := 0; i < g.Size(); i++ {
		for _, p := range g.Predecessors(i) {
			if p == id {
				successors = append(successors, i)
				break
			}
		}
	}
	return successors
}

// DependsOn reports whether b is reachable from a by following predecessor
// edges, i.e. whether a depends directly or indirectly on b. It runs an
// iterative depth-first search with a versioned visited set so repeated
// queries against the same graph don't pay for an O(n) clear each time.
func (g *Graph) DependsOn(a, b int) bool {
	g.mustContain(a)
	g.mustContain(b)
	if a == b {
		return false
	}

	if g.visited == nil {
		g.visited = collections.NewVersionedBitset(g.Size())
	}
	g.visited.Reset()

	stack := collections.NewStack[int](8)
	stack.Push(a)
	for {
		cur, ok := stack.Pop()
		if !ok {
			return false
		}
		if cur == b {
			return true
		}
		if g.visited.Test(cur) {
			continue
		}
		g.visited.Set(cur)
		for _, p := range g.Predecessors(cur) {
			if !g.visited.Test(p) {
				stack.Push(p)
			}
		}
	}
}

// Reserve grows node storage to hold at least nodeCap nodes without
// reallocating. edgeCap is not applied: predecessor-edge storage is not
// pre-grown and still reallocates on demand as nodes are added.
func (g *Graph) Reserve(nodeCap, edgeCap int) {
	if nodeCap > cap(g.meta) {
		grown := make([]meta, len(g.meta), nodeCap)
		copy(grown, g.meta)
		g.meta = grown
	}
	_ = edgeCap // FlatMultiVector grows its own backing slice on demand.
}

// Clear empties the graph, discarding all nodes and edges.
func (g *Graph) Clear() {
	g.preds.Clear()
	g.meta = g.meta[:0]
	g.visited = nil
}

// Statistics computes summary statistics over the current graph.
func (g *Graph) Statistics() Statistics {
	if g.Empty() {
		return Statistics{}
	}
	var maxDegree, roots int
	for i := 0; i < g.Size(); i++ {
		d := g.Degree(i)
		if d > maxDegree {
			maxDegree = d
		}
		if d == 0 {
			roots++
		}
	}
	return Statistics{
		NodeCount: g.Size(),
		EdgeCount: g.TotalDependencies(),
		MaxDegree: maxDegree,
		AvgDegree: float64(g.TotalDependencies()) / float64(g.Size()),
		RootCount: roots,
		LeafCount: len(g.Leaves()),
	}
}

func (g *Graph) mustContain(id int) {
	if !g.Contains(id) {
		panic("dag: node id out of bounds")
	}
}
