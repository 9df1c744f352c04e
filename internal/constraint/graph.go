package constraint

import "github.com/sunholo/typesolver/internal/types"

// Graph is a union-find equivalence structure over type-variable ids,
// tracking which type variables the solver has already merged (via an
// Equal/Bind constraint) into one representative. Generalizes the
// teacher's TypeEnv (env.go), a parent-chain lookup structure for
// bindings, from a simple scope-parent chain to full path-compressing
// union-find with an undo log so scopes can roll merges back.
type Graph struct {
	parent map[int]int
	rank   map[int]int
	fixed  map[int]types.Type // representative -> its ground binding, if any

	// log records union operations in order, for Rollback.
	log []graphOp
}

type graphOp struct {
	child, oldParent int
	hadFixed         bool
	prevFixed        types.Type
	fixedRoot        int
}

// NewGraph creates an empty constraint graph.
func NewGraph() *Graph {
	return &Graph{
		parent: make(map[int]int),
		rank:   make(map[int]int),
		fixed:  make(map[int]types.Type),
	}
}

// Find returns the representative id of v's equivalence class, path-
// compressing along the way.
func (g *Graph) Find(v int) int {
	p, ok := g.parent[v]
	if !ok {
		g.parent[v] = v
		return v
	}
	if p == v {
		return v
	}
	root := g.Find(p)
	if root != p {
		g.log = append(g.log, graphOp{child: v, oldParent: p})
		g.parent[v] = root
	}
	return root
}

// Mark records a watermark so a later Rollback can undo every Union/Bind
// since this call.
func (g *Graph) Mark() int { return len(g.log) }

// Rollback undoes every Union/Bind performed since the Mark watermark.
func (g *Graph) Rollback(mark int) {
	for i := len(g.log) - 1; i >= mark; i-- {
		op := g.log[i]
		g.parent[op.child] = op.oldParent
		if op.hadFixed {
			if op.prevFixed != nil {
				g.fixed[op.fixedRoot] = op.prevFixed
			} else {
				delete(g.fixed, op.fixedRoot)
			}
		}
	}
	g.log = g.log[:mark]
}

// Union merges a's and b's equivalence classes. Returns the new
// representative.
func (g *Graph) Union(a, b int) int {
	ra, rb := g.Find(a), g.Find(b)
	if ra == rb {
		return ra
	}
	if g.rank[ra] < g.rank[rb] {
		ra, rb = rb, ra
	}
	fixedB, bHad := g.fixed[rb]
	g.log = append(g.log, graphOp{child: rb, oldParent: rb, hadFixed: bHad, prevFixed: fixedB, fixedRoot: rb})
	g.parent[rb] = ra
	if g.rank[ra] == g.rank[rb] {
		g.rank[ra]++
	}
	if bHad {
		g.log = append(g.log, graphOp{
			child: ra, oldParent: g.parent[ra],
			hadFixed: true, prevFixed: g.fixed[ra], fixedRoot: ra,
		})
		delete(g.fixed, rb)
		g.fixed[ra] = fixedB
	}
	return ra
}

// Bind fixes v's equivalence class to a ground type. Returns false if the
// class was already bound to a different, non-equal type (the caller
// must raise a type-mismatch failure in that case).
func (g *Graph) Bind(v int, t types.Type) bool {
	root := g.Find(v)
	if existing, ok := g.fixed[root]; ok {
		return existing.Equals(t)
	}
	g.log = append(g.log, graphOp{
		child: root, oldParent: g.parent[root],
		hadFixed: true, prevFixed: nil, fixedRoot: root,
	})
	g.fixed[root] = t
	return true
}

// Binding returns the ground type fixed to v's equivalence class, if any.
func (g *Graph) Binding(v int) (types.Type, bool) {
	t, ok := g.fixed[g.Find(v)]
	return t, ok
}

// Snapshot returns a copy of every type-variable id this graph has a
// representative for, mapped to its resolved ground binding (if the
// class has one). Used by internal/solver to capture a solved branch's
// bindings before rolling the scope back to try the next alternative.
func (g *Graph) Snapshot() map[int]types.Type {
	out := make(map[int]types.Type, len(g.parent))
	for v := range g.parent {
		if t, ok := g.fixed[g.Find(v)]; ok {
			out[v] = t
		}
	}
	return out
}
