package analyzer

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/gogpu/pngc/ast"
)

// MaxDFSDepth bounds the explicit DFS stack used to detect import cycles
// among #wgsl declarations. MaxDFSIterations bounds total edge visits
// across the whole graph, independent of its shape.
const (
	MaxDFSDepth      = 1024
	MaxDFSIterations = MaxDFSDepth * 8
)

// dfsFrame is one stack frame of the iterative DFS: the node it is
// visiting and how far through that node's edge list it has gotten.
type dfsFrame struct {
	node  uint32
	edges []uint32
	next  int
}

// passDetectImportCycles is pass 5: #wgsl declarations form a dependency
// graph through their "imports" property (an array of sibling #wgsl
// names); a cycle anywhere in that graph is an error. Traversal uses an
// explicit stack plus two bitsets (visiting: on the current DFS path,
// visited: fully explored) instead of recursive calls, per package doc.
func (a *Analyzer) passDetectImportCycles() {
	wgslDecls := a.out.Symbols[NamespaceWgsl]
	if len(wgslDecls) == 0 {
		return
	}

	n := uint(a.ast.NodeCount())
	visiting := bitset.New(n)
	visited := bitset.New(n)
	iterations := 0

	for _, start := range orderedNodes(wgslDecls) {
		if visited.Test(uint(start)) {
			continue
		}
		if cycleNode, found := a.dfsFrom(start, visiting, visited, &iterations); found {
			a.out.addError(cycleNode, "import cycle detected")
		}
	}
}

// dfsFrom explores the import graph reachable from start. It returns the
// node at which a cycle was detected (true), or ok with found=false once
// everything reachable from start is fully visited.
func (a *Analyzer) dfsFrom(start uint32, visiting, visited *bitset.BitSet, iterations *int) (uint32, bool) {
	stack := []dfsFrame{{node: start, edges: a.importEdges(start)}}
	visiting.Set(uint(start))

	for len(stack) > 0 {
		*iterations++
		if *iterations > MaxDFSIterations {
			return start, true
		}
		if len(stack) > MaxDFSDepth {
			return start, true
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.edges) {
			visiting.Clear(uint(top.node))
			visited.Set(uint(top.node))
			stack = stack[:len(stack)-1]
			continue
		}

		next := top.edges[top.next]
		top.next++

		if visiting.Test(uint(next)) {
			return next, true
		}
		if visited.Test(uint(next)) {
			continue
		}
		visiting.Set(uint(next))
		stack = append(stack, dfsFrame{node: next, edges: a.importEdges(next)})
	}
	return 0, false
}

// importEdges reads a #wgsl declaration's "imports" property (an array of
// bare identifiers) and resolves each to a sibling #wgsl declaration node,
// silently skipping names passResolveBareIdentifiers would already have
// flagged as unresolved had "imports" been in bareIdentifierContext — it
// isn't, since it only has meaning for this pass.
func (a *Analyzer) importEdges(declNode uint32) []uint32 {
	props := a.propertiesOf(declNode)
	valueNode, ok := props["imports"]
	if !ok || a.ast.Tags[valueNode] != ast.ArrayValue {
		return nil
	}

	wgslDecls := a.out.Symbols[NamespaceWgsl]
	start, end := a.ast.Datas[valueNode].SubRange()
	var edges []uint32
	for _, el := range a.ast.ExtraSlice(start, end) {
		if a.ast.Tags[el] != ast.IdentifierValue {
			continue
		}
		name := string(a.ast.TokenLexeme(el))
		if dep, ok := wgslDecls[name]; ok {
			edges = append(edges, dep)
		}
	}
	return edges
}

// orderedNodes returns a symbol table's declaration nodes sorted by node
// index (i.e. declaration order), so graph traversal order — and therefore
// which node a cycle is reported against — is deterministic across runs.
func orderedNodes(m map[string]uint32) []uint32 {
	nodes := make([]uint32, 0, len(m))
	for _, n := range m {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}
