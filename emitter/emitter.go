// Package emitter lowers an analyzed ast.Ast into a bytecode.Module: one
// resource-creation instruction per declaration (in a fixed nine-step
// order so later steps can reference ids earlier steps assigned), then the
// render/compute pass bodies and frame bodies that drive those resources.
//
// Emission never runs over an Analysis that still carries errors — Emit
// asserts this up front, mirroring the same invariant package analyzer
// documents on Analysis.HasErrors.
package emitter

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/ast"
	"github.com/gogpu/pngc/bytecode"
)

// Builder accumulates the three sections of a bytecode.Module plus the
// per-namespace resource id tables needed to translate a declaration node
// into the id an earlier Create* instruction assigned it.
type Builder struct {
	ast      *ast.Ast
	analysis *analyzer.Analysis

	code    []byte
	blobs   [][]byte
	strings []string
	interns map[string]uint32

	resourceIDs map[analyzer.Namespace]map[uint32]uint32
	nextID      map[analyzer.Namespace]uint32

	// dataIDs maps a #data declaration's node to the data blob its value
	// was interned as. #data has no opcode of its own — it only exists to
	// give other declarations something to point at via a reference.
	dataIDs map[uint32]uint32

	defines map[string]string

	// queues holds each #queue declaration's optional "writeBuffer" body
	// (no entry if it has none), inlined wherever a frame's "perform" array
	// references it by name — a #queue itself never emits an instruction
	// on its own.
	queues map[uint32]uint32

	// passIDs assigns every #renderPass/#computePass declaration a single
	// shared pass id space (define_pass/exec_pass both index into it,
	// regardless of which of the two namespaces a given pass belongs to).
	passIDs    map[uint32]uint32
	nextPassID uint32

	// declNamespace maps every declaration node to the namespace it was
	// filed under, letting emitFrames tell a "perform" array element's
	// queue reference from its pass reference without re-deriving it from
	// the symbol tables on every lookup.
	declNamespace map[uint32]analyzer.Namespace

	// animationData maps a #animation declaration to its keyframes data_id.
	animationData map[uint32]uint32
}

func newBuilder(tree *ast.Ast, analysis *analyzer.Analysis) *Builder {
	return &Builder{
		ast:         tree,
		analysis:    analysis,
		interns:     make(map[string]uint32),
		resourceIDs: make(map[analyzer.Namespace]map[uint32]uint32),
		nextID:      make(map[analyzer.Namespace]uint32),
		dataIDs:       make(map[uint32]uint32),
		defines:       make(map[string]string),
		queues:        make(map[uint32]uint32),
		passIDs:       make(map[uint32]uint32),
		declNamespace: make(map[uint32]analyzer.Namespace),
		animationData: make(map[uint32]uint32),
	}
}

// Emit runs the full nine-step emission pipeline and returns the finished
// module.
func Emit(tree *ast.Ast, analysis *analyzer.Analysis) (*bytecode.Module, error) {
	if analysis.HasErrors() {
		return nil, fmt.Errorf("emitter: refusing to emit a module with %d unresolved analysis error(s)", len(analysis.Errors))
	}

	b := newBuilder(tree, analysis)
	log.Debug("emitter: starting")

	b.indexDeclNamespaces()
	b.collectDefines()
	b.emitDataDecls()
	b.emitShaders()
	b.emitBuffers()
	b.emitTextures()
	b.emitTextureViews()
	b.emitQuerySets()
	b.emitImageBitmaps()
	b.emitSamplers()
	b.emitAnimations()
	b.emitPipelines()
	b.emitBindGroups()
	b.collectQueues()
	b.emitPasses()
	b.emitFrames()

	log.WithFields(log.Fields{
		"instructionBytes": len(b.code),
		"dataBlobs":        len(b.blobs),
		"strings":          len(b.strings),
	}).Debug("emitter: finished")

	return &bytecode.Module{Bytecode: b.code, DataBlobs: b.blobs, Strings: b.strings}, nil
}

// indexDeclNamespaces builds the reverse lookup emitFrames needs to tell a
// "perform" array element's queue reference from its pass reference: every
// namespace's declaration nodes, flattened into one node->namespace map.
func (b *Builder) indexDeclNamespaces() {
	for ns, table := range b.analysis.Symbols {
		for _, declNode := range table {
			b.declNamespace[declNode] = ns
		}
	}
}

// assignPassID returns declNode's shared pass id, assigning the next free
// one on first sight — render and compute passes draw from the same id
// space since define_pass/exec_pass don't distinguish which kind a given id
// names.
func (b *Builder) assignPassID(declNode uint32) uint32 {
	if id, ok := b.passIDs[declNode]; ok {
		return id
	}
	id := b.nextPassID
	b.nextPassID = id + 1
	b.passIDs[declNode] = id
	return id
}

// assignID returns the sequential resource id for declNode within ns,
// assigning the next free one on first sight. IDs are per-namespace and
// start at 0, so a buffer id and a texture id with the same numeric value
// refer to different resources — the opcode itself disambiguates which
// table a caller means.
func (b *Builder) assignID(ns analyzer.Namespace, declNode uint32) uint32 {
	if b.resourceIDs[ns] == nil {
		b.resourceIDs[ns] = make(map[uint32]uint32)
	}
	if id, ok := b.resourceIDs[ns][declNode]; ok {
		return id
	}
	id := b.nextID[ns]
	b.nextID[ns] = id + 1
	b.resourceIDs[ns][declNode] = id
	return id
}

// idFor looks up an already-assigned resource id, for steps that reference
// a resource an earlier step must have created.
func (b *Builder) idFor(ns analyzer.Namespace, declNode uint32) (uint32, bool) {
	ids, ok := b.resourceIDs[ns]
	if !ok {
		return 0, false
	}
	id, ok := ids[declNode]
	return id, ok
}

// internData appends a data blob and returns its data_id, deduplicating
// identical blobs by exact byte content so repeated small descriptors
// (e.g. many identical sampler configs) only occupy the table once.
func (b *Builder) internData(data []byte) uint32 {
	for i, existing := range b.blobs {
		if string(existing) == string(data) {
			return uint32(i)
		}
	}
	id := uint32(len(b.blobs))
	b.blobs = append(b.blobs, data)
	return id
}

// internString returns s's string_id, interning it on first sight.
func (b *Builder) internString(s string) uint32 {
	if id, ok := b.interns[s]; ok {
		return id
	}
	id := uint32(len(b.strings))
	b.strings = append(b.strings, s)
	b.interns[s] = id
	return id
}

func (b *Builder) emitOp(op bytecode.Opcode, args ...uint64) {
	b.code = append(b.code, byte(op))
	for _, a := range args {
		b.code = bytecode.PutUvarint(b.code, a)
	}
}

// orderedDecls returns ns's declarations sorted by node index, i.e. by
// source order — every emission step iterates in this order so output is
// deterministic across runs of the same input.
func (b *Builder) orderedDecls(ns analyzer.Namespace) []uint32 {
	table := b.analysis.Symbols[ns]
	nodes := make([]uint32, 0, len(table))
	for _, n := range table {
		nodes = append(nodes, n)
	}
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j-1] > nodes[j]; j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
	return nodes
}

// propertyNumber evaluates a numeric property's value via the analyzer's
// constant expression evaluator (the emitter itself never re-implements
// arithmetic folding), defaulting to 0 when the property is absent or not
// foldable.
func (b *Builder) propertyNumber(props map[string]uint32, key string) uint64 {
	node, ok := props[key]
	if !ok {
		return 0
	}
	v, ok := b.analysis.EvalConst(node)
	if !ok {
		return 0
	}
	return uint64(v)
}

// propertyString returns a string-valued property's raw lexeme with its
// surrounding quotes stripped, or "" if absent or not a string.
func (b *Builder) propertyString(props map[string]uint32, key string) string {
	node, ok := props[key]
	if !ok {
		return ""
	}
	tag := b.ast.Tags[node]
	if tag != ast.StringValue && tag != ast.RuntimeInterpolation {
		return ""
	}
	lexeme := b.ast.TokenLexeme(node)
	if len(lexeme) >= 2 {
		return string(lexeme[1 : len(lexeme)-1])
	}
	return ""
}

// propertyStringArray reads an array-of-strings property. Elements may be
// quoted strings ("vertex") or, as usage-flag arrays are written in source,
// bare unquoted identifiers (VERTEX) — an identifier element carries its
// value directly in its lexeme, with no surrounding quotes to strip.
func (b *Builder) propertyStringArray(props map[string]uint32, key string) []string {
	node, ok := props[key]
	if !ok || b.ast.Tags[node] != ast.ArrayValue {
		return nil
	}
	start, end := b.ast.Datas[node].SubRange()
	var out []string
	for _, el := range b.ast.ExtraSlice(start, end) {
		tag := b.ast.Tags[el]
		switch tag {
		case ast.IdentifierValue:
			out = append(out, string(b.ast.TokenLexeme(el)))
		case ast.StringValue, ast.RuntimeInterpolation:
			lexeme := b.ast.TokenLexeme(el)
			if len(lexeme) >= 2 {
				out = append(out, string(lexeme[1:len(lexeme)-1]))
			}
		}
	}
	return out
}

// resolveRef resolves a property's value node to the declaration it
// refers to, whether it was written as an explicit $ns.name reference or a
// bare identifier the analyzer resolved by property context.
func (b *Builder) resolveRef(props map[string]uint32, key string) (uint32, bool) {
	node, ok := props[key]
	if !ok {
		return 0, false
	}
	declNode, ok := b.analysis.ResolvedReferences[node]
	return declNode, ok
}

// resolveRefArray resolves an array-of-references property to the
// declaration each element points at, skipping any element the analyzer
// could not resolve.
func (b *Builder) resolveRefArray(props map[string]uint32, key string) []uint32 {
	node, ok := props[key]
	if !ok || b.ast.Tags[node] != ast.ArrayValue {
		return nil
	}
	start, end := b.ast.Datas[node].SubRange()
	var out []uint32
	for _, el := range b.ast.ExtraSlice(start, end) {
		if declNode, ok := b.analysis.ResolvedReferences[el]; ok {
			out = append(out, declNode)
		}
	}
	return out
}

func (b *Builder) propertiesOf(declNode uint32) map[string]uint32 {
	start, end := b.ast.Datas[declNode].SubRange()
	children := b.ast.ExtraSlice(start, end)
	props := make(map[string]uint32, len(children))
	for _, propNode := range children {
		key := string(b.ast.TokenLexeme(propNode))
		props[key] = b.ast.Datas[propNode].Child()
	}
	return props
}
