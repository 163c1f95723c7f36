// Package ast defines the compact, column-oriented AST produced by package
// parser.
//
// Nodes are stored in parallel slices (a "struct of arrays") rather than as
// a tree of pointers: Tags, MainTokens and Datas are indexed by the same
// node index, so a walk that only inspects tags touches one small, densely
// packed slice instead of chasing pointers across the heap. Variable-length
// child lists (property lists, array/object elements, import lists) are
// spliced into a single shared ExtraData slice of uint32 and referenced by
// a {Start, End} SubRange, so no node needs its own backing slice.
//
// Per spec, nodes never reference each other by pointer — only by index
// into Ast's slices — and the tree is built iteratively (see package
// parser); there is no recursive-descent construction anywhere in this
// package or its producer.
package ast

import "github.com/gogpu/pngc/token"

// Tag discriminates an AST node's shape. Families: the root; one macro-decl
// tag per namespace; value kinds; property; arithmetic-expression kinds.
type Tag uint8

const (
	// Root is always node index 0. Its Data is a SubRange over ExtraData
	// listing the top-level macro declaration node indices.
	Root Tag = iota

	// Macro declarations, one tag per namespace (see package token's
	// macro keyword tags, which these mirror one-to-one).
	DeclWgsl
	DeclBuffer
	DeclTexture
	DeclSampler
	DeclBindGroup
	DeclBindGroupLayout
	DeclPipelineLayout
	DeclRenderPipeline
	DeclComputePipeline
	DeclRenderPass
	DeclComputePass
	DeclFrame
	DeclShaderModule
	DeclData
	DeclDefine
	DeclQueue
	DeclImageBitmap
	DeclWasmCall
	DeclQuerySet
	DeclTextureView
	DeclAnimation

	// Values
	StringValue
	NumberValue
	BooleanValue
	IdentifierValue
	ReferenceValue         // $ns.name or $ns.a.b.c
	ArrayValue             // Data.SubRange over element node indices
	ObjectValue            // Data.SubRange over property node indices
	RuntimeInterpolation   // string literal whose content contains '$'
	UniformAccess          // module.var, written as a MemberExpr-like ref

	// Property: key = value
	Property

	// Arithmetic expressions
	ExprAdd
	ExprSub
	ExprMul
	ExprDiv
	ExprNegate
)

// IsDecl reports whether tag is one of the per-namespace macro declaration
// tags (DeclWgsl .. DeclAnimation).
func (t Tag) IsDecl() bool {
	return t >= DeclWgsl && t <= DeclAnimation
}

// Data is the 8-byte tagged payload every node carries. Go has no native
// union type, so unlike the zig/Rust reference this is a plain two-field
// struct; which interpretation applies (None / single child / token pair /
// node pair / SubRange) is determined entirely by the owning node's Tag —
// accessor methods below exist only for readability at call sites that
// already know which shape to expect.
type Data struct {
	LHS uint32
	RHS uint32
}

// AsChild interprets Data as a single child node index (RHS unused, set to
// ^uint32(0) by convention so a stray read is easy to spot in a debugger).
func AsChild(idx uint32) Data { return Data{LHS: idx, RHS: ^uint32(0)} }

// AsPair interprets Data as two indices (either token indices or node
// indices, per the owning node's Tag).
func AsPair(lhs, rhs uint32) Data { return Data{LHS: lhs, RHS: rhs} }

// AsSubRange interprets Data as a [Start, End) range into Ast.ExtraData.
func AsSubRange(start, end uint32) Data { return Data{LHS: start, RHS: end} }

// SubRange returns d interpreted as a [Start, End) range into ExtraData.
func (d Data) SubRange() (start, end uint32) { return d.LHS, d.RHS }

// Pair returns d interpreted as two raw uint32 fields.
func (d Data) Pair() (lhs, rhs uint32) { return d.LHS, d.RHS }

// Child returns d interpreted as a single child node index.
func (d Data) Child() uint32 { return d.LHS }

// Ast is the parser's output: a source-indexed token stream plus a
// column-oriented node arena and its shared extra-data pool. Analyzer and
// Emitter both hold a borrowed, read-only reference to an Ast; neither ever
// mutates it.
type Ast struct {
	Source token.Source
	Tokens []token.Token

	// Node columns, all indexed by the same node index. Node 0 is always
	// the root.
	Tags       []Tag
	MainTokens []uint32
	Datas      []Data

	// ExtraData holds every node's variable-length child list, spliced in
	// by the parser as containers close. A node's Data.SubRange indexes
	// into this slice; SubRange.End <= len(ExtraData) always holds.
	ExtraData []uint32
}

// New builds an empty Ast with pre-sized columns, ready for the parser to
// fill in node 0 onward.
func New(src token.Source, tokens []token.Token, nodeCapacity, extraCapacity int) *Ast {
	return &Ast{
		Source:     src,
		Tokens:     tokens,
		Tags:       make([]Tag, 0, nodeCapacity),
		MainTokens: make([]uint32, 0, nodeCapacity),
		Datas:      make([]Data, 0, nodeCapacity),
		ExtraData:  make([]uint32, 0, extraCapacity),
	}
}

// AddNode appends a new node and returns its index.
func (a *Ast) AddNode(tag Tag, mainToken uint32, data Data) uint32 {
	idx := uint32(len(a.Tags))
	a.Tags = append(a.Tags, tag)
	a.MainTokens = append(a.MainTokens, mainToken)
	a.Datas = append(a.Datas, data)
	return idx
}

// AppendExtra splices a slice of node/token indices onto ExtraData and
// returns the [start, end) range it now occupies, suitable for AsSubRange.
func (a *Ast) AppendExtra(values []uint32) (start, end uint32) {
	start = uint32(len(a.ExtraData))
	a.ExtraData = append(a.ExtraData, values...)
	end = uint32(len(a.ExtraData))
	return start, end
}

// ExtraSlice returns the ExtraData range [start, end) — the node indices
// held by a SubRange-shaped Data.
func (a *Ast) ExtraSlice(start, end uint32) []uint32 {
	return a.ExtraData[start:end]
}

// TokenLexeme returns the raw source text of the node's main token.
func (a *Ast) TokenLexeme(nodeIdx uint32) []byte {
	tok := a.Tokens[a.MainTokens[nodeIdx]]
	return tok.Lexeme(a.Source)
}

// NodeCount returns the number of nodes in the arena, including the root.
func (a *Ast) NodeCount() int {
	return len(a.Tags)
}

// TopLevelDecls returns the node indices of the root's top-level macro
// declarations.
func (a *Ast) TopLevelDecls() []uint32 {
	start, end := a.Datas[0].SubRange()
	return a.ExtraSlice(start, end)
}
