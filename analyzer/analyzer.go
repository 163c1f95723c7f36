// Package analyzer runs semantic analysis over a parsed ast.Ast: collecting
// declarations into per-namespace symbol tables, checking required
// properties, resolving references (explicit $ns.name and bare
// identifiers), detecting import cycles, deduplicating shader source by
// content hash, and resolving uniform_access nodes. Every pass collects
// errors into a slice rather than stopping at the first one — a single
// malformed declaration should not hide every other problem in the file.
package analyzer

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/gogpu/pngc/ast"
)

// Namespace enumerates the 21 declarable macro namespaces, in the same
// order as token's macro tags and ast's decl tags so the three enums stay
// trivially cross-referenced during review.
type Namespace uint8

const (
	NamespaceWgsl Namespace = iota
	NamespaceBuffer
	NamespaceTexture
	NamespaceSampler
	NamespaceBindGroup
	NamespaceBindGroupLayout
	NamespacePipelineLayout
	NamespaceRenderPipeline
	NamespaceComputePipeline
	NamespaceRenderPass
	NamespaceComputePass
	NamespaceFrame
	NamespaceShaderModule
	NamespaceData
	NamespaceDefine
	NamespaceQueue
	NamespaceImageBitmap
	NamespaceWasmCall
	NamespaceQuerySet
	NamespaceTextureView
	NamespaceAnimation
)

func (n Namespace) String() string {
	if name, ok := namespaceNames[n]; ok {
		return name
	}
	return "unknown"
}

var namespaceNames = map[Namespace]string{
	NamespaceWgsl:             "wgsl",
	NamespaceBuffer:           "buffer",
	NamespaceTexture:          "texture",
	NamespaceSampler:          "sampler",
	NamespaceBindGroup:        "bindGroup",
	NamespaceBindGroupLayout:  "bindGroupLayout",
	NamespacePipelineLayout:   "pipelineLayout",
	NamespaceRenderPipeline:   "renderPipeline",
	NamespaceComputePipeline:  "computePipeline",
	NamespaceRenderPass:       "renderPass",
	NamespaceComputePass:      "computePass",
	NamespaceFrame:            "frame",
	NamespaceShaderModule:     "shaderModule",
	NamespaceData:             "data",
	NamespaceDefine:           "define",
	NamespaceQueue:            "queue",
	NamespaceImageBitmap:      "imageBitmap",
	NamespaceWasmCall:         "wasmCall",
	NamespaceQuerySet:         "querySet",
	NamespaceTextureView:      "textureView",
	NamespaceAnimation:        "animation",
}

// declTagToNamespace and its reverse let the passes below move between the
// parser's AST tags and the analyzer's own namespace identifiers without
// either package importing the other's enum ordering as a contract.
var declTagToNamespace = map[ast.Tag]Namespace{
	ast.DeclWgsl:            NamespaceWgsl,
	ast.DeclBuffer:          NamespaceBuffer,
	ast.DeclTexture:         NamespaceTexture,
	ast.DeclSampler:         NamespaceSampler,
	ast.DeclBindGroup:       NamespaceBindGroup,
	ast.DeclBindGroupLayout: NamespaceBindGroupLayout,
	ast.DeclPipelineLayout:  NamespacePipelineLayout,
	ast.DeclRenderPipeline:  NamespaceRenderPipeline,
	ast.DeclComputePipeline: NamespaceComputePipeline,
	ast.DeclRenderPass:      NamespaceRenderPass,
	ast.DeclComputePass:     NamespaceComputePass,
	ast.DeclFrame:           NamespaceFrame,
	ast.DeclShaderModule:    NamespaceShaderModule,
	ast.DeclData:            NamespaceData,
	ast.DeclDefine:          NamespaceDefine,
	ast.DeclQueue:           NamespaceQueue,
	ast.DeclImageBitmap:     NamespaceImageBitmap,
	ast.DeclWasmCall:        NamespaceWasmCall,
	ast.DeclQuerySet:        NamespaceQuerySet,
	ast.DeclTextureView:     NamespaceTextureView,
	ast.DeclAnimation:       NamespaceAnimation,
}

// namespaceAliases covers alternate surface spellings accepted in explicit
// $ns.name references, mirroring the lexer's macro-keyword aliases
// ("pipeline" for renderPipeline, "pass" for renderPass, "imageBitmaps" for
// imageBitmap) so a reference can use either spelling a declaration could.
var namespaceAliases = map[string]Namespace{
	"pipeline":     NamespaceRenderPipeline,
	"pass":         NamespaceRenderPass,
	"imageBitmaps": NamespaceImageBitmap,
}

// NamespaceFromString resolves a bare namespace name (as it appears after
// '$' in a reference) to its Namespace, canonical spelling or alias.
func NamespaceFromString(name string) (Namespace, bool) {
	for ns, canonical := range namespaceNames {
		if canonical == name {
			return ns, true
		}
	}
	if ns, ok := namespaceAliases[name]; ok {
		return ns, true
	}
	return 0, false
}

// SourceError is one collected analysis problem, carrying the AST node it
// concerns so a caller can map it back to a source span via ast.Ast.
type SourceError struct {
	Node    uint32
	Message string
}

func (e *SourceError) Error() string { return e.Message }

// Analysis is everything later stages (package descriptor, package
// emitter) need: per-namespace symbol tables, deduplicated shader
// fragments, resolved references, resolved uniform accesses, and every
// error collected along the way.
type Analysis struct {
	Ast *ast.Ast

	// Symbols maps namespace -> declared name -> declaring node index.
	// Populated by passCollectDeclarations.
	Symbols map[Namespace]map[string]uint32

	// ShaderFragments maps a #wgsl declaration's node index to the data_id
	// its deduplicated source content was assigned. Populated by
	// passDeduplicateShaders.
	ShaderFragments map[uint32]uint32

	// ResolvedReferences maps a ReferenceValue node to the node it
	// resolves to (explicit $ns.name) or, for a bare identifier resolved
	// by property context, maps an IdentifierValue node the same way.
	// Populated by passResolveExplicitReferences and
	// passResolveBareIdentifiers.
	ResolvedReferences map[uint32]uint32

	// ResolvedUniforms maps a UniformAccess node to its resolved binding.
	// Populated by passResolveUniformAccess.
	ResolvedUniforms map[uint32]UniformBinding

	Errors []*SourceError
}

// HasErrors reports whether any pass recorded an error. The emitter must
// never run when this is true.
func (a *Analysis) HasErrors() bool { return len(a.Errors) > 0 }

func (a *Analysis) addError(node uint32, format string, args ...any) {
	a.Errors = append(a.Errors, &SourceError{Node: node, Message: fmt.Sprintf(format, args...)})
}

// Analyzer runs the ordered pass pipeline over one ast.Ast.
type Analyzer struct {
	ast *ast.Ast
	out *Analysis
}

// New creates an Analyzer over tree. tree must come from a successful
// parser.Parse — the analyzer never re-validates parser invariants (token
// bounds, SubRange well-formedness), only semantic ones.
func New(tree *ast.Ast) *Analyzer {
	return &Analyzer{
		ast: tree,
		out: &Analysis{
			Ast:                 tree,
			Symbols:             make(map[Namespace]map[string]uint32),
			ShaderFragments:     make(map[uint32]uint32),
			ResolvedReferences:  make(map[uint32]uint32),
			ResolvedUniforms:    make(map[uint32]UniformBinding),
		},
	}
}

// Analyze runs all seven passes in order and returns the accumulated
// Analysis. It never returns a Go error: problems are collected into
// Analysis.Errors, and the caller decides (via HasErrors) whether to stop
// before emission.
func Analyze(tree *ast.Ast) *Analysis {
	a := New(tree)
	log.WithField("nodes", tree.NodeCount()).Debug("analyzer: starting")

	a.passCollectDeclarations()
	a.passRequiredProperties()
	a.passResolveExplicitReferences()
	a.passResolveBareIdentifiers()
	a.passDetectImportCycles()
	a.passDeduplicateShaders()
	a.passResolveUniformAccess()

	log.WithField("errors", len(a.out.Errors)).Debug("analyzer: finished")
	return a.out
}
