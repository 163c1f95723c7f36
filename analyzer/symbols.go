package analyzer

import (
	log "github.com/sirupsen/logrus"

	"github.com/gogpu/pngc/ast"
)

// requiredProperties lists the property names every declaration in a
// namespace must carry. #define has no entry: its grammar is "identifier =
// value", not a property list, so it is checked separately (there is
// nothing to require beyond what the parser already demands).
var requiredProperties = map[Namespace][]string{
	NamespaceWgsl:            {"value"},
	NamespaceBuffer:          {"size", "usage"},
	NamespaceTexture:         {"format", "usage"},
	NamespaceSampler:         {},
	NamespaceBindGroup:       {"layout", "entries"},
	NamespaceBindGroupLayout: {"entries"},
	NamespacePipelineLayout:  {"bindGroupLayouts"},
	NamespaceRenderPipeline:  {"vertex"},
	NamespaceComputePipeline: {"compute"},
	NamespaceRenderPass:      {},
	NamespaceComputePass:     {},
	NamespaceFrame:           {"perform"},
	NamespaceShaderModule:    {"code"},
	NamespaceData:            {"value"},
	NamespaceQueue:           {},
	NamespaceImageBitmap:     {"source"},
	NamespaceWasmCall:        {"function"},
	NamespaceQuerySet:        {"type", "count"},
	NamespaceTextureView:     {"texture"},
	NamespaceAnimation:       {"keyframes"},
}

// bareIdentifierContext maps a property name to the namespace a bare
// (non-$-prefixed) identifier value under that key implicitly refers to.
// It covers both a direct identifier value and, one level deep, an array of
// identifiers (e.g. "bindGroupLayouts = [a b c]"). A property name can mean
// different things depending on which declaration owns it — "layout"
// names a bind group layout under #bindGroup but a pipeline layout under
// #renderPipeline/#computePipeline — so each entry lists its candidate
// namespaces in preference order; the first one whose symbol table
// actually declares the name wins, since a Property node carries no
// back-pointer to its owning declaration to disambiguate any other way.
var bareIdentifierContext = map[string][]Namespace{
	"layout":           {NamespaceBindGroupLayout, NamespacePipelineLayout},
	"bindGroup":        {NamespaceBindGroup},
	"bindGroupLayouts": {NamespaceBindGroupLayout},
	"texture":          {NamespaceTexture},
	"sampler":          {NamespaceSampler},
	"buffer":           {NamespaceBuffer},
	"pipeline":         {NamespaceRenderPipeline, NamespaceComputePipeline},
	"pipelineLayout":   {NamespacePipelineLayout},
	"shaderModule":     {NamespaceShaderModule},
	"querySet":         {NamespaceQuerySet},
	"perform":          {NamespaceRenderPass, NamespaceComputePass, NamespaceQueue},
}

// passCollectDeclarations is pass 1: it walks the top-level declarations,
// assigns each a namespace, and records it both in that namespace's symbol
// table and in a transient global set used to enforce cross-namespace name
// uniqueness (a name may be declared exactly once anywhere in the file).
func (a *Analyzer) passCollectDeclarations() {
	global := make(map[string]uint32)
	for _, declNode := range a.ast.TopLevelDecls() {
		tag := a.ast.Tags[declNode]

		var ns Namespace
		if tag == ast.DeclDefine {
			ns = NamespaceDefine
		} else {
			var ok bool
			ns, ok = declTagToNamespace[tag]
			if !ok {
				a.out.addError(declNode, "unrecognized top-level declaration")
				continue
			}
		}

		name := string(a.ast.TokenLexeme(declNode))
		if existing, dup := global[name]; dup {
			a.out.addError(declNode, "name %q already declared (node %d)", name, existing)
			continue
		}
		global[name] = declNode

		if a.out.Symbols[ns] == nil {
			a.out.Symbols[ns] = make(map[string]uint32)
		}
		a.out.Symbols[ns][name] = declNode
	}
	log.WithField("count", len(global)).Debug("analyzer: collected declarations")
}

// passRequiredProperties is pass 2: every declaration (other than #define,
// whose single value the parser already demands) must carry every property
// its namespace requires.
func (a *Analyzer) passRequiredProperties() {
	for ns, required := range requiredProperties {
		if len(required) == 0 {
			continue
		}
		for _, declNode := range a.out.Symbols[ns] {
			props := a.propertiesOf(declNode)
			for _, name := range required {
				if _, ok := props[name]; !ok {
					a.out.addError(declNode, "%s declaration %q is missing required property %q",
						ns, string(a.ast.TokenLexeme(declNode)), name)
				}
			}
		}
	}
}

// propertiesOf returns a declaration's (or any ObjectValue's) direct
// properties as key -> value-node. A repeated key keeps the last
// occurrence, matching how the emitter's single pass over the same range
// would observe it.
func (a *Analyzer) propertiesOf(containerNode uint32) map[string]uint32 {
	start, end := a.ast.Datas[containerNode].SubRange()
	children := a.ast.ExtraSlice(start, end)
	props := make(map[string]uint32, len(children))
	for _, propNode := range children {
		key := string(a.ast.TokenLexeme(propNode))
		props[key] = a.ast.Datas[propNode].Child()
	}
	return props
}

// passResolveExplicitReferences is pass 3: every ReferenceValue node
// ($ns.name...) is resolved against the namespace's symbol table. The AST
// is a flat arena, so finding every reference anywhere in the file — no
// matter how deeply nested inside arrays/objects — is a single linear scan,
// not a tree walk.
func (a *Analyzer) passResolveExplicitReferences() {
	for idx, tag := range a.ast.Tags {
		if tag != ast.ReferenceValue {
			continue
		}
		node := uint32(idx)
		start, end := a.ast.Datas[node].SubRange()
		segments := a.ast.ExtraSlice(start, end)
		if len(segments) < 2 {
			a.out.addError(node, "reference needs a namespace and a name")
			continue
		}

		nsName := string(a.tokenLexeme(segments[0]))
		ns, ok := NamespaceFromString(nsName)
		if !ok {
			a.out.addError(node, "unknown namespace %q in reference", nsName)
			continue
		}

		declName := string(a.tokenLexeme(segments[1]))
		declNode, ok := a.out.Symbols[ns][declName]
		if !ok {
			a.out.addError(node, "reference to undeclared %s %q", ns, declName)
			continue
		}
		a.out.ResolvedReferences[node] = declNode
	}
}

// passResolveBareIdentifiers is pass 4: a bare identifier (no leading '$')
// used as the value of a property whose name implies a namespace — or as an
// element of an array under such a property — resolves against that
// namespace's symbol table, driven entirely by bareIdentifierContext rather
// than a per-property code fork.
func (a *Analyzer) passResolveBareIdentifiers() {
	for idx, tag := range a.ast.Tags {
		if tag != ast.Property {
			continue
		}
		propNode := uint32(idx)
		key := string(a.ast.TokenLexeme(propNode))
		candidates, ok := bareIdentifierContext[key]
		if !ok {
			continue
		}
		a.resolveBareIdentifierValue(a.ast.Datas[propNode].Child(), candidates)
	}
}

func (a *Analyzer) resolveBareIdentifierValue(valueNode uint32, candidates []Namespace) {
	switch a.ast.Tags[valueNode] {
	case ast.IdentifierValue:
		a.resolveBareName(valueNode, candidates)
	case ast.ArrayValue:
		start, end := a.ast.Datas[valueNode].SubRange()
		for _, el := range a.ast.ExtraSlice(start, end) {
			if a.ast.Tags[el] == ast.IdentifierValue {
				a.resolveBareName(el, candidates)
			}
		}
	}
}

// resolveBareName tries each candidate namespace's symbol table in order,
// resolving against the first one that actually declares the name. Only
// when none of them do is it reported unresolved, named after the
// preferred (first) candidate.
func (a *Analyzer) resolveBareName(identNode uint32, candidates []Namespace) {
	name := string(a.ast.TokenLexeme(identNode))
	for _, ns := range candidates {
		if declNode, ok := a.out.Symbols[ns][name]; ok {
			a.out.ResolvedReferences[identNode] = declNode
			return
		}
	}
	a.out.addError(identNode, "unresolved %s reference %q", candidates[0], name)
}

func (a *Analyzer) tokenLexeme(tok uint32) []byte {
	return a.ast.Tokens[tok].Lexeme(a.ast.Source)
}
