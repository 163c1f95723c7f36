package emitter

import (
	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/ast"
	"github.com/gogpu/pngc/bytecode"
	"github.com/gogpu/pngc/descriptor"
)

// emitPipelines is step 5: bind group layouts and pipeline layouts are
// resolved first (pipelines need their ids), then every render and
// compute pipeline declaration becomes one Create instruction.
func (b *Builder) emitPipelines() {
	b.emitBindGroupLayouts()
	b.emitPipelineLayouts()
	b.emitRenderPipelines()
	b.emitComputePipelines()
}

var resourceTypeNames = map[string]uint8{
	"buffer":      descriptor.ResourceTypeBuffer,
	"sampler":     descriptor.ResourceTypeSampler,
	"textureView": descriptor.ResourceTypeTextureView,
}

var shaderStageNames = map[string]descriptor.ShaderStageFlags{
	"vertex":   descriptor.ShaderStageVertex,
	"fragment": descriptor.ShaderStageFragment,
	"compute":  descriptor.ShaderStageCompute,
}

// emitBindGroupLayouts creates one CreateBindGroupLayout instruction per
// #bindGroupLayout declaration, packing its "entries" array (objects
// shaped {binding, visibility, resourceType}) into fixed-size records.
func (b *Builder) emitBindGroupLayouts() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceBindGroupLayout) {
		props := b.propertiesOf(declNode)

		var entries []descriptor.BindGroupLayoutEntry
		if arrNode, ok := props["entries"]; ok && b.ast.Tags[arrNode] == ast.ArrayValue {
			start, end := b.ast.Datas[arrNode].SubRange()
			for _, el := range b.ast.ExtraSlice(start, end) {
				if b.ast.Tags[el] != ast.ObjectValue {
					continue
				}
				entryProps := b.propertiesOf(el)

				var visibility descriptor.ShaderStageFlags
				for _, stage := range b.propertyStringArray(entryProps, "visibility") {
					visibility |= shaderStageNames[stage]
				}

				resourceType := resourceTypeNames[b.propertyString(entryProps, "resourceType")]

				entries = append(entries, descriptor.BindGroupLayoutEntry{
					Binding:      uint32(b.propertyNumber(entryProps, "binding")),
					Visibility:   visibility,
					ResourceType: resourceType,
				})
			}
		}

		blob := descriptor.EncodeBindGroupLayout(descriptor.BindGroupLayoutDescriptor{Entries: entries})
		b.assignID(analyzer.NamespaceBindGroupLayout, declNode)
		b.emitOp(bytecode.OpCreateBindGroupLayout, uint64(b.internData(blob)))
	}
}

// emitPipelineLayouts creates one CreatePipelineLayout instruction per
// #pipelineLayout declaration, resolving its "bindGroupLayouts" array to
// the ids emitBindGroupLayouts just assigned.
func (b *Builder) emitPipelineLayouts() {
	for _, declNode := range b.orderedDecls(analyzer.NamespacePipelineLayout) {
		props := b.propertiesOf(declNode)

		var refs []uint32
		for _, layoutDecl := range b.resolveRefArray(props, "bindGroupLayouts") {
			if id, ok := b.idFor(analyzer.NamespaceBindGroupLayout, layoutDecl); ok {
				refs = append(refs, id)
			}
		}

		blob := descriptor.EncodePipelineLayout(descriptor.PipelineLayoutDescriptor{BindGroupLayoutRefs: refs})
		b.assignID(analyzer.NamespacePipelineLayout, declNode)
		b.emitOp(bytecode.OpCreatePipelineLayout, uint64(b.internData(blob)))
	}
}

// shaderStageRef resolves a {shaderModule, entryPoint} object (or a bare
// shaderModule reference with an implicit "main" entry point) into the
// shader module id and entry point name a pipeline stage needs.
func (b *Builder) shaderStageRef(stageValue uint32) (uint32, string) {
	entryPoint := "main"
	shaderNode := stageValue

	if b.ast.Tags[stageValue] == ast.ObjectValue {
		stageProps := b.propertiesOf(stageValue)
		if ep := b.propertyString(stageProps, "entryPoint"); ep != "" {
			entryPoint = ep
		}
		if ref, ok := stageProps["shaderModule"]; ok {
			shaderNode = ref
		}
	}

	if declNode, ok := b.analysis.ResolvedReferences[shaderNode]; ok {
		if id, ok := b.idFor(analyzer.NamespaceShaderModule, declNode); ok {
			return id, entryPoint
		}
	}
	return 0, entryPoint
}

// emitRenderPipelines creates one CreateRenderPipeline instruction per
// #renderPipeline declaration.
func (b *Builder) emitRenderPipelines() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceRenderPipeline) {
		props := b.propertiesOf(declNode)

		var layoutRef uint32
		if layoutDecl, ok := b.resolveRef(props, "layout"); ok {
			layoutRef, _ = b.idFor(analyzer.NamespacePipelineLayout, layoutDecl)
		}

		var vertexRef, fragmentRef uint32
		var vertexEntry, fragmentEntry string
		if v, ok := props["vertex"]; ok {
			vertexRef, vertexEntry = b.shaderStageRef(v)
		}
		if f, ok := props["fragment"]; ok {
			fragmentRef, fragmentEntry = b.shaderStageRef(f)
		}

		blob := descriptor.EncodeRenderPipeline(descriptor.RenderPipelineDescriptor{
			LayoutRef:            layoutRef,
			VertexShaderRef:      vertexRef,
			FragmentShaderRef:    fragmentRef,
			VertexEntryPointID:   b.internString(vertexEntry),
			FragmentEntryPointID: b.internString(fragmentEntry),
		})
		b.assignID(analyzer.NamespaceRenderPipeline, declNode)
		b.emitOp(bytecode.OpCreateRenderPipeline, uint64(b.internData(blob)))
	}
}

// emitComputePipelines creates one CreateComputePipeline instruction per
// #computePipeline declaration.
func (b *Builder) emitComputePipelines() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceComputePipeline) {
		props := b.propertiesOf(declNode)

		var layoutRef uint32
		if layoutDecl, ok := b.resolveRef(props, "layout"); ok {
			layoutRef, _ = b.idFor(analyzer.NamespacePipelineLayout, layoutDecl)
		}

		var shaderRef uint32
		var entryPoint string
		if c, ok := props["compute"]; ok {
			shaderRef, entryPoint = b.shaderStageRef(c)
		}

		blob := descriptor.EncodeComputePipeline(descriptor.ComputePipelineDescriptor{
			LayoutRef:    layoutRef,
			ShaderRef:    shaderRef,
			EntryPointID: b.internString(entryPoint),
		})
		b.assignID(analyzer.NamespaceComputePipeline, declNode)
		b.emitOp(bytecode.OpCreateComputePipeline, uint64(b.internData(blob)))
	}
}
