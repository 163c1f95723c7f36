package emitter

import (
	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/ast"
	"github.com/gogpu/pngc/bytecode"
	"github.com/gogpu/pngc/descriptor"
)

// emitBindGroups is step 6: every #bindGroup declaration's "layout" and
// "entries" properties resolve against ids already assigned by the
// earlier buffer/texture/sampler and bind-group-layout steps.
func (b *Builder) emitBindGroups() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceBindGroup) {
		props := b.propertiesOf(declNode)

		var layoutRef uint32
		if layoutDecl, ok := b.resolveRef(props, "layout"); ok {
			layoutRef, _ = b.idFor(analyzer.NamespaceBindGroupLayout, layoutDecl)
		}

		var entries []descriptor.BindGroupEntry
		if arrNode, ok := props["entries"]; ok && b.ast.Tags[arrNode] == ast.ArrayValue {
			start, end := b.ast.Datas[arrNode].SubRange()
			for _, el := range b.ast.ExtraSlice(start, end) {
				if b.ast.Tags[el] != ast.ObjectValue {
					continue
				}
				entries = append(entries, b.bindGroupEntry(el))
			}
		}

		blob := descriptor.EncodeBindGroup(descriptor.BindGroupDescriptor{
			LayoutRef: layoutRef,
			Entries:   entries,
		})
		b.assignID(analyzer.NamespaceBindGroup, declNode)
		b.emitOp(bytecode.OpCreateBindGroup, uint64(b.internData(blob)))
	}
}

// bindGroupEntry resolves one {binding, resource} entry object to its
// fixed-size encoding, inferring the resource's type from whichever
// namespace the reference actually resolved against rather than requiring
// the source to spell it out redundantly.
func (b *Builder) bindGroupEntry(entryNode uint32) descriptor.BindGroupEntry {
	props := b.propertiesOf(entryNode)
	binding := uint32(b.propertyNumber(props, "binding"))

	resourceDecl, ok := b.resolveRef(props, "resource")
	if !ok {
		return descriptor.BindGroupEntry{Binding: binding}
	}

	if id, ok := b.idFor(analyzer.NamespaceBuffer, resourceDecl); ok {
		return descriptor.BindGroupEntry{Binding: binding, ResourceType: descriptor.ResourceTypeBuffer, ResourceID: id}
	}
	if id, ok := b.idFor(analyzer.NamespaceSampler, resourceDecl); ok {
		return descriptor.BindGroupEntry{Binding: binding, ResourceType: descriptor.ResourceTypeSampler, ResourceID: id}
	}
	if id, ok := b.idFor(analyzer.NamespaceTextureView, resourceDecl); ok {
		return descriptor.BindGroupEntry{Binding: binding, ResourceType: descriptor.ResourceTypeTextureView, ResourceID: id}
	}
	return descriptor.BindGroupEntry{Binding: binding}
}
