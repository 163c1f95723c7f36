package emitter

import (
	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/bytecode"
	"github.com/gogpu/pngc/descriptor"
)

// emitTextureViews creates one CreateTextureView instruction per
// #textureView declaration, resolving its "texture" property to the
// texture id an earlier emitTextures call assigned.
func (b *Builder) emitTextureViews() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceTextureView) {
		props := b.propertiesOf(declNode)

		var textureRef uint32
		if texDecl, ok := b.resolveRef(props, "texture"); ok {
			textureRef, _ = b.idFor(analyzer.NamespaceTexture, texDecl)
		}

		blob := descriptor.EncodeTextureView(descriptor.TextureViewDescriptor{TextureRef: textureRef})
		b.assignID(analyzer.NamespaceTextureView, declNode)
		b.emitOp(bytecode.OpCreateTextureView, uint64(b.internData(blob)))
	}
}

var queryTypeNames = map[string]descriptor.QueryType{
	"occlusion": descriptor.QueryTypeOcclusion,
	"timestamp": descriptor.QueryTypeTimestamp,
}

// emitQuerySets creates one CreateQuerySet instruction per #querySet
// declaration.
func (b *Builder) emitQuerySets() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceQuerySet) {
		props := b.propertiesOf(declNode)

		qType, ok := queryTypeNames[b.propertyString(props, "type")]
		if !ok {
			qType = descriptor.QueryTypeOcclusion
		}

		blob := descriptor.EncodeQuerySet(descriptor.QuerySetDescriptor{
			Type:  qType,
			Count: uint32(b.propertyNumber(props, "count")),
		})
		b.assignID(analyzer.NamespaceQuerySet, declNode)
		b.emitOp(bytecode.OpCreateQuerySet, uint64(b.internData(blob)))
	}
}

// emitImageBitmaps creates one ImportImageBitmap instruction per
// #imageBitmap declaration. "source" is carried verbatim as a data blob —
// this compiler treats image payloads as opaque bytes, the same way it
// treats WGSL shader compilation itself as out of scope.
func (b *Builder) emitImageBitmaps() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceImageBitmap) {
		props := b.propertiesOf(declNode)
		dataID, ok := b.dataIDFor(props, "source")
		if !ok {
			dataID = b.internData(nil)
		}
		b.assignID(analyzer.NamespaceImageBitmap, declNode)
		b.emitOp(bytecode.OpImportImageBitmap, uint64(dataID))
	}
}
