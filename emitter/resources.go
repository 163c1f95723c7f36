package emitter

import (
	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/ast"
	"github.com/gogpu/pngc/bytecode"
	"github.com/gogpu/pngc/descriptor"
)

// emitShaders is step 1: each #wgsl fragment a #shaderModule points at has
// its source substituted ($define expansion) and content-addressed into the
// data blob table
// (sharing a blob across every #shaderModule that points at the same
// deduplicated fragment, per analysis.ShaderFragments), then every
// #shaderModule declaration becomes one CreateShaderModule instruction.
func (b *Builder) emitShaders() {
	fragmentBlobs := make(map[uint32]uint32)

	resolveFragment := func(wgslDecl uint32) uint32 {
		fragID, ok := b.analysis.ShaderFragments[wgslDecl]
		if !ok {
			return b.internData(nil)
		}
		if blobID, seen := fragmentBlobs[fragID]; seen {
			return blobID
		}
		props := b.propertiesOf(wgslDecl)
		code := b.substituteDefines(b.propertyString(props, "value"))
		blobID := b.internData([]byte(code))
		fragmentBlobs[fragID] = blobID
		return blobID
	}

	for _, declNode := range b.orderedDecls(analyzer.NamespaceShaderModule) {
		props := b.propertiesOf(declNode)
		codeNode, hasCode := props["code"]

		var blobID uint32
		switch {
		case !hasCode:
			blobID = b.internData(nil)
		case b.ast.Tags[codeNode] == ast.ReferenceValue || b.ast.Tags[codeNode] == ast.IdentifierValue:
			if wgslDecl, ok := b.analysis.ResolvedReferences[codeNode]; ok {
				blobID = resolveFragment(wgslDecl)
			} else {
				blobID = b.internData(nil)
			}
		default:
			code := b.substituteDefines(b.propertyString(props, "code"))
			blobID = b.internData([]byte(code))
		}

		b.assignID(analyzer.NamespaceShaderModule, declNode)
		b.emitOp(bytecode.OpCreateShaderModule, uint64(blobID))
	}
}

// emitBuffers is step 2: every #buffer declaration's size and usage-flag
// list become a BufferDescriptor data blob, referenced by a CreateBuffer
// instruction.
func (b *Builder) emitBuffers() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceBuffer) {
		props := b.propertiesOf(declNode)
		usage, _ := descriptor.PackBufferUsage(b.propertyStringArray(props, "usage"))

		blob := descriptor.EncodeBuffer(descriptor.BufferDescriptor{
			Size:  b.propertyNumber(props, "size"),
			Usage: usage,
		})

		b.assignID(analyzer.NamespaceBuffer, declNode)
		b.emitOp(bytecode.OpCreateBuffer, uint64(b.internData(blob)))
	}
}

// emitTextures is step 3.
func (b *Builder) emitTextures() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceTexture) {
		props := b.propertiesOf(declNode)
		usage, _ := descriptor.PackTextureUsage(b.propertyStringArray(props, "usage"))

		depth := b.propertyNumber(props, "depth")
		if depth == 0 {
			depth = 1
		}
		mipLevels := b.propertyNumber(props, "mipLevelCount")
		if mipLevels == 0 {
			mipLevels = 1
		}
		sampleCount := b.propertyNumber(props, "sampleCount")
		if sampleCount == 0 {
			sampleCount = 1
		}

		blob := descriptor.EncodeTexture(descriptor.TextureDescriptor{
			Width:         uint32(b.propertyNumber(props, "width")),
			Height:        uint32(b.propertyNumber(props, "height")),
			Depth:         uint32(depth),
			Format:        textureFormatFromName(b.propertyString(props, "format")),
			Usage:         usage,
			MipLevelCount: uint32(mipLevels),
			SampleCount:   uint32(sampleCount),
		})

		b.assignID(analyzer.NamespaceTexture, declNode)
		b.emitOp(bytecode.OpCreateTexture, uint64(b.internData(blob)))
	}
}

// emitSamplers is step 4.
func (b *Builder) emitSamplers() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceSampler) {
		props := b.propertiesOf(declNode)

		maxAniso := b.propertyNumber(props, "maxAnisotropy")
		if maxAniso == 0 {
			maxAniso = 1
		}

		blob := descriptor.EncodeSampler(descriptor.SamplerDescriptor{
			AddressModeU:  addressModeFromName(b.propertyString(props, "addressModeU")),
			AddressModeV:  addressModeFromName(b.propertyString(props, "addressModeV")),
			AddressModeW:  addressModeFromName(b.propertyString(props, "addressModeW")),
			MagFilter:     filterModeFromName(b.propertyString(props, "magFilter")),
			MinFilter:     filterModeFromName(b.propertyString(props, "minFilter")),
			MipmapFilter:  filterModeFromName(b.propertyString(props, "mipmapFilter")),
			MaxAnisotropy: uint8(maxAniso),
		})

		b.assignID(analyzer.NamespaceSampler, declNode)
		b.emitOp(bytecode.OpCreateSampler, uint64(b.internData(blob)))
	}
}

var textureFormatNames = map[string]descriptor.TextureFormat{
	"rgba8unorm":      descriptor.TextureFormatRGBA8Unorm,
	"rgba8unorm-srgb": descriptor.TextureFormatRGBA8UnormSRGB,
	"bgra8unorm":      descriptor.TextureFormatBGRA8Unorm,
	"bgra8unorm-srgb": descriptor.TextureFormatBGRA8UnormSRGB,
	"r8unorm":         descriptor.TextureFormatR8Unorm,
	"r16float":        descriptor.TextureFormatR16Float,
	"rg16float":       descriptor.TextureFormatRG16Float,
	"rgba16float":     descriptor.TextureFormatRGBA16Float,
	"r32float":        descriptor.TextureFormatR32Float,
	"rgba32float":     descriptor.TextureFormatRGBA32Float,
	"depth24plus":     descriptor.TextureFormatDepth24Plus,
	"depth32float":    descriptor.TextureFormatDepth32Float,
}

func textureFormatFromName(name string) descriptor.TextureFormat {
	if f, ok := textureFormatNames[name]; ok {
		return f
	}
	return descriptor.TextureFormatRGBA8Unorm
}

var addressModeNames = map[string]descriptor.AddressMode{
	"clamp-to-edge":  descriptor.AddressModeClampToEdge,
	"repeat":         descriptor.AddressModeRepeat,
	"mirror-repeat":  descriptor.AddressModeMirrorRepeat,
}

func addressModeFromName(name string) descriptor.AddressMode {
	if m, ok := addressModeNames[name]; ok {
		return m
	}
	return descriptor.AddressModeClampToEdge
}

var filterModeNames = map[string]descriptor.FilterMode{
	"nearest": descriptor.FilterModeNearest,
	"linear":  descriptor.FilterModeLinear,
}

func filterModeFromName(name string) descriptor.FilterMode {
	if m, ok := filterModeNames[name]; ok {
		return m
	}
	return descriptor.FilterModeNearest
}
