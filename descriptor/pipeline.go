package descriptor

const (
	fieldPipelineLayoutRefCount uint8 = iota
)

// PipelineLayoutDescriptor is the typed shape package emitter populates
// from a #pipelineLayout declaration's bindGroupLayouts property: an
// ordered list of that declaration's bind group layout resource ids.
type PipelineLayoutDescriptor struct {
	BindGroupLayoutRefs []uint32
}

// EncodePipelineLayout encodes a tagged header (ref count) followed by the
// refs themselves as raw little-endian u32s.
func EncodePipelineLayout(d PipelineLayoutDescriptor) []byte {
	b := NewBuilder(TypePipelineLayout)
	b.WriteU8Field(fieldPipelineLayoutRefCount, uint8(len(d.BindGroupLayoutRefs)))
	out := b.Bytes()
	for _, ref := range d.BindGroupLayoutRefs {
		out = append(out, byte(ref), byte(ref>>8), byte(ref>>16), byte(ref>>24))
	}
	return out
}

const (
	fieldRenderPipelineLayoutRef uint8 = iota
	fieldRenderPipelineVertexShaderRef
	fieldRenderPipelineFragmentShaderRef
	fieldRenderPipelineVertexEntryPoint
	fieldRenderPipelineFragmentEntryPoint
)

// RenderPipelineDescriptor is the typed shape package emitter populates
// from a #renderPipeline declaration's vertex/fragment/layout properties.
// Entry point names live in the module's string intern table; the
// descriptor only carries their string_id.
type RenderPipelineDescriptor struct {
	LayoutRef              uint32
	VertexShaderRef        uint32
	FragmentShaderRef      uint32
	VertexEntryPointID     uint32
	FragmentEntryPointID   uint32
}

// EncodeRenderPipeline encodes d as an append-only descriptor buffer.
func EncodeRenderPipeline(d RenderPipelineDescriptor) []byte {
	b := NewBuilder(TypeRenderPipeline)
	b.WriteU32Field(fieldRenderPipelineLayoutRef, d.LayoutRef)
	b.WriteU32Field(fieldRenderPipelineVertexShaderRef, d.VertexShaderRef)
	b.WriteU32Field(fieldRenderPipelineFragmentShaderRef, d.FragmentShaderRef)
	b.WriteU32Field(fieldRenderPipelineVertexEntryPoint, d.VertexEntryPointID)
	b.WriteU32Field(fieldRenderPipelineFragmentEntryPoint, d.FragmentEntryPointID)
	return b.Bytes()
}

const (
	fieldComputePipelineLayoutRef uint8 = iota
	fieldComputePipelineShaderRef
	fieldComputePipelineEntryPoint
)

// ComputePipelineDescriptor is the typed shape package emitter populates
// from a #computePipeline declaration's compute/layout properties.
type ComputePipelineDescriptor struct {
	LayoutRef    uint32
	ShaderRef    uint32
	EntryPointID uint32
}

// EncodeComputePipeline encodes d as an append-only descriptor buffer.
func EncodeComputePipeline(d ComputePipelineDescriptor) []byte {
	b := NewBuilder(TypeComputePipeline)
	b.WriteU32Field(fieldComputePipelineLayoutRef, d.LayoutRef)
	b.WriteU32Field(fieldComputePipelineShaderRef, d.ShaderRef)
	b.WriteU32Field(fieldComputePipelineEntryPoint, d.EntryPointID)
	return b.Bytes()
}
