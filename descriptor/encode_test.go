package descriptor

import "testing"

func TestEncodeBuffer(t *testing.T) {
	out := EncodeBuffer(BufferDescriptor{Size: 1024, Usage: BufferUsageUniform})
	if TypeTag(out[0]) != TypeBuffer {
		t.Fatalf("type_tag = %d, want TypeBuffer", out[0])
	}
	if out[1] != 2 {
		t.Fatalf("field_count = %d, want 2", out[1])
	}
}

func TestEncodeTextureFieldOrder(t *testing.T) {
	out := EncodeTexture(TextureDescriptor{
		Width:         64,
		Height:        128,
		Depth:         1,
		Format:        TextureFormatRGBA8Unorm,
		Usage:         TextureUsageTextureBinding,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if TypeTag(out[0]) != TypeTexture {
		t.Fatalf("type_tag = %d, want TypeTexture", out[0])
	}
	if out[1] != 7 {
		t.Fatalf("field_count = %d, want 7", out[1])
	}
}

func TestEncodeSamplerAllFieldsU8(t *testing.T) {
	out := EncodeSampler(SamplerDescriptor{
		AddressModeU:  AddressModeRepeat,
		AddressModeV:  AddressModeClampToEdge,
		AddressModeW:  AddressModeMirrorRepeat,
		MagFilter:     FilterModeLinear,
		MinFilter:     FilterModeNearest,
		MipmapFilter:  FilterModeLinear,
		MaxAnisotropy: 16,
	})
	if out[1] != 7 {
		t.Fatalf("field_count = %d, want 7", out[1])
	}
	// each field is field_id(1) + value_type(1) + value(1) = 3 bytes
	wantLen := 2 + 7*3
	if len(out) != wantLen {
		t.Fatalf("len = %d, want %d", len(out), wantLen)
	}
}

func TestEncodeBindGroupEntry(t *testing.T) {
	e := BindGroupEntry{Binding: 3, ResourceType: ResourceTypeTextureView, ResourceID: 0xFF00FF00}
	out := EncodeBindGroupEntry(e)
	if len(out) != bindGroupEntrySize {
		t.Fatalf("len = %d, want %d", len(out), bindGroupEntrySize)
	}
	if out[4] != ResourceTypeTextureView {
		t.Errorf("resourceType byte = %d, want %d", out[4], ResourceTypeTextureView)
	}
	gotID := uint32(out[8]) | uint32(out[9])<<8 | uint32(out[10])<<16 | uint32(out[11])<<24
	if gotID != e.ResourceID {
		t.Errorf("resourceID = %#x, want %#x", gotID, e.ResourceID)
	}
}

func TestEncodeBindGroupAppendsEntriesAfterHeader(t *testing.T) {
	entries := []BindGroupEntry{
		{Binding: 0, ResourceType: ResourceTypeBuffer, ResourceID: 1},
		{Binding: 1, ResourceType: ResourceTypeSampler, ResourceID: 2},
	}
	out := EncodeBindGroup(BindGroupDescriptor{LayoutRef: 7, Entries: entries})
	if TypeTag(out[0]) != TypeBindGroup {
		t.Fatalf("type_tag = %d, want TypeBindGroup", out[0])
	}
	trailer := out[len(out)-2*bindGroupEntrySize:]
	if trailer[0] != 0 {
		t.Errorf("first entry binding low byte = %d, want 0", trailer[0])
	}
}

func TestEncodeBindGroupLayoutEntrySize(t *testing.T) {
	entries := []BindGroupLayoutEntry{
		{Binding: 2, Visibility: ShaderStageVertex | ShaderStageFragment, ResourceType: 1},
	}
	out := EncodeBindGroupLayout(BindGroupLayoutDescriptor{Entries: entries})
	// header: tag(1) + field_count(1) + one field (id+type+u8 = 3) = 5
	record := out[5:]
	if len(record) != 6 {
		t.Fatalf("entry record len = %d, want 6", len(record))
	}
	if record[4] != byte(ShaderStageVertex|ShaderStageFragment) {
		t.Errorf("visibility byte = %d, want %d", record[4], ShaderStageVertex|ShaderStageFragment)
	}
	if record[5] != 1 {
		t.Errorf("resourceType byte = %d, want 1", record[5])
	}
}

func TestEncodeRenderPassColorAttachments(t *testing.T) {
	out := EncodeRenderPass(RenderPassDescriptor{
		ColorAttachments: []ColorAttachment{
			{ViewRef: 1, LoadOp: LoadOpClear, StoreOp: StoreOpStore, ClearColor: [4]float32{0, 0, 0, 1}},
		},
		DepthStencilRef: 0,
		HasDepthStencil: false,
	})
	trailer := out[len(out)-colorAttachmentSize:]
	if len(trailer) != colorAttachmentSize {
		t.Fatalf("attachment record len = %d, want %d", len(trailer), colorAttachmentSize)
	}
	if trailer[4] != byte(LoadOpClear) {
		t.Errorf("loadOp byte = %d, want %d", trailer[4], LoadOpClear)
	}
}

func TestEncodePipelineLayoutRefs(t *testing.T) {
	out := EncodePipelineLayout(PipelineLayoutDescriptor{BindGroupLayoutRefs: []uint32{1, 2, 3}})
	if out[1] != 1 {
		t.Fatalf("field_count = %d, want 1", out[1])
	}
	refsStart := len(out) - 3*4
	refs := out[refsStart:]
	if refs[0] != 1 || refs[4] != 2 || refs[8] != 3 {
		t.Errorf("ref bytes = %v, want refs 1,2,3 little-endian", refs)
	}
}

func TestEncodeRenderPipeline(t *testing.T) {
	out := EncodeRenderPipeline(RenderPipelineDescriptor{
		LayoutRef:            1,
		VertexShaderRef:      2,
		FragmentShaderRef:    3,
		VertexEntryPointID:   4,
		FragmentEntryPointID: 5,
	})
	if TypeTag(out[0]) != TypeRenderPipeline {
		t.Fatalf("type_tag = %d, want TypeRenderPipeline", out[0])
	}
	if out[1] != 5 {
		t.Fatalf("field_count = %d, want 5", out[1])
	}
}

func TestEncodeComputePipeline(t *testing.T) {
	out := EncodeComputePipeline(ComputePipelineDescriptor{LayoutRef: 1, ShaderRef: 2, EntryPointID: 3})
	if TypeTag(out[0]) != TypeComputePipeline {
		t.Fatalf("type_tag = %d, want TypeComputePipeline", out[0])
	}
	if out[1] != 3 {
		t.Fatalf("field_count = %d, want 3", out[1])
	}
}

func TestEncodeTextureView(t *testing.T) {
	out := EncodeTextureView(TextureViewDescriptor{TextureRef: 42})
	if TypeTag(out[0]) != TypeTextureView {
		t.Fatalf("type_tag = %d, want TypeTextureView", out[0])
	}
	if out[1] != 1 {
		t.Fatalf("field_count = %d, want 1", out[1])
	}
}

func TestEncodeQuerySet(t *testing.T) {
	out := EncodeQuerySet(QuerySetDescriptor{Type: QueryTypeTimestamp, Count: 8})
	if TypeTag(out[0]) != TypeQuerySet {
		t.Fatalf("type_tag = %d, want TypeQuerySet", out[0])
	}
	if out[1] != 2 {
		t.Fatalf("field_count = %d, want 2", out[1])
	}
}
