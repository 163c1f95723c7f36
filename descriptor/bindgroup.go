package descriptor

const (
	fieldBindGroupLayoutRef uint8 = iota
	fieldBindGroupEntryCount
)

const (
	fieldBindGroupLayoutEntryCount uint8 = iota
)

// BindGroupDescriptor is the typed shape package emitter populates from a
// #bindGroup declaration: its bind group layout's resource id, plus the
// fixed-size entries themselves.
type BindGroupDescriptor struct {
	LayoutRef uint32
	Entries   []BindGroupEntry
}

// EncodeBindGroup encodes a tagged header (layout ref, entry count)
// followed by each entry in its fixed 12-byte layout.
func EncodeBindGroup(d BindGroupDescriptor) []byte {
	b := NewBuilder(TypeBindGroup)
	b.WriteU32Field(fieldBindGroupLayoutRef, d.LayoutRef)
	b.WriteU8Field(fieldBindGroupEntryCount, uint8(len(d.Entries)))
	out := b.Bytes()

	out = append(out, make([]byte, 0, len(d.Entries)*bindGroupEntrySize)...)
	for _, e := range d.Entries {
		out = append(out, EncodeBindGroupEntry(e)...)
	}
	return out
}

// BindGroupLayoutEntry describes one binding slot a bind group layout
// exposes, before any bind group has filled it with a concrete resource.
type BindGroupLayoutEntry struct {
	Binding     uint32
	Visibility  ShaderStageFlags
	ResourceType uint8
}

// ShaderStageFlags is a packed bitmask of which shader stages a binding is
// visible to.
type ShaderStageFlags uint8

const (
	ShaderStageVertex ShaderStageFlags = 1 << iota
	ShaderStageFragment
	ShaderStageCompute
)

// BindGroupLayoutDescriptor is the typed shape package emitter populates
// from a #bindGroupLayout declaration.
type BindGroupLayoutDescriptor struct {
	Entries []BindGroupLayoutEntry
}

// EncodeBindGroupLayout encodes a tagged header (entry count) followed by
// each entry as a small fixed record: {binding u32, visibility u8,
// resourceType u8}, 6 bytes.
func EncodeBindGroupLayout(d BindGroupLayoutDescriptor) []byte {
	b := NewBuilder(TypeBindGroupLayout)
	b.WriteU8Field(fieldBindGroupLayoutEntryCount, uint8(len(d.Entries)))
	out := b.Bytes()

	for _, e := range d.Entries {
		rec := make([]byte, 6)
		rec[0] = byte(e.Binding)
		rec[1] = byte(e.Binding >> 8)
		rec[2] = byte(e.Binding >> 16)
		rec[3] = byte(e.Binding >> 24)
		rec[4] = byte(e.Visibility)
		rec[5] = e.ResourceType
		out = append(out, rec...)
	}
	return out
}
