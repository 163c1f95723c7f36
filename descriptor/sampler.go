package descriptor

const (
	fieldSamplerAddressModeU uint8 = iota
	fieldSamplerAddressModeV
	fieldSamplerAddressModeW
	fieldSamplerMagFilter
	fieldSamplerMinFilter
	fieldSamplerMipmapFilter
	fieldSamplerMaxAnisotropy
)

// AddressMode enumerates texture-coordinate wrap behavior.
type AddressMode uint8

const (
	AddressModeClampToEdge AddressMode = iota
	AddressModeRepeat
	AddressModeMirrorRepeat
)

// FilterMode enumerates sampling filter behavior.
type FilterMode uint8

const (
	FilterModeNearest FilterMode = iota
	FilterModeLinear
)

// SamplerDescriptor is the typed shape package emitter populates from a
// #sampler declaration's properties.
type SamplerDescriptor struct {
	AddressModeU  AddressMode
	AddressModeV  AddressMode
	AddressModeW  AddressMode
	MagFilter     FilterMode
	MinFilter     FilterMode
	MipmapFilter  FilterMode
	MaxAnisotropy uint8
}

// EncodeSampler encodes d as an append-only descriptor buffer.
func EncodeSampler(d SamplerDescriptor) []byte {
	b := NewBuilder(TypeSampler)
	b.WriteU8Field(fieldSamplerAddressModeU, uint8(d.AddressModeU))
	b.WriteU8Field(fieldSamplerAddressModeV, uint8(d.AddressModeV))
	b.WriteU8Field(fieldSamplerAddressModeW, uint8(d.AddressModeW))
	b.WriteU8Field(fieldSamplerMagFilter, uint8(d.MagFilter))
	b.WriteU8Field(fieldSamplerMinFilter, uint8(d.MinFilter))
	b.WriteU8Field(fieldSamplerMipmapFilter, uint8(d.MipmapFilter))
	b.WriteU8Field(fieldSamplerMaxAnisotropy, d.MaxAnisotropy)
	return b.Bytes()
}
