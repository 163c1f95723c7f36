package descriptor

const (
	fieldTextureViewTextureRef uint8 = iota
)

// TextureViewDescriptor is the typed shape package emitter populates from
// a #textureView declaration's texture property.
type TextureViewDescriptor struct {
	TextureRef uint32
}

// EncodeTextureView encodes d as an append-only descriptor buffer.
func EncodeTextureView(d TextureViewDescriptor) []byte {
	b := NewBuilder(TypeTextureView)
	b.WriteU32Field(fieldTextureViewTextureRef, d.TextureRef)
	return b.Bytes()
}

const (
	fieldQuerySetType uint8 = iota
	fieldQuerySetCount
)

// QueryType enumerates the kinds of GPU query a #querySet can hold.
type QueryType uint8

const (
	QueryTypeOcclusion QueryType = iota
	QueryTypeTimestamp
)

// QuerySetDescriptor is the typed shape package emitter populates from a
// #querySet declaration's type/count properties.
type QuerySetDescriptor struct {
	Type  QueryType
	Count uint32
}

// EncodeQuerySet encodes d as an append-only descriptor buffer.
func EncodeQuerySet(d QuerySetDescriptor) []byte {
	b := NewBuilder(TypeQuerySet)
	b.WriteU8Field(fieldQuerySetType, uint8(d.Type))
	b.WriteU32Field(fieldQuerySetCount, d.Count)
	return b.Bytes()
}
