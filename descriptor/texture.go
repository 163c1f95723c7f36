package descriptor

// Stable field ids for the texture descriptor. Append-only: never renumber
// or reuse an id once shipped.
const (
	fieldTextureWidth uint8 = iota
	fieldTextureHeight
	fieldTextureDepth
	fieldTextureFormat
	fieldTextureUsage
	fieldTextureMipLevelCount
	fieldTextureSampleCount
)

// TextureFormat enumerates the subset of WebGPU texture formats this
// compiler assigns a stable numeric id to.
type TextureFormat uint8

const (
	TextureFormatRGBA8Unorm TextureFormat = iota
	TextureFormatRGBA8UnormSRGB
	TextureFormatBGRA8Unorm
	TextureFormatBGRA8UnormSRGB
	TextureFormatR8Unorm
	TextureFormatR16Float
	TextureFormatRG16Float
	TextureFormatRGBA16Float
	TextureFormatR32Float
	TextureFormatRGBA32Float
	TextureFormatDepth24Plus
	TextureFormatDepth32Float
)

// TextureDescriptor is the typed, AST-independent shape package emitter
// populates from a #texture declaration's properties.
type TextureDescriptor struct {
	Width         uint32
	Height        uint32
	Depth         uint32 // 1 for a 2D texture
	Format        TextureFormat
	Usage         TextureUsage
	MipLevelCount uint32
	SampleCount   uint32
}

// EncodeTexture encodes d as an append-only descriptor buffer.
func EncodeTexture(d TextureDescriptor) []byte {
	b := NewBuilder(TypeTexture)
	b.WriteU32Field(fieldTextureWidth, d.Width)
	b.WriteU32Field(fieldTextureHeight, d.Height)
	b.WriteU32Field(fieldTextureDepth, d.Depth)
	b.WriteU8Field(fieldTextureFormat, uint8(d.Format))
	b.WriteU8Field(fieldTextureUsage, uint8(d.Usage))
	b.WriteU32Field(fieldTextureMipLevelCount, d.MipLevelCount)
	b.WriteU32Field(fieldTextureSampleCount, d.SampleCount)
	return b.Bytes()
}
