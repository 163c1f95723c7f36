package descriptor

import "math"

const (
	fieldRenderPassColorAttachmentCount uint8 = iota
	fieldRenderPassDepthStencilRef
	fieldRenderPassHasDepthStencil
)

// LoadOp / StoreOp enumerate a render pass attachment's load and store
// behavior.
type LoadOp uint8

const (
	LoadOpClear LoadOp = iota
	LoadOpLoad
)

type StoreOp uint8

const (
	StoreOpStore StoreOp = iota
	StoreOpDiscard
)

// ColorAttachment is one fixed-size render pass color attachment record:
// {viewRef u32, loadOp u8, storeOp u8, clearColor [4]f32} = 4+1+1+16 = 22
// bytes, padded to 24 for 4-byte alignment of the trailing array.
type ColorAttachment struct {
	ViewRef    uint32
	LoadOp     LoadOp
	StoreOp    StoreOp
	ClearColor [4]float32
}

const colorAttachmentSize = 24

// RenderPassDescriptor is the typed shape package emitter populates from a
// #renderPass declaration's colorAttachments property.
type RenderPassDescriptor struct {
	ColorAttachments []ColorAttachment
	DepthStencilRef  uint32
	HasDepthStencil  bool
}

// EncodeRenderPass encodes a tagged header followed by each color
// attachment in its fixed layout.
func EncodeRenderPass(d RenderPassDescriptor) []byte {
	b := NewBuilder(TypeRenderPass)
	b.WriteU8Field(fieldRenderPassColorAttachmentCount, uint8(len(d.ColorAttachments)))
	b.WriteU32Field(fieldRenderPassDepthStencilRef, d.DepthStencilRef)
	b.WriteBoolField(fieldRenderPassHasDepthStencil, d.HasDepthStencil)
	out := b.Bytes()

	for _, a := range d.ColorAttachments {
		out = append(out, encodeColorAttachment(a)...)
	}
	return out
}

func encodeColorAttachment(a ColorAttachment) []byte {
	buf := make([]byte, colorAttachmentSize)
	buf[0] = byte(a.ViewRef)
	buf[1] = byte(a.ViewRef >> 8)
	buf[2] = byte(a.ViewRef >> 16)
	buf[3] = byte(a.ViewRef >> 24)
	buf[4] = byte(a.LoadOp)
	buf[5] = byte(a.StoreOp)
	for i, c := range a.ClearColor {
		bits := math.Float32bits(c)
		off := 8 + i*4
		buf[off] = byte(bits)
		buf[off+1] = byte(bits >> 8)
		buf[off+2] = byte(bits >> 16)
		buf[off+3] = byte(bits >> 24)
	}
	return buf
}
