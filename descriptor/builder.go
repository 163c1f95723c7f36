// Package descriptor encodes GPU resource descriptors (textures, samplers,
// bind groups, bind group layouts, render passes) into the compact binary
// format package emitter writes into a bytecode module's data blob table.
//
// Variable-shape descriptors (ones new fields might be appended to over
// time) use an append-only {field_id, value_type, value} encoding: a
// type_tag byte, a field_count byte patched in after every field has been
// written, then the fields themselves. Field ids are stable per descriptor
// type and never renumbered, so a newer field list stays backward
// compatible with an older reader that simply skips ids it does not
// recognize. Fixed-shape, high-cardinality records (BindGroupEntry) instead
// use a plain fixed-size struct layout — see entries.go — since tagging
// every field of every entry in a large bind group would be wasteful.
package descriptor

import (
	"encoding/binary"
	"math"
)

// TypeTag identifies which descriptor kind a header belongs to.
type TypeTag uint8

const (
	TypeBuffer TypeTag = iota
	TypeTexture
	TypeSampler
	TypeBindGroup
	TypeBindGroupLayout
	TypePipelineLayout
	TypeRenderPass
	TypeRenderPipeline
	TypeComputePipeline
	TypeTextureView
	TypeQuerySet
)

// ValueType tags the shape of one field's value.
type ValueType uint8

const (
	ValueU8 ValueType = iota
	ValueU32
	ValueU64
	ValueF32
	ValueBool
	ValueBytes // u8-count-prefixed raw byte array
)

// Builder accumulates a descriptor's fields and finalizes them into a
// single append-only encoded buffer: type_tag, field_count (patched at the
// end), then each field's {field_id, value_type, value}.
type Builder struct {
	buf           []byte
	fieldCountPos int
	fieldCount    uint8
}

// NewBuilder starts a descriptor header of the given type.
func NewBuilder(tag TypeTag) *Builder {
	b := &Builder{buf: make([]byte, 0, 32)}
	b.buf = append(b.buf, byte(tag))
	b.fieldCountPos = len(b.buf)
	b.buf = append(b.buf, 0) // field_count placeholder, patched in Bytes
	return b
}

func (b *Builder) WriteU8Field(fieldID uint8, v uint8) *Builder {
	b.buf = append(b.buf, fieldID, byte(ValueU8), v)
	b.fieldCount++
	return b
}

func (b *Builder) WriteU32Field(fieldID uint8, v uint32) *Builder {
	b.buf = append(b.buf, fieldID, byte(ValueU32))
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	b.fieldCount++
	return b
}

func (b *Builder) WriteU64Field(fieldID uint8, v uint64) *Builder {
	b.buf = append(b.buf, fieldID, byte(ValueU64))
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	b.fieldCount++
	return b
}

func (b *Builder) WriteF32Field(fieldID uint8, v float32) *Builder {
	b.buf = append(b.buf, fieldID, byte(ValueF32))
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
	b.buf = append(b.buf, tmp[:]...)
	b.fieldCount++
	return b
}

func (b *Builder) WriteBoolField(fieldID uint8, v bool) *Builder {
	var raw uint8
	if v {
		raw = 1
	}
	b.buf = append(b.buf, fieldID, byte(ValueBool), raw)
	b.fieldCount++
	return b
}

// WriteBytesField writes a u8-length-prefixed raw byte array. Callers must
// keep v under 256 bytes; a longer value is truncated rather than
// corrupting the stream with a wrapped length byte.
func (b *Builder) WriteBytesField(fieldID uint8, v []byte) *Builder {
	if len(v) > 255 {
		v = v[:255]
	}
	b.buf = append(b.buf, fieldID, byte(ValueBytes), uint8(len(v)))
	b.buf = append(b.buf, v...)
	b.fieldCount++
	return b
}

// Bytes finalizes the descriptor, patching the field_count byte, and
// returns the encoded buffer. The Builder must not be reused afterward.
func (b *Builder) Bytes() []byte {
	b.buf[b.fieldCountPos] = b.fieldCount
	return b.buf
}
