package descriptor

import "github.com/bits-and-blooms/bitset"

// TextureUsage is a packed bitmask of texture usage flags, one byte wide —
// see entries.go for the size check run at package initialization.
type TextureUsage uint8

const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

// BufferUsage is a packed bitmask of buffer usage flags, two bytes wide.
type BufferUsage uint16

const (
	BufferUsageMapRead BufferUsage = 1 << iota
	BufferUsageMapWrite
	BufferUsageCopySrc
	BufferUsageCopyDst
	BufferUsageIndex
	BufferUsageVertex
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageIndirect
	BufferUsageQueryResolve
)

// textureUsageBits and bufferUsageBits accept both a quoted-string spelling
// (lowerCamelCase, as written "copyDst") and the bare-identifier spelling
// the format actually specifies for usage arrays (upper snake case,
// COPY_DST) — a declaration is free to write either.
var textureUsageBits = map[string]uint{
	"copySrc":          0,
	"COPY_SRC":         0,
	"copyDst":          1,
	"COPY_DST":         1,
	"textureBinding":   2,
	"TEXTURE_BINDING":  2,
	"storageBinding":   3,
	"STORAGE_BINDING":  3,
	"renderAttachment": 4,
	"RENDER_ATTACHMENT": 4,
}

var bufferUsageBits = map[string]uint{
	"mapRead":      0,
	"MAP_READ":     0,
	"mapWrite":     1,
	"MAP_WRITE":    1,
	"copySrc":      2,
	"COPY_SRC":     2,
	"copyDst":      3,
	"COPY_DST":     3,
	"index":        4,
	"INDEX":        4,
	"vertex":       5,
	"VERTEX":       5,
	"uniform":      6,
	"UNIFORM":      6,
	"storage":      7,
	"STORAGE":      7,
	"indirect":     8,
	"INDIRECT":     8,
	"queryResolve": 9,
	"QUERY_RESOLVE": 9,
}

// PackTextureUsage folds a list of usage flag names (as written in the
// declarative source, e.g. ["textureBinding" "copyDst"]) into a packed
// TextureUsage. An unrecognized flag name is an error, not silently
// dropped.
func PackTextureUsage(flags []string) (TextureUsage, error) {
	bs := bitset.New(8)
	for _, f := range flags {
		idx, ok := textureUsageBits[f]
		if !ok {
			return 0, &UnknownUsageFlagError{Flag: f}
		}
		bs.Set(idx)
	}
	var out TextureUsage
	for i := uint(0); i < 8; i++ {
		if bs.Test(i) {
			out |= 1 << i
		}
	}
	return out, nil
}

// PackBufferUsage is PackTextureUsage's buffer-usage counterpart.
func PackBufferUsage(flags []string) (BufferUsage, error) {
	bs := bitset.New(16)
	for _, f := range flags {
		idx, ok := bufferUsageBits[f]
		if !ok {
			return 0, &UnknownUsageFlagError{Flag: f}
		}
		bs.Set(idx)
	}
	var out BufferUsage
	for i := uint(0); i < 16; i++ {
		if bs.Test(i) {
			out |= 1 << i
		}
	}
	return out, nil
}

// UnknownUsageFlagError reports a usage flag name that packs to no known
// bit.
type UnknownUsageFlagError struct {
	Flag string
}

func (e *UnknownUsageFlagError) Error() string {
	return "descriptor: unknown usage flag " + e.Flag
}
