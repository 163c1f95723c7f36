package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders a decoded Module's bytecode section as a
// human-readable instruction listing: one opcode per line, followed by its
// varint-decoded arguments. It is not a stable format — tests and manual
// debugging only, never a wire contract.
func Disassemble(m *Module) (string, error) {
	var out strings.Builder
	pos := 0
	for pos < len(m.Bytecode) {
		if pos >= len(m.Bytecode) {
			break
		}
		op := Opcode(m.Bytecode[pos])
		pos++

		argCount, ok := opcodeArgCounts[op]
		if !ok {
			return "", fmt.Errorf("bytecode: unknown opcode %#x at offset %d", m.Bytecode[pos-1], pos-1)
		}

		args := make([]uint64, 0, argCount)
		for i := 0; i < argCount; i++ {
			v, n := Uvarint(m.Bytecode[pos:])
			if n == 0 {
				return "", fmt.Errorf("bytecode: truncated argument for %s at offset %d", op, pos)
			}
			args = append(args, v)
			pos += n
		}

		fmt.Fprintf(&out, "%s", op)
		for _, a := range args {
			fmt.Fprintf(&out, " %d", a)
		}
		out.WriteByte('\n')
	}
	return out.String(), nil
}

// opcodeArgCounts is how many varint arguments follow each opcode. It
// exists purely for Disassemble's benefit; the emitter that writes the
// stream and anything executing it know their own argument shapes
// directly.
var opcodeArgCounts = map[Opcode]int{
	OpCreateShaderModule:    1, // data_id (source) -> resource id implicit by creation order
	OpCreateBuffer:          1, // data_id (descriptor)
	OpCreateTexture:         1,
	OpCreateSampler:         1,
	OpCreateBindGroupLayout: 1,
	OpCreatePipelineLayout:  1,
	OpCreateBindGroup:       1,
	OpCreateRenderPipeline:  1,
	OpCreateComputePipeline: 1,
	OpCreateTextureView:     1,
	OpCreateQuerySet:        1,
	OpWriteBuffer:           3, // buffer id, offset, data_id
	OpCopyBufferToBuffer:    2, // src id, dst id
	OpCopyBufferToTexture:   2,
	OpCopyTextureToBuffer:   2,
	OpImportImageBitmap:     1,
	OpWasmCall:              2, // module id, data_id (args)
	OpBeginRenderPass:       1, // data_id (descriptor)
	OpEndRenderPass:         0,
	OpBeginComputePass:      0,
	OpEndComputePass:        0,
	OpSetPipeline:           1,
	OpSetBindGroup:          2, // index, bind group id
	OpSetVertexBuffer:       2, // slot, buffer id
	OpSetIndexBuffer:        1,
	OpDraw:                  1, // vertex count
	OpDrawIndexed:           1, // index count
	OpDispatchWorkgroups:    3, // x, y, z
	OpSubmit:                0,
	OpEndFrame:              0,
	OpDefinePass:            3, // pass id, kind, data_id (descriptor)
	OpEndPassDef:            0,
	OpDefineFrame:           2, // frame id, name string_id
	OpExecPass:              1, // pass id
}
