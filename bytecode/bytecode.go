// Package bytecode defines the final module format package emitter
// produces: a magic-prefixed header followed by three sections — the
// opcode stream, a data blob table, and a string intern table — plus the
// varint encoding shared by all three.
package bytecode

import "errors"

// Magic is the 4-byte signature every module begins with.
var Magic = [4]byte{'P', 'N', 'G', 'B'}

// Version is the module format's current version number.
const Version uint32 = 1

// Header is the fixed 16-byte preamble: magic, version, then the byte
// offsets of the data blob and string intern sections (the bytecode
// section always starts immediately after the header).
type Header struct {
	Magic         [4]byte
	Version       uint32
	DataOffset    uint32
	StringsOffset uint32
}

const HeaderSize = 16

// ErrBadMagic is returned by Decode when a buffer does not begin with
// Magic.
var ErrBadMagic = errors.New("bytecode: bad magic")

// Opcode is one bytecode instruction's operation.
type Opcode uint8

const (
	OpCreateShaderModule Opcode = iota
	OpCreateBuffer
	OpCreateTexture
	OpCreateSampler
	OpCreateBindGroupLayout
	OpCreatePipelineLayout
	OpCreateBindGroup
	OpCreateRenderPipeline
	OpCreateComputePipeline
	OpCreateTextureView
	OpCreateQuerySet
	OpWriteBuffer
	OpCopyBufferToBuffer
	OpCopyBufferToTexture
	OpCopyTextureToBuffer
	OpImportImageBitmap
	OpWasmCall
	OpBeginRenderPass
	OpEndRenderPass
	OpBeginComputePass
	OpEndComputePass
	OpSetPipeline
	OpSetBindGroup
	OpSetVertexBuffer
	OpSetIndexBuffer
	OpDraw
	OpDrawIndexed
	OpDispatchWorkgroups
	OpSubmit
	OpEndFrame
	OpDefinePass
	OpEndPassDef
	OpDefineFrame
	OpExecPass
)

var opcodeNames = map[Opcode]string{
	OpCreateShaderModule:    "CreateShaderModule",
	OpCreateBuffer:          "CreateBuffer",
	OpCreateTexture:         "CreateTexture",
	OpCreateSampler:         "CreateSampler",
	OpCreateBindGroupLayout: "CreateBindGroupLayout",
	OpCreatePipelineLayout:  "CreatePipelineLayout",
	OpCreateBindGroup:       "CreateBindGroup",
	OpCreateRenderPipeline:  "CreateRenderPipeline",
	OpCreateComputePipeline: "CreateComputePipeline",
	OpCreateTextureView:     "CreateTextureView",
	OpCreateQuerySet:        "CreateQuerySet",
	OpWriteBuffer:           "WriteBuffer",
	OpCopyBufferToBuffer:    "CopyBufferToBuffer",
	OpCopyBufferToTexture:   "CopyBufferToTexture",
	OpCopyTextureToBuffer:   "CopyTextureToBuffer",
	OpImportImageBitmap:     "ImportImageBitmap",
	OpWasmCall:              "WasmCall",
	OpBeginRenderPass:       "BeginRenderPass",
	OpEndRenderPass:         "EndRenderPass",
	OpBeginComputePass:      "BeginComputePass",
	OpEndComputePass:        "EndComputePass",
	OpSetPipeline:           "SetPipeline",
	OpSetBindGroup:          "SetBindGroup",
	OpSetVertexBuffer:       "SetVertexBuffer",
	OpSetIndexBuffer:        "SetIndexBuffer",
	OpDraw:                  "Draw",
	OpDrawIndexed:           "DrawIndexed",
	OpDispatchWorkgroups:    "DispatchWorkgroups",
	OpSubmit:                "Submit",
	OpEndFrame:              "EndFrame",
	OpDefinePass:            "DefinePass",
	OpEndPassDef:            "EndPassDef",
	OpDefineFrame:           "DefineFrame",
	OpExecPass:              "ExecPass",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "Unknown"
}
