package emitter

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/ast"
	"github.com/gogpu/pngc/bytecode"
	"github.com/gogpu/pngc/descriptor"
)

const (
	passKindRender  = 0
	passKindCompute = 1
)

// collectQueues is step 7: every #queue declaration's optional "writeBuffer"
// object is recorded for later inlining wherever a frame's "perform" array
// names it. A queue with no writeBuffer property, or no writeBuffer at all,
// has nothing to inline — it exists only so a frame can name it.
func (b *Builder) collectQueues() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceQueue) {
		props := b.propertiesOf(declNode)
		if wb, ok := props["writeBuffer"]; ok && b.ast.Tags[wb] == ast.ObjectValue {
			b.queues[declNode] = wb
		}
	}
}

// emitPasses is step 8: every #renderPass and #computePass declaration is
// framed once, here, between a define_pass and an end_pass_def instruction —
// not re-emitted each time a frame's "perform" array invokes it. A render
// pass's color/depth attachments are encoded as define_pass's descriptor
// argument; a compute pass carries no descriptor.
func (b *Builder) emitPasses() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceRenderPass) {
		props := b.propertiesOf(declNode)

		var attachments []descriptor.ColorAttachment
		if arrNode, ok := props["colorAttachments"]; ok && b.ast.Tags[arrNode] == ast.ArrayValue {
			start, end := b.ast.Datas[arrNode].SubRange()
			for _, el := range b.ast.ExtraSlice(start, end) {
				if b.ast.Tags[el] != ast.ObjectValue {
					continue
				}
				attachments = append(attachments, b.colorAttachment(el))
			}
		}

		var depthRef uint32
		var hasDepth bool
		if viewDecl, ok := b.resolveRef(props, "depthStencilAttachment"); ok {
			depthRef, hasDepth = b.idFor(analyzer.NamespaceTextureView, viewDecl)
		}

		blob := descriptor.EncodeRenderPass(descriptor.RenderPassDescriptor{
			ColorAttachments: attachments,
			DepthStencilRef:  depthRef,
			HasDepthStencil:  hasDepth,
		})
		dataID := b.internData(blob)
		passID := b.assignPassID(declNode)

		b.emitOp(bytecode.OpDefinePass, uint64(passID), passKindRender, uint64(dataID))
		b.emitOp(bytecode.OpBeginRenderPass, uint64(dataID))
		b.emitPassBody(props)
		b.emitOp(bytecode.OpEndRenderPass)
		b.emitOp(bytecode.OpEndPassDef)
	}

	for _, declNode := range b.orderedDecls(analyzer.NamespaceComputePass) {
		props := b.propertiesOf(declNode)
		dataID := b.internData(nil)
		passID := b.assignPassID(declNode)

		b.emitOp(bytecode.OpDefinePass, uint64(passID), passKindCompute, uint64(dataID))
		b.emitOp(bytecode.OpBeginComputePass)
		b.emitPassBody(props)
		b.emitOp(bytecode.OpEndComputePass)
		b.emitOp(bytecode.OpEndPassDef)
	}
}

// emitPassBody reads a pass declaration's fixed direct properties in the
// order the format specifies: pipeline, bindGroups, vertexBuffers,
// indexBuffer, draw, drawIndexed, dispatch. Unlike the old model, a pass
// body is never a free-form command list — every one of these properties is
// optional and simply absent when the pass doesn't need it.
func (b *Builder) emitPassBody(props map[string]uint32) {
	if decl, ok := b.resolveRef(props, "pipeline"); ok {
		if id, ok := b.idFor(analyzer.NamespaceRenderPipeline, decl); ok {
			b.emitOp(bytecode.OpSetPipeline, uint64(id))
		} else if id, ok := b.idFor(analyzer.NamespaceComputePipeline, decl); ok {
			b.emitOp(bytecode.OpSetPipeline, uint64(id))
		}
	}

	for i, decl := range b.resolveRefArray(props, "bindGroups") {
		if id, ok := b.idFor(analyzer.NamespaceBindGroup, decl); ok {
			b.emitOp(bytecode.OpSetBindGroup, uint64(i), uint64(id))
		}
	}

	for slot, decl := range b.resolveRefArray(props, "vertexBuffers") {
		if id, ok := b.idFor(analyzer.NamespaceBuffer, decl); ok {
			b.emitOp(bytecode.OpSetVertexBuffer, uint64(slot), uint64(id))
		}
	}

	if decl, ok := b.resolveRef(props, "indexBuffer"); ok {
		if id, ok := b.idFor(analyzer.NamespaceBuffer, decl); ok {
			b.emitOp(bytecode.OpSetIndexBuffer, uint64(id))
		}
	}

	if _, ok := props["draw"]; ok {
		b.emitOp(bytecode.OpDraw, b.propertyNumber(props, "draw"))
	}

	if _, ok := props["drawIndexed"]; ok {
		b.emitOp(bytecode.OpDrawIndexed, b.propertyNumber(props, "drawIndexed"))
	}

	if dispatchNode, ok := props["dispatch"]; ok && b.ast.Tags[dispatchNode] == ast.ArrayValue {
		start, end := b.ast.Datas[dispatchNode].SubRange()
		elements := b.ast.ExtraSlice(start, end)
		var xyz [3]uint64
		for i, el := range elements {
			if i >= 3 {
				break
			}
			if v, ok := b.analysis.EvalConst(el); ok {
				xyz[i] = uint64(v)
			}
		}
		b.emitOp(bytecode.OpDispatchWorkgroups, xyz[0], xyz[1], xyz[2])
	}
}

func (b *Builder) colorAttachment(entryNode uint32) descriptor.ColorAttachment {
	props := b.propertiesOf(entryNode)

	var viewRef uint32
	if viewDecl, ok := b.resolveRef(props, "view"); ok {
		viewRef, _ = b.idFor(analyzer.NamespaceTextureView, viewDecl)
	}

	loadOp := descriptor.LoadOpClear
	if b.propertyString(props, "loadOp") == "load" {
		loadOp = descriptor.LoadOpLoad
	}
	storeOp := descriptor.StoreOpStore
	if b.propertyString(props, "storeOp") == "discard" {
		storeOp = descriptor.StoreOpDiscard
	}

	var clearColor [4]float32
	if clearNode, ok := props["clearColor"]; ok && b.ast.Tags[clearNode] == ast.ArrayValue {
		start, end := b.ast.Datas[clearNode].SubRange()
		for i, el := range b.ast.ExtraSlice(start, end) {
			if i >= 4 {
				break
			}
			if v, ok := b.analysis.EvalConst(el); ok {
				clearColor[i] = float32(v)
			}
		}
	}

	return descriptor.ColorAttachment{
		ViewRef:    viewRef,
		LoadOp:     loadOp,
		StoreOp:    storeOp,
		ClearColor: clearColor,
	}
}

// emitFrames is step 9: every #frame declaration's name is interned and
// announced with define_frame, then its "perform" array is walked in order —
// a queue reference inlines that queue's write_buffer action directly, a
// pass reference emits a single exec_pass naming the pass define_pass
// already framed in step 8. An implicit Submit and EndFrame close every
// frame, even one whose body forgot to submit explicitly.
func (b *Builder) emitFrames() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceFrame) {
		props := b.propertiesOf(declNode)

		frameID := b.assignID(analyzer.NamespaceFrame, declNode)
		nameID := b.internString(string(b.ast.TokenLexeme(declNode)))
		b.emitOp(bytecode.OpDefineFrame, uint64(frameID), uint64(nameID))

		for _, ref := range b.resolveRefArray(props, "perform") {
			switch b.declNamespace[ref] {
			case analyzer.NamespaceQueue:
				b.inlineQueue(ref)
			case analyzer.NamespaceRenderPass, analyzer.NamespaceComputePass:
				b.emitOp(bytecode.OpExecPass, uint64(b.assignPassID(ref)))
			}
		}

		b.emitOp(bytecode.OpSubmit)
		b.emitOp(bytecode.OpEndFrame)
	}
}

// inlineQueue emits the write_buffer instruction a queue's "writeBuffer"
// property describes, if it has one.
func (b *Builder) inlineQueue(queueDecl uint32) {
	wb, ok := b.queues[queueDecl]
	if !ok {
		return
	}
	props := b.propertiesOf(wb)

	bufDecl, ok := b.resolveRef(props, "buffer")
	if !ok {
		return
	}
	bufID, ok := b.idFor(analyzer.NamespaceBuffer, bufDecl)
	if !ok {
		return
	}
	offset := b.propertyNumber(props, "bufferOffset")
	dataID, ok := b.queueDataID(props, "data")
	if !ok {
		return
	}
	b.emitOp(bytecode.OpWriteBuffer, uint64(bufID), offset, uint64(dataID))
}

// queueDataID resolves a writeBuffer action's "data" property, which may be
// a $data.name reference or a literal value encoded inline via
// encodeQueueData.
func (b *Builder) queueDataID(props map[string]uint32, key string) (uint32, bool) {
	node, ok := props[key]
	if !ok {
		return 0, false
	}
	if declNode, ok := b.analysis.ResolvedReferences[node]; ok {
		if id, ok := b.dataIDs[declNode]; ok {
			return id, true
		}
	}
	return b.internData(b.encodeQueueData(node)), true
}

// encodeQueueData renders a writeBuffer action's inline "data" value to raw
// bytes. Unlike a #data declaration's own f64 packing, a queue's numeric
// array is serialized as packed f32 — the two are distinct wire contexts. A
// runtime-interpolated string (one containing a "${...}" substitution the
// parser could not fold at analysis time) has nothing literal to write and
// is skipped rather than emitted as its unresolved template text.
func (b *Builder) encodeQueueData(node uint32) []byte {
	switch b.ast.Tags[node] {
	case ast.RuntimeInterpolation:
		return nil

	case ast.StringValue:
		lexeme := b.ast.TokenLexeme(node)
		if len(lexeme) >= 2 {
			return []byte(lexeme[1 : len(lexeme)-1])
		}
		return nil

	case ast.NumberValue:
		v, ok := b.analysis.EvalConst(node)
		if !ok {
			return nil
		}
		return encodeFloat32LE(float32(v))

	case ast.ArrayValue:
		start, end := b.ast.Datas[node].SubRange()
		elements := b.ast.ExtraSlice(start, end)
		out := make([]byte, 0, len(elements)*4)
		for _, el := range elements {
			v, ok := b.analysis.EvalConst(el)
			if !ok {
				continue
			}
			out = append(out, encodeFloat32LE(float32(v))...)
		}
		return out

	default:
		return nil
	}
}

func encodeFloat32LE(v float32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	return buf[:]
}
