package emitter

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/ast"
)

// emitDataDecls interns every #data declaration's "value" as a data blob.
// #data carries no opcode of its own: it exists only so other
// declarations (an image bitmap's source, a queue writeBuffer's data) can
// point at a named, reusable blob via an explicit $data.name reference.
func (b *Builder) emitDataDecls() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceData) {
		props := b.propertiesOf(declNode)
		valueNode, ok := props["value"]
		if !ok {
			continue
		}
		b.dataIDs[declNode] = b.internData(b.encodeDataValue(valueNode))
	}
}

// encodeDataValue renders a #data value node to raw bytes: a string's
// unquoted content, a number as a little-endian f64, a boolean as a single
// byte, or an array of numbers packed as little-endian f64s.
func (b *Builder) encodeDataValue(node uint32) []byte {
	switch b.ast.Tags[node] {
	case ast.StringValue, ast.RuntimeInterpolation:
		lexeme := b.ast.TokenLexeme(node)
		if len(lexeme) >= 2 {
			text := string(lexeme[1 : len(lexeme)-1])
			if b.ast.Tags[node] == ast.RuntimeInterpolation {
				text = b.substituteDefines(text)
			}
			return []byte(text)
		}
		return nil

	case ast.NumberValue:
		v, ok := b.analysis.EvalConst(node)
		if !ok {
			return nil
		}
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		return buf[:]

	case ast.BooleanValue:
		if string(b.ast.TokenLexeme(node)) == "true" {
			return []byte{1}
		}
		return []byte{0}

	case ast.ArrayValue:
		start, end := b.ast.Datas[node].SubRange()
		elements := b.ast.ExtraSlice(start, end)
		out := make([]byte, 0, len(elements)*8)
		for _, el := range elements {
			v, ok := b.analysis.EvalConst(el)
			if !ok {
				continue
			}
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			out = append(out, buf[:]...)
		}
		return out

	default:
		return nil
	}
}

// dataIDFor resolves a property that may be either a direct literal value
// or a $data.name reference, returning the data_id either way.
func (b *Builder) dataIDFor(props map[string]uint32, key string) (uint32, bool) {
	node, ok := props[key]
	if !ok {
		return 0, false
	}
	if declNode, ok := b.analysis.ResolvedReferences[node]; ok {
		if id, ok := b.dataIDs[declNode]; ok {
			return id, true
		}
	}
	return b.internData(b.encodeDataValue(node)), true
}
