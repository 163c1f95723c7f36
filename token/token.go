// Package token defines the flat token representation shared by the lexer
// and parser.
//
// Tokens carry no string data of their own: a Token is a 1-byte tag plus a
// pair of byte offsets into the Source the lexer was given. Callers re-slice
// the source when they need the underlying text, which keeps a token stream
// to a handful of bytes per entry and lets the lexer run without per-token
// allocation.
package token

// Tag is a 1-byte discriminator for a token's lexical class.
type Tag uint8

const (
	// EOF terminates every token stream. A lexer run always ends with
	// exactly one EOF token whose Start and End both equal len(source).
	EOF Tag = iota
	// Invalid marks lexically malformed input (unterminated string,
	// unrecognized byte, unknown #-keyword). The lexer never fails with
	// an error value; it only emits Invalid tokens for later stages to
	// reject.
	Invalid

	Identifier
	StringLiteral
	NumberLiteral
	BooleanLiteral

	// Macro keywords, one per namespace (see the Namespace enumeration in
	// package analyzer). #<name> is looked up in a compile-time string
	// table; a hit yields one of these, a miss yields Invalid.
	MacroWgsl
	MacroBuffer
	MacroTexture
	MacroSampler
	MacroBindGroup
	MacroBindGroupLayout
	MacroPipelineLayout
	MacroRenderPipeline
	MacroComputePipeline
	MacroRenderPass
	MacroComputePass
	MacroFrame
	MacroShaderModule
	MacroData
	MacroDefine
	MacroQueue
	MacroImageBitmap
	MacroWasmCall
	MacroQuerySet
	MacroTextureView
	MacroAnimation

	// Punctuation
	LeftBrace    // {
	RightBrace   // }
	LeftBracket  // [
	RightBracket // ]
	LeftParen    // (
	RightParen   // )
	Equal        // =
	Comma        // ,
	Dot          // .
	Dollar       // $

	// Arithmetic operators
	Plus  // +
	Minus // -
	Star  // *
	Slash // /

	LineComment // //...
	DocComment  // ///...
)

// String returns a short human-readable name for the tag, used in error
// messages and tests; it is not part of any stable wire contract.
func (t Tag) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Invalid:
		return "Invalid"
	case Identifier:
		return "Identifier"
	case StringLiteral:
		return "StringLiteral"
	case NumberLiteral:
		return "NumberLiteral"
	case BooleanLiteral:
		return "BooleanLiteral"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case LeftBracket:
		return "["
	case RightBracket:
		return "]"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case Equal:
		return "="
	case Comma:
		return ","
	case Dot:
		return "."
	case Dollar:
		return "$"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case LineComment:
		return "LineComment"
	case DocComment:
		return "DocComment"
	default:
		if name, ok := macroNames[t]; ok {
			return "#" + name
		}
		return "Unknown"
	}
}

// macroNames maps each macro tag back to its canonical surface spelling,
// used only for diagnostics (String) and by the lexer's reverse table.
var macroNames = map[Tag]string{
	MacroWgsl:            "wgsl",
	MacroBuffer:          "buffer",
	MacroTexture:         "texture",
	MacroSampler:         "sampler",
	MacroBindGroup:       "bindGroup",
	MacroBindGroupLayout: "bindGroupLayout",
	MacroPipelineLayout:  "pipelineLayout",
	MacroRenderPipeline:  "renderPipeline",
	MacroComputePipeline: "computePipeline",
	MacroRenderPass:      "renderPass",
	MacroComputePass:     "computePass",
	MacroFrame:           "frame",
	MacroShaderModule:    "shaderModule",
	MacroData:            "data",
	MacroDefine:          "define",
	MacroQueue:           "queue",
	MacroImageBitmap:     "imageBitmap",
	MacroWasmCall:        "wasmCall",
	MacroQuerySet:        "querySet",
	MacroTextureView:     "textureView",
	MacroAnimation:       "animation",
}

// IsMacro reports whether t is one of the per-namespace macro keyword tags.
func (t Tag) IsMacro() bool {
	_, ok := macroNames[t]
	return ok
}

// Token is a single lexical unit: a tag plus the byte span it covers in the
// Source the lexer consumed. Start <= End <= len(source) always holds.
type Token struct {
	Tag   Tag
	Start uint32
	End   uint32
}

// Lexeme returns the raw source bytes this token covers.
func (t Token) Lexeme(src Source) []byte {
	return src.bytes[t.Start:t.End]
}

// Source is a sentinel-terminated byte buffer: src.bytes[len(logical)] is
// always a zero byte that is not part of the logical input. This lets the
// lexer's state machine read one byte past the last real byte without a
// bounds check on every advance.
type Source struct {
	bytes []byte // logical bytes plus exactly one trailing 0x00 sentinel
}

// NewSource wraps data as a sentinel-terminated Source. If data does not
// already end in a zero byte, NewSource copies it once and appends the
// sentinel; callers that can guarantee their own buffer already carries a
// trailing zero (e.g. a Go string converted with a single extra byte) avoid
// that copy by constructing Source directly in the same package.
func NewSource(data []byte) Source {
	if len(data) > 0 && data[len(data)-1] == 0 {
		return Source{bytes: data}
	}
	buf := make([]byte, len(data)+1)
	copy(buf, data)
	return Source{bytes: buf}
}

// Len returns the length of the logical input, excluding the sentinel.
func (s Source) Len() int {
	if len(s.bytes) == 0 {
		return 0
	}
	return len(s.bytes) - 1
}

// At returns the byte at index i, or the sentinel 0 if i == Len(). Callers
// must not pass i > Len().
func (s Source) At(i uint32) byte {
	return s.bytes[i]
}

// Slice returns the logical bytes in [start, end).
func (s Source) Slice(start, end uint32) []byte {
	return s.bytes[start:end]
}

// Bytes returns the logical bytes (without the sentinel).
func (s Source) Bytes() []byte {
	return s.bytes[:s.Len()]
}
