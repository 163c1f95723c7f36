// Package lexer tokenizes PNG macro-language source into a flat token
// stream (see package token).
//
// The lexer is a labeled state machine: start, after-hash, identifier,
// number, string, line-comment. Next returns one token and advances the
// internal cursor; after EOF, subsequent calls keep returning EOF. The
// lexer never fails with an error value — malformed input is tagged
// token.Invalid and rejected by later stages.
package lexer

import "github.com/gogpu/pngc/token"

// MaxTokenLen bounds every inner scanning loop (identifiers, numbers,
// strings, comments). Exceeding it is a programming error: well-formed
// input cannot reach this cap.
const MaxTokenLen = 1 << 20

// Lexer tokenizes a token.Source one token at a time.
type Lexer struct {
	src   token.Source
	index uint32
}

// New creates a Lexer over src, cursor at the start of input.
func New(src token.Source) *Lexer {
	return &Lexer{src: src}
}

// Tokenize runs the lexer to completion and returns every token, including
// the trailing EOF.
func Tokenize(src token.Source) []token.Token {
	l := New(src)
	estimate := src.Len()/8 + 1
	if estimate < 32 {
		estimate = 32
	}
	tokens := make([]token.Token, 0, estimate)
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Tag == token.EOF {
			return tokens
		}
	}
}

// Next scans and returns the next token, advancing the cursor. Once EOF has
// been returned, Next keeps returning an EOF token at the same offset.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()

	start := l.index
	if l.atEnd() {
		return token.Token{Tag: token.EOF, Start: start, End: start}
	}

	c := l.src.At(l.index)
	switch {
	case c == '#':
		return l.lexMacro(start)
	case c == '"':
		return l.lexString(start)
	case c == '/':
		return l.lexSlash(start)
	case isIdentStart(c):
		return l.lexIdentifier(start)
	case isDigit(c):
		return l.lexNumber(start)
	default:
		if tag, ok := punctuation[c]; ok {
			l.index++
			return token.Token{Tag: tag, Start: start, End: l.index}
		}
		l.index++
		return token.Token{Tag: token.Invalid, Start: start, End: l.index}
	}
}

var punctuation = map[byte]token.Tag{
	'{': token.LeftBrace,
	'}': token.RightBrace,
	'[': token.LeftBracket,
	']': token.RightBracket,
	'(': token.LeftParen,
	')': token.RightParen,
	'=': token.Equal,
	',': token.Comma,
	'.': token.Dot,
	'$': token.Dollar,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.src.At(l.index) {
		case ' ', '\t', '\r', '\n':
			l.index++
		default:
			return
		}
	}
}

func (l *Lexer) atEnd() bool {
	return l.index >= uint32(l.src.Len())
}

// lexMacro handles '#' + identifier, the macro-keyword form. A hit in the
// compile-time keyword table yields the matching macro tag; a miss yields
// Invalid but still consumes the identifier so the caller resynchronizes on
// the next token rather than looping on the same byte.
func (l *Lexer) lexMacro(start uint32) token.Token {
	l.index++ // consume '#'
	nameStart := l.index
	n := 0
	for !l.atEnd() && isIdentCont(l.src.At(l.index)) && n < MaxTokenLen {
		l.index++
		n++
	}
	if l.index == nameStart {
		return token.Token{Tag: token.Invalid, Start: start, End: l.index}
	}
	name := string(l.src.Slice(nameStart, l.index))
	if tag, ok := macroKeywords[name]; ok {
		return token.Token{Tag: tag, Start: start, End: l.index}
	}
	return token.Token{Tag: token.Invalid, Start: start, End: l.index}
}

// macroKeywords maps every surface spelling (including aliases such as
// "pipeline" for render_pipeline and "imageBitmaps" for image_bitmap) to
// its canonical macro tag.
var macroKeywords = map[string]token.Tag{
	"wgsl":             token.MacroWgsl,
	"buffer":           token.MacroBuffer,
	"texture":          token.MacroTexture,
	"sampler":          token.MacroSampler,
	"bindGroup":        token.MacroBindGroup,
	"bindGroupLayout":  token.MacroBindGroupLayout,
	"pipelineLayout":   token.MacroPipelineLayout,
	"renderPipeline":   token.MacroRenderPipeline,
	"pipeline":         token.MacroRenderPipeline, // alias
	"computePipeline":  token.MacroComputePipeline,
	"renderPass":       token.MacroRenderPass,
	"pass":             token.MacroRenderPass, // alias
	"computePass":      token.MacroComputePass,
	"frame":            token.MacroFrame,
	"shaderModule":     token.MacroShaderModule,
	"data":             token.MacroData,
	"define":           token.MacroDefine,
	"queue":            token.MacroQueue,
	"imageBitmap":      token.MacroImageBitmap,
	"imageBitmaps":     token.MacroImageBitmap, // alias
	"wasmCall":         token.MacroWasmCall,
	"querySet":         token.MacroQuerySet,
	"textureView":      token.MacroTextureView,
	"animation":        token.MacroAnimation,
}

func (l *Lexer) lexString(start uint32) token.Token {
	l.index++ // consume opening quote
	n := 0
	for !l.atEnd() && n < MaxTokenLen {
		c := l.src.At(l.index)
		if c == '"' {
			l.index++
			return token.Token{Tag: token.StringLiteral, Start: start, End: l.index}
		}
		if c == '\\' {
			l.index++ // consume backslash
			if l.atEnd() {
				break
			}
			l.index++ // consume escaped byte
		} else {
			l.index++
		}
		n++
	}
	// Unterminated string: consumed up to EOF, report Invalid.
	return token.Token{Tag: token.Invalid, Start: start, End: l.index}
}

func (l *Lexer) lexSlash(start uint32) token.Token {
	if l.peekAt(1) != '/' {
		l.index++
		return token.Token{Tag: token.Slash, Start: start, End: l.index}
	}
	doc := l.peekAt(2) == '/'
	l.index += 2
	if doc {
		l.index++
	}
	n := 0
	for !l.atEnd() && l.src.At(l.index) != '\n' && n < MaxTokenLen {
		l.index++
		n++
	}
	tag := token.LineComment
	if doc {
		tag = token.DocComment
	}
	return token.Token{Tag: tag, Start: start, End: l.index}
}

// peekAt returns the byte offset bytes past the cursor, or 0 past the
// sentinel-protected end (the sentinel itself reads as 0 so this is always
// safe without an explicit bounds check, per token.Source's contract).
func (l *Lexer) peekAt(offset uint32) byte {
	i := l.index + offset
	if i > uint32(l.src.Len()) {
		return 0
	}
	return l.src.At(i)
}

func (l *Lexer) lexIdentifier(start uint32) token.Token {
	n := 0
	for !l.atEnd() && isIdentCont(l.src.At(l.index)) && n < MaxTokenLen {
		l.index++
		n++
	}
	text := l.src.Slice(start, l.index)
	if isBoolLiteral(text) {
		return token.Token{Tag: token.BooleanLiteral, Start: start, End: l.index}
	}
	return token.Token{Tag: token.Identifier, Start: start, End: l.index}
}

func isBoolLiteral(text []byte) bool {
	return string(text) == "true" || string(text) == "false"
}

// lexNumber scans either a 0x/0X hex literal or a decimal integer optionally
// followed by '.' and more decimal digits. Leading '-' is always its own
// Minus token — unary negation belongs to the
// parser, never the lexer.
func (l *Lexer) lexNumber(start uint32) token.Token {
	if l.src.At(l.index) == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.index += 2
		n := 0
		for !l.atEnd() && isHexDigit(l.src.At(l.index)) && n < MaxTokenLen {
			l.index++
			n++
		}
		return token.Token{Tag: token.NumberLiteral, Start: start, End: l.index}
	}

	n := 0
	for !l.atEnd() && isDigit(l.src.At(l.index)) && n < MaxTokenLen {
		l.index++
		n++
	}
	if !l.atEnd() && l.src.At(l.index) == '.' {
		l.index++
		n = 0
		for !l.atEnd() && isDigit(l.src.At(l.index)) && n < MaxTokenLen {
			l.index++
			n++
		}
	}
	return token.Token{Tag: token.NumberLiteral, Start: start, End: l.index}
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
