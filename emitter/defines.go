package emitter

import (
	"strings"

	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/ast"
)

// collectDefines resolves every #define into its literal substitution
// text. Substitution is single-pass and non-recursive: if a define's own
// value happens to contain another define's name, that occurrence is left
// as literal text in the output rather than expanded further.
func (b *Builder) collectDefines() {
	for _, declNode := range b.orderedDecls(analyzer.NamespaceDefine) {
		valueNode := b.ast.Datas[declNode].Child()
		text, ok := b.literalText(valueNode)
		if !ok {
			continue
		}
		name := string(b.ast.TokenLexeme(declNode))
		b.defines[name] = text
	}
}

// literalText renders a simple value node as plain text suitable for
// whole-word substitution: a string's unquoted content, or a number's or
// boolean's raw lexeme.
func (b *Builder) literalText(node uint32) (string, bool) {
	switch b.ast.Tags[node] {
	case ast.StringValue:
		lexeme := b.ast.TokenLexeme(node)
		if len(lexeme) >= 2 {
			return string(lexeme[1 : len(lexeme)-1]), true
		}
		return "", true
	case ast.NumberValue, ast.BooleanValue:
		return string(b.ast.TokenLexeme(node)), true
	default:
		return "", false
	}
}

// substituteDefines replaces every "$name" occurrence in src whose name
// matches a collected #define with that define's literal text. It is a
// single linear scan, bounded by len(src) — there is no re-scan of
// substituted output, so a define that expands to text containing another
// "$name" is never expanded a second time.
func (b *Builder) substituteDefines(src string) string {
	if len(b.defines) == 0 || !strings.ContainsRune(src, '$') {
		return src
	}

	var out strings.Builder
	out.Grow(len(src))
	i := 0
	for i < len(src) {
		if src[i] != '$' {
			out.WriteByte(src[i])
			i++
			continue
		}
		j := i + 1
		for j < len(src) && isIdentByte(src[j]) {
			j++
		}
		name := src[i+1 : j]
		if replacement, ok := b.defines[name]; ok && name != "" {
			out.WriteString(replacement)
		} else {
			out.WriteString(src[i:j])
		}
		i = j
	}
	return out.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
