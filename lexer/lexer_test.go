package lexer

import (
	"testing"

	"github.com/gogpu/pngc/token"
)

func tagsOf(toks []token.Token) []token.Tag {
	tags := make([]token.Tag, len(toks))
	for i, t := range toks {
		tags[i] = t.Tag
	}
	return tags
}

func TestTokenizeMacroDeclaration(t *testing.T) {
	src := token.NewSource([]byte(`#buffer myBuf { size = 256 usage = "vertex" }`))
	got := tagsOf(Tokenize(src))
	want := []token.Tag{
		token.MacroBuffer, token.Identifier, token.LeftBrace,
		token.Identifier, token.Equal, token.NumberLiteral,
		token.Identifier, token.Equal, token.StringLiteral,
		token.RightBrace, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeMacroAliases(t *testing.T) {
	tests := []struct {
		src  string
		want token.Tag
	}{
		{"#pipeline", token.MacroRenderPipeline},
		{"#renderPipeline", token.MacroRenderPipeline},
		{"#pass", token.MacroRenderPass},
		{"#renderPass", token.MacroRenderPass},
		{"#imageBitmap", token.MacroImageBitmap},
		{"#imageBitmaps", token.MacroImageBitmap},
		{"#nonsense", token.Invalid},
	}
	for _, tt := range tests {
		toks := Tokenize(token.NewSource([]byte(tt.src)))
		if toks[0].Tag != tt.want {
			t.Errorf("Tokenize(%q)[0].Tag = %v, want %v", tt.src, toks[0].Tag, tt.want)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{"123", "123"},
		{"1.5", "1.5"},
		{"0xFF", "0xFF"},
		{"0x10", "0x10"},
	}
	for _, tt := range tests {
		src := token.NewSource([]byte(tt.src))
		toks := Tokenize(src)
		if toks[0].Tag != token.NumberLiteral {
			t.Fatalf("Tokenize(%q)[0].Tag = %v, want NumberLiteral", tt.src, toks[0].Tag)
		}
		if got := string(toks[0].Lexeme(src)); got != tt.text {
			t.Errorf("Lexeme = %q, want %q", got, tt.text)
		}
	}
}

func TestTokenizeUnaryMinusIsSeparateToken(t *testing.T) {
	src := token.NewSource([]byte("-5"))
	got := tagsOf(Tokenize(src))
	want := []token.Tag{token.Minus, token.NumberLiteral, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeBooleanLiteral(t *testing.T) {
	src := token.NewSource([]byte("true false truthy"))
	toks := Tokenize(src)
	if toks[0].Tag != token.BooleanLiteral {
		t.Errorf("toks[0].Tag = %v, want BooleanLiteral", toks[0].Tag)
	}
	if toks[1].Tag != token.BooleanLiteral {
		t.Errorf("toks[1].Tag = %v, want BooleanLiteral", toks[1].Tag)
	}
	if toks[2].Tag != token.Identifier {
		t.Errorf("toks[2].Tag (truthy) = %v, want Identifier", toks[2].Tag)
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	src := token.NewSource([]byte(`"a\"b"`))
	toks := Tokenize(src)
	if toks[0].Tag != token.StringLiteral {
		t.Fatalf("Tag = %v, want StringLiteral", toks[0].Tag)
	}
	if got := string(toks[0].Lexeme(src)); got != `"a\"b"` {
		t.Errorf("Lexeme = %q, want %q", got, `"a\"b"`)
	}
}

func TestTokenizeUnterminatedStringIsInvalid(t *testing.T) {
	src := token.NewSource([]byte(`"unterminated`))
	toks := Tokenize(src)
	if toks[0].Tag != token.Invalid {
		t.Errorf("Tag = %v, want Invalid", toks[0].Tag)
	}
}

func TestTokenizeComments(t *testing.T) {
	src := token.NewSource([]byte("// line\n/// doc\n"))
	toks := Tokenize(src)
	if toks[0].Tag != token.LineComment {
		t.Errorf("toks[0].Tag = %v, want LineComment", toks[0].Tag)
	}
	if toks[1].Tag != token.DocComment {
		t.Errorf("toks[1].Tag = %v, want DocComment", toks[1].Tag)
	}
}

func TestTokenizeSlashIsDivisionOutsideComment(t *testing.T) {
	src := token.NewSource([]byte("4 / 2"))
	got := tagsOf(Tokenize(src))
	want := []token.Tag{token.NumberLiteral, token.Slash, token.NumberLiteral, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeEmptyInputIsJustEOF(t *testing.T) {
	toks := Tokenize(token.NewSource(nil))
	if len(toks) != 1 || toks[0].Tag != token.EOF {
		t.Fatalf("Tokenize(empty) = %v, want single EOF", toks)
	}
}

func TestNextKeepsReturningEOF(t *testing.T) {
	l := New(token.NewSource([]byte("x")))
	l.Next()
	first := l.Next()
	second := l.Next()
	if first.Tag != token.EOF || second.Tag != token.EOF {
		t.Fatalf("expected repeated EOF, got %v then %v", first, second)
	}
	if first.Start != second.Start {
		t.Errorf("EOF cursor moved: %d != %d", first.Start, second.Start)
	}
}

func TestPunctuation(t *testing.T) {
	src := token.NewSource([]byte("{ } [ ] ( ) = , . $ + - *"))
	got := tagsOf(Tokenize(src))
	want := []token.Tag{
		token.LeftBrace, token.RightBrace, token.LeftBracket, token.RightBracket,
		token.LeftParen, token.RightParen, token.Equal, token.Comma, token.Dot,
		token.Dollar, token.Plus, token.Minus, token.Star, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUnrecognizedByteIsInvalid(t *testing.T) {
	src := token.NewSource([]byte("@"))
	toks := Tokenize(src)
	if toks[0].Tag != token.Invalid {
		t.Errorf("Tag = %v, want Invalid", toks[0].Tag)
	}
}
