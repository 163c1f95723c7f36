package parser

import (
	"testing"

	"github.com/gogpu/pngc/ast"
	"github.com/gogpu/pngc/token"
)

func mustParse(t *testing.T, src string) *ast.Ast {
	t.Helper()
	tree, err := Parse(token.NewSource([]byte(src)))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return tree
}

func TestParseSimpleBuffer(t *testing.T) {
	tree := mustParse(t, `#buffer vertexBuf { size = 256 usage = "vertex" }`)

	decls := tree.TopLevelDecls()
	if len(decls) != 1 {
		t.Fatalf("top-level decls = %d, want 1", len(decls))
	}
	decl := decls[0]
	if tree.Tags[decl] != ast.DeclBuffer {
		t.Errorf("decl tag = %v, want DeclBuffer", tree.Tags[decl])
	}
	if got := string(tree.TokenLexeme(decl)); got != "vertexBuf" {
		t.Errorf("decl name = %q, want %q", got, "vertexBuf")
	}

	start, end := tree.Datas[decl].SubRange()
	props := tree.ExtraSlice(start, end)
	if len(props) != 2 {
		t.Fatalf("property count = %d, want 2", len(props))
	}

	sizeProp := props[0]
	if tree.Tags[sizeProp] != ast.Property {
		t.Fatalf("props[0] tag = %v, want Property", tree.Tags[sizeProp])
	}
	if got := string(tree.TokenLexeme(sizeProp)); got != "size" {
		t.Errorf("props[0] key = %q, want %q", got, "size")
	}
	sizeVal := tree.Datas[sizeProp].Child()
	if tree.Tags[sizeVal] != ast.NumberValue {
		t.Errorf("size value tag = %v, want NumberValue", tree.Tags[sizeVal])
	}
}

func TestParseNestedArrayAndObject(t *testing.T) {
	tree := mustParse(t, `#bindGroupLayout l { entries = [ { binding = 0 visibility = ["vertex"] } ] }`)

	decl := tree.TopLevelDecls()[0]
	start, end := tree.Datas[decl].SubRange()
	props := tree.ExtraSlice(start, end)
	entriesProp := props[0]
	arrNode := tree.Datas[entriesProp].Child()
	if tree.Tags[arrNode] != ast.ArrayValue {
		t.Fatalf("entries value tag = %v, want ArrayValue", tree.Tags[arrNode])
	}

	aStart, aEnd := tree.Datas[arrNode].SubRange()
	elems := tree.ExtraSlice(aStart, aEnd)
	if len(elems) != 1 {
		t.Fatalf("array element count = %d, want 1", len(elems))
	}
	objNode := elems[0]
	if tree.Tags[objNode] != ast.ObjectValue {
		t.Fatalf("element tag = %v, want ObjectValue", tree.Tags[objNode])
	}

	oStart, oEnd := tree.Datas[objNode].SubRange()
	objProps := tree.ExtraSlice(oStart, oEnd)
	if len(objProps) != 2 {
		t.Fatalf("object property count = %d, want 2", len(objProps))
	}
}

func TestParseReference(t *testing.T) {
	tree := mustParse(t, `#bindGroup g { layout = $bindGroupLayout.l entries = [] }`)

	decl := tree.TopLevelDecls()[0]
	start, end := tree.Datas[decl].SubRange()
	props := tree.ExtraSlice(start, end)
	layoutVal := tree.Datas[props[0]].Child()
	if tree.Tags[layoutVal] != ast.ReferenceValue {
		t.Fatalf("layout value tag = %v, want ReferenceValue", tree.Tags[layoutVal])
	}
	rStart, rEnd := tree.Datas[layoutVal].SubRange()
	segs := tree.ExtraSlice(rStart, rEnd)
	if len(segs) != 2 {
		t.Fatalf("reference segment count = %d, want 2", len(segs))
	}
	if got := string(tree.Tokens[segs[0]].Lexeme(tree.Source)); got != "bindGroupLayout" {
		t.Errorf("segment[0] = %q, want %q", got, "bindGroupLayout")
	}
	if got := string(tree.Tokens[segs[1]].Lexeme(tree.Source)); got != "l" {
		t.Errorf("segment[1] = %q, want %q", got, "l")
	}
}

func TestParseDefine(t *testing.T) {
	tree := mustParse(t, `#define width = 1920`)
	decl := tree.TopLevelDecls()[0]
	if tree.Tags[decl] != ast.DeclDefine {
		t.Fatalf("decl tag = %v, want DeclDefine", tree.Tags[decl])
	}
	val := tree.Datas[decl].Child()
	if tree.Tags[val] != ast.NumberValue {
		t.Errorf("define value tag = %v, want NumberValue", tree.Tags[val])
	}
}

func TestParseArithmeticExpression(t *testing.T) {
	tree := mustParse(t, `#define total = 2 + 3 * (4 - 1)`)
	decl := tree.TopLevelDecls()[0]
	root := tree.Datas[decl].Child()
	if tree.Tags[root] != ast.ExprAdd {
		t.Fatalf("root tag = %v, want ExprAdd", tree.Tags[root])
	}
	lhs, rhs := tree.Datas[root].Pair()
	if tree.Tags[lhs] != ast.NumberValue {
		t.Errorf("lhs tag = %v, want NumberValue", tree.Tags[lhs])
	}
	if tree.Tags[rhs] != ast.ExprMul {
		t.Errorf("rhs tag = %v, want ExprMul", tree.Tags[rhs])
	}
}

func TestParseUnaryMinus(t *testing.T) {
	tree := mustParse(t, `#define negated = -5`)
	decl := tree.TopLevelDecls()[0]
	root := tree.Datas[decl].Child()
	if tree.Tags[root] != ast.ExprNegate {
		t.Fatalf("root tag = %v, want ExprNegate", tree.Tags[root])
	}
}

func TestParseUniformAccess(t *testing.T) {
	tree := mustParse(t, `#define ref = module.variable`)
	decl := tree.TopLevelDecls()[0]
	val := tree.Datas[decl].Child()
	if tree.Tags[val] != ast.UniformAccess {
		t.Fatalf("value tag = %v, want UniformAccess", tree.Tags[val])
	}
}

func TestParseRuntimeInterpolationString(t *testing.T) {
	tree := mustParse(t, `#define greeting = "hello $name"`)
	decl := tree.TopLevelDecls()[0]
	val := tree.Datas[decl].Child()
	if tree.Tags[val] != ast.RuntimeInterpolation {
		t.Fatalf("value tag = %v, want RuntimeInterpolation", tree.Tags[val])
	}
}

func TestParsePlainStringIsNotInterpolated(t *testing.T) {
	tree := mustParse(t, `#define greeting = "hello"`)
	decl := tree.TopLevelDecls()[0]
	val := tree.Datas[decl].Child()
	if tree.Tags[val] != ast.StringValue {
		t.Fatalf("value tag = %v, want StringValue", tree.Tags[val])
	}
}

func TestParseMultipleDeclarations(t *testing.T) {
	tree := mustParse(t, `
		#buffer a { size = 1 usage = "vertex" }
		#buffer b { size = 2 usage = "index" }
	`)
	decls := tree.TopLevelDecls()
	if len(decls) != 2 {
		t.Fatalf("decl count = %d, want 2", len(decls))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`#buffer a { size = }`,
		`#buffer a size = 1 }`,
		`#nonsense a { }`,
		`#buffer a { size = 1`,
		`#define x = (1 + 2`,
		`#define x = 1 +`,
	}
	for _, src := range tests {
		if _, err := Parse(token.NewSource([]byte(src))); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", src)
		}
	}
}

func TestParseEmptyFile(t *testing.T) {
	tree := mustParse(t, "")
	if len(tree.TopLevelDecls()) != 0 {
		t.Errorf("TopLevelDecls() = %v, want empty", tree.TopLevelDecls())
	}
}

func TestParseDeeplyNestedArrayRespectsNestingDepth(t *testing.T) {
	src := "#define x = "
	for i := 0; i < MaxNestingDepth+10; i++ {
		src += "["
	}
	if _, err := Parse(token.NewSource([]byte(src))); err == nil {
		t.Error("expected an error for excessive array nesting, got nil")
	}
}
