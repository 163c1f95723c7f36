package analyzer

import (
	"math"
	"testing"

	"github.com/gogpu/pngc/parser"
	"github.com/gogpu/pngc/token"
)

func evalDefine(t *testing.T, src string) (float64, bool) {
	t.Helper()
	tree, err := parser.Parse(token.NewSource([]byte(src)))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	decl := tree.TopLevelDecls()[0]
	return evalConstOn(tree, tree.Datas[decl].Child())
}

func TestEvalConstArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"#define x = 2 + 3", 5},
		{"#define x = 2 + 3 * 4", 14},
		{"#define x = (2 + 3) * 4", 20},
		{"#define x = 10 / 4", 2.5},
		{"#define x = -5", -5},
		{"#define x = -(2 + 3)", -5},
		{"#define x = 0x10", 16},
	}
	for _, tt := range tests {
		got, ok := evalDefine(t, tt.src)
		if !ok {
			t.Errorf("evalConst(%q) ok = false, want true", tt.src)
			continue
		}
		if got != tt.want {
			t.Errorf("evalConst(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestEvalConstNamedConstants(t *testing.T) {
	got, ok := evalDefine(t, "#define x = PI")
	if !ok || got != math.Pi {
		t.Errorf("evalConst(PI) = (%v,%v), want (%v,true)", got, ok, math.Pi)
	}
	got, ok = evalDefine(t, "#define x = tau")
	if !ok || got != 2*math.Pi {
		t.Errorf("evalConst(tau) = (%v,%v), want (%v,true)", got, ok, 2*math.Pi)
	}
}

func TestEvalConstDivisionByZeroFails(t *testing.T) {
	_, ok := evalDefine(t, "#define x = 1 / 0")
	if ok {
		t.Error("evalConst(1/0) ok = true, want false")
	}
}

func TestEvalConstUnknownIdentifierFails(t *testing.T) {
	_, ok := evalDefine(t, "#define x = notAConstant")
	if ok {
		t.Error("evalConst(notAConstant) ok = true, want false")
	}
}

func TestAnalysisEvalConstMatchesAnalyzerEvalConst(t *testing.T) {
	tree, err := parser.Parse(token.NewSource([]byte("#define x = 2 + 2")))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	a := New(tree)
	decl := tree.TopLevelDecls()[0]
	valNode := tree.Datas[decl].Child()

	fromAnalyzer, ok1 := a.evalConst(valNode)
	fromAnalysis, ok2 := a.out.EvalConst(valNode)
	if !ok1 || !ok2 || fromAnalyzer != fromAnalysis {
		t.Errorf("evalConst=(%v,%v) EvalConst=(%v,%v), want equal", fromAnalyzer, ok1, fromAnalysis, ok2)
	}
}
