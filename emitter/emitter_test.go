package emitter

import (
	"strings"
	"testing"

	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/ast"
	"github.com/gogpu/pngc/bytecode"
	"github.com/gogpu/pngc/parser"
	"github.com/gogpu/pngc/token"
)

func mustEmit(t *testing.T, src string) (*ast.Ast, *analyzer.Analysis, *bytecode.Module) {
	t.Helper()
	tree, err := parser.Parse(token.NewSource([]byte(src)))
	if err != nil {
		t.Fatalf("parser.Parse error: %v", err)
	}
	analysis := analyzer.Analyze(tree)
	if analysis.HasErrors() {
		t.Fatalf("unexpected analysis errors: %v", analysis.Errors)
	}
	module, err := Emit(tree, analysis)
	if err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	return tree, analysis, module
}

func disassemble(t *testing.T, m *bytecode.Module) string {
	t.Helper()
	out, err := bytecode.Disassemble(m)
	if err != nil {
		t.Fatalf("Disassemble error: %v", err)
	}
	return out
}

func TestEmitRefusesModuleWithAnalysisErrors(t *testing.T) {
	tree, err := parser.Parse(token.NewSource([]byte(`#buffer b { size = 1 }`)))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	analysis := analyzer.Analyze(tree)
	if !analysis.HasErrors() {
		t.Fatal("expected analysis errors (missing required usage property)")
	}
	if _, err := Emit(tree, analysis); err == nil {
		t.Fatal("expected Emit to refuse a module with analysis errors")
	}
}

func TestEmitBufferProducesCreateBufferInstruction(t *testing.T) {
	_, _, m := mustEmit(t, `#buffer b { size = 256 usage = ["uniform"] }`)
	out := disassemble(t, m)
	if !strings.HasPrefix(out, "CreateBuffer ") {
		t.Errorf("disassembly = %q, want it to start with CreateBuffer", out)
	}
	if len(m.DataBlobs) != 1 {
		t.Fatalf("DataBlobs = %d, want 1", len(m.DataBlobs))
	}
}

func TestEmitFrameAppendsSubmitAndEndFrame(t *testing.T) {
	_, _, m := mustEmit(t, `#frame main { perform = [] }`)
	out := disassemble(t, m)
	if !strings.HasSuffix(out, "Submit\nEndFrame\n") {
		t.Errorf("disassembly = %q, want it to end with Submit/EndFrame", out)
	}
	if !strings.HasPrefix(out, "DefineFrame") {
		t.Errorf("disassembly = %q, want it to start with the interned frame name's DefineFrame", out)
	}
	if got, want := len(m.Strings), 1; got != want {
		t.Fatalf("Strings = %d, want %d (the interned frame name)", got, want)
	}
	if m.Strings[0] != "main" {
		t.Errorf("Strings[0] = %q, want %q", m.Strings[0], "main")
	}
}

func TestEmitShaderModuleDedupesIdenticalWgslSource(t *testing.T) {
	_, _, m := mustEmit(t, `
		#wgsl a { value = "fn main() {}" }
		#wgsl b { value = "fn main() {}" }
		#shaderModule sa { code = $wgsl.a }
		#shaderModule sb { code = $wgsl.b }
	`)
	// two CreateShaderModule instructions, each with one varint arg (a data_id)
	lines := strings.Split(strings.TrimSpace(disassemble(t, m)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d instructions, want 2: %v", len(lines), lines)
	}
	if lines[0] != lines[1] {
		t.Errorf("deduplicated shader sources produced different data_ids: %q vs %q", lines[0], lines[1])
	}
}

func TestEmitDefineSubstitutionInShaderSource(t *testing.T) {
	_, _, m := mustEmit(t, `
		#define WORKGROUP = 64
		#wgsl compute { value = "const SIZE = $WORKGROUP;" }
		#shaderModule sm { code = $wgsl.compute }
	`)
	if len(m.DataBlobs) != 1 {
		t.Fatalf("DataBlobs = %d, want 1", len(m.DataBlobs))
	}
	if got := string(m.DataBlobs[0]); got != "const SIZE = 64;" {
		t.Errorf("substituted shader source = %q, want %q", got, "const SIZE = 64;")
	}
}
