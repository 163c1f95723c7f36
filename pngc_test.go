package pngc

import (
	"strings"
	"testing"

	"github.com/gogpu/pngc/bytecode"
)

const sampleSource = `
#buffer vbuf { size = 64 usage = ["vertex"] }
#frame f { perform = [] }
`

func TestCompileProducesValidModule(t *testing.T) {
	out, err := Compile(sampleSource)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if string(out[0:4]) != "PNGB" {
		t.Fatalf("output does not start with PNGB magic: %v", out[0:4])
	}
	m, err := bytecode.Decode(out)
	if err != nil {
		t.Fatalf("bytecode.Decode error: %v", err)
	}
	disasm, err := bytecode.Disassemble(m)
	if err != nil {
		t.Fatalf("Disassemble error: %v", err)
	}
	if !strings.Contains(disasm, "CreateBuffer") {
		t.Errorf("disassembly = %q, want it to contain CreateBuffer", disasm)
	}
}

func TestCompileParseErrorIsWrapped(t *testing.T) {
	_, err := Compile(`#buffer { size = `)
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestCompileAnalysisErrorIsWrapped(t *testing.T) {
	_, err := Compile(`#buffer b { size = 1 }`) // missing required "usage"
	if err == nil {
		t.Fatal("expected an analysis error for a missing required property")
	}
	if !strings.Contains(err.Error(), "analysis failed") {
		t.Errorf("err = %v, want it to mention analysis failure", err)
	}
}

func TestCompileWithOptionsMaxErrorsCapsReportedCount(t *testing.T) {
	src := `
		#buffer a { size = 1 }
		#buffer b { size = 1 }
		#buffer c { size = 1 }
	`
	_, err := CompileWithOptions(src, CompileOptions{MaxErrors: 1})
	if err == nil {
		t.Fatal("expected an analysis error")
	}
}

func TestParseAnalyzeEmitStagesIndividually(t *testing.T) {
	tree, err := Parse(sampleSource)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	analysis := Analyze(tree)
	if analysis.HasErrors() {
		t.Fatalf("unexpected analysis errors: %v", analysis.Errors)
	}
	module, err := Emit(tree, analysis)
	if err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if module == nil {
		t.Fatal("Emit returned a nil module")
	}
}

func TestDefaultOptionsReportsAllErrors(t *testing.T) {
	opts := DefaultOptions()
	if opts.MaxErrors != 0 {
		t.Errorf("MaxErrors = %d, want 0 (report all)", opts.MaxErrors)
	}
}
