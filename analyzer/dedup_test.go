package analyzer

import "testing"

func TestDeduplicateShadersSharesIdenticalSource(t *testing.T) {
	a := mustAnalyze(t, `
		#wgsl a { value = "fn main() {}" }
		#wgsl b { value = "fn main() {}" }
		#wgsl c { value = "different" }
	`)
	if a.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errors)
	}

	aDecl := a.Symbols[NamespaceWgsl]["a"]
	bDecl := a.Symbols[NamespaceWgsl]["b"]
	cDecl := a.Symbols[NamespaceWgsl]["c"]

	if a.ShaderFragments[aDecl] != a.ShaderFragments[bDecl] {
		t.Errorf("identical shader source got different fragment ids: %d vs %d",
			a.ShaderFragments[aDecl], a.ShaderFragments[bDecl])
	}
	if a.ShaderFragments[aDecl] == a.ShaderFragments[cDecl] {
		t.Error("different shader source got the same fragment id")
	}
}

func TestImportCycleDetected(t *testing.T) {
	a := mustAnalyze(t, `
		#wgsl a { value = "a" imports = [b] }
		#wgsl b { value = "b" imports = [a] }
	`)
	if !a.HasErrors() {
		t.Fatal("expected an import cycle error")
	}
}

func TestNoImportCycleForAcyclicGraph(t *testing.T) {
	a := mustAnalyze(t, `
		#wgsl a { value = "a" imports = [b] }
		#wgsl b { value = "b" }
	`)
	if a.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Errors)
	}
}

func TestSelfImportIsACycle(t *testing.T) {
	a := mustAnalyze(t, `#wgsl a { value = "a" imports = [a] }`)
	if !a.HasErrors() {
		t.Fatal("expected a self-import cycle error")
	}
}
