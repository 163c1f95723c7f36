package emitter

import "testing"

func TestSubstituteDefinesReplacesWholeWordOccurrences(t *testing.T) {
	b := &Builder{defines: map[string]string{"SIZE": "64"}}
	got := b.substituteDefines("const x = $SIZE;")
	if got != "const x = 64;" {
		t.Errorf("got %q, want %q", got, "const x = 64;")
	}
}

func TestSubstituteDefinesLeavesUnknownNamesLiteral(t *testing.T) {
	b := &Builder{defines: map[string]string{}}
	got := b.substituteDefines("const x = $UNKNOWN;")
	if got != "const x = $UNKNOWN;" {
		t.Errorf("got %q, want unchanged", got)
	}
}

func TestSubstituteDefinesNoDollarIsNoOp(t *testing.T) {
	b := &Builder{defines: map[string]string{"SIZE": "64"}}
	got := b.substituteDefines("plain text")
	if got != "plain text" {
		t.Errorf("got %q, want %q", got, "plain text")
	}
}

func TestSubstituteDefinesDoesNotRescanExpandedText(t *testing.T) {
	b := &Builder{defines: map[string]string{"A": "$B", "B": "2"}}
	got := b.substituteDefines("$A")
	if got != "$B" {
		t.Errorf("got %q, want %q (no second pass over substituted text)", got, "$B")
	}
}

func TestCollectDefinesEndToEnd(t *testing.T) {
	_, analysis, m := mustEmit(t, `
		#define NAME = "triangle"
		#data label { value = "shader $NAME" }
	`)
	if analysis.HasErrors() {
		t.Fatalf("unexpected errors: %v", analysis.Errors)
	}
	if len(m.DataBlobs) != 1 {
		t.Fatalf("DataBlobs = %d, want 1", len(m.DataBlobs))
	}
}
