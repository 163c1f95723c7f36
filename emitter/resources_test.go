package emitter

import (
	"strings"
	"testing"
)

func TestEmitTextureAndTextureView(t *testing.T) {
	_, _, m := mustEmit(t, `
		#texture tex {
			width = 256 height = 256 format = "rgba8unorm" usage = ["textureBinding"]
		}
		#textureView view { texture = $texture.tex }
	`)
	out := disassemble(t, m)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d instructions, want 2: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "CreateTexture ") {
		t.Errorf("first instruction = %q, want CreateTexture", lines[0])
	}
	if !strings.HasPrefix(lines[1], "CreateTextureView ") {
		t.Errorf("second instruction = %q, want CreateTextureView", lines[1])
	}
}

func TestEmitSamplerDefaultsMaxAnisotropy(t *testing.T) {
	_, _, m := mustEmit(t, `#sampler s { magFilter = "linear" }`)
	out := disassemble(t, m)
	if !strings.HasPrefix(out, "CreateSampler ") {
		t.Errorf("disassembly = %q, want CreateSampler", out)
	}
	if len(m.DataBlobs) != 1 {
		t.Fatalf("DataBlobs = %d, want 1", len(m.DataBlobs))
	}
	blob := m.DataBlobs[0]
	if got := blob[len(blob)-1]; got != 1 {
		t.Errorf("maxAnisotropy = %d, want default 1", got)
	}
}

func TestEmitQuerySet(t *testing.T) {
	_, _, m := mustEmit(t, `#querySet qs { type = "timestamp" count = 4 }`)
	out := disassemble(t, m)
	if !strings.HasPrefix(out, "CreateQuerySet ") {
		t.Errorf("disassembly = %q, want CreateQuerySet", out)
	}
}

func TestEmitImageBitmapOpcode(t *testing.T) {
	_, _, m := mustEmit(t, `#imageBitmap bmp { source = "opaque bytes" }`)
	out := disassemble(t, m)
	if !strings.HasPrefix(out, "ImportImageBitmap ") {
		t.Errorf("disassembly = %q, want ImportImageBitmap", out)
	}
}

func TestEmitBufferUsageRoundTripsThroughDescriptor(t *testing.T) {
	_, _, m := mustEmit(t, `#buffer b { size = 1024 usage = ["uniform" "copyDst"] }`)
	if len(m.DataBlobs) != 1 {
		t.Fatalf("DataBlobs = %d, want 1", len(m.DataBlobs))
	}
	// BufferDescriptor: field_count(1) header fields + size(u64)+usage(u32)
	// the exact byte layout is covered by the descriptor package's own
	// tests; here we only check the emitter actually produced one blob.
}
