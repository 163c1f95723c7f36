package emitter

import "testing"

func TestEmitAnimationInternsKeyframesAsData(t *testing.T) {
	_, _, m := mustEmit(t, `#animation bounce { keyframes = [0 1 0] }`)
	if len(m.DataBlobs) != 1 {
		t.Fatalf("DataBlobs = %d, want 1", len(m.DataBlobs))
	}
	if len(m.DataBlobs[0]) != 24 {
		t.Fatalf("blob len = %d, want 24 (3 float64s)", len(m.DataBlobs[0]))
	}
}

func TestEmitAnimationProducesNoOpcode(t *testing.T) {
	_, _, m := mustEmit(t, `#animation bounce { keyframes = [0 1] }`)
	if len(m.Bytecode) != 0 {
		t.Errorf("Bytecode = %v, want empty (animation carries no instruction)", m.Bytecode)
	}
}
