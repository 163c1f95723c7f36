package bytecode

import (
	"bytes"
	"testing"
)

func TestModuleEncodeDecodeRoundTrip(t *testing.T) {
	var code []byte
	code = append(code, byte(OpCreateBuffer))
	code = PutUvarint(code, 0)
	code = append(code, byte(OpSubmit))
	code = append(code, byte(OpEndFrame))

	m := &Module{
		Bytecode:  code,
		DataBlobs: [][]byte{{1, 2, 3}, {}, {9}},
		Strings:   []string{"main", "vs_main"},
	}

	encoded := m.Encode()
	if !bytes.Equal(encoded[0:4], Magic[:]) {
		t.Fatalf("encoded buffer does not start with magic: %v", encoded[0:4])
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !bytes.Equal(decoded.Bytecode, m.Bytecode) {
		t.Errorf("Bytecode = %v, want %v", decoded.Bytecode, m.Bytecode)
	}
	if len(decoded.DataBlobs) != len(m.DataBlobs) {
		t.Fatalf("DataBlobs len = %d, want %d", len(decoded.DataBlobs), len(m.DataBlobs))
	}
	for i := range m.DataBlobs {
		if !bytes.Equal(decoded.DataBlobs[i], m.DataBlobs[i]) {
			t.Errorf("DataBlobs[%d] = %v, want %v", i, decoded.DataBlobs[i], m.DataBlobs[i])
		}
	}
	if len(decoded.Strings) != len(m.Strings) {
		t.Fatalf("Strings len = %d, want %d", len(decoded.Strings), len(m.Strings))
	}
	for i := range m.Strings {
		if decoded.Strings[i] != m.Strings[i] {
			t.Errorf("Strings[%d] = %q, want %q", i, decoded.Strings[i], m.Strings[i])
		}
	}
}

func TestModuleEncodeEmpty(t *testing.T) {
	m := &Module{}
	encoded := m.Encode()
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(decoded.Bytecode) != 0 || len(decoded.DataBlobs) != 0 || len(decoded.Strings) != 0 {
		t.Errorf("decoded empty module not empty: %+v", decoded)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	buf := make([]byte, HeaderSize)
	copy(buf, "XXXX")
	_, err := Decode(buf)
	if err != ErrBadMagic {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	_, err := Decode([]byte{'P', 'N', 'G', 'B'})
	if err == nil {
		t.Fatal("expected an error for a too-short buffer")
	}
}

func TestDecodeRejectsBadSectionOffsets(t *testing.T) {
	m := &Module{}
	encoded := m.Encode()
	// Corrupt dataOffset to point past the end of the buffer.
	encoded[8] = 0xFF
	encoded[9] = 0xFF
	_, err := Decode(encoded)
	if err == nil {
		t.Fatal("expected an error for an out-of-range data offset")
	}
}

func TestDecodeRejectsTruncatedDataBlob(t *testing.T) {
	m := &Module{DataBlobs: [][]byte{{1, 2, 3, 4, 5}}}
	encoded := m.Encode()
	truncated := encoded[:len(encoded)-3]
	_, err := Decode(truncated)
	if err == nil {
		t.Fatal("expected an error for a truncated data blob")
	}
}
