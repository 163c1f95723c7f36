package bytecode

import "testing"

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1 << 32, 1<<64 - 1}
	for _, v := range values {
		buf := PutUvarint(nil, v)
		got, n := Uvarint(buf)
		if n != len(buf) {
			t.Errorf("Uvarint(%d) consumed %d bytes, want %d", v, n, len(buf))
		}
		if got != v {
			t.Errorf("Uvarint(PutUvarint(%d)) = %d", v, got)
		}
	}
}

func TestUvarintEmptyBufferIsIncomplete(t *testing.T) {
	_, n := Uvarint(nil)
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}

func TestUvarintTruncatedIsIncomplete(t *testing.T) {
	buf := PutUvarint(nil, 1<<20)
	_, n := Uvarint(buf[:1])
	if n != 0 {
		t.Errorf("n = %d, want 0 for truncated varint", n)
	}
}

func TestUvarintOverLongSequenceRejected(t *testing.T) {
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0x80
	}
	buf[10] = 0x01
	_, n := Uvarint(buf)
	if n != 0 {
		t.Errorf("n = %d, want 0 for an over-long varint", n)
	}
}

func TestPutUvarintAppendsToExistingBuffer(t *testing.T) {
	buf := []byte{0xAA}
	buf = PutUvarint(buf, 5)
	if buf[0] != 0xAA {
		t.Errorf("PutUvarint clobbered existing prefix: %v", buf)
	}
	if buf[1] != 5 {
		t.Errorf("appended varint byte = %d, want 5", buf[1])
	}
}
