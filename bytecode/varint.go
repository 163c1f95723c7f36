package bytecode

// PutUvarint and Uvarint are LEB128 unsigned varints, the same encoding
// encoding/binary uses for its own Uvarint — reimplemented locally so the
// bytecode section's instruction-argument encoding has no dependency on
// how a future caller happens to frame byte slices (no io.ByteReader
// required).

// PutUvarint appends v's varint encoding to buf and returns the result.
func PutUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// Uvarint decodes a varint from the start of buf, returning the value and
// the number of bytes consumed. n is 0 if buf does not contain a complete
// varint (e.g. it is empty or ends mid-sequence).
func Uvarint(buf []byte) (uint64, int) {
	var v uint64
	var shift uint
	for i, b := range buf {
		if i >= 10 {
			return 0, 0 // would overflow a 64-bit value
		}
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, i + 1
		}
		shift += 7
	}
	return 0, 0
}
