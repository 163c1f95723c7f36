package bytecode

import (
	"encoding/binary"
	"fmt"
)

// Module is a fully decoded bytecode module: the raw instruction stream
// plus its two addressable tables. DataBlobs[i] is addressable as data_id
// i; Strings[i] is addressable as string_id i.
type Module struct {
	Bytecode  []byte
	DataBlobs [][]byte
	Strings   []string
}

// Encode serializes m into the wire format: header, bytecode section, data
// blob table, string intern table.
func (m *Module) Encode() []byte {
	var data []byte
	data = PutUvarint(data, uint64(len(m.DataBlobs)))
	for _, blob := range m.DataBlobs {
		data = PutUvarint(data, uint64(len(blob)))
		data = append(data, blob...)
	}

	var strs []byte
	strs = PutUvarint(strs, uint64(len(m.Strings)))
	for _, s := range m.Strings {
		strs = PutUvarint(strs, uint64(len(s)))
		strs = append(strs, s...)
	}

	header := Header{
		Magic:         Magic,
		Version:       Version,
		DataOffset:    uint32(HeaderSize + len(m.Bytecode)),
		StringsOffset: uint32(HeaderSize + len(m.Bytecode) + len(data)),
	}

	out := make([]byte, 0, HeaderSize+len(m.Bytecode)+len(data)+len(strs))
	out = append(out, header.Magic[:]...)
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], header.Version)
	out = append(out, tmp[:]...)
	binary.LittleEndian.PutUint32(tmp[:], header.DataOffset)
	out = append(out, tmp[:]...)
	binary.LittleEndian.PutUint32(tmp[:], header.StringsOffset)
	out = append(out, tmp[:]...)
	out = append(out, m.Bytecode...)
	out = append(out, data...)
	out = append(out, strs...)
	return out
}

// Decode parses a module produced by Encode.
func Decode(buf []byte) (*Module, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("bytecode: buffer too short for header")
	}
	if [4]byte(buf[0:4]) != Magic {
		return nil, ErrBadMagic
	}
	dataOffset := binary.LittleEndian.Uint32(buf[8:12])
	stringsOffset := binary.LittleEndian.Uint32(buf[12:16])
	if int(dataOffset) > len(buf) || int(stringsOffset) > len(buf) || dataOffset > stringsOffset {
		return nil, fmt.Errorf("bytecode: malformed section offsets")
	}

	m := &Module{Bytecode: buf[HeaderSize:dataOffset]}

	pos := int(dataOffset)
	count, n := Uvarint(buf[pos:])
	if n == 0 {
		return nil, fmt.Errorf("bytecode: malformed data blob count")
	}
	pos += n
	for i := uint64(0); i < count; i++ {
		length, n := Uvarint(buf[pos:])
		if n == 0 {
			return nil, fmt.Errorf("bytecode: malformed data blob %d length", i)
		}
		pos += n
		if pos+int(length) > len(buf) {
			return nil, fmt.Errorf("bytecode: data blob %d overruns buffer", i)
		}
		m.DataBlobs = append(m.DataBlobs, buf[pos:pos+int(length)])
		pos += int(length)
	}

	count, n = Uvarint(buf[pos:])
	if n == 0 {
		return nil, fmt.Errorf("bytecode: malformed string count")
	}
	pos += n
	for i := uint64(0); i < count; i++ {
		length, n := Uvarint(buf[pos:])
		if n == 0 {
			return nil, fmt.Errorf("bytecode: malformed string %d length", i)
		}
		pos += n
		if pos+int(length) > len(buf) {
			return nil, fmt.Errorf("bytecode: string %d overruns buffer", i)
		}
		m.Strings = append(m.Strings, string(buf[pos:pos+int(length)]))
		pos += int(length)
	}

	return m, nil
}
