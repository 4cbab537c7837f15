package bytecodec

import "fmt"

// Unpack decodes buf as an unsigned little-endian integer: sum(buf[i] << 8*i).
// The caller is responsible for keeping len(buf) within the width of the
// integer type it intends to store the result in; FAT records never need
// more than 4 bytes so this always fits in a uint64.
func Unpack(buf []byte) uint64 {
	var value uint64
	for i, b := range buf {
		value |= uint64(b) << uint(8*i)
	}
	return value
}

// Pack encodes value as n little-endian bytes, truncating any bits beyond
// the 8*n low-order bits.
func Pack(value uint64, n int) []byte {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = byte(value)
		value >>= 8
	}
	return buf
}

// Record is a decoded view of a schema-described buffer: field name to
// either a uint64 (numeric field) or a string (ASCII field, space-padded and
// NOT trimmed — callers that want a trimmed name do that themselves).
type Record map[string]interface{}

// Uint returns the field's value as a uint64, or 0 if the field is absent or
// is an ASCII field.
func (r Record) Uint(name string) uint64 {
	v, _ := r[name].(uint64)
	return v
}

// String returns the field's value as a string, or "" if the field is absent
// or is a numeric field.
func (r Record) String(name string) string {
	v, _ := r[name].(string)
	return v
}

// DecodeRecord decodes buf according to schema into a name -> value mapping.
// Fields of length 1 decode to their raw byte value; ASCII fields decode to
// their full-width string (space padding preserved, not trimmed); everything
// else decodes via Unpack.
func DecodeRecord(schema Schema, buf []byte) Record {
	record := make(Record, len(schema))
	for _, f := range schema {
		chunk := buf[f.Offset : f.Offset+f.Length]
		switch {
		case f.IsASCII:
			chars := make([]byte, len(chunk))
			copy(chars, chunk)
			record[f.Name] = string(chars)
		case f.Length == 1:
			record[f.Name] = uint64(chunk[0])
		default:
			record[f.Name] = Unpack(chunk)
		}
	}
	return record
}

// EncodeEntry renders values into a zero-filled buffer of schema.Size()
// bytes. Every field named in schema must have a corresponding entry in
// values, or EncodeEntry panics — a missing field means the caller built an
// incomplete record, which is a programming error, not a runtime condition.
func EncodeEntry(schema Schema, values Record) []byte {
	buf := make([]byte, schema.Size())
	for _, f := range schema {
		v, ok := values[f.Name]
		if !ok {
			panic(fmt.Sprintf("bytecodec: missing field %q for schema", f.Name))
		}

		if f.IsASCII {
			s, _ := v.(string)
			n := copy(buf[f.Offset:f.Offset+f.Length], s)
			// Zero-pad, not space-pad: EncodeEntry pre-fills zeros and the
			// caller is expected to have already space-padded 8.3 names
			// before calling in (see dirfs.PadName83).
			_ = n
			continue
		}

		var n uint64
		switch val := v.(type) {
		case uint64:
			n = val
		case uint32:
			n = uint64(val)
		case uint16:
			n = uint64(val)
		case uint8:
			n = uint64(val)
		case int:
			n = uint64(val)
		default:
			panic(fmt.Sprintf("bytecodec: field %q has non-numeric value %#v", f.Name, v))
		}
		copy(buf[f.Offset:f.Offset+f.Length], Pack(n, f.Length))
	}
	return buf
}
