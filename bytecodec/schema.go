// Package bytecodec implements a declarative, schema-driven codec for the
// fixed-width little-endian records used throughout the FAT on-disk format:
// BPB fields, MBR partition records, and directory entries all reduce to the
// same {name, offset, length, is_ascii} shape.
package bytecodec

// Field describes one fixed-width member of a record: its name, its byte
// offset and length within the record buffer, and whether it should be
// decoded as space-padded ASCII text rather than a little-endian integer.
type Field struct {
	Name    string
	Offset  int
	Length  int
	IsASCII bool
}

// Schema is an ordered list of Fields describing a fixed-size record.
type Schema []Field

// Size returns the number of bytes a record following this schema occupies,
// i.e. the end of its last field.
func (s Schema) Size() int {
	size := 0
	for _, f := range s {
		if end := f.Offset + f.Length; end > size {
			size = end
		}
	}
	return size
}
