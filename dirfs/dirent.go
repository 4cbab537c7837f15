// Package dirfs implements directory entry encoding, entry iteration over a
// single cluster or the fixed root region, free-slot search with chain
// extension, file/directory creation, path resolution, and directory
// listing (spec §4.5-§4.9).
package dirfs

import (
	"strings"

	"github.com/dargueta/fat16vol/bytecodec"
	"github.com/dargueta/fat16vol/volume"
)

// EntrySize is the fixed size, in bytes, of one directory entry.
const EntrySize = 32

// entrySchema describes a 32-byte directory entry per spec §3. Offsets
// follow spec.md exactly, including the single-byte creation_time field and
// its trailing unused byte at offset 15 -- this mirrors the Python reference
// implementation the spec was distilled from rather than the wider FAT
// standard's 2-byte CrtTime field.
var entrySchema = bytecodec.Schema{
	{Name: "name", Offset: 0, Length: 11, IsASCII: true},
	{Name: "attr", Offset: 11, Length: 1},
	{Name: "nt_res", Offset: 12, Length: 1},
	{Name: "creation_time_tenth", Offset: 13, Length: 1},
	{Name: "creation_time", Offset: 14, Length: 1},
	{Name: "creation_date", Offset: 16, Length: 2},
	{Name: "last_accessed_date", Offset: 18, Length: 2},
	{Name: "first_cluster_hi", Offset: 20, Length: 2},
	{Name: "modified_time", Offset: 22, Length: 2},
	{Name: "modified_date", Offset: 24, Length: 2},
	{Name: "first_cluster_lo", Offset: 26, Length: 2},
	{Name: "file_size", Offset: 28, Length: 4},
}

// Entry is a decoded 32-byte directory entry.
type Entry struct {
	Name            string
	Attr            uint8
	NTRes           uint8
	CreationTenths  uint8
	CreationTime    uint8
	CreationDate    uint16
	LastAccessDate  uint16
	FirstClusterHi  uint16
	ModifiedTime    uint16
	ModifiedDate    uint16
	FirstClusterLo  uint16
	FileSize        uint32
}

// IsFree reports whether this slot is free, per spec §3: "A directory entry
// is free iff its attr byte is 0."
func (e Entry) IsFree() bool {
	return e.Attr == 0
}

// IsDirectory reports whether the entry's attribute bitmask has the
// directory bit set.
func (e Entry) IsDirectory() bool {
	return e.Attr&volume.AttrDirectory != 0
}

// decodeEntry decodes a 32-byte buffer into an Entry.
func decodeEntry(buf []byte) Entry {
	r := bytecodec.DecodeRecord(entrySchema, buf)
	return Entry{
		Name:           r.String("name"),
		Attr:           uint8(r.Uint("attr")),
		NTRes:          uint8(r.Uint("nt_res")),
		CreationTenths: uint8(r.Uint("creation_time_tenth")),
		CreationTime:   uint8(r.Uint("creation_time")),
		CreationDate:   uint16(r.Uint("creation_date")),
		LastAccessDate: uint16(r.Uint("last_accessed_date")),
		FirstClusterHi: uint16(r.Uint("first_cluster_hi")),
		ModifiedTime:   uint16(r.Uint("modified_time")),
		ModifiedDate:   uint16(r.Uint("modified_date")),
		FirstClusterLo: uint16(r.Uint("first_cluster_lo")),
		FileSize:       uint32(r.Uint("file_size")),
	}
}

// NewEntryParams is the set of values needed to build a fresh directory
// entry. It carries no timestamp fields; encodeEntry always fills those with
// the placeholder constants fatpy's `entry()` helper used.
type NewEntryParams struct {
	Name         string // already padded to 11 bytes; see PadName83.
	Attr         uint8
	FirstCluster uint32
}

// encodeEntry builds the 32-byte on-disk form of a fresh directory entry,
// mirroring fatpy's `entry()` + `encode_entry()` pair: the six timestamp
// fields get fixed placeholder values since this engine stores whatever the
// caller supplied and nothing calls it with real ones (spec §1 non-goals:
// "timestamps beyond storing whatever the caller supplied").
func encodeEntry(p NewEntryParams) []byte {
	values := bytecodec.Record{
		"name":                p.Name,
		"attr":                uint64(p.Attr),
		"nt_res":              uint64(0),
		"creation_time_tenth": uint64(0x01),
		"creation_time":       uint64(0x02),
		"creation_date":       uint64(0x02),
		"last_accessed_date":  uint64(0x03),
		"first_cluster_hi":    uint64(0),
		"modified_time":       uint64(0x04),
		"modified_date":       uint64(0x05),
		"first_cluster_lo":    uint64(p.FirstCluster),
		"file_size":           uint64(0),
	}
	return bytecodec.EncodeEntry(entrySchema, values)
}

// PadName83 normalizes a bare 8.3 name ("FOO", "FOO.BAR") into the 11-byte
// space-padded base+extension form the on-disk format requires ("FOO        ",
// "FOO     BAR"). Names and extensions longer than 8/3 bytes are
// truncated; this engine has no LFN support (spec §1 non-goals).
func PadName83(name string) string {
	// "." and ".." are themselves the base name, with no extension -- they
	// must not be split on the dot the way "FOO.BAR" is.
	if name == "." || name == ".." {
		return name + strings.Repeat(" ", 11-len(name))
	}

	base, ext, _ := strings.Cut(strings.ToUpper(name), ".")
	if len(base) > 8 {
		base = base[:8]
	}
	if len(ext) > 3 {
		ext = ext[:3]
	}

	var b strings.Builder
	b.WriteString(base)
	for i := len(base); i < 8; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(ext)
	for i := len(ext); i < 3; i++ {
		b.WriteByte(' ')
	}
	return b.String()
}
