package volume

import "github.com/dargueta/fat16vol/bytecodec"

// bpbSchema describes the FAT16 BIOS Parameter Block, per spec §3. Offsets
// and widths are exact; note the 2-byte gap at offsets 30-31 between
// hidden_sectors and large_sector_count, which both spec.md and the Python
// reference implementation this engine is based on leave unaccounted for.
var bpbSchema = bytecodec.Schema{
	{Name: "jump_boot", Offset: 0, Length: 3},
	{Name: "oem_name", Offset: 3, Length: 8, IsASCII: true},
	{Name: "bytes_per_sector", Offset: 11, Length: 2},
	{Name: "sectors_per_cluster", Offset: 13, Length: 1},
	{Name: "reserved_sectors", Offset: 14, Length: 2},
	{Name: "n_fats", Offset: 16, Length: 1},
	{Name: "root_entries", Offset: 17, Length: 2},
	{Name: "small_sector_count", Offset: 19, Length: 2},
	{Name: "media_descriptor", Offset: 21, Length: 1},
	{Name: "sectors_per_fat16", Offset: 22, Length: 2},
	{Name: "sectors_per_track", Offset: 24, Length: 2},
	{Name: "n_heads", Offset: 26, Length: 2},
	{Name: "hidden_sectors", Offset: 28, Length: 2},
	{Name: "large_sector_count", Offset: 32, Length: 4},
	{Name: "drive_number", Offset: 36, Length: 1},
	{Name: "nt_flags", Offset: 37, Length: 1},
	{Name: "signature", Offset: 38, Length: 1},
	{Name: "volume_id", Offset: 39, Length: 4},
	{Name: "volume_label", Offset: 43, Length: 11, IsASCII: true},
	{Name: "system_identifier", Offset: 54, Length: 8, IsASCII: true},
}

// BPB is the decoded BIOS Parameter Block of a FAT16 partition.
type BPB struct {
	OEMName           string
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	RootEntries       uint16
	SmallSectorCount  uint16
	MediaDescriptor   uint8
	SectorsPerFAT16   uint16
	SectorsPerTrack   uint16
	NumHeads          uint16
	HiddenSectors     uint16
	LargeSectorCount  uint32
	DriveNumber       uint8
	NTFlags           uint8
	Signature         uint8
	VolumeID          uint32
	VolumeLabel       string
	SystemIdentifier  string
}

// ParseBPB decodes sector (the partition's first sector) into a BPB.
func ParseBPB(sector []byte) BPB {
	r := bytecodec.DecodeRecord(bpbSchema, sector)
	return BPB{
		OEMName:           r.String("oem_name"),
		BytesPerSector:    uint16(r.Uint("bytes_per_sector")),
		SectorsPerCluster: uint8(r.Uint("sectors_per_cluster")),
		ReservedSectors:   uint16(r.Uint("reserved_sectors")),
		NumFATs:           uint8(r.Uint("n_fats")),
		RootEntries:       uint16(r.Uint("root_entries")),
		SmallSectorCount:  uint16(r.Uint("small_sector_count")),
		MediaDescriptor:   uint8(r.Uint("media_descriptor")),
		SectorsPerFAT16:   uint16(r.Uint("sectors_per_fat16")),
		SectorsPerTrack:   uint16(r.Uint("sectors_per_track")),
		NumHeads:          uint16(r.Uint("n_heads")),
		HiddenSectors:     uint16(r.Uint("hidden_sectors")),
		LargeSectorCount:  uint32(r.Uint("large_sector_count")),
		DriveNumber:       uint8(r.Uint("drive_number")),
		NTFlags:           uint8(r.Uint("nt_flags")),
		Signature:         uint8(r.Uint("signature")),
		VolumeID:          uint32(r.Uint("volume_id")),
		VolumeLabel:       r.String("volume_label"),
		SystemIdentifier:  r.String("system_identifier"),
	}
}
