// Package testimage builds small synthetic FAT16 images in memory for use
// in tests, adapted from the teacher's testing/images.go: that helper
// decompresses a fixture and wraps it as a seekable stream with
// bytesextra.NewReadWriteSeeker; this one builds the bytes directly (there's
// no compressed fixture to ship) but wraps them the same way so callers can
// exercise the same load path production code does.
package testimage

import (
	"github.com/dargueta/fat16vol/bytecodec"
	"github.com/dargueta/fat16vol/sectorio"
)

// Geometry is the set of BPB parameters needed to lay out a synthetic image.
// Field names mirror spec §8 scenario 1 verbatim.
type Geometry struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	RootEntries       uint16
	SmallSectorCount  uint16
	SectorsPerFAT16   uint16
	PartitionStartLBA uint32
}

// DefaultGeometry reproduces spec §8 scenario 1's literal example image.
func DefaultGeometry() Geometry {
	return Geometry{
		BytesPerSector:    512,
		SectorsPerCluster: 4,
		ReservedSectors:   1,
		NumFATs:           2,
		RootEntries:       512,
		SmallSectorCount:  20000,
		SectorsPerFAT16:   20,
		PartitionStartLBA: 63,
	}
}

// Build lays out a raw image of totalSectors sectors with a single MBR
// partition record (index 0) pointing at a FAT16 volume described by g,
// fully zeroed otherwise. It returns the raw byte slice.
func Build(g Geometry, totalSectors int) []byte {
	raw := make([]byte, totalSectors*sectorio.SectorSize)

	// Partition record 0, at offset 446 within sector 0.
	const pteOffset = 446
	copy(raw[pteOffset+8:pteOffset+12], bytecodec.Pack(uint64(g.PartitionStartLBA), 4))
	copy(raw[pteOffset+12:pteOffset+16], bytecodec.Pack(uint64(g.SmallSectorCount), 4))
	raw[pteOffset+4] = 0x06 // FAT16 MBR partition type byte.

	bootSectorOffset := int(g.PartitionStartLBA) * sectorio.SectorSize
	bs := raw[bootSectorOffset : bootSectorOffset+sectorio.SectorSize]
	putU16 := func(offset int, v uint16) { copy(bs[offset:offset+2], bytecodec.Pack(uint64(v), 2)) }
	putU8 := func(offset int, v uint8) { bs[offset] = v }

	putU16(11, g.BytesPerSector)
	putU8(13, g.SectorsPerCluster)
	putU16(14, g.ReservedSectors)
	putU8(16, g.NumFATs)
	putU16(17, g.RootEntries)
	putU16(19, g.SmallSectorCount)
	bs[21] = 0xF8 // fixed disk media descriptor
	putU16(22, g.SectorsPerFAT16)

	return raw
}

// BuildStore is Build followed by loading the result through the same
// bytesextra-wrapped stream path LoadImage expects a real backing file to
// come through, for tests that want the sector-indexed API directly.
func BuildStore(g Geometry, totalSectors int) (*sectorio.Store, error) {
	raw := Build(g, totalSectors)
	return sectorio.LoadImage(sectorio.AsReadWriteSeeker(raw))
}
