// Package mbrpart parses the Master Boot Record occupying sector 0 of an
// image: the 446-byte boot code region, four 16-byte partition records, and
// the 2-byte signature.
package mbrpart

import "github.com/dargueta/fat16vol/bytecodec"

// BootCodeSize is the size, in bytes, of the MBR's opaque boot-code region.
const BootCodeSize = 446

// PartitionRecordSize is the size, in bytes, of one partition table entry.
const PartitionRecordSize = 16

// NumPartitions is the number of partition records an MBR carries.
const NumPartitions = 4

var partitionSchema = bytecodec.Schema{
	{Name: "indicator", Offset: 0, Length: 1},
	{Name: "start_chs", Offset: 1, Length: 3},
	{Name: "type", Offset: 4, Length: 1},
	{Name: "end_chs", Offset: 5, Length: 3},
	{Name: "sector", Offset: 8, Length: 4},
	{Name: "size", Offset: 12, Length: 4},
}

// Partition is a decoded partition table entry.
type Partition struct {
	Indicator byte
	Type      byte
	Sector    uint32 // starting LBA sector; 0 means the partition is absent.
	Size      uint32 // size in sectors.
}

// IsPresent reports whether this partition record describes a real
// partition, per spec §3: "A partition with starting LBA of 0 is absent."
func (p Partition) IsPresent() bool {
	return p.Sector != 0
}

// MBR is the decoded Master Boot Record.
type MBR struct {
	BootCode   []byte
	Partitions [NumPartitions]Partition
	Signature  uint16
}

// Parse decodes sector (the 512-byte sector 0 buffer) into an MBR.
func Parse(sector []byte) MBR {
	mbr := MBR{
		BootCode: append([]byte(nil), sector[:BootCodeSize]...),
	}

	offset := BootCodeSize
	for i := 0; i < NumPartitions; i++ {
		chunk := sector[offset : offset+PartitionRecordSize]
		record := bytecodec.DecodeRecord(partitionSchema, chunk)
		mbr.Partitions[i] = Partition{
			Indicator: byte(record.Uint("indicator")),
			Type:      byte(record.Uint("type")),
			Sector:    uint32(record.Uint("sector")),
			Size:      uint32(record.Uint("size")),
		}
		offset += PartitionRecordSize
	}

	mbr.Signature = uint16(bytecodec.Unpack(sector[offset : offset+2]))
	return mbr
}
