// Package volume parses a FAT16 partition's BPB, derives its geometry, and
// provides FAT table access: reading/writing 16-bit entries, allocating free
// clusters, and walking chains to end-of-file (spec §3, §4.3, §4.4).
package volume

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/fat16vol/bytecodec"
	"github.com/dargueta/fat16vol/ferrors"
	"github.com/dargueta/fat16vol/mbrpart"
	"github.com/dargueta/fat16vol/sectorio"
)

// EndOfChain is the sentinel FAT entry value this engine writes to mark the
// last cluster in a chain. Readers accept the wider 0xFFF8-0xFFFF range
// (see IsEndOfChain); writers only ever emit this exact value (§9 open
// question 4).
const EndOfChain = 0xFFFF

// FirstValidEndOfChain is the low end of the FAT16 end-of-chain range that a
// conformant reader must accept, per the FAT16 standard (§9).
const FirstValidEndOfChain = 0xFFF8

// IsEndOfChain reports whether a raw FAT entry value denotes the end of a
// cluster chain.
func IsEndOfChain(value uint16) bool {
	return value >= FirstValidEndOfChain
}

// reservedClusters is the count of cluster numbers (0 and 1) that the FAT16
// format reserves and that the allocator must never hand out.
const reservedClusters = 2

// Volume is a mounted FAT16 partition: its BPB, derived geometry, and FAT
// table access, backed by the shared sector store.
type Volume struct {
	Partition mbrpart.Partition
	BPB       BPB

	store *sectorio.Store

	RootDirSectors      uint32
	DataSectors         uint32
	FirstFATSector      uint32
	FirstRootDirSector  uint32
	FirstDataSector     uint32
	NumClusters         uint32

	// freeClusters mirrors FAT occupancy: bit c is set iff cluster c is
	// allocated. It lets ScanFAT avoid re-walking the whole table on every
	// allocation. Grounded on drivers/common/allocatormap.go's bitmap
	// allocator.
	freeClusters bitmap.Bitmap

	cwd DirectoryDescriptor
}

// Mount parses the BPB at partition.Sector and computes derived geometry for
// every partition record that IsPresent(). Per §4.3, if no MBR partition
// record is present, the caller MAY fall back to treating the whole image as
// a single volume starting at sector 0 -- see MountWholeDisk.
func Mount(store *sectorio.Store, partitions [mbrpart.NumPartitions]mbrpart.Partition) (map[int]*Volume, error) {
	volumes := make(map[int]*Volume)
	for i, p := range partitions {
		if !p.IsPresent() {
			continue
		}
		v, err := mountPartition(store, p)
		if err != nil {
			return nil, fmt.Errorf("partition %d: %w", i, err)
		}
		volumes[i] = v
	}
	return volumes, nil
}

// MountWholeDisk treats sector 0 of store as the BPB of a single volume
// spanning the entire image, for images with no recognized MBR partition
// table (§4.3 fallback).
func MountWholeDisk(store *sectorio.Store) (*Volume, error) {
	return mountPartition(store, mbrpart.Partition{Sector: 0, Size: uint32(store.NumSectors())})
}

func mountPartition(store *sectorio.Store, partition mbrpart.Partition) (*Volume, error) {
	bootSector, err := store.Read(int(partition.Sector))
	if err != nil {
		return nil, ferrors.ErrInvalidPartition.WrapError(err)
	}

	bpb := ParseBPB(bootSector)
	if bpb.BytesPerSector == 0 || bpb.SectorsPerCluster == 0 {
		return nil, ferrors.ErrInvalidPartition.WithMessage("BPB has zero bytes_per_sector or sectors_per_cluster")
	}

	rootDirSectors := ceilDiv(uint32(bpb.RootEntries)*32, uint32(bpb.BytesPerSector))
	fatSectors := uint32(bpb.NumFATs) * uint32(bpb.SectorsPerFAT16)
	dataSectors := uint32(bpb.SmallSectorCount) - (uint32(bpb.ReservedSectors) + fatSectors + rootDirSectors)
	firstFATSector := uint32(bpb.ReservedSectors) + partition.Sector
	firstRootDirSector := firstFATSector + fatSectors
	firstDataSector := firstRootDirSector + rootDirSectors
	numClusters := dataSectors / uint32(bpb.SectorsPerCluster)

	v := &Volume{
		Partition:          partition,
		BPB:                bpb,
		store:              store,
		RootDirSectors:     rootDirSectors,
		DataSectors:        dataSectors,
		FirstFATSector:     firstFATSector,
		FirstRootDirSector: firstRootDirSector,
		FirstDataSector:    firstDataSector,
		NumClusters:        numClusters,
		freeClusters:       bitmap.New(int(numClusters) + reservedClusters),
	}
	v.cwd = DirectoryDescriptor{Cluster: 0, Sector: firstRootDirSector, Attr: AttrDirectory}

	if err := v.rebuildFreeClusterBitmap(); err != nil {
		return nil, err
	}
	return v, nil
}

func ceilDiv(a, b uint32) uint32 {
	return (a + b - 1) / b
}

// Cwd returns the volume's current working directory descriptor.
func (v *Volume) Cwd() DirectoryDescriptor {
	return v.cwd
}

// SetCwd updates the volume's current working directory descriptor.
func (v *Volume) SetCwd(d DirectoryDescriptor) {
	v.cwd = d
}

// RootDescriptor returns the sentinel descriptor for the fixed root
// directory region (§3 "Sentinel cluster 0 for root").
func (v *Volume) RootDescriptor() DirectoryDescriptor {
	return DirectoryDescriptor{Cluster: 0, Sector: v.FirstRootDirSector, Attr: AttrDirectory}
}

// FirstSectorOfCluster computes the first sector of cluster c, defined for
// c >= 2 (spec §3).
func (v *Volume) FirstSectorOfCluster(c uint32) uint32 {
	return (c-reservedClusters)*uint32(v.BPB.SectorsPerCluster) + v.FirstDataSector
}

// ReadFAT returns the raw 16-bit FAT entry for cluster c.
func (v *Volume) ReadFAT(c uint32) (uint16, error) {
	sec, off, err := v.fatLocation(c)
	if err != nil {
		return 0, err
	}
	sector, err := v.store.Read(int(sec))
	if err != nil {
		return 0, err
	}
	return uint16(bytecodec.Unpack(sector[off : off+2])), nil
}

// WriteFAT sets the raw 16-bit FAT entry for cluster c to value, and keeps
// the free-cluster bitmap consistent.
func (v *Volume) WriteFAT(c uint32, value uint16) error {
	sec, off, err := v.fatLocation(c)
	if err != nil {
		return err
	}
	if err := v.store.Write(int(sec), off, bytecodec.Pack(uint64(value), 2)); err != nil {
		return err
	}
	v.freeClusters.Set(int(c), value != 0)
	return nil
}

func (v *Volume) fatLocation(c uint32) (sector uint32, offset int, err error) {
	if c >= v.NumClusters+reservedClusters {
		return 0, 0, ferrors.ErrCorruptImage.WithMessage(
			fmt.Sprintf("cluster %d out of range [0, %d)", c, v.NumClusters+reservedClusters))
	}
	bytesPerSector := uint32(v.BPB.BytesPerSector)
	sector = v.FirstFATSector + (c*2)/bytesPerSector
	offset = int((c * 2) % bytesPerSector)
	return sector, offset, nil
}

// rebuildFreeClusterBitmap scans the on-disk FAT once at mount time to seed
// the bitmap mirror; afterwards WriteFAT keeps it current.
func (v *Volume) rebuildFreeClusterBitmap() error {
	for c := uint32(0); c < v.NumClusters+reservedClusters; c++ {
		value, err := v.ReadFAT(c)
		if err != nil {
			return err
		}
		v.freeClusters.Set(int(c), value != 0)
	}
	return nil
}

// ScanFAT returns the lowest free cluster in [2, NumClusters+2), skipping the
// two reserved clusters (§9 open question: "a conformant implementation MUST
// start at cluster 2"). It returns ferrors.ErrOutOfSpace if none is free.
func (v *Volume) ScanFAT() (uint32, error) {
	total := int(v.NumClusters) + reservedClusters
	for c := reservedClusters; c < total; c++ {
		if !v.freeClusters.Get(c) {
			return uint32(c), nil
		}
	}
	return 0, ferrors.ErrOutOfSpace
}

// ResetCluster zeroes every byte of every sector covered by cluster c.
func (v *Volume) ResetCluster(c uint32) error {
	first := v.FirstSectorOfCluster(c)
	zero := make([]byte, v.BPB.BytesPerSector)
	for i := uint32(0); i < uint32(v.BPB.SectorsPerCluster); i++ {
		if err := v.store.Write(int(first+i), 0, zero); err != nil {
			return err
		}
	}
	return nil
}

// Sectors exposes the underlying sector store for commands (sec, nonempty)
// that need raw sector access outside of FAT/directory semantics.
func (v *Volume) Sectors() *sectorio.Store {
	return v.store
}

// String renders the same labeled summary fatpy's Fat.__str__ produces.
func (v *Volume) String() string {
	return fmt.Sprintf(
		"Volume(\n"+
			"\ttotal_sectors: %d,\n"+
			"\tn_sectors_per_fat: %d,\n"+
			"\tn_root_dir_sectors: %d,\n"+
			"\tdata_sectors: %d,\n"+
			"\tn_clusters: %d,\n"+
			"\tfirst_data_sector: %d,\n"+
			"\tfirst_fat_sector: %d,\n"+
			"\tfirst_root_dir_sector: %d,\n"+
			")",
		v.BPB.SmallSectorCount,
		v.BPB.SectorsPerFAT16,
		v.RootDirSectors,
		v.DataSectors,
		v.NumClusters,
		v.FirstDataSector,
		v.FirstFATSector,
		v.FirstRootDirSector,
	)
}
