package dirfs

import "github.com/dargueta/fat16vol/volume"

// EntryLocation pairs a decoded directory Entry with where it lives on disk,
// so a caller that wants to overwrite a slot knows where to write.
type EntryLocation struct {
	Sector uint32
	Offset int
	Entry  Entry
}

// EntriesIn lists every 32-byte directory entry slot in the directory region
// named by cluster (§4.5): the fixed root directory region if cluster == 0,
// or the sectors_per_cluster sectors of the given cluster otherwise. It does
// NOT follow the FAT chain -- the caller decides whether and how to move to
// the next cluster, so allocation decisions stay explicit (see
// ScanForFreeSlot). Grounded on the teacher's
// FATDriver.clusterToDirentSlice, which walks a cluster's raw bytes the same
// way but materializes a slice instead of yielding lazily.
func EntriesIn(v *volume.Volume, cluster uint32) ([]EntryLocation, error) {
	var firstSector, numSectors uint32
	if cluster == 0 {
		firstSector = v.FirstRootDirSector
		numSectors = v.RootDirSectors
	} else {
		firstSector = v.FirstSectorOfCluster(cluster)
		numSectors = uint32(v.BPB.SectorsPerCluster)
	}

	entriesPerSector := int(v.BPB.BytesPerSector) / EntrySize
	locations := make([]EntryLocation, 0, int(numSectors)*entriesPerSector)

	for i := uint32(0); i < numSectors; i++ {
		sectorIndex := firstSector + i
		sector, err := v.Sectors().Read(int(sectorIndex))
		if err != nil {
			return nil, err
		}

		for j := 0; j < entriesPerSector; j++ {
			offset := j * EntrySize
			locations = append(locations, EntryLocation{
				Sector: sectorIndex,
				Offset: offset,
				Entry:  decodeEntry(sector[offset : offset+EntrySize]),
			})
		}
	}
	return locations, nil
}
