package dirfs

import (
	"github.com/dargueta/fat16vol/ferrors"
	"github.com/dargueta/fat16vol/volume"
)

// ScanForFreeSlot finds a free directory entry slot in cluster (or the root
// region, for cluster == 0), extending the chain with a newly allocated
// cluster if every existing one is full (§4.6).
//
// The end-of-chain publish ordering matters: a new cluster's own FAT entry
// is set to EndOfChain *before* the predecessor's FAT entry is made to point
// at it, so a concurrent-with-itself scan (there is none in this
// single-threaded engine, but the invariant is what makes interrupted
// creates safe -- spec §5) never observes a cluster that's reachable from a
// chain yet still reads as free.
func ScanForFreeSlot(v *volume.Volume, cluster uint32) (sector uint32, offset int, err error) {
	locations, err := EntriesIn(v, cluster)
	if err != nil {
		return 0, 0, err
	}
	for _, loc := range locations {
		if loc.Entry.IsFree() {
			return loc.Sector, loc.Offset, nil
		}
	}

	if cluster == 0 {
		// The root directory region is fixed-size and cannot be extended.
		return 0, 0, ferrors.ErrOutOfSpace.WithMessage("root directory is full")
	}

	next, err := v.ReadFAT(cluster)
	if err != nil {
		return 0, 0, err
	}
	if !volume.IsEndOfChain(next) {
		return ScanForFreeSlot(v, uint32(next))
	}

	newCluster, err := v.ScanFAT()
	if err != nil {
		return 0, 0, err
	}
	if err := v.WriteFAT(newCluster, volume.EndOfChain); err != nil {
		return 0, 0, err
	}
	if err := v.WriteFAT(cluster, uint16(newCluster)); err != nil {
		return 0, 0, err
	}
	if err := v.ResetCluster(newCluster); err != nil {
		return 0, 0, err
	}

	return ScanForFreeSlot(v, newCluster)
}
