package volume

import (
	"fmt"

	"github.com/dargueta/fat16vol/ferrors"
	"github.com/hashicorp/go-multierror"
)

// VerifyChains opportunistically checks every cluster with a non-zero FAT
// entry for the invariants in spec §3/§8: a link must either be the
// end-of-chain sentinel or point at a valid, in-range cluster, and walking
// from any cluster must reach end-of-chain in at most NumClusters steps
// (acyclic). Every violation found is collected rather than stopping at the
// first one, then returned together as a single ferrors.ErrCorruptImage.
//
// This is the home for the teacher's otherwise-unused go-multierror
// dependency: a single corrupt cluster link is a one-line error, but a
// genuinely damaged FAT can have many, and reporting them all in one pass is
// more useful than forcing the caller to fix-and-rerun repeatedly.
func (v *Volume) VerifyChains() error {
	var result *multierror.Error

	total := v.NumClusters + reservedClusters
	for c := uint32(reservedClusters); c < total; c++ {
		value, err := v.ReadFAT(c)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if value == 0 {
			continue
		}
		if err := v.walkChain(c, value); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if result == nil {
		return nil
	}
	return ferrors.ErrCorruptImage.WrapError(result.ErrorOrNil())
}

// walkChain follows the chain starting at cluster start (whose FAT entry is
// already known to be first) for at most NumClusters steps looking for a
// cycle or an out-of-range link.
func (v *Volume) walkChain(start uint32, first uint16) error {
	seen := map[uint32]bool{start: true}
	current := first

	for steps := uint32(0); steps <= v.NumClusters; steps++ {
		if IsEndOfChain(current) {
			return nil
		}
		next := uint32(current)
		if next < reservedClusters || next >= v.NumClusters+reservedClusters {
			return fmt.Errorf("cluster %d: link %#x out of range", start, current)
		}
		if seen[next] {
			return fmt.Errorf("cluster %d: cycle detected at cluster %d", start, next)
		}
		seen[next] = true

		value, err := v.ReadFAT(next)
		if err != nil {
			return err
		}
		current = value
	}
	return fmt.Errorf("cluster %d: chain did not terminate within %d steps", start, v.NumClusters)
}
