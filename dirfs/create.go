package dirfs

import (
	"github.com/dargueta/fat16vol/ferrors"
	"github.com/dargueta/fat16vol/volume"
)

// CreateFileOrDirectory creates a new entry named name with the given
// attribute byte inside the directory described by dp (§4.8). If attr has
// the directory bit set, the new cluster is seeded with '.' and '..'
// entries.
//
// Per §9 open question 3, the destination is scanned for a colliding name
// before anything is allocated, and ferrors.ErrAlreadyExists is returned
// without mutating the FAT or the directory region -- the Python reference
// implementation this is based on skipped this check and left duplicate
// prevention to its caller, which spec.md flags as something a correct
// implementation should not do.
func CreateFileOrDirectory(v *volume.Volume, dp volume.DirectoryDescriptor, name string, attr uint8) (volume.DirectoryDescriptor, error) {
	padded := PadName83(name)

	if _, exists, err := findEntryByName(v, dp.Cluster, padded); err != nil {
		return volume.DirectoryDescriptor{}, err
	} else if exists {
		return volume.DirectoryDescriptor{}, ferrors.ErrAlreadyExists.WithMessage(name)
	}

	// Find (or make room for) a slot in the destination BEFORE allocating a
	// cluster for the new entry's own content: if the destination can't take
	// another entry (root is full, or the whole FAT is exhausted while
	// trying to extend a non-root directory), nothing about the new entry's
	// cluster should be touched (§8 boundary behavior: "Allocating when the
	// FAT is full ... does not mutate any FAT entry").
	sector, offset, err := ScanForFreeSlot(v, dp.Cluster)
	if err != nil {
		return volume.DirectoryDescriptor{}, err
	}

	freeCluster, err := v.ScanFAT()
	if err != nil {
		return volume.DirectoryDescriptor{}, err
	}
	if err := v.WriteFAT(freeCluster, volume.EndOfChain); err != nil {
		return volume.DirectoryDescriptor{}, err
	}

	buf := encodeEntry(NewEntryParams{Name: padded, Attr: attr, FirstCluster: freeCluster})
	if err := v.Sectors().Write(int(sector), offset, buf); err != nil {
		return volume.DirectoryDescriptor{}, err
	}

	if attr&volume.AttrDirectory == 0 {
		return volume.DirectoryDescriptor{
			Cluster: freeCluster,
			Sector:  v.FirstSectorOfCluster(freeCluster),
			Attr:    attr,
		}, nil
	}

	if err := v.ResetCluster(freeCluster); err != nil {
		return volume.DirectoryDescriptor{}, err
	}
	firstSector := v.FirstSectorOfCluster(freeCluster)

	dotAttr := uint8(volume.AttrDirectory | volume.AttrHidden)
	dot := encodeEntry(NewEntryParams{Name: PadName83("."), Attr: dotAttr, FirstCluster: freeCluster})
	dotdot := encodeEntry(NewEntryParams{Name: PadName83(".."), Attr: dotAttr, FirstCluster: dp.Cluster})

	if err := v.Sectors().Write(int(firstSector), 0, dot); err != nil {
		return volume.DirectoryDescriptor{}, err
	}
	if err := v.Sectors().Write(int(firstSector), EntrySize, dotdot); err != nil {
		return volume.DirectoryDescriptor{}, err
	}

	return volume.DirectoryDescriptor{Cluster: freeCluster, Sector: firstSector, Attr: attr}, nil
}

// CreateDirectory is a thin wrapper over CreateFileOrDirectory that always
// sets the directory attribute bit.
func CreateDirectory(v *volume.Volume, dp volume.DirectoryDescriptor, name string) (volume.DirectoryDescriptor, error) {
	return CreateFileOrDirectory(v, dp, name, volume.AttrDirectory)
}

// CreateFile is a thin wrapper over CreateFileOrDirectory defaulting to
// ATTR_ARCHIVE, matching fatpy's create_file default (§6 supplemented
// features).
func CreateFile(v *volume.Volume, dp volume.DirectoryDescriptor, name string) (volume.FileDescriptor, error) {
	newDP, err := CreateFileOrDirectory(v, dp, name, volume.AttrArchive)
	if err != nil {
		return volume.FileDescriptor{}, err
	}
	return volume.FileDescriptor{Cluster: newDP.Cluster, DirSector: dp.Sector, Attr: newDP.Attr, Size: 0}, nil
}

// MkdirPath resolves path's parent directory and creates a new directory
// named by path's final segment inside it (§4.8, wired to a path string as
// the shell's `mkdir` command needs).
func MkdirPath(v *volume.Volume, cwd volume.DirectoryDescriptor, path string) (volume.DirectoryDescriptor, error) {
	parentPath, name := splitParentAndName(path)
	parent, err := FollowPath(v, cwd, parentPath)
	if err != nil {
		return volume.DirectoryDescriptor{}, err
	}
	return CreateDirectory(v, parent, name)
}

// TouchPath resolves path's parent directory and creates a new file named by
// path's final segment inside it.
func TouchPath(v *volume.Volume, cwd volume.DirectoryDescriptor, path string) (volume.FileDescriptor, error) {
	parentPath, name := splitParentAndName(path)
	parent, err := FollowPath(v, cwd, parentPath)
	if err != nil {
		return volume.FileDescriptor{}, err
	}
	return CreateFile(v, parent, name)
}
