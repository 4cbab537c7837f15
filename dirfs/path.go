package dirfs

import (
	"strings"

	"github.com/dargueta/fat16vol/ferrors"
	"github.com/dargueta/fat16vol/volume"
)

// findEntryByName looks for an entry in cluster whose name exactly matches
// paddedName (an 11-byte space-padded 8.3 form, case-folded the same way
// PadName83 folds it). Per §9 open question 2, this is an EXACT match, not
// the substring match the Python reference implementation used -- substring
// matching would let "FOO" match "FOOBAR     ", which spec.md calls out as
// likely a bug.
func findEntryByName(v *volume.Volume, cluster uint32, paddedName string) (EntryLocation, bool, error) {
	locations, err := EntriesIn(v, cluster)
	if err != nil {
		return EntryLocation{}, false, err
	}
	for _, loc := range locations {
		if loc.Entry.IsFree() {
			continue
		}
		if loc.Entry.Name == paddedName {
			return loc, true, nil
		}
	}
	return EntryLocation{}, false, nil
}

// FollowPath resolves a '/'-separated sequence of 8.3 names to a directory
// descriptor (§4.7). An absolute path (leading '/') starts from the root;
// otherwise it starts from cwd. An empty path returns the starting
// descriptor unchanged.
func FollowPath(v *volume.Volume, cwd volume.DirectoryDescriptor, path string) (volume.DirectoryDescriptor, error) {
	dp := cwd
	if strings.HasPrefix(path, "/") {
		dp = v.RootDescriptor()
	}

	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return dp, nil
	}

	for _, segment := range strings.Split(trimmed, "/") {
		padded := PadName83(segment)
		loc, found, err := findEntryByName(v, dp.Cluster, padded)
		if err != nil {
			return volume.DirectoryDescriptor{}, err
		}
		if !found {
			return volume.DirectoryDescriptor{}, ferrors.ErrPathNotFound.WithMessage(segment)
		}
		if !loc.Entry.IsDirectory() {
			return volume.DirectoryDescriptor{}, ferrors.ErrNotADirectory.WithMessage(segment)
		}

		cluster := uint32(loc.Entry.FirstClusterLo)
		if cluster == 0 {
			// A ".." entry whose parent is the root points at cluster 0,
			// the root-region sentinel.
			dp = v.RootDescriptor()
			continue
		}
		dp = volume.DirectoryDescriptor{
			Cluster: cluster,
			Sector:  v.FirstSectorOfCluster(cluster),
			Attr:    loc.Entry.Attr,
		}
	}
	return dp, nil
}

// splitParentAndName splits a path like "a/b/FOO.TXT" into its parent path
// ("a/b", or "/a/b" if the original was absolute) and its final segment
// ("FOO.TXT"), for operations that create an entry in an existing parent.
func splitParentAndName(path string) (parent, name string) {
	prefix := ""
	if strings.HasPrefix(path, "/") {
		prefix = "/"
	}
	trimmed := strings.Trim(path, "/")
	segments := strings.Split(trimmed, "/")
	name = segments[len(segments)-1]
	parent = prefix + strings.Join(segments[:len(segments)-1], "/")
	return parent, name
}
