package dirfs

import "github.com/dargueta/fat16vol/volume"

// FileInfo is the summary of one directory entry returned by ReadDir (§4.9).
type FileInfo struct {
	Size         uint32
	Name         string
	CreationDate uint16
	CreationTime uint8
	Attr         uint8
}

// ReadDir lists every occupied entry (attr != 0) in the root region or, for a
// subdirectory, in the first cluster of the directory described by dp;
// clusters linked after it in the FAT chain are not read.
func ReadDir(v *volume.Volume, dp volume.DirectoryDescriptor) ([]FileInfo, error) {
	locations, err := EntriesIn(v, dp.Cluster)
	if err != nil {
		return nil, err
	}

	infos := make([]FileInfo, 0, len(locations))
	for _, loc := range locations {
		if loc.Entry.IsFree() {
			continue
		}
		infos = append(infos, FileInfo{
			Size:         loc.Entry.FileSize,
			Name:         loc.Entry.Name,
			CreationDate: loc.Entry.CreationDate,
			CreationTime: loc.Entry.CreationTime,
			Attr:         loc.Entry.Attr,
		})
	}
	return infos, nil
}

// Chdir resolves path against cwd and returns the new working-directory
// descriptor, leaving it to the caller (the Volume, in practice) to store it
// as the new cwd.
func Chdir(v *volume.Volume, cwd volume.DirectoryDescriptor, path string) (volume.DirectoryDescriptor, error) {
	return FollowPath(v, cwd, path)
}
