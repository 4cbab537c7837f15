// Package shell implements the line-oriented REPL command dispatcher
// described in spec §6, consumed by cmd/fat16shell. It mirrors the command
// parsing structure of the Python reference implementation's shell.py --
// one regex per command form -- translated into idiomatic Go with
// compiled regexps and a switch instead of a chain of `elif`.
package shell

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dargueta/fat16vol/dirfs"
	"github.com/dargueta/fat16vol/ferrors"
	"github.com/dargueta/fat16vol/mbrpart"
	"github.com/dargueta/fat16vol/mediatable"
	"github.com/dargueta/fat16vol/sectorio"
	"github.com/dargueta/fat16vol/shell/render"
	"github.com/dargueta/fat16vol/volume"
)

// Shell holds the mutable REPL state: the active partition index and the
// mounted volumes it dispatches commands against.
type Shell struct {
	Store   *sectorio.Store
	MBR     mbrpart.MBR
	Volumes map[int]*volume.Volume

	activeIndex int
}

// New builds a Shell starting with partition 0 selected (spec §4.3: a fresh
// mount's cwd is the root of whichever partition is active).
func New(store *sectorio.Store, mbr mbrpart.MBR, volumes map[int]*volume.Volume) *Shell {
	return &Shell{Store: store, MBR: mbr, Volumes: volumes, activeIndex: 0}
}

var (
	reSet   = regexp.MustCompile(`^set (\d)$`)
	reSec   = regexp.MustCompile(`^sec (\d+)$`)
	reCd    = regexp.MustCompile(`^cd (.+)$`)
	reMkdir = regexp.MustCompile(`^mkdir (.+)$`)
	reTouch = regexp.MustCompile(`^touch (.+)$`)
	reRm    = regexp.MustCompile(`^rm (.+)$`)
)

// Parse dispatches a single REPL line and returns the text to print (which
// may be empty) or an error the caller should print instead.
func (s *Shell) Parse(cmd string) (string, error) {
	cmd = strings.TrimSpace(cmd)

	switch {
	case reSet.MatchString(cmd):
		return s.cmdSet(reSet.FindStringSubmatch(cmd)[1])
	case reSec.MatchString(cmd):
		return s.cmdSec(reSec.FindStringSubmatch(cmd)[1])
	case cmd == "mbr":
		return s.cmdMBR()
	case cmd == "bpb":
		return s.cmdBPB()
	case cmd == "fat":
		return s.cmdFAT()
	case cmd == "nonempty":
		return s.cmdNonEmpty()
	case cmd == "cwd":
		return s.cmdCwd()
	case cmd == "ls":
		return s.cmdLs()
	case reCd.MatchString(cmd):
		return s.cmdCd(reCd.FindStringSubmatch(cmd)[1])
	case reMkdir.MatchString(cmd):
		return s.cmdMkdir(reMkdir.FindStringSubmatch(cmd)[1])
	case reTouch.MatchString(cmd):
		return s.cmdTouch(reTouch.FindStringSubmatch(cmd)[1])
	case reRm.MatchString(cmd):
		return s.cmdRm(reRm.FindStringSubmatch(cmd)[1])
	case cmd == "":
		return "", nil
	default:
		return "", ferrors.ErrUnknownCommand.WithMessage(cmd)
	}
}

func (s *Shell) active() (*volume.Volume, error) {
	v, ok := s.Volumes[s.activeIndex]
	if !ok {
		return nil, ferrors.ErrInvalidPartition.WithMessage(fmt.Sprintf("partition %d", s.activeIndex))
	}
	return v, nil
}

func (s *Shell) cmdSet(indexStr string) (string, error) {
	index, _ := strconv.Atoi(indexStr)
	if _, ok := s.Volumes[index]; !ok {
		return "", ferrors.ErrInvalidPartition.WithMessage(fmt.Sprintf("partition %d is not formatted with fat", index))
	}
	s.activeIndex = index
	return "", nil
}

func (s *Shell) cmdSec(indexStr string) (string, error) {
	index, _ := strconv.Atoi(indexStr)
	sector, err := s.Store.Read(index)
	if err != nil {
		return "", err
	}
	return hexDumpSector(sector), nil
}

// hexDumpSector renders a sector as 16 lines of 32 two-digit hex bytes,
// matching fatpy's Sector.__str__.
func hexDumpSector(sector []byte) string {
	var b strings.Builder
	for row := 0; row*32 < len(sector); row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := sector[row*32 : min((row+1)*32, len(sector))]
		for i, by := range line {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%02x", by)
		}
	}
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (s *Shell) cmdMBR() (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "MBR(\n\tsignature: %#04x,\n", s.MBR.Signature)
	for i, p := range s.MBR.Partitions {
		fmt.Fprintf(&b, "\tpartition[%d]: {sector: %d, size: %d, type: %#02x (%s), present: %v},\n",
			i, p.Sector, p.Size, p.Type, mediatable.PartitionTypeName(p.Type), p.IsPresent())
	}
	b.WriteString(")")
	return b.String(), nil
}

func (s *Shell) cmdBPB() (string, error) {
	v, err := s.active()
	if err != nil {
		return "", err
	}
	bpb := v.BPB
	return fmt.Sprintf(
		"Bpb(\n"+
			"\toem_name: %q,\n"+
			"\tbytes_per_sector: %d,\n"+
			"\tsectors_per_cluster: %d,\n"+
			"\treserved_sectors: %d,\n"+
			"\tn_fats: %d,\n"+
			"\troot_entries: %d,\n"+
			"\tsmall_sector_count: %d,\n"+
			"\tmedia_descriptor: %#02x (%s),\n"+
			"\tsectors_per_fat16: %d,\n"+
			"\tvolume_label: %q,\n"+
			")",
		bpb.OEMName, bpb.BytesPerSector, bpb.SectorsPerCluster, bpb.ReservedSectors,
		bpb.NumFATs, bpb.RootEntries, bpb.SmallSectorCount, bpb.MediaDescriptor,
		mediatable.MediaDescriptorName(bpb.MediaDescriptor), bpb.SectorsPerFAT16, bpb.VolumeLabel,
	), nil
}

func (s *Shell) cmdFAT() (string, error) {
	v, err := s.active()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func (s *Shell) cmdNonEmpty() (string, error) {
	v, err := s.active()
	if err != nil {
		return "", err
	}

	var indices []string
	start := int(v.Partition.Sector)
	end := start + int(v.Partition.Size)
	for i := start; i < end; i++ {
		nonEmpty, err := s.Store.IsNonEmpty(i)
		if err != nil {
			return "", err
		}
		if nonEmpty {
			indices = append(indices, strconv.Itoa(i))
		}
	}
	return strings.Join(indices, " "), nil
}

func (s *Shell) cmdCwd() (string, error) {
	v, err := s.active()
	if err != nil {
		return "", err
	}
	cwd := v.Cwd()
	return fmt.Sprintf("{cluster: %d, sector: %d, attr: %#02x}", cwd.Cluster, cwd.Sector, cwd.Attr), nil
}

func (s *Shell) cmdLs() (string, error) {
	v, err := s.active()
	if err != nil {
		return "", err
	}
	infos, err := dirfs.ReadDir(v, v.Cwd())
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, render.Name(info.Name, info.Attr))
	}
	return strings.Join(names, " "), nil
}

func (s *Shell) cmdCd(path string) (string, error) {
	v, err := s.active()
	if err != nil {
		return "", err
	}
	dp, err := dirfs.Chdir(v, v.Cwd(), path)
	if err != nil {
		return "", err
	}
	v.SetCwd(dp)
	return "", nil
}

func (s *Shell) cmdMkdir(path string) (string, error) {
	v, err := s.active()
	if err != nil {
		return "", err
	}
	_, err = dirfs.MkdirPath(v, v.Cwd(), path)
	return "", err
}

func (s *Shell) cmdTouch(path string) (string, error) {
	v, err := s.active()
	if err != nil {
		return "", err
	}
	_, err = dirfs.TouchPath(v, v.Cwd(), path)
	return "", err
}

func (s *Shell) cmdRm(path string) (string, error) {
	v, err := s.active()
	if err != nil {
		return "", err
	}
	// Unlink is not implemented in the core (spec §6); resolving the path
	// first gives the caller a PATH_NOT_FOUND instead of a misleading
	// "not supported" for a path that was never there to begin with.
	parentPath, name := "", path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		parentPath, name = path[:i+1], path[i+1:]
	}
	parent, err := dirfs.FollowPath(v, v.Cwd(), parentPath)
	if err != nil {
		return "", err
	}
	infos, err := dirfs.ReadDir(v, parent)
	if err != nil {
		return "", err
	}
	padded := dirfs.PadName83(name)
	for _, info := range infos {
		if info.Name == padded {
			return "", ferrors.ErrNotSupported.WithMessage("rm")
		}
	}
	return "", ferrors.ErrPathNotFound.WithMessage(name)
}
