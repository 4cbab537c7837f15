package shell_test

import (
	"strings"
	"testing"

	"github.com/dargueta/fat16vol/ferrors"
	"github.com/dargueta/fat16vol/internal/testimage"
	"github.com/dargueta/fat16vol/mbrpart"
	"github.com/dargueta/fat16vol/shell"
	"github.com/dargueta/fat16vol/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShell(t *testing.T) *shell.Shell {
	t.Helper()
	g := testimage.DefaultGeometry()
	store, err := testimage.BuildStore(g, 20063)
	require.NoError(t, err)

	sector0, err := store.Read(0)
	require.NoError(t, err)
	mbr := mbrpart.Parse(sector0)

	volumes, err := volume.Mount(store, mbr.Partitions)
	require.NoError(t, err)

	return shell.New(store, mbr, volumes)
}

func TestParseEmptyLineIsNoop(t *testing.T) {
	s := newShell(t)
	out, err := s.Parse("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseUnknownCommand(t *testing.T) {
	s := newShell(t)
	_, err := s.Parse("frobnicate")
	require.Error(t, err)
}

func TestParseSetSwitchesActivePartition(t *testing.T) {
	s := newShell(t)
	_, err := s.Parse("set 0")
	require.NoError(t, err)

	_, err = s.Parse("set 3")
	assert.Error(t, err, "partition 3 was never mounted")
}

func TestParseMbrListsPartitions(t *testing.T) {
	s := newShell(t)
	out, err := s.Parse("mbr")
	require.NoError(t, err)
	assert.Contains(t, out, "partition[0]")
}

func TestParseBpbShowsBytesPerSector(t *testing.T) {
	s := newShell(t)
	out, err := s.Parse("bpb")
	require.NoError(t, err)
	assert.Contains(t, out, "bytes_per_sector")
}

func TestParseFatShowsGeometry(t *testing.T) {
	s := newShell(t)
	out, err := s.Parse("fat")
	require.NoError(t, err)
	assert.Contains(t, out, "n_clusters")
}

func TestParseLsThenMkdirThenLs(t *testing.T) {
	s := newShell(t)

	out, err := s.Parse("ls")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = s.Parse("mkdir FOO")
	require.NoError(t, err)

	out, err = s.Parse("ls")
	require.NoError(t, err)
	assert.Contains(t, out, "FOO")
}

func TestParseCdIntoCreatedDirectory(t *testing.T) {
	s := newShell(t)
	_, err := s.Parse("mkdir FOO")
	require.NoError(t, err)

	_, err = s.Parse("cd FOO")
	require.NoError(t, err)

	out, err := s.Parse("cwd")
	require.NoError(t, err)
	assert.Contains(t, out, "cluster: 2")
}

func TestParseCdUnknownPathFails(t *testing.T) {
	s := newShell(t)
	_, err := s.Parse("cd NOPE")
	assert.Error(t, err)
}

func TestParseSecDumpsHex(t *testing.T) {
	s := newShell(t)
	out, err := s.Parse("sec 0")
	require.NoError(t, err)
	assert.True(t, strings.Count(out, " ") > 0)
}

func TestParseNonEmptyIncludesBootSector(t *testing.T) {
	s := newShell(t)
	out, err := s.Parse("nonempty")
	require.NoError(t, err)
	assert.Contains(t, out, "63")
}

func TestParseRmOnMissingPathReportsNotFound(t *testing.T) {
	s := newShell(t)
	_, err := s.Parse("rm NOPE")
	assert.ErrorIs(t, err, ferrors.ErrPathNotFound)
}

func TestParseRmOnExistingPathReportsNotSupported(t *testing.T) {
	s := newShell(t)
	_, err := s.Parse("touch HI")
	require.NoError(t, err)

	_, err = s.Parse("rm HI")
	assert.ErrorIs(t, err, ferrors.ErrNotSupported)
}
