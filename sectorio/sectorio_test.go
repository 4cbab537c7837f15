package sectorio_test

import (
	"testing"

	"github.com/dargueta/fat16vol/internal/testimage"
	"github.com/dargueta/fat16vol/sectorio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDumpImageRoundTripsUnmodifiedBytes covers spec §8 scenario 6: reading
// an image, performing no mutation, and writing it back must reproduce the
// exact input bytes.
func TestDumpImageRoundTripsUnmodifiedBytes(t *testing.T) {
	g := testimage.DefaultGeometry()
	raw := testimage.Build(g, 20063)

	store, err := sectorio.LoadImage(sectorio.AsReadWriteSeeker(raw))
	require.NoError(t, err)

	out, err := store.DumpImage()
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestDumpImageReflectsMutations(t *testing.T) {
	g := testimage.DefaultGeometry()
	store, err := testimage.BuildStore(g, 20063)
	require.NoError(t, err)

	require.NoError(t, store.Write(0, 0, []byte{0xAB, 0xCD}))

	out, err := store.DumpImage()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), out[0])
	assert.Equal(t, byte(0xCD), out[1])
}

func TestNewStoreRejectsSizeNotMultipleOfSectorSize(t *testing.T) {
	_, err := sectorio.NewStore(make([]byte, sectorio.SectorSize+1))
	assert.Error(t, err)
}

func TestLoadImagePreservesSectorCount(t *testing.T) {
	g := testimage.DefaultGeometry()
	store, err := testimage.BuildStore(g, 20063)
	require.NoError(t, err)
	assert.Equal(t, 20063, store.NumSectors())
}

func TestIsNonEmptyDistinguishesZeroedAndWrittenSectors(t *testing.T) {
	g := testimage.DefaultGeometry()
	store, err := testimage.BuildStore(g, 20063)
	require.NoError(t, err)

	// Sector 0 carries the MBR partition record built by testimage.Build.
	nonEmpty, err := store.IsNonEmpty(0)
	require.NoError(t, err)
	assert.True(t, nonEmpty)

	// The last sector, at the end of the partition's data region, was never
	// written to.
	nonEmpty, err = store.IsNonEmpty(store.NumSectors() - 1)
	require.NoError(t, err)
	assert.False(t, nonEmpty)
}

func TestReadOutOfRangeSectorFails(t *testing.T) {
	g := testimage.DefaultGeometry()
	store, err := testimage.BuildStore(g, 20063)
	require.NoError(t, err)

	_, err = store.Read(store.NumSectors())
	assert.Error(t, err)
}

func TestWriteOutOfBoundsOffsetFails(t *testing.T) {
	g := testimage.DefaultGeometry()
	store, err := testimage.BuildStore(g, 20063)
	require.NoError(t, err)

	err = store.Write(0, sectorio.SectorSize-1, []byte{1, 2})
	assert.Error(t, err)
}
