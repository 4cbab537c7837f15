package volume_test

import (
	"testing"

	"github.com/dargueta/fat16vol/ferrors"
	"github.com/dargueta/fat16vol/internal/testimage"
	"github.com/dargueta/fat16vol/mbrpart"
	"github.com/dargueta/fat16vol/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountScenario1(t *testing.T) *volume.Volume {
	t.Helper()
	g := testimage.DefaultGeometry()
	store, err := testimage.BuildStore(g, 20063)
	require.NoError(t, err)

	sector0, err := store.Read(0)
	require.NoError(t, err)
	mbr := mbrpart.Parse(sector0)

	volumes, err := volume.Mount(store, mbr.Partitions)
	require.NoError(t, err)
	require.Contains(t, volumes, 0)
	return volumes[0]
}

// TestMountGeometry checks every derived value in spec §8 scenario 1.
func TestMountGeometry(t *testing.T) {
	v := mountScenario1(t)

	assert.EqualValues(t, 64, v.FirstFATSector)
	assert.EqualValues(t, 104, v.FirstRootDirSector)
	assert.EqualValues(t, 32, v.RootDirSectors)
	assert.EqualValues(t, 136, v.FirstDataSector)
	assert.EqualValues(t, 4958, v.NumClusters)
}

func TestFirstSectorOfCluster2EqualsFirstDataSector(t *testing.T) {
	v := mountScenario1(t)
	assert.EqualValues(t, v.FirstDataSector, v.FirstSectorOfCluster(2))
}

func TestReadWriteFATRoundTrip(t *testing.T) {
	v := mountScenario1(t)

	require.NoError(t, v.WriteFAT(2, volume.EndOfChain))
	value, err := v.ReadFAT(2)
	require.NoError(t, err)
	assert.EqualValues(t, volume.EndOfChain, value)

	require.NoError(t, v.WriteFAT(3, 2))
	value, err = v.ReadFAT(3)
	require.NoError(t, err)
	assert.EqualValues(t, 2, value)
}

func TestScanFATSkipsReservedClusters(t *testing.T) {
	v := mountScenario1(t)

	free, err := v.ScanFAT()
	require.NoError(t, err)
	assert.EqualValues(t, 2, free, "scanner must never return reserved cluster 0 or 1")
}

func TestScanFATReturnsNextFreeAfterAllocation(t *testing.T) {
	v := mountScenario1(t)

	require.NoError(t, v.WriteFAT(2, volume.EndOfChain))
	free, err := v.ScanFAT()
	require.NoError(t, err)
	assert.EqualValues(t, 3, free)
}

func TestScanFATOutOfSpace(t *testing.T) {
	v := mountScenario1(t)

	total := v.NumClusters + 2
	for c := uint32(2); c < total; c++ {
		require.NoError(t, v.WriteFAT(c, volume.EndOfChain))
	}

	_, err := v.ScanFAT()
	assert.ErrorIs(t, err, ferrors.ErrOutOfSpace)
}

func TestResetClusterZeroesAllItsSectors(t *testing.T) {
	v := mountScenario1(t)

	first := v.FirstSectorOfCluster(2)
	store := v.Sectors()
	require.NoError(t, store.Write(int(first), 0, []byte{1, 2, 3}))

	require.NoError(t, v.ResetCluster(2))

	sector, err := store.Read(int(first))
	require.NoError(t, err)
	for _, b := range sector {
		assert.Zero(t, b)
	}
}

func TestIsEndOfChainAcceptsStandardRange(t *testing.T) {
	assert.True(t, volume.IsEndOfChain(0xFFFF))
	assert.True(t, volume.IsEndOfChain(0xFFF8))
	assert.False(t, volume.IsEndOfChain(0xFFF7))
	assert.False(t, volume.IsEndOfChain(0))
}

func TestVerifyChainsCleanImage(t *testing.T) {
	v := mountScenario1(t)
	assert.NoError(t, v.VerifyChains())
}

func TestVerifyChainsDetectsCycle(t *testing.T) {
	v := mountScenario1(t)
	require.NoError(t, v.WriteFAT(2, 3))
	require.NoError(t, v.WriteFAT(3, 2))

	err := v.VerifyChains()
	require.Error(t, err)
}
