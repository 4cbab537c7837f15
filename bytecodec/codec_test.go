package bytecodec_test

import (
	"testing"

	"github.com/dargueta/fat16vol/bytecodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		value uint64
		width int
	}{
		{0, 1},
		{0xFF, 1},
		{0x1234, 2},
		{0xFFFF, 2},
		{0x00ABCDEF, 4},
		{0xFFFFFFFF, 4},
	}

	for _, c := range cases {
		packed := bytecodec.Pack(c.value, c.width)
		require.Len(t, packed, c.width)
		assert.Equal(t, c.value, bytecodec.Unpack(packed), "round trip for %#x", c.value)
	}
}

func TestPackTruncatesHighBits(t *testing.T) {
	packed := bytecodec.Pack(0x1FFFF, 2)
	assert.Equal(t, uint64(0xFFFF), bytecodec.Unpack(packed))
}

var testSchema = bytecodec.Schema{
	{Name: "name", Offset: 0, Length: 11, IsASCII: true},
	{Name: "attr", Offset: 11, Length: 1},
	{Name: "first_cluster_lo", Offset: 26, Length: 2},
	{Name: "file_size", Offset: 28, Length: 4},
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	values := bytecodec.Record{
		"name":             "FOO        ",
		"attr":             uint64(0x10),
		"first_cluster_lo": uint64(2),
		"file_size":        uint64(0),
	}

	buf := bytecodec.EncodeEntry(testSchema, values)
	require.Len(t, buf, 32)

	decoded := bytecodec.DecodeRecord(testSchema, buf)
	assert.Equal(t, values["name"], decoded["name"])
	assert.Equal(t, values["attr"], decoded["attr"])
	assert.Equal(t, values["first_cluster_lo"], decoded["first_cluster_lo"])
	assert.Equal(t, values["file_size"], decoded["file_size"])
}

func TestEncodeEntryPanicsOnMissingField(t *testing.T) {
	assert.Panics(t, func() {
		bytecodec.EncodeEntry(testSchema, bytecodec.Record{"name": "FOO        "})
	})
}

func TestSchemaSize(t *testing.T) {
	assert.Equal(t, 32, testSchema.Size())
}
