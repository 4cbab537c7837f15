// Package mediatable loads reference tables of well-known byte values used
// in the MBR and BPB -- media descriptor bytes and partition type bytes --
// so the shell can annotate raw values with a human-readable name. This is
// the same pattern as the teacher's disks.go: a CSV embedded with go:embed,
// unmarshaled at init with gocsv into a lookup map.
package mediatable

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

type byteNameRow struct {
	Byte string `csv:"byte"`
	Name string `csv:"name"`
}

//go:embed media_descriptors.csv
var mediaDescriptorsCSV string

//go:embed partition_types.csv
var partitionTypesCSV string

var mediaDescriptors map[uint8]string
var partitionTypes map[uint8]string

func init() {
	var err error
	mediaDescriptors, err = loadByteNameTable(mediaDescriptorsCSV)
	if err != nil {
		panic(fmt.Sprintf("mediatable: loading media descriptor table: %s", err))
	}
	partitionTypes, err = loadByteNameTable(partitionTypesCSV)
	if err != nil {
		panic(fmt.Sprintf("mediatable: loading partition type table: %s", err))
	}
}

func loadByteNameTable(raw string) (map[uint8]string, error) {
	table := make(map[uint8]string)
	err := gocsv.UnmarshalToCallback(
		strings.NewReader(raw),
		func(row byteNameRow) error {
			value, err := strconv.ParseUint(strings.TrimPrefix(row.Byte, "0x"), 16, 8)
			if err != nil {
				return fmt.Errorf("bad byte value %q: %w", row.Byte, err)
			}
			table[uint8(value)] = row.Name
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// MediaDescriptorName returns the descriptive name for a BPB media
// descriptor byte, or "unknown" if it's not in the table.
func MediaDescriptorName(b uint8) string {
	if name, ok := mediaDescriptors[b]; ok {
		return name
	}
	return "unknown"
}

// PartitionTypeName returns the descriptive name for an MBR partition type
// byte, or "unknown" if it's not in the table.
func PartitionTypeName(b uint8) string {
	if name, ok := partitionTypes[b]; ok {
		return name
	}
	return "unknown"
}
