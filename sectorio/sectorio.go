// Package sectorio implements the sector store: an indexable array of
// fixed-size byte buffers backing a disk image held entirely in memory, plus
// the whole-image load/dump operations that cross the persistence boundary.
package sectorio

import (
	"fmt"
	"io"

	"github.com/dargueta/fat16vol/ferrors"
	"github.com/noxer/bytewriter"
	"github.com/xaionaro-go/bytesextra"
)

// SectorSize is the fixed size, in bytes, of every sector in an image.
const SectorSize = 512

// Sector is a single mutable 512-byte block.
type Sector = []byte

// Store is an in-memory array of sectors holding the raw bytes that make up
// a mounted image for the lifetime of the engine. Read hands out the live
// sector buffers themselves, not copies.
type Store struct {
	sectors []Sector
}

// NewStore slices raw into SectorSize chunks. len(raw) must be a multiple of
// SectorSize.
func NewStore(raw []byte) (*Store, error) {
	if len(raw)%SectorSize != 0 {
		return nil, fmt.Errorf("image size %d is not a multiple of sector size %d", len(raw), SectorSize)
	}

	n := len(raw) / SectorSize
	sectors := make([]Sector, n)
	for i := 0; i < n; i++ {
		sectors[i] = raw[i*SectorSize : (i+1)*SectorSize : (i+1)*SectorSize]
	}
	return &Store{sectors: sectors}, nil
}

// LoadImage reads an entire image from r into a new Store. r is read to EOF;
// the resulting byte count must be a multiple of SectorSize.
func LoadImage(r io.Reader) (*Store, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewStore(raw)
}

// NumSectors returns the number of sectors in the store.
func (s *Store) NumSectors() int {
	return len(s.sectors)
}

// Read returns the mutable sector buffer at index i.
func (s *Store) Read(i int) (Sector, error) {
	if i < 0 || i >= len(s.sectors) {
		return nil, ferrors.ErrInvalidSector.WithMessage(fmt.Sprintf("sector %d out of range [0, %d)", i, len(s.sectors)))
	}
	return s.sectors[i], nil
}

// Write overwrites data into sector i starting at offset. The caller
// guarantees offset+len(data) <= SectorSize; there is no wraparound.
func (s *Store) Write(i, offset int, data []byte) error {
	sector, err := s.Read(i)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(data) > SectorSize {
		return ferrors.ErrInvalidSector.WithMessage(
			fmt.Sprintf("write of %d bytes at offset %d overruns sector %d", len(data), offset, i))
	}
	copy(sector[offset:], data)
	return nil
}

// IsNonEmpty reports whether sector i has any non-zero byte.
func (s *Store) IsNonEmpty(i int) (bool, error) {
	sector, err := s.Read(i)
	if err != nil {
		return false, err
	}
	for _, b := range sector {
		if b != 0 {
			return true, nil
		}
	}
	return false, nil
}

// DumpImage serializes every sector back into a single contiguous buffer, in
// order, ready to be flushed to the backing device. It uses bytewriter to
// target the pre-sized output buffer directly rather than growing a slice
// incrementally, mirroring the fixed-capacity nature of a disk image.
func (s *Store) DumpImage() ([]byte, error) {
	out := make([]byte, len(s.sectors)*SectorSize)
	w := bytewriter.New(out)

	for i, sector := range s.sectors {
		n, err := w.Write(sector)
		if err != nil {
			return nil, fmt.Errorf("writing sector %d: %w", i, err)
		}
		if n != SectorSize {
			return nil, fmt.Errorf("short write for sector %d: wrote %d of %d bytes", i, n, SectorSize)
		}
	}
	return out, nil
}

// AsReadWriteSeeker wraps raw as a seekable in-memory stream, used when a
// caller wants random-access semantics over a freshly loaded or freshly
// dumped image instead of the sector-indexed Store API.
func AsReadWriteSeeker(raw []byte) io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(raw)
}
