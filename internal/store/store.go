// Package store implements the L1 paged file store (spec §4.1): a single
// on-disk data file divided into fixed-size pages, holding many logical
// files (posting-list segments, lexicon blocks, the index-to-text map)
// multiplexed inside it so the process never needs one OS file handle per
// term. Grounded on original_source/filesystem/filesystem.{h,cpp}.
package store

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/extentix/internal/obslog"
	"github.com/standardbeagle/extentix/internal/rlock"
	"github.com/standardbeagle/extentix/internal/xerrors"
)

const (
	// DefaultPageSize and DefaultPageCount seed a freshly created store.
	DefaultPageSize  = 1024
	DefaultPageCount = 1024
	// DefaultFileTableCapacity bounds how many logical files a freshly
	// created store can hold before CreateFile grows the file table.
	DefaultFileTableCapacity = 1024

	MinPageSize  = 128
	MaxPageSize  = 8192
	MinPageCount = 32
	MaxPageCount = 1 << 30

	// freePage marks a page-table or file-table slot as unused.
	freePage int32 = -1
	// endOfChain marks the last page in a file's page chain.
	endOfChain int32 = -2

	fingerprint = 912837123
	// preamble: fingerprint, pageSize, pageCount, fileTableCapacity.
	preambleSize      = 4 * 4
	fileTableEntrySize = 4 + 8 // firstPage int32 + byte size int64
)

// Store is a virtual filesystem backed by one OS file, divided into fixed
// pageSize pages. Logical files live inside it as chains of pages threaded
// through pageTable; fileTable maps a file handle to its first page and
// byte size.
type Store struct {
	mu *rlock.RWLock

	f    *os.File
	path string

	pageSize  int32
	pageCount int32
	fileCap   int32

	pageTable []int32 // pageTable[p]: next page in chain, endOfChain, or freePage
	fileTable []int32 // fileTable[h]: first page of file h, or freePage
	fileSize  []int64 // fileSize[h]: logical byte length of file h

	log *obslog.Logger
}

// Create initializes a brand-new store file with the given page geometry.
func Create(path string, pageSize int, pageCount int) (*Store, error) {
	if pageSize < MinPageSize || pageSize > MaxPageSize {
		return nil, &xerrors.ProtocolError{Op: "store.Create", Detail: fmt.Sprintf("page size %d out of range [%d,%d]", pageSize, MinPageSize, MaxPageSize)}
	}
	if pageCount < MinPageCount || pageCount > MaxPageCount {
		return nil, &xerrors.ProtocolError{Op: "store.Create", Detail: fmt.Sprintf("page count %d out of range [%d,%d]", pageCount, MinPageCount, MaxPageCount)}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, &xerrors.IOError{Op: "create", Path: path, Err: err}
	}
	s := &Store{
		mu:        rlock.NewRWLock(),
		f:         f,
		path:      path,
		pageSize:  int32(pageSize),
		pageCount: int32(pageCount),
		fileCap:   DefaultFileTableCapacity,
		pageTable: make([]int32, pageCount),
		fileTable: make([]int32, DefaultFileTableCapacity),
		fileSize:  make([]int64, DefaultFileTableCapacity),
		log:       obslog.New("store: ", false),
	}
	for i := range s.pageTable {
		s.pageTable[i] = freePage
	}
	for i := range s.fileTable {
		s.fileTable[i] = freePage
	}
	if err := s.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	if err := s.writeAllFileTable(); err != nil {
		f.Close()
		return nil, err
	}
	if err := s.growDataFile(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Open loads an existing store, verifying the fingerprint preamble.
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, &xerrors.IOError{Op: "open", Path: path, Err: err}
	}
	s := &Store{mu: rlock.NewRWLock(), f: f, path: path, log: obslog.New("store: ", false)}
	if err := s.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) writeHeader() error {
	buf := make([]byte, preambleSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(fingerprint))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(s.pageSize))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(s.pageCount))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(s.fileCap))
	if _, err := s.f.WriteAt(buf, 0); err != nil {
		return &xerrors.IOError{Op: "writeHeader", Path: s.path, Err: err}
	}
	return nil
}

func (s *Store) readHeader() error {
	buf := make([]byte, preambleSize)
	if _, err := s.f.ReadAt(buf, 0); err != nil {
		return &xerrors.IOError{Op: "readHeader", Path: s.path, Err: err}
	}
	if int32(binary.LittleEndian.Uint32(buf[0:4])) != fingerprint {
		return &xerrors.ProtocolError{Op: "readHeader", Detail: "bad fingerprint, not an extentix store file"}
	}
	s.pageSize = int32(binary.LittleEndian.Uint32(buf[4:8]))
	s.pageCount = int32(binary.LittleEndian.Uint32(buf[8:12]))
	s.fileCap = int32(binary.LittleEndian.Uint32(buf[12:16]))

	s.fileTable = make([]int32, s.fileCap)
	s.fileSize = make([]int64, s.fileCap)
	for h := int32(0); h < s.fileCap; h++ {
		var b [fileTableEntrySize]byte
		if _, err := s.f.ReadAt(b[:], s.fileTableOffset(h)); err != nil {
			return &xerrors.IOError{Op: "readHeader", Path: s.path, Err: err}
		}
		s.fileTable[h] = int32(binary.LittleEndian.Uint32(b[0:4]))
		s.fileSize[h] = int64(binary.LittleEndian.Uint64(b[4:12]))
	}

	s.pageTable = make([]int32, s.pageCount)
	for p := int32(0); p < s.pageCount; p++ {
		var b [4]byte
		if _, err := s.f.ReadAt(b[:], s.pageTableOffset(p)); err != nil {
			return &xerrors.IOError{Op: "readHeader", Path: s.path, Err: err}
		}
		s.pageTable[p] = int32(binary.LittleEndian.Uint32(b[:]))
	}
	return nil
}

func (s *Store) fileTableOffset(h int32) int64 {
	return int64(preambleSize) + int64(h)*fileTableEntrySize
}

func (s *Store) pageTableOffset(p int32) int64 {
	return int64(preambleSize) + int64(s.fileCap)*fileTableEntrySize + int64(p)*4
}

func (s *Store) dataOffset() int64 {
	return s.pageTableOffset(s.pageCount)
}

func (s *Store) growDataFile() error {
	size := s.dataOffset() + int64(s.pageCount)*int64(s.pageSize)
	return s.f.Truncate(size)
}

func (s *Store) pageOffset(p int32) int64 {
	return s.dataOffset() + int64(p)*int64(s.pageSize)
}

func (s *Store) writeFileTableEntry(h int32) error {
	var b [fileTableEntrySize]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(s.fileTable[h]))
	binary.LittleEndian.PutUint64(b[4:12], uint64(s.fileSize[h]))
	if _, err := s.f.WriteAt(b[:], s.fileTableOffset(h)); err != nil {
		return &xerrors.IOError{Op: "writeFileTableEntry", Path: s.path, Err: err}
	}
	return nil
}

func (s *Store) writeAllFileTable() error {
	for h := int32(0); h < s.fileCap; h++ {
		if err := s.writeFileTableEntry(h); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writePageTableEntry(p int32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(s.pageTable[p]))
	if _, err := s.f.WriteAt(b[:], s.pageTableOffset(p)); err != nil {
		return &xerrors.IOError{Op: "writePageTableEntry", Path: s.path, Err: err}
	}
	return nil
}

// ClaimFreePage returns the number of an unused page, preferring one near
// closeTo (closeTo<0 means "any"), following spec §4.1's locality hint so
// a file's pages land near each other on disk.
func (s *Store) ClaimFreePage(closeTo int32) (int32, error) {
	g := s.mu.Lock()
	defer g.Release()
	return s.claimFreePageLocked(closeTo)
}

func (s *Store) claimFreePageLocked(closeTo int32) (int32, error) {
	if closeTo >= 0 {
		for d := int32(1); closeTo-d >= 0 || closeTo+d < s.pageCount; d++ {
			if closeTo+d < s.pageCount && s.pageTable[closeTo+d] == freePage {
				return closeTo + d, nil
			}
			if closeTo-d >= 0 && s.pageTable[closeTo-d] == freePage {
				return closeTo - d, nil
			}
		}
	}
	for p := int32(0); p < s.pageCount; p++ {
		if s.pageTable[p] == freePage {
			return p, nil
		}
	}
	if err := s.growPagesLocked(s.pageCount * 2); err != nil {
		return 0, err
	}
	return s.claimFreePageLocked(closeTo)
}

func (s *Store) growPagesLocked(newPageCount int32) error {
	if newPageCount > MaxPageCount {
		return &xerrors.ResourceExhaustedError{Resource: "store pages", Limit: MaxPageCount}
	}
	old := s.pageCount
	s.pageCount = newPageCount
	grown := make([]int32, newPageCount)
	copy(grown, s.pageTable)
	for p := old; p < newPageCount; p++ {
		grown[p] = freePage
	}
	s.pageTable = grown
	if err := s.writeHeader(); err != nil {
		return err
	}
	return s.growDataFile()
}

// growFileTableLocked doubles the file table capacity, rewriting the
// region of the store file that holds it (the page data region shifts, so
// existing page contents are copied forward first).
func (s *Store) growFileTableLocked() error {
	newCap := s.fileCap * 2
	if newCap == 0 {
		newCap = DefaultFileTableCapacity
	}
	oldDataOffset := s.dataOffset()
	s.fileCap = newCap
	ft := make([]int32, newCap)
	fsz := make([]int64, newCap)
	copy(ft, s.fileTable)
	copy(fsz, s.fileSize)
	for h := len(s.fileTable); h < int(newCap); h++ {
		ft[h] = freePage
	}
	s.fileTable = ft
	s.fileSize = fsz

	newDataOffset := s.dataOffset()
	shift := newDataOffset - oldDataOffset
	if shift > 0 {
		size := int64(s.pageCount) * int64(s.pageSize)
		buf := make([]byte, size)
		if _, err := s.f.ReadAt(buf, oldDataOffset); err != nil {
			return &xerrors.IOError{Op: "growFileTableLocked", Path: s.path, Err: err}
		}
		if _, err := s.f.WriteAt(buf, newDataOffset); err != nil {
			return &xerrors.IOError{Op: "growFileTableLocked", Path: s.path, Err: err}
		}
	}
	if err := s.writeHeader(); err != nil {
		return err
	}
	return s.writeAllFileTable()
}

// Resize grows the store's page count to newPageCount. It never shrinks
// the store: a count not above the current one is rejected with a
// ProtocolError.
func (s *Store) Resize(newPageCount int32) error {
	g := s.mu.Lock()
	defer g.Release()
	if newPageCount <= s.pageCount {
		return &xerrors.ProtocolError{Op: "Resize", Detail: "store only grows; shrinking is not supported"}
	}
	return s.growPagesLocked(newPageCount)
}

// ReadPage reads one full page into buf, which must be at least PageSize().
func (s *Store) ReadPage(p int32, buf []byte) error {
	g := s.mu.Lock()
	defer g.Release()
	if _, err := s.f.ReadAt(buf[:s.pageSize], s.pageOffset(p)); err != nil {
		return &xerrors.IOError{Op: "ReadPage", Path: s.path, Err: err}
	}
	return nil
}

// WritePage writes one full page of data (len(buf) == PageSize()).
func (s *Store) WritePage(p int32, buf []byte) error {
	g := s.mu.Lock()
	defer g.Release()
	if _, err := s.f.WriteAt(buf[:s.pageSize], s.pageOffset(p)); err != nil {
		return &xerrors.IOError{Op: "WritePage", Path: s.path, Err: err}
	}
	return nil
}

// PageSize returns the fixed page size in bytes.
func (s *Store) PageSize() int32 { return s.pageSize }

// PageCount returns the current total page count.
func (s *Store) PageCount() int32 { return s.pageCount }

// UsedPageCount reports how many pages are currently part of some file.
func (s *Store) UsedPageCount() int32 {
	g := s.mu.Lock()
	defer g.Release()
	var n int32
	for _, v := range s.pageTable {
		if v != freePage {
			n++
		}
	}
	return n
}

// FileCount reports how many logical files currently exist.
func (s *Store) FileCount() int32 {
	g := s.mu.Lock()
	defer g.Release()
	var n int32
	for _, v := range s.fileTable {
		if v != freePage {
			n++
		}
	}
	return n
}

// Checksum hashes a byte slice with xxhash64, used for segment payload
// checksums stored in codec.Header.Checksum.
func Checksum(data []byte) uint64 { return xxhash.Sum64(data) }

// Close flushes the header and releases the underlying OS file handle.
func (s *Store) Close() error {
	g := s.mu.Lock()
	defer g.Release()
	if err := s.writeHeader(); err != nil {
		return err
	}
	if err := s.f.Close(); err != nil {
		return &xerrors.IOError{Op: "Close", Path: s.path, Err: err}
	}
	return nil
}
