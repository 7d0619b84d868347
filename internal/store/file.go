package store

import (
	"io"

	"github.com/standardbeagle/extentix/internal/xerrors"
)

// CreateFile allocates a new logical file inside the store and returns its
// handle. The handle indexes the persisted file table, growing it when
// every slot is taken.
func (s *Store) CreateFile() (int32, error) {
	g := s.mu.Lock()
	defer g.Release()
	h := int32(-1)
	for i, v := range s.fileTable {
		if v == freePage {
			h = int32(i)
			break
		}
	}
	if h < 0 {
		if err := s.growFileTableLocked(); err != nil {
			return 0, err
		}
		for i, v := range s.fileTable {
			if v == freePage {
				h = int32(i)
				break
			}
		}
	}
	page, err := s.claimFreePageLocked(-1)
	if err != nil {
		return 0, err
	}
	s.pageTable[page] = endOfChain
	s.fileTable[h] = page
	s.fileSize[h] = 0
	if err := s.writePageTableEntry(page); err != nil {
		return 0, err
	}
	if err := s.writeFileTableEntry(h); err != nil {
		return 0, err
	}
	return h, nil
}

// DeleteFile releases every page in the file's chain back to the free
// pool and clears its file-table slot.
func (s *Store) DeleteFile(handle int32) error {
	g := s.mu.Lock()
	defer g.Release()
	if handle < 0 || int(handle) >= len(s.fileTable) || s.fileTable[handle] == freePage {
		return &xerrors.NotFoundError{Term: "file handle"}
	}
	p := s.fileTable[handle]
	for p != endOfChain && p != freePage {
		next := s.pageTable[p]
		s.pageTable[p] = freePage
		if err := s.writePageTableEntry(p); err != nil {
			return err
		}
		p = next
	}
	s.fileTable[handle] = freePage
	s.fileSize[handle] = 0
	return s.writeFileTableEntry(handle)
}

// GetSize returns the logical byte length of a file.
func (s *Store) GetSize(handle int32) (int64, error) {
	g := s.mu.Lock()
	defer g.Release()
	if handle < 0 || int(handle) >= len(s.fileTable) || s.fileTable[handle] == freePage {
		return 0, &xerrors.NotFoundError{Term: "file handle"}
	}
	return s.fileSize[handle], nil
}

// File is a seekable stream multiplexed onto a chain of pages inside a
// Store, mirroring filesystem.h's File class as a thin handle rather than
// an object with its own background thread.
type File struct {
	s       *Store
	handle  int32
	seekPos int64
}

// Open returns a File handle bound to an existing logical file.
func (s *Store) Open(handle int32) (*File, error) {
	g := s.mu.Lock()
	exists := handle >= 0 && int(handle) < len(s.fileTable) && s.fileTable[handle] != freePage
	g.Release()
	if !exists {
		return nil, &xerrors.NotFoundError{Term: "file handle"}
	}
	return &File{s: s, handle: handle}, nil
}

func (f *File) Handle() int32 { return f.handle }

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	g := f.s.mu.Lock()
	size := f.s.fileSize[f.handle]
	g.Release()
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = f.seekPos + offset
	case io.SeekEnd:
		pos = size + offset
	default:
		return 0, &xerrors.ProtocolError{Op: "Seek", Detail: "invalid whence"}
	}
	if pos < 0 {
		return 0, &xerrors.ProtocolError{Op: "Seek", Detail: "negative position"}
	}
	f.seekPos = pos
	return pos, nil
}

// pageAt walks the chain from the file's first page to the page holding
// byte offset "at", returning the page number and offset within the page.
func (f *File) pageAt(at int64) (int32, int32, error) {
	g := f.s.mu.Lock()
	defer g.Release()
	pageSize := int64(f.s.pageSize)
	target := at / pageSize
	p := f.s.fileTable[f.handle]
	for i := int64(0); i < target; i++ {
		if p == endOfChain || p == freePage {
			return 0, 0, &xerrors.IOError{Op: "pageAt", Err: io.ErrUnexpectedEOF}
		}
		p = f.s.pageTable[p]
	}
	if p == freePage {
		return 0, 0, &xerrors.IOError{Op: "pageAt", Err: io.ErrUnexpectedEOF}
	}
	return p, int32(at % pageSize), nil
}

// Read implements io.Reader, reading from the current seek position and
// crossing page boundaries transparently.
func (f *File) Read(buf []byte) (int, error) {
	g := f.s.mu.Lock()
	size := f.s.fileSize[f.handle]
	g.Release()
	if f.seekPos >= size {
		return 0, io.EOF
	}
	toRead := int64(len(buf))
	if f.seekPos+toRead > size {
		toRead = size - f.seekPos
	}
	n := 0
	pageSize := int64(f.s.pageSize)
	for int64(n) < toRead {
		page, off, err := f.pageAt(f.seekPos)
		if err != nil {
			return n, err
		}
		chunk := pageSize - int64(off)
		remaining := toRead - int64(n)
		if chunk > remaining {
			chunk = remaining
		}
		pageBuf := make([]byte, pageSize)
		if err := f.s.ReadPage(page, pageBuf); err != nil {
			return n, err
		}
		copy(buf[n:int64(n)+chunk], pageBuf[off:int64(off)+chunk])
		n += int(chunk)
		f.seekPos += chunk
	}
	return n, nil
}

// Write implements io.Writer, allocating new pages (threaded onto the
// chain) as the file grows past its current page count.
func (f *File) Write(buf []byte) (int, error) {
	pageSize := int64(f.s.pageSize)
	n := 0
	for n < len(buf) {
		page, off, err := f.ensurePageAt(f.seekPos)
		if err != nil {
			return n, err
		}
		chunk := pageSize - int64(off)
		remaining := int64(len(buf) - n)
		if chunk > remaining {
			chunk = remaining
		}
		pageBuf := make([]byte, pageSize)
		if err := f.s.ReadPage(page, pageBuf); err != nil {
			return n, err
		}
		copy(pageBuf[off:int64(off)+chunk], buf[n:int64(n)+int(chunk)])
		if err := f.s.WritePage(page, pageBuf); err != nil {
			return n, err
		}
		n += int(chunk)
		f.seekPos += chunk
	}
	g := f.s.mu.Lock()
	var sizeErr error
	if f.seekPos > f.s.fileSize[f.handle] {
		f.s.fileSize[f.handle] = f.seekPos
		sizeErr = f.s.writeFileTableEntry(f.handle)
	}
	g.Release()
	if sizeErr != nil {
		return n, sizeErr
	}
	return n, nil
}

// ensurePageAt walks (and extends) the chain so that byte offset "at" has
// a backing page, claiming and linking new pages as needed.
func (f *File) ensurePageAt(at int64) (int32, int32, error) {
	g := f.s.mu.Lock()
	defer g.Release()
	pageSize := int64(f.s.pageSize)
	target := at / pageSize
	p := f.s.fileTable[f.handle]
	for i := int64(0); i < target; i++ {
		next := f.s.pageTable[p]
		if next == endOfChain {
			newPage, err := f.s.claimFreePageLocked(p)
			if err != nil {
				return 0, 0, err
			}
			f.s.pageTable[p] = newPage
			f.s.pageTable[newPage] = endOfChain
			if err := f.s.writePageTableEntry(p); err != nil {
				return 0, 0, err
			}
			if err := f.s.writePageTableEntry(newPage); err != nil {
				return 0, 0, err
			}
			next = newPage
		}
		p = next
	}
	return p, int32(at % pageSize), nil
}
