package proc

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Mapping is one region of a process's virtual address space as listed by
// its mapping table: the half-open range [StartAddr, EndAddr) with uniform
// permissions, backed by a file, by a bracketed pseudo entry such as [heap]
// or [vdso], or by nothing at all.
type Mapping struct {
	StartAddr  uint64
	EndAddr    uint64
	Perms      Perms
	FileOffset uint64
	DevMajor   uint32
	DevMinor   uint32
	Inode      uint64
	// Pathname is the backing path verbatim, embedded spaces included.
	// Empty for anonymous regions.
	Pathname string
}

// Perms holds the permission and sharing flags of one region. Private means
// writes are copy-on-write; a cleared Private flag means the region is
// shared with other mappers of the same backing object.
type Perms struct {
	Read    bool
	Write   bool
	Exec    bool
	Private bool
}

func (p Perms) Shared() bool { return !p.Private }

// String renders the four-character tetrad, e.g. r-xp or rw-s.
func (p Perms) String() string {
	b := [4]byte{'-', '-', '-', 's'}
	if p.Read {
		b[0] = 'r'
	}
	if p.Write {
		b[1] = 'w'
	}
	if p.Exec {
		b[2] = 'x'
	}
	if p.Private {
		b[3] = 'p'
	}
	return string(b[:])
}

// Size returns the region length in bytes.
func (m *Mapping) Size() uint64 { return m.EndAddr - m.StartAddr }

// Anonymous reports whether the region has no backing path.
func (m *Mapping) Anonymous() bool { return m.Pathname == "" }

// Bytes reinterprets the region as live memory of the calling process.
// The view is only meaningful for the caller's own current mappings: a
// record parsed for another process, or one that outlived its region, must
// not be dereferenced through it. Returns nil when the range cannot be
// represented on this platform.
func (m *Mapping) Bytes() []byte {
	if uint64(uintptr(m.StartAddr)) != m.StartAddr || m.Size() > math.MaxInt {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(m.StartAddr))), int(m.Size()))
}

// String renders the record in the canonical maps column grammar:
// zero-padded hex addresses and offset, the permission tetrad, zero-padded
// decimal device pair, decimal inode and the path, if any. The output
// parses back to an identical record.
func (m *Mapping) String() string {
	if m == nil {
		return ""
	}

	s := fmt.Sprintf("%016x-%016x %s %08x %02d:%02d %d",
		m.StartAddr,
		m.EndAddr,
		m.Perms,
		m.FileOffset,
		m.DevMajor,
		m.DevMinor,
		m.Inode)
	if m.Pathname != "" {
		s += " " + m.Pathname
	}
	return s
}

// File identifies the backing object of a file-backed region.
type File struct {
	Dev   uint64
	Inode uint64
	Path  string
}

func (m *Mapping) File() File {
	return File{
		Inode: m.Inode,
		Path:  m.Pathname,
		Dev:   unix.Mkdev(m.DevMajor, m.DevMinor),
	}
}
