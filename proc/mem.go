package proc

import (
	"fmt"
	"math"
	"os"

	bufra "github.com/avvmoto/buf-readerat"
)

const memBufferSize = 64 * 1024

// Mem reads another process's memory through the proc pseudo-filesystem.
// Reads are served from 64 KiB cache blocks.
type Mem struct {
	f *os.File
	r *bufra.BufReaderAt
}

// OpenMem opens the memory of pid. Pid 0 or below targets the calling
// process.
func OpenMem(pid int) (*Mem, error) {
	path, err := MemPath(pid)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open process memory: %w", err)
	}
	return &Mem{f: f, r: bufra.NewBufReaderAt(f, memBufferSize)}, nil
}

// ReadAt fills p from the virtual address off.
func (m *Mem) ReadAt(p []byte, off int64) (int, error) {
	return m.r.ReadAt(p, off)
}

// ReadRegion copies the memory covered by the mapping.
func (m *Mem) ReadRegion(mp *Mapping) ([]byte, error) {
	if mp.StartAddr > math.MaxInt64 {
		return nil, fmt.Errorf("read region %s: start address beyond offset range", mp)
	}
	buf := make([]byte, mp.Size())
	if _, err := m.ReadAt(buf, int64(mp.StartAddr)); err != nil {
		return nil, fmt.Errorf("read region %s: %w", mp, err)
	}
	return buf, nil
}

func (m *Mem) Close() error { return m.f.Close() }
