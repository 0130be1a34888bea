package proc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// maxLineSize bounds one mapping record: the fixed columns plus a path,
// which the kernel caps at PATH_MAX.
const maxLineSize = unix.PathMax + 256

// Iterator yields the records of one mapping table in order. Next returns
// io.EOF once the table is exhausted; any other error is sticky and repeats
// on every later call. Close the iterator when done with it. An Iterator is
// not safe for concurrent use; independent iterators are.
type Iterator struct {
	f    *os.File
	s    *bufio.Scanner
	line int
	err  error
}

// NewIterator reads mapping records from r. The caller keeps ownership of r;
// Close is still safe to call and does nothing.
func NewIterator(r io.Reader) *Iterator {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, maxLineSize), maxLineSize)
	return &Iterator{s: s}
}

// Open starts iterating the mapping table of pid. Pid 0 or below targets
// the calling process.
func Open(pid int) (*Iterator, error) {
	path, err := MapsPath(pid)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping table: %w", err)
	}
	it := NewIterator(f)
	it.f = f
	return it, nil
}

// Self starts iterating the calling process's own mapping table.
func Self() (*Iterator, error) { return Open(0) }

// Next returns the next mapping record, or io.EOF after the last one.
func (it *Iterator) Next() (*Mapping, error) {
	if it.err != nil {
		return nil, it.err
	}
	if !it.s.Scan() {
		if err := it.s.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				err = ErrLineTooLong
			}
			it.err = fmt.Errorf("line %d: %w", it.line+1, err)
		} else {
			it.err = io.EOF
		}
		return nil, it.err
	}
	it.line++
	m, err := parseLine(it.s.Bytes())
	if err != nil {
		it.err = fmt.Errorf("line %d: %w", it.line, err)
		return nil, it.err
	}
	return m, nil
}

// Close releases the underlying table handle.
func (it *Iterator) Close() error {
	if it.f == nil {
		return nil
	}
	return it.f.Close()
}

// ParseMaps reads the whole mapping table of pid at once.
func ParseMaps(pid int) ([]*Mapping, error) {
	it, err := Open(pid)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := it.Close(); err != nil {
			glog.Warningf("Failed to close maps of pid %d: %v", pid, err)
		}
	}()

	var maps []*Mapping
	for {
		m, err := it.Next()
		if err == io.EOF {
			return maps, nil
		}
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
}
