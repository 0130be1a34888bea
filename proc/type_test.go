package proc

import (
	"math"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestPermsString(t *testing.T) {
	permsTests := []struct {
		perms Perms
		want  string
	}{
		{Perms{}, "---s"},
		{Perms{Read: true, Write: true, Exec: true, Private: true}, "rwxp"},
		{Perms{Read: true, Exec: true, Private: true}, "r-xp"},
		{Perms{Read: true, Write: true}, "rw-s"},
	}
	for _, tt := range permsTests {
		assert.Equal(t, tt.want, tt.perms.String())
		assert.Equal(t, tt.perms.Private, !tt.perms.Shared())
	}
}

func TestMappingString(t *testing.T) {
	m := &Mapping{
		StartAddr: 0x400000,
		EndAddr:   0x452000,
		Perms:     Perms{Read: true, Exec: true, Private: true},
		DevMajor:  8,
		DevMinor:  1,
		Inode:     1234,
		Pathname:  "/usr/bin/example",
	}
	assert.Equal(t, "0000000000400000-0000000000452000 r-xp 00000000 08:01 1234 /usr/bin/example", m.String())

	m.Pathname = ""
	assert.Equal(t, "0000000000400000-0000000000452000 r-xp 00000000 08:01 1234", m.String())

	var nilMapping *Mapping
	assert.Equal(t, "", nilMapping.String())
}

func TestMappingSize(t *testing.T) {
	m := &Mapping{StartAddr: 0x7f0000000000, EndAddr: 0x7f0000021000}
	assert.Equal(t, uint64(0x21000), m.Size())
}

func TestMappingAnonymous(t *testing.T) {
	assert.True(t, (&Mapping{}).Anonymous())
	assert.False(t, (&Mapping{Pathname: "[heap]"}).Anonymous())
	assert.False(t, (&Mapping{Pathname: "/usr/bin/example"}).Anonymous())
}

func TestMappingFile(t *testing.T) {
	m := &Mapping{DevMajor: 8, DevMinor: 17, Inode: 1234, Pathname: "/usr/bin/example"}
	f := m.File()
	assert.Equal(t, uint32(8), unix.Major(f.Dev))
	assert.Equal(t, uint32(17), unix.Minor(f.Dev))
	assert.Equal(t, uint64(1234), f.Inode)
	assert.Equal(t, "/usr/bin/example", f.Path)
}

func TestMappingBytes(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	start := uint64(uintptr(unsafe.Pointer(&data[0])))
	m := &Mapping{StartAddr: start, EndAddr: start + uint64(len(data))}

	got := m.Bytes()
	require.NotNil(t, got)
	assert.Equal(t, data, got)
	runtime.KeepAlive(data)
}

func TestMappingBytesUnrepresentable(t *testing.T) {
	m := &Mapping{StartAddr: 0, EndAddr: math.MaxUint64}
	assert.Nil(t, m.Bytes())
}
