package proc

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The probe region sits well inside a larger allocation so the reader's
// cache blocks never reach past the mapped range.
const (
	memProbeArena  = 4 * memBufferSize
	memProbeOffset = memBufferSize + memBufferSize/2
	memProbeLen    = 1024
)

func TestMemReadAt(t *testing.T) {
	data := make([]byte, memProbeArena)
	for i := range data {
		data[i] = byte(i * 7)
	}

	m, err := OpenMem(0)
	require.NoError(t, err)
	defer m.Close()

	addr := uint64(uintptr(unsafe.Pointer(&data[0]))) + memProbeOffset
	got := make([]byte, memProbeLen)
	n, err := m.ReadAt(got, int64(addr))
	require.NoError(t, err)
	require.Equal(t, memProbeLen, n)

	want := data[memProbeOffset : memProbeOffset+memProbeLen]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read memory mismatch (-want +got):\n%s", diff)
	}
	runtime.KeepAlive(data)
}

func TestMemReadRegion(t *testing.T) {
	data := make([]byte, memProbeArena)
	for i := range data {
		data[i] = byte(i ^ (i >> 8))
	}

	m, err := OpenMem(0)
	require.NoError(t, err)
	defer m.Close()

	start := uint64(uintptr(unsafe.Pointer(&data[0]))) + memProbeOffset
	region := &Mapping{
		StartAddr: start,
		EndAddr:   start + memProbeLen,
		Perms:     Perms{Read: true, Write: true, Private: true},
	}

	got, err := m.ReadRegion(region)
	require.NoError(t, err)

	want := data[memProbeOffset : memProbeOffset+memProbeLen]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read region mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, region.Bytes(), got)
	runtime.KeepAlive(data)
}
