// Package proc reads the virtual memory mapping tables the kernel exposes
// under the proc pseudo-filesystem and turns each listed region into a
// typed record.
package proc

import (
	"flag"
	"fmt"
	"path"

	"golang.org/x/sys/unix"
)

var (
	procPath = flag.String("proc-path", "/proc", "Path to proc directory")
	hostPath = flag.String("host-path", "/", "The host root directory. Useful in container.")
)

// Path joins elems below the proc mount point.
func Path(elems ...string) string {
	p := append([]string{*procPath}, elems...)
	return path.Join(p...)
}

// HostPath is Path resolved against the host root, for callers inspecting
// host processes from inside a container.
func HostPath(elems ...string) string {
	if *hostPath == "" || *hostPath == "/" {
		return Path(elems...)
	}
	p := append([]string{*hostPath, *procPath}, elems...)
	return path.Join(p...)
}

// MapsPath returns the path of the mapping table descriptor for pid. A pid
// of zero or below targets the calling process.
func MapsPath(pid int) (string, error) {
	return descriptorPath(pid, "maps")
}

// MemPath returns the path of the virtual memory descriptor for pid.
func MemPath(pid int) (string, error) {
	return descriptorPath(pid, "mem")
}

// pidDir names the per-process directory, using the kernel's literal self
// entry when no concrete pid is given.
func pidDir(pid int) string {
	if pid <= 0 {
		return "self"
	}
	return fmt.Sprintf("%d", pid)
}

func descriptorPath(pid int, name string) (string, error) {
	p := HostPath(pidDir(pid), name)
	if len(p) > unix.PathMax {
		return "", fmt.Errorf("%s descriptor for pid %d: %w", name, pid, ErrPathTooLong)
	}
	return p, nil
}
