package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/samber/lo"
	"github.com/uniboi/pmparse/proc"
)

func main() {
	var pid int
	var peek string
	flag.IntVar(&pid, "pid", 0, "Target process id (0 means the current process)")
	flag.StringVar(&peek, "peek", "", "Hex address to locate and dump a few bytes from")
	flag.Parse()

	maps, err := proc.ParseMaps(pid)
	if err != nil {
		glog.Errorf("Failed to parse maps of pid %d: %v", pid, err)
		os.Exit(1)
	}

	if peek != "" {
		peekAddress(pid, maps, peek)
		return
	}

	// Summarize the address space by backing object, the way pmap does.
	byFile := lo.GroupBy(maps, func(m *proc.Mapping) string {
		if m.Anonymous() {
			return "[anonymous]"
		}
		return m.File().Path
	})

	names := lo.Keys(byFile)
	sort.Strings(names)
	for _, name := range names {
		regions := byFile[name]
		total := lo.SumBy(regions, func(m *proc.Mapping) uint64 { return m.Size() })
		fmt.Printf("%10d KiB in %2d regions  %s\n", total/1024, len(regions), name)
	}
}

func peekAddress(pid int, maps []*proc.Mapping, peek string) {
	addr, err := strconv.ParseUint(strings.TrimPrefix(peek, "0x"), 16, 64)
	if err != nil {
		glog.Errorf("Invalid address %q: %v", peek, err)
		os.Exit(1)
	}

	m := proc.NewIndex(maps).Find(addr)
	if m == nil {
		glog.Errorf("No mapping covers 0x%x", addr)
		os.Exit(1)
	}
	fmt.Println(m)

	if !m.Perms.Read {
		glog.Infof("Region is not readable, skipping dump")
		return
	}

	mem, err := proc.OpenMem(pid)
	if err != nil {
		glog.Errorf("Failed to open memory of pid %d: %v", pid, err)
		os.Exit(1)
	}
	defer mem.Close()

	buf := make([]byte, 16)
	if _, err := mem.ReadAt(buf, int64(addr)); err != nil {
		glog.Errorf("Failed to read 0x%x: %v", addr, err)
		os.Exit(1)
	}
	fmt.Printf("0x%016x: % x\n", addr, buf)
}
