package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/samber/lo"
	"github.com/uniboi/pmparse/proc"
)

func main() {
	var pid int
	var locate string
	flag.IntVar(&pid, "pid", 0, "Target process id (0 means the current process)")
	flag.StringVar(&locate, "locate", "", "Print only the mapping covering this hex address")
	flag.Parse()

	maps, err := proc.ParseMaps(pid)
	if err != nil {
		glog.Errorf("Failed to parse maps of pid %d: %v", pid, err)
		os.Exit(1)
	}

	if locate != "" {
		addr, err := strconv.ParseUint(strings.TrimPrefix(locate, "0x"), 16, 64)
		if err != nil {
			glog.Errorf("Invalid address %q: %v", locate, err)
			os.Exit(1)
		}
		m := proc.NewIndex(maps).Find(addr)
		if m == nil {
			glog.Errorf("No mapping covers 0x%x", addr)
			os.Exit(1)
		}
		fmt.Println(m)
		return
	}

	for _, m := range maps {
		fmt.Println(m)
	}

	private := lo.Filter(maps, func(m *proc.Mapping, _ int) bool { return m.Perms.Private })
	total := lo.SumBy(maps, func(m *proc.Mapping) uint64 { return m.Size() })
	glog.Infof("%d mappings (%d private), %d bytes total", len(maps), len(private), total)
}
