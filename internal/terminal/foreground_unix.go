//go:build unix

package terminal

import (
	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"
)

func getPgid(pid int) (int, error) {
	return unix.Getpgid(pid)
}

// foregroundName asks the terminal for its foreground process group and
// names its leader. It falls back to the shell's group.
func foregroundName(pty any, shellPgid int) string {
	pgid := shellPgid
	if f, ok := pty.(interface{ Fd() uintptr }); ok {
		if fg, err := unix.IoctlGetInt(int(f.Fd()), unix.TIOCGPGRP); err == nil && fg > 0 {
			pgid = fg
		}
	}
	if pgid <= 0 {
		return ""
	}
	proc, err := process.NewProcess(int32(pgid))
	if err != nil {
		return ""
	}
	name, err := proc.Name()
	if err != nil {
		return ""
	}
	return name
}
