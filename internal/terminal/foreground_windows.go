//go:build windows

package terminal

import "github.com/shirou/gopsutil/v4/process"

func getPgid(pid int) (int, error) {
	return pid, nil
}

// foregroundName names the shell itself; ConPTY has no job control.
func foregroundName(_ any, pid int) string {
	if pid <= 0 {
		return ""
	}
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, _ := proc.Name()
	return name
}
