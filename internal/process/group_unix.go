//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Isolate makes cmd lead its own process group, so that KillProcessGroup
// also reaches the children it spawns.
func Isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; the caller's Wait reports the outcome.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
