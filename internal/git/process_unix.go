//go:build unix

package git

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureProcess puts git in its own process group and replaces the default
// cancel behaviour with a kill of that whole group, so hooks or pagers spawned
// by git die with it.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}
}

func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	pgid, err := unix.Getpgid(cmd.Process.Pid)
	if err == nil && pgid > 0 {
		return unix.Kill(-pgid, unix.SIGKILL)
	}
	return cmd.Process.Kill()
}
