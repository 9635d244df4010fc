//go:build linux

package runtime

import (
	"os/exec"
	"syscall"
)

// setPlatformSpecificAttrs makes the kernel kill the player process
// if the launcher exits first.
func setPlatformSpecificAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Pdeathsig: syscall.SIGKILL,
	}
}
