//go:build !linux

package runtime

import "os/exec"

// setPlatformSpecificAttrs is a no-op: Pdeathsig only exists on Linux.
// The player processes are still killed through exec.CommandContext.
func setPlatformSpecificAttrs(_ *exec.Cmd) {}
