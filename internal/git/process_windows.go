//go:build windows

package git

import "os/exec"

// configureProcess keeps the exec.CommandContext default of killing the
// process itself on cancellation.
func configureProcess(_ *exec.Cmd) {}
