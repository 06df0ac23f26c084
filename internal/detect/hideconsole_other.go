//go:build !windows

package detect

import "os/exec"

// hideConsole is a no-op outside Windows; there is no console window to
// suppress.
func hideConsole(cmd *exec.Cmd) {}
