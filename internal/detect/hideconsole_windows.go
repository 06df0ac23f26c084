//go:build windows

package detect

import (
	"os/exec"

	"golang.org/x/sys/windows"
)

// hideConsole suppresses the console window that would otherwise flash up
// when spawning which/where or java -version from a GUI-launched process.
func hideConsole(cmd *exec.Cmd) {
	cmd.SysProcAttr = &windows.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}
