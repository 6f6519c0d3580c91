//go:build unix

package runtime

import "syscall"

// raiseStop stops the process group, the terminal equivalent of ctrl-z. The
// process resumes when the shell delivers SIGCONT.
func raiseStop() error {
	return syscall.Kill(0, syscall.SIGTSTP)
}
