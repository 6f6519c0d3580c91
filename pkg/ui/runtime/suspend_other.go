//go:build !unix

package runtime

import "errors"

// raiseStop is unsupported without POSIX job control; the driver resumes
// immediately.
func raiseStop() error {
	return errors.New("suspend not supported on this platform")
}
