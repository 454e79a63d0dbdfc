//go:build unix

package system

import "syscall"

// InitResourceLimits raises the open-file limit so wide slideshows don't
// trip the default soft cap while images and segment inputs are open.
func InitResourceLimits() error {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return err
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}
	return syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
}
