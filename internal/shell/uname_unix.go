//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly
// +build linux darwin freebsd netbsd openbsd dragonfly

package shell

import "golang.org/x/sys/unix"

// kernelName returns the uname sysname, e.g. "Linux", "Darwin" or "FreeBSD".
func kernelName(fallback string) string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return fallback
	}
	if name := unix.ByteSliceToString(uts.Sysname[:]); name != "" {
		return name
	}
	return fallback
}
