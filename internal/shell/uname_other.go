//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)
// +build !linux,!darwin,!freebsd,!netbsd,!openbsd,!dragonfly

package shell

func kernelName(fallback string) string {
	return fallback
}
