package shell

import "runtime"

// Family is the operating system family that decides which shell syntax is printed.
type Family int

const (
	Other Family = iota
	Unix
	Windows
)

func (f Family) String() string {
	switch f {
	case Unix:
		return "unix"
	case Windows:
		return "windows"
	default:
		return "other"
	}
}

// Platform is the host as seen by the emitter.
type Platform struct {
	Family Family
	Name   string // Kernel or OS name shown in warnings, e.g. "Linux" or "FreeBSD"
}

// Detect inspects the running host. Only Linux and macOS are treated as
// Unix-like; every other non-Windows OS gets the manual instructions.
func Detect() Platform {
	return detect(runtime.GOOS)
}

func detect(goos string) Platform {
	switch goos {
	case "windows":
		return Platform{Family: Windows, Name: "Windows"}
	case "linux", "darwin":
		return Platform{Family: Unix, Name: kernelName(goos)}
	default:
		return Platform{Family: Other, Name: kernelName(goos)}
	}
}
