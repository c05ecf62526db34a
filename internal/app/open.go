package app

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Open opens url in the system browser without waiting for it.
func Open(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("open: empty url")
	}
	name, args := openCommand(runtime.GOOS, url)
	return exec.Command(name, args...).Start()
}

func openCommand(goos, url string) (string, []string) {
	var cmd string
	var args []string

	switch goos {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default: // "linux", "freebsd", "openbsd", "netbsd"
		cmd = "xdg-open"
	}
	args = append(args, url)
	return cmd, args
}
