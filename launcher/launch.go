package launcher

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// BuildOpenCommand returns the argv that opens target in the desktop's
// default browser on the given OS. Only http and https links are accepted.
func BuildOpenCommand(goos, target string) ([]string, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("refusing to open %q: not an http(s) link", target)
	}
	switch goos {
	case "darwin":
		return []string{"open", u.String()}, nil
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", u.String()}, nil
	default:
		return []string{"xdg-open", u.String()}, nil
	}
}

// Open starts the browser for target and does not wait for it.
func Open(target string) error {
	argv, err := BuildOpenCommand(runtime.GOOS, target)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", argv[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
