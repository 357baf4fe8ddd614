package opener

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// EnvOpener opens URLs with $BROWSER, falling back to the platform opener.
type EnvOpener struct {
	goos string
}

// NewEnvOpener creates an EnvOpener for the running platform.
func NewEnvOpener() *EnvOpener {
	return &EnvOpener{goos: runtime.GOOS}
}

// Cmd prepares an *exec.Cmd for rawURL. Only absolute http(s) URLs are accepted.
func (o *EnvOpener) Cmd(rawURL string) (*exec.Cmd, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !IsSafeExternalURL(rawURL) {
		return nil, fmt.Errorf("refusing to open %q", rawURL)
	}

	if browser := strings.TrimSpace(os.Getenv("BROWSER")); browser != "" {
		fields := strings.Fields(browser)
		return exec.Command(fields[0], append(fields[1:], rawURL)...), nil
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	default:
		return exec.Command("xdg-open", rawURL), nil
	}
}

// Open starts the opener without waiting for it.
func (o *EnvOpener) Open(rawURL string) error {
	cmd, err := o.Cmd(rawURL)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", cmd.Path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// IsSafeExternalURL reports whether raw is an absolute http(s) URL.
func IsSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
