package opener

import (
	"strings"
	"testing"
)

func TestCmd_UsesBrowserEnv(t *testing.T) {
	t.Setenv("BROWSER", "firefox --new-tab")
	o := NewEnvOpener()

	cmd, err := o.Cmd("https://9gag.com/gag/a1")
	if err != nil {
		t.Fatalf("cmd failed: %v", err)
	}
	got := strings.Join(cmd.Args, " ")
	if got != "firefox --new-tab https://9gag.com/gag/a1" {
		t.Fatalf("unexpected args: %q", got)
	}
}

func TestCmd_PlatformFallback(t *testing.T) {
	t.Setenv("BROWSER", "")
	tests := []struct {
		goos string
		want string
	}{
		{goos: "linux", want: "xdg-open"},
		{goos: "darwin", want: "open"},
		{goos: "windows", want: "rundll32"},
	}
	for _, tc := range tests {
		o := &EnvOpener{goos: tc.goos}
		cmd, err := o.Cmd("https://9gag.com")
		if err != nil {
			t.Fatalf("%s: cmd failed: %v", tc.goos, err)
		}
		if cmd.Args[0] != tc.want || cmd.Args[len(cmd.Args)-1] != "https://9gag.com" {
			t.Fatalf("%s: unexpected args %v", tc.goos, cmd.Args)
		}
	}
}

func TestCmd_RejectsUnsafeURLs(t *testing.T) {
	o := NewEnvOpener()
	for _, raw := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "/relative", "https://"} {
		if _, err := o.Cmd(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
