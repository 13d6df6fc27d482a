// README: Desktop implementation of the URI-launch capability (xdg-open / open).
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Desktop opens URIs through the operating system's default handler. It is
// the native-platform Launcher used when hailpad runs as a desktop shell;
// mobile builds bridge to the OS intent system instead.
type Desktop struct{}

func NewDesktop() *Desktop {
	return &Desktop{}
}

// CanOpen reports whether a handler is registered for the URI's scheme.
// https always has one (the browser). For custom schemes the answer is only
// queryable on Linux via xdg-mime; elsewhere we report false and let the
// orchestrator fall through to the store prompt.
func (d *Desktop) CanOpen(ctx context.Context, uri string) (bool, error) {
	scheme, ok := schemeOf(uri)
	if !ok {
		return false, fmt.Errorf("no scheme in uri %q", uri)
	}
	if scheme == "http" || scheme == "https" {
		return true, nil
	}
	if runtime.GOOS != "linux" {
		return false, nil
	}
	out, err := exec.CommandContext(ctx, "xdg-mime", "query", "default", "x-scheme-handler/"+scheme).Output()
	if err != nil {
		return false, fmt.Errorf("query scheme handler: %w", err)
	}
	return strings.TrimSpace(string(out)) != "", nil
}

func (d *Desktop) Open(ctx context.Context, uri string) error {
	return openWithOS(ctx, uri)
}

func (d *Desktop) OpenExternal(ctx context.Context, url string) error {
	return openWithOS(ctx, url)
}

func openWithOS(ctx context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", target)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", target)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open %q: %w", target, err)
	}
	return nil
}

func schemeOf(uri string) (string, bool) {
	i := strings.Index(uri, "://")
	if i <= 0 {
		return "", false
	}
	return strings.ToLower(uri[:i]), true
}
