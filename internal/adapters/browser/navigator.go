package browser

// Package browser opens URLs in the user's system browser, the desktop analog
// of a full redirect (web) or a modal authentication session (native).

import (
	"context"
	"errors"
	"os/exec"
	"runtime"

	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// Navigator launches the platform browser.
type Navigator struct{}

var _ ports.Navigator = Navigator{}

// Open launches url in the default browser.
func (Navigator) Open(ctx context.Context, url string) error {
	if url == "" {
		return errors.New("url is required")
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	return cmd.Start()
}
