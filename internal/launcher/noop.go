// README: No-op launcher for the web platform; the client performs the open.
package launcher

import "context"

// Noop satisfies the launch capability without touching the OS. It is the
// web-platform wiring: the orchestrator's outcome carries the URL and the
// browser client performs the actual open, so the server side has nothing
// to do. CanOpen is false because no native scheme handler exists on web.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) CanOpen(ctx context.Context, uri string) (bool, error) { return false, nil }

func (Noop) Open(ctx context.Context, uri string) error { return nil }

func (Noop) OpenExternal(ctx context.Context, url string) error { return nil }
