package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit is a no-op until a desktop runtime or a custom emitter is installed.
var Emit = func(ctx context.Context, name string, evt Notification) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt Notification) {
		evt = scoped(ctx, evt)
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt Notification)) {
	if f == nil {
		Emit = func(context.Context, string, Notification) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt Notification) {
		f(ctx, name, scoped(ctx, evt))
	}
}

func scoped(ctx context.Context, evt Notification) Notification {
	if evt.SessionID == "" {
		evt.SessionID = SessionFromContext(ctx)
	}
	return evt
}
