package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

func logRuntimeEvent(ctx context.Context, name string, evt Notification) {
	data, err := json.Marshal(evt)
	if err != nil {
		runtime.LogError(ctx, "events: failed to marshal notification: "+err.Error())
		return
	}

	payload := name + " " + string(data)

	switch evt.Type {
	case EventError:
		runtime.LogError(ctx, payload)
	case EventWarn:
		runtime.LogWarning(ctx, payload)
	default:
		runtime.LogInfo(ctx, payload)
	}
}

// SlogEmitter writes notifications to logger; used when no desktop runtime exists.
func SlogEmitter(logger *slog.Logger) func(ctx context.Context, name string, evt Notification) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, name string, evt Notification) {
		level := slog.LevelInfo
		switch evt.Type {
		case EventError:
			level = slog.LevelError
		case EventWarn:
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, evt.Message, "event", name, "id", evt.ID, "session_id", evt.SessionID)
	}
}
