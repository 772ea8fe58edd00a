package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/smazurov/spincam/internal/events"
)

func (s *Server) registerEventRoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Device events",
		Description: "Server-sent stream of device lifecycle, capture, frame error and parameter events",
		Tags:        []string{"events"},
	}, map[string]any{
		"device-opened":         events.DeviceOpenedEvent{},
		"device-closed":         events.DeviceClosedEvent{},
		"capture-state-changed": events.CaptureStateChangedEvent{},
		"frame-error":           events.FrameErrorEvent{},
		"parameter-changed":     events.ParameterChangedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 32)
		unsub := events.SubscribeAll(s.bus, eventCh)
		defer unsub()

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-eventCh:
				if err := send.Data(ev); err != nil {
					return
				}
			}
		}
	})
}
