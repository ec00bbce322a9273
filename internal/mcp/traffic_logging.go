package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxLoggedPayload caps each logged payload; scripts can be long.
const maxLoggedPayload = 2048

// trafficLoggingMiddleware dumps JSON-RPC exchanges at debug level.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			log := logger.With("direction", direction, "method", method, "session_id", sessionIDOf(req))
			log.DebugContext(ctx, "mcp request", "params", payloadString(paramsOf(req)))

			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}
			if err != nil {
				log.DebugContext(ctx, "mcp response", "error", err)
			} else {
				log.DebugContext(ctx, "mcp response", "result", payloadString(result))
			}
			return result, err
		}
	}
}

// sessionIDOf tolerates requests whose session is not yet bound.
func sessionIDOf(req sdkmcp.Request) (id string) {
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	if req == nil {
		return ""
	}
	if session := req.GetSession(); session != nil {
		return session.ID()
	}
	return ""
}

// paramsOf tolerates notifications whose params are a typed nil.
func paramsOf(req sdkmcp.Request) (params any) {
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	if req == nil {
		return nil
	}
	return req.GetParams()
}

func payloadString(payload any) string {
	if res, ok := payload.(*sdkmcp.CallToolResult); ok && res != nil && !res.IsError && res.StructuredContent != nil {
		// Content repeats the structured value as text.
		payload = res.StructuredContent
	}
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	if len(data) > maxLoggedPayload {
		return string(data[:maxLoggedPayload]) + "…"
	}
	return string(data)
}
