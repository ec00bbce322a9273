package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolTimingMiddleware logs every tools/call with its duration and outcome.
func toolTimingMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method != "tools/call" {
				return next(ctx, method, req)
			}

			tool := toolName(req)
			start := time.Now()
			result, err := next(ctx, method, req)

			attrs := []any{"tool", tool, "duration", time.Since(start)}
			switch {
			case err != nil:
				logger.Warn("mcp tool failed", append(attrs, "error", err)...)
			case isToolError(result):
				logger.Info("mcp tool returned error", attrs...)
			default:
				logger.Info("mcp tool called", attrs...)
			}
			return result, err
		}
	}
}

func toolName(req sdkmcp.Request) string {
	if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
		return call.Params.Name
	}
	return ""
}

func isToolError(result sdkmcp.Result) bool {
	res, ok := result.(*sdkmcp.CallToolResult)
	return ok && res != nil && res.IsError
}
