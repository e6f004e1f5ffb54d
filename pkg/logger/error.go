package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors/errbase"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
	"github.com/gaze-network/royalty-registry/pkg/logger/stacktrace"
)

// middlewareError adds the verbose form of logged errors, and their stack trace when withStack is set.
func middlewareError(withStack bool) middleware {
	return func(next handleFunc) handleFunc {
		return func(ctx context.Context, rec slog.Record) error {
			rec.Attrs(func(attr slog.Attr) bool {
				if attr.Key != slogx.ErrorKey && attr.Key != "err" {
					return true
				}
				err, ok := attr.Value.Any().(error)
				if !ok || err == nil {
					return true
				}
				rec.AddAttrs(slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
				if x, ok := err.(errbase.StackTraceProvider); ok && withStack {
					rec.AddAttrs(slog.Any(ErrorStackTraceKey, stacktrace.StackTrace(x.StackTrace()).TraceFramesStrings()))
				}
				return false
			})

			return next(ctx, rec)
		}
	}
}
