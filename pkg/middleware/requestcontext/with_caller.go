package requestcontext

import (
	"context"
	"strings"

	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// DefaultCallerHeader is the default request header carrying the caller address.
const DefaultCallerHeader = "X-Caller-Address"

type callerKey struct{}

// WithCaller extracts the caller identity from the given request header.
// Missing header results in an anonymous caller (empty string).
//
// The header is not authenticated here. It must be set by an authenticating proxy
// that strips any client-supplied value, otherwise any client can claim any caller.
func WithCaller(header string) Option {
	if header == "" {
		header = DefaultCallerHeader
	}
	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		caller := strings.TrimSpace(c.Get(header))
		if caller == "" {
			return ctx, nil
		}
		if len(caller) > 128 {
			return nil, requestcontextError{
				status:  fiber.StatusBadRequest,
				message: "invalid caller header",
			}
		}
		ctx = context.WithValue(ctx, callerKey{}, caller)
		ctx = logger.WithContext(ctx, "caller", caller)
		return ctx, nil
	}
}

// GetCaller get caller from context. If not found, return empty string
//
// Warning: Request context should be setup before using this function
func GetCaller(ctx context.Context) string {
	if caller, ok := ctx.Value(callerKey{}).(string); ok {
		return caller
	}
	return ""
}
