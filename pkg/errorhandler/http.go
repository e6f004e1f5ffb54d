package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// kindStatuses maps error kinds to HTTP status codes, ordered by priority.
var kindStatuses = []struct {
	kind   errs.ErrorKind
	status int
}{
	{errs.NotFound, http.StatusNotFound},
	{errs.Unauthorized, http.StatusForbidden},
	{errs.Conflict, http.StatusConflict},
	{errs.MalformedRate, http.StatusBadRequest},
	{errs.InvalidArgument, http.StatusBadRequest},
	{errs.Unsupported, http.StatusBadRequest},
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(StatusCode(err)).JSON(common.HttpResponse[any]{
				Error: lo.ToPtr(e.Message()),
			}))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(e.Code).JSON(common.HttpResponse[any]{
				Error: lo.ToPtr(e.Message),
			}))
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error", err,
			slogx.String("event", "api_unhandled_error"),
		)

		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(common.HttpResponse[any]{
			Error: lo.ToPtr("Internal Server Error"),
		}))
	}
}

// StatusCode returns the HTTP status code of a public error, based on its error kind.
// Public errors without a known kind are client errors.
func StatusCode(err error) int {
	for _, ks := range kindStatuses {
		if errors.Is(err, ks.kind) {
			return ks.status
		}
	}
	return http.StatusBadRequest
}
