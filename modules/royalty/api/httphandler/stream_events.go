package httphandler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const (
	receivedRoyaltiesEvent = "received_royalties"
	streamKeepAlive        = 15 * time.Second
)

// StreamEvents streams accepted notifications as Server-Sent Events until the client disconnects.
// Filters of GetEvents are applied to the stream, pagination is ignored.
func (h *HttpHandler) StreamEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	filter, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}

	ch := make(chan entity.Notification, 64)
	sub, err := h.usecase.Subscribe(ch)
	if err != nil {
		return toPublicError(errors.Wrap(err, "error during Subscribe"))
	}

	logCtx := ctx.UserContext()
	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Unsubscribe()

		ticker := time.NewTicker(streamKeepAlive)
		defer ticker.Stop()

		if err := writeComment(w, "connected"); err != nil {
			return
		}
		for {
			select {
			case n := <-ch:
				if !filter.Match(n) {
					continue
				}
				if err := writeEvent(w, n); err != nil {
					logger.DebugContext(logCtx, "Event stream closed", slogx.Error(err))
					return
				}
			case err := <-sub.Err():
				logger.WarnContext(logCtx, "Event stream subscription failed", slogx.Error(err))
				return
			case <-sub.Done():
				return
			case <-ticker.C:
				if err := writeComment(w, "keep-alive"); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, n entity.Notification) error {
	data, err := json.Marshal(mapNotification(&n))
	if err != nil {
		return errors.Wrap(err, "failed to marshal notification")
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", n.Sequence, receivedRoyaltiesEvent, data); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(w.Flush())
}

func writeComment(w *bufio.Writer, comment string) error {
	if _, err := fmt.Fprintf(w, ": %s\n\n", comment); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(w.Flush())
}
