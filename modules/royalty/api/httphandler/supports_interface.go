package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gofiber/fiber/v2"
)

type supportsInterfaceRequest struct {
	InterfaceId string `params:"interfaceId"`
}

type supportsInterfaceResult struct {
	InterfaceId protocol.InterfaceID `json:"interfaceId"`
	Supported   bool                 `json:"supported"`
}

type supportsInterfaceResponse = common.HttpResponse[supportsInterfaceResult]

// SupportsInterface accepts a 4-byte hex interface id (e.g. 0x4b7f2c2d) or a capability tag (e.g. erc2981-royalty-v1).
func (h *HttpHandler) SupportsInterface(ctx *fiber.Ctx) (err error) {
	var req supportsInterfaceRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	id, err := protocol.NewInterfaceIDFromString(req.InterfaceId)
	if err != nil {
		return errs.WithPublicMessage(err, "validation error: 'interfaceId' is not a valid interface id or tag")
	}

	return errors.WithStack(ctx.JSON(supportsInterfaceResponse{
		Result: &supportsInterfaceResult{
			InterfaceId: id,
			Supported:   h.usecase.SupportsInterface(id),
		},
	}))
}
