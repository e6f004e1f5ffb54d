package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/royalty/v1")

	r.Get("/info/:assetId", h.GetRoyaltyInfo)
	r.Post("/info/batch", h.GetRoyaltyInfoBatch)
	r.Get("/quote/:assetId", h.GetQuote)
	r.Post("/assets", h.CreateAsset)
	r.Put("/assets/:assetId/royalty", h.UpdateRoyalty)
	r.Get("/assets/:assetId/history", h.GetRoyaltyHistory)
	r.Post("/received", h.ReceivedRoyalties)
	r.Get("/events", h.GetEvents)
	r.Get("/events/stream", h.StreamEvents)
	r.Get("/interfaces/:interfaceId", h.SupportsInterface)
	return nil
}
