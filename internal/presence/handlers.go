package presence

import (
	"github.com/shaswat2031/rungo/internal/capture"

	"github.com/gofiber/fiber/v2"
)

// UpdateRequest is the body of a presence push. A push with IsCapturing=false
// deregisters the caller.
type UpdateRequest struct {
	UserID      string       `json:"userId"`
	Path        capture.Path `json:"path"`
	IsCapturing bool         `json:"isCapturing"`
	Color       string       `json:"color,omitempty"`
}

func RegisterRoutes(r fiber.Router, store *Store) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId required")
		}

		store.Upsert(req.UserID, req.Path, req.IsCapturing, req.Color)
		return c.SendStatus(fiber.StatusOK)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(store.ListActive(c.Query("userId")))
	})
}
