package ledger

import "github.com/gofiber/fiber/v2"

// ClaimRequest is the body of a claim submission: the finished territory plus
// the caller's stats snapshot.
type ClaimRequest struct {
	Territory Territory `json:"territory"`
	UserID    string    `json:"userId"`
	Stats     Stats     `json:"stats"`
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/claim", func(c *fiber.Ctx) error {
		var req ClaimRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		if _, err := svc.SubmitClaim(c.Context(), req.Territory, req.UserID, req.Stats); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	})

	r.Get("/territories", func(c *fiber.Ctx) error {
		territories, err := svc.ListTerritories(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if territories == nil {
			territories = []Territory{}
		}
		return c.JSON(territories)
	})

	r.Get("/leaderboard/:scope", func(c *fiber.Ctx) error {
		entries, err := svc.Leaderboard(c.Context(), c.Params("scope"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if entries == nil {
			entries = []LeaderboardEntry{}
		}
		return c.JSON(entries)
	})
}
