// handlers/profile_routes.go
package handlers

import (
	"time"

	"task-quest-system/middleware"
	"task-quest-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, users *services.UserService, stats *services.StatsService) {
	group := app.Group("/profile", middleware.TelegramContextMiddleware())

	group.Get("/", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to get profile")
		}
		return c.JSON(fiber.Map{
			"telegramId":  user.TelegramID,
			"username":    user.Username,
			"firstName":   user.FirstName,
			"lastName":    user.LastName,
			"totalXP":     user.TotalXP,
			"level":       user.Level(),
			"nextLevelXP": user.NextLevelXP(),
		})
	})

	group.Put("/", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to get profile")
		}

		var body struct {
			Username  string `json:"username"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		updated, err := users.UpdateProfile(user.ID, body.Username, body.FirstName, body.LastName)
		if err != nil {
			return fail(c, err, "failed to update profile")
		}
		return c.JSON(updated)
	})

	group.Get("/stats", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to get stats")
		}

		userStats, err := stats.GetStats(user.ID, time.Now())
		if err != nil {
			return fail(c, err, "failed to get stats")
		}
		return c.JSON(userStats)
	})
}
