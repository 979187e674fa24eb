// handlers/achievement_routes.go
package handlers

import (
	"task-quest-system/middleware"
	"task-quest-system/services"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardSize is the number of rows the mini-app's top list shows.
const LeaderboardSize = 10

func SetupAchievementRoutes(app *fiber.App, users *services.UserService, achievements *services.AchievementService) {
	group := app.Group("/achievements", middleware.TelegramContextMiddleware())

	group.Get("/", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to load user")
		}

		views, stats, err := achievements.GetProgress(user.ID)
		if err != nil {
			return fail(c, err, "failed to fetch achievements")
		}
		return c.JSON(fiber.Map{
			"achievements": views,
			"stats":        stats,
		})
	})

	group.Get("/leaderboard", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to load user")
		}

		leaderboard, err := achievements.Leaderboard(LeaderboardSize)
		if err != nil {
			return fail(c, err, "failed to fetch leaderboard")
		}
		position, current, err := achievements.PositionOf(user.ID)
		if err != nil {
			return fail(c, err, "failed to fetch leaderboard position")
		}

		return c.JSON(fiber.Map{
			"leaderboard": leaderboard,
			"currentUser": fiber.Map{
				"position": position,
				"name":     current.DisplayName(),
				"xp":       current.TotalXP,
			},
		})
	})
}
