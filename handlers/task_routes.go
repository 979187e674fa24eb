// handlers/task_routes.go
package handlers

import (
	"time"

	"task-quest-system/middleware"
	"task-quest-system/models"
	"task-quest-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTaskRoutes(app *fiber.App, users *services.UserService, catalog *services.TaskCatalogService, completions *services.CompletionService) {
	group := app.Group("/tasks", middleware.TelegramContextMiddleware())

	group.Get("/", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to load user")
		}

		period := models.Period(c.Query("type", string(models.PeriodDaily)))
		tasks, err := catalog.ListTasks(period, user.ID, time.Now())
		if err != nil {
			return fail(c, err, "failed to list tasks")
		}
		return c.JSON(fiber.Map{"tasks": tasks})
	})

	group.Post("/:taskId/complete", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to load user")
		}

		result, err := completions.CompleteTask(user.ID, c.Params("taskId"), time.Now())
		if err != nil {
			return fail(c, err, "failed to complete task")
		}
		return c.JSON(fiber.Map{
			"message":  "Task completed successfully",
			"xpEarned": result.XPEarned,
			"totalXP":  result.TotalXP,
		})
	})
}
