// handlers/user_task_routes.go
package handlers

import (
	"time"

	"task-quest-system/middleware"
	"task-quest-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserTaskRoutes(app *fiber.App, users *services.UserService, userTasks *services.UserTaskService, completions *services.CompletionService) {
	group := app.Group("/user-tasks", middleware.TelegramContextMiddleware())

	group.Get("/", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to load user")
		}

		tasks, err := userTasks.List(user.ID, time.Now())
		if err != nil {
			return fail(c, err, "failed to list tasks")
		}
		return c.JSON(fiber.Map{"tasks": tasks})
	})

	group.Post("/", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to load user")
		}

		var input services.CreateUserTaskInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		task, err := userTasks.Create(user.ID, input)
		if err != nil {
			return fail(c, err, "failed to create task")
		}
		return c.Status(fiber.StatusCreated).JSON(task)
	})

	group.Post("/:taskId/complete", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to load user")
		}

		result, err := completions.CompleteUserTask(user.ID, c.Params("taskId"), time.Now())
		if err != nil {
			return fail(c, err, "failed to complete task")
		}
		return c.JSON(fiber.Map{
			"message":  "Task completed successfully",
			"xpEarned": result.XPEarned,
			"totalXP":  result.TotalXP,
		})
	})

	group.Delete("/:taskId", func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(middleware.ProfileFromCtx(c))
		if err != nil {
			return fail(c, err, "failed to load user")
		}

		if err := userTasks.Deactivate(user.ID, c.Params("taskId")); err != nil {
			return fail(c, err, "failed to delete task")
		}
		return c.JSON(fiber.Map{"message": "Task deleted successfully"})
	})
}
