// handlers/admin_routes.go
package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"task-quest-system/models"
	"task-quest-system/services"
	"task-quest-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupAdminRoutes wires the scheduler-facing and operator-facing
// endpoints. The gateway only routes these to operators.
func SetupAdminRoutes(app *fiber.App, db *gorm.DB, catalog *services.TaskCatalogService) {
	group := app.Group("/s/admin")

	// Manual regeneration trigger, same path the cron job takes. With no
	// period in the body every batch is refreshed; the window markers keep
	// repeated calls inside one window from churning the active set.
	group.Post("/tasks/regenerate", func(c *fiber.Ctx) error {
		var body struct {
			Period models.Period `json:"period"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid JSON",
					"cause": err.Error(),
				})
			}
		}

		now := time.Now()
		if body.Period == "" {
			if err := catalog.GenerateAll(now); err != nil {
				return fail(c, err, "regeneration failed")
			}
			return c.JSON(fiber.Map{"message": "all period batches regenerated"})
		}

		batch, err := catalog.Regenerate(body.Period, models.TaskTemplates[body.Period], now)
		if err != nil {
			return fail(c, err, "regeneration failed")
		}
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("%s batch regenerated", body.Period),
			"tasks":   batch,
		})
	})

	group.Post("/achievements/:id/icon", func(c *fiber.Ctx) error {
		var def models.Achievement
		if err := db.Where("id = ?", c.Params("id")).First(&def).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "achievement not found",
				})
			}
			return fail(c, err, "failed to load achievement")
		}

		file, err := c.FormFile("icon")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "icon file is required",
				"cause": err.Error(),
			})
		}

		key := fmt.Sprintf("achievement-icons/%s%s", def.Code, filepath.Ext(file.Filename))
		url, err := utils.UploadIconToR2(file, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "icon upload failed",
				"cause": err.Error(),
			})
		}

		if err := db.Model(&def).Update("icon_url", url).Error; err != nil {
			return fail(c, err, "failed to store icon URL")
		}
		return c.JSON(fiber.Map{"icon_url": url})
	})
}
