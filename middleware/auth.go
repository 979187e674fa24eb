// middleware/auth.go
package middleware

import (
	"log"
	"strconv"

	"task-quest-system/services"

	"github.com/gofiber/fiber/v2"
)

const telegramProfileKey = "telegram_profile"

// TelegramContextMiddleware extracts the Telegram identity the Gateway
// verified from the mini-app init data. The id header is trusted as-is;
// this service never re-validates signatures.
func TelegramContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawID := c.Get("X-Telegram-User-ID")
		if rawID == "" {
			log.Printf("🚫 [TG_CTX] X-Telegram-User-ID missing on %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Telegram-User-ID — request must come through the gateway",
			})
		}
		telegramID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || telegramID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "malformed X-Telegram-User-ID",
			})
		}

		c.Locals(telegramProfileKey, services.TelegramProfile{
			TelegramID: telegramID,
			Username:   c.Get("X-Telegram-Username"),
			FirstName:  c.Get("X-Telegram-First-Name"),
			LastName:   c.Get("X-Telegram-Last-Name"),
		})
		return c.Next()
	}
}

// ProfileFromCtx returns the Telegram profile the middleware attached.
func ProfileFromCtx(c *fiber.Ctx) services.TelegramProfile {
	profile, _ := c.Locals(telegramProfileKey).(services.TelegramProfile)
	return profile
}
