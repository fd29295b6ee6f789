// handlers/gamification_routes.go
package handlers

import (
	"food-share-system/middleware"
	"food-share-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGamificationRoutes(app *fiber.App, gamification *services.GamificationService) {
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		rows, err := gamification.GetLeaderboard()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(rows)
	})

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/my/points", func(c *fiber.Ctx) error {
		points, err := gamification.GetUserPoints(c.Locals("user_id").(string))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(points)
	})

	secured.Get("/my/badges", func(c *fiber.Ctx) error {
		badges, err := gamification.GetUserBadges(c.Locals("user_id").(string))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(badges)
	})

	secured.Get("/my/points/history", func(c *fiber.Ctx) error {
		history, err := gamification.GetPointsHistory(c.Locals("user_id").(string))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(history)
	})

	secured.Get("/users/:id/points", func(c *fiber.Ctx) error {
		points, err := gamification.GetUserPoints(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(points)
	})

	secured.Get("/users/:id/badges", func(c *fiber.Ctx) error {
		badges, err := gamification.GetUserBadges(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(badges)
	})
}
