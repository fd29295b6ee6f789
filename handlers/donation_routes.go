// handlers/donation_routes.go
package handlers

import (
	"food-share-system/middleware"
	"food-share-system/models"
	"food-share-system/services"
	"food-share-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupDonationRoutes(app *fiber.App, donations *services.DonationService) {
	// Public reads — still behind Gateway auth, no user context needed
	app.Get("/donations", func(c *fiber.Ctx) error {
		if donationType := c.Query("type"); donationType != "" {
			if c.QueryBool("available", false) {
				list, err := donations.GetAvailableDonations(models.DonationType(donationType))
				if err != nil {
					return serviceError(c, err)
				}
				return c.JSON(list)
			}
			list, err := donations.GetDonationsByType(models.DonationType(donationType))
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(list)
		}
		list, err := donations.GetAllDonations()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(list)
	})

	app.Get("/donations/:id", func(c *fiber.Ctx) error {
		donation, err := donations.GetDonationByID(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(donation)
	})

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/my/donations", func(c *fiber.Ctx) error {
		list, err := donations.GetDonationsByDonor(c.Locals("user_id").(string))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(list)
	})

	secured.Post("/donations", func(c *fiber.Ctx) error {
		var draft services.DonationDraft
		if err := c.BodyParser(&draft); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		donation, err := donations.CreateDonation(c.Locals("user_id").(string), &draft)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(donation)
	})

	secured.Post("/donations/:id/photo", func(c *fiber.Ctx) error {
		donation, err := donations.GetDonationByID(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}

		fileHeader, err := c.FormFile("photo")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo file is required"})
		}

		key := utils.DonationPhotoKey(donation.FoodName, fileHeader.Filename)
		url, err := utils.UploadPhoto(fileHeader, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload photo"})
		}

		if err := donations.DB.Model(&models.Donation{}).
			Where("id = ?", donation.ID).
			Update("photo_url", url).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save photo URL"})
		}
		return c.JSON(fiber.Map{"photo_url": url})
	})

	secured.Patch("/donations/:id/status", func(c *fiber.Ctx) error {
		var body struct {
			Status models.DonationStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		donation, err := donations.UpdateDonationStatus(c.Params("id"), body.Status)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(donation)
	})
}
