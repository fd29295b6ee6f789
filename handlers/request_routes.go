// handlers/request_routes.go
package handlers

import (
	"food-share-system/middleware"
	"food-share-system/models"
	"food-share-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRequestRoutes(app *fiber.App, requests *services.RequestService) {
	app.Get("/requests", func(c *fiber.Ctx) error {
		if donationID := c.Query("donation_id"); donationID != "" {
			list, err := requests.GetRequestsByDonation(donationID)
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(list)
		}
		list, err := requests.GetAllRequests()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(list)
	})

	app.Get("/requests/:id", func(c *fiber.Ctx) error {
		request, err := requests.GetRequestByID(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(request)
	})

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/my/requests", func(c *fiber.Ctx) error {
		list, err := requests.GetRequestsByRequester(c.Locals("user_id").(string))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(list)
	})

	secured.Get("/my/deliveries", func(c *fiber.Ctx) error {
		list, err := requests.GetRequestsByVolunteer(c.Locals("user_id").(string))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(list)
	})

	secured.Post("/requests", func(c *fiber.Ctx) error {
		var draft services.RequestDraft
		if err := c.BodyParser(&draft); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		// the authenticated user is the requester unless the body names one;
		// ?anonymous=true lets operators file on behalf of SMS callers
		if draft.RequesterID == nil && !c.QueryBool("anonymous", false) {
			userID := c.Locals("user_id").(string)
			draft.RequesterID = &userID
		}
		request, err := requests.CreateRequest(&draft)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(request)
	})

	secured.Post("/requests/:id/volunteer", func(c *fiber.Ctx) error {
		var body struct {
			VolunteerID string `json:"volunteer_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if body.VolunteerID == "" {
			body.VolunteerID = c.Locals("user_id").(string) // self-assignment
		}
		request, err := requests.AssignVolunteer(c.Params("id"), body.VolunteerID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(request)
	})

	secured.Patch("/requests/:id/status", func(c *fiber.Ctx) error {
		var body struct {
			Status models.RequestStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		request, err := requests.UpdateRequestStatus(c.Params("id"), body.Status)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(request)
	})
}
