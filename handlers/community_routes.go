// handlers/community_routes.go — freshness ratings, distribution proofs, tracking, SMS intake, user directory
package handlers

import (
	"strconv"

	"food-share-system/middleware"
	"food-share-system/models"
	"food-share-system/services"
	"food-share-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupCommunityRoutes(app *fiber.App,
	freshness *services.FreshnessService,
	tracking *services.TrackingService,
	sms *services.SmsService,
	users *services.UserService,
	proofs *services.DistributionService,
) {
	app.Get("/donations/:id/freshness", func(c *fiber.Ctx) error {
		summary, err := freshness.GetDonationFreshness(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(summary)
	})

	// SMS gateway webhook: no user context, the caller has no account
	app.Post("/sms/intake", func(c *fiber.Ctx) error {
		var body struct {
			PhoneNumber     string                `json:"phone_number"`
			RequestType     models.SmsRequestType `json:"request_type"`
			LocationAddress string                `json:"location_address"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		intake, err := sms.RecordIntake(body.PhoneNumber, body.RequestType, body.LocationAddress)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(intake)
	})

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/donations/:id/freshness", func(c *fiber.Ctx) error {
		var body struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		rating, err := freshness.RateDonation(c.Params("id"), c.Locals("user_id").(string), body.Rating, body.Comment)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rating)
	})

	secured.Post("/requests/:id/proof", func(c *fiber.Ctx) error {
		photoURL := c.FormValue("photo_url")
		if fileHeader, err := c.FormFile("photo"); err == nil {
			key := utils.ProofPhotoKey(c.Params("id"), fileHeader.Filename)
			uploaded, err := utils.UploadPhoto(fileHeader, key)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload photo"})
			}
			photoURL = uploaded
		}

		var distributedTo *int
		if raw := c.FormValue("distributed_to_count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "distributed_to_count must be a number"})
			}
			distributedTo = &n
		}

		proof, err := proofs.RecordProof(c.Params("id"), photoURL, c.FormValue("description"), distributedTo)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(proof)
	})

	secured.Get("/requests/:id/proof", func(c *fiber.Ctx) error {
		list, err := proofs.GetProofsByRequest(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(list)
	})

	secured.Post("/requests/:id/location", func(c *fiber.Ctx) error {
		var body struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		ping, err := tracking.RecordLocation(c.Params("id"), c.Locals("user_id").(string), body.Latitude, body.Longitude)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ping)
	})

	secured.Get("/requests/:id/location", func(c *fiber.Ctx) error {
		ping, err := tracking.GetLatestLocation(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(ping)
	})

	secured.Get("/requests/:id/route", func(c *fiber.Ctx) error {
		route, err := tracking.GetRoute(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(route)
	})

	secured.Get("/users", func(c *fiber.Ctx) error {
		if userType := c.Query("type"); userType != "" {
			list, err := users.GetUsersByType(models.UserType(userType))
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(list)
		}
		list, err := users.GetPendingApprovals()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(list)
	})

	secured.Patch("/users/:id/status", func(c *fiber.Ctx) error {
		var body struct {
			Status models.UserStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		user, err := users.UpdateUserStatus(c.Params("id"), body.Status)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(user)
	})

	secured.Post("/sms/intake/:id/process", func(c *fiber.Ctx) error {
		intake, err := sms.ProcessIntake(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(intake)
	})

	secured.Post("/sms/intake/:id/reject", func(c *fiber.Ctx) error {
		intake, err := sms.RejectIntake(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(intake)
	})
}
