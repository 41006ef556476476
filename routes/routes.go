package routes

import (
	controller "mailtrust/controllers"
	"mailtrust/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// SetupRoutes registers the public API surface. No authentication: the
// service exposes a single stateless verification surface.
func SetupRoutes(app *fiber.App, verifier *utils.Verifier, resolver utils.MXResolver) {
	verificationController := controller.NewVerificationController(verifier, resolver)
	dashboardController := controller.NewDashboardController()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	verify := api.Group("/verify")
	verify.Post("/email", verificationController.VerifyEmail)
	verify.Get("/email", verificationController.VerifyEmailQuery)
	verify.Get("/domain/:domain", verificationController.InspectDomain)

	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetDashboardStats)

	// 404 fallback
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
