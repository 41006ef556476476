package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/likexian/whois"
	log "github.com/sirupsen/logrus"

	"mailtrust/utils"
)

type VerificationController struct {
	Verifier *utils.Verifier
	Resolver utils.MXResolver
}

func NewVerificationController(verifier *utils.Verifier, resolver utils.MXResolver) *VerificationController {
	return &VerificationController{
		Verifier: verifier,
		Resolver: resolver,
	}
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,max=320"`
}

// VerifyEmail handles single email verification from a JSON body.
// The pipeline itself never fails; a 500 here only happens on an
// unexpected internal panic (handled by the app error handler).
func (vc *VerificationController) VerifyEmail(c *fiber.Ctx) error {
	var req VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result := vc.Verifier.Verify(c.Context(), req.Email)

	log.WithFields(log.Fields{
		"request_id": c.Locals("request_id"),
		"domain":     result.Domain,
		"status":     result.Status,
		"score":      result.Score,
	}).Info("Email verified")

	return c.JSON(result)
}

// VerifyEmailQuery is the query-string variant: GET /verify/email?email=...
func (vc *VerificationController) VerifyEmailQuery(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email address is required",
		})
	}
	return c.JSON(vc.Verifier.Verify(c.Context(), email))
}

// InspectDomain returns a domain's MX records and a WHOIS snapshot.
// Both lookups degrade to empty on failure; the endpoint never errors.
func (vc *VerificationController) InspectDomain(c *fiber.Ctx) error {
	domain := strings.ToLower(strings.TrimSpace(c.Params("domain")))
	if domain == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Domain is required",
		})
	}

	records := vc.Resolver.LookupMX(c.Context(), domain)
	if records == nil {
		records = []string{}
	}

	whoisInfo, err := whois.Whois(domain)
	if err != nil {
		log.WithFields(log.Fields{"domain": domain, "error": err}).Warn("WHOIS lookup failed")
		whoisInfo = ""
	}

	return c.JSON(fiber.Map{
		"domain":    domain,
		"mxFound":   len(records) > 0,
		"mxRecords": records,
		"whois":     whoisInfo,
	})
}
