package controller_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	controller "mailtrust/controllers"
	"mailtrust/models"
	"mailtrust/utils"
)

type stubResolver struct {
	records []string
}

func (s *stubResolver) LookupMX(_ context.Context, _ string) []string {
	return s.records
}

type stubScorer struct{}

func (s *stubScorer) Score(_ context.Context, _ string, _ *models.VerificationResult) (utils.ReputationAssessment, bool) {
	return utils.ReputationAssessment{}, false
}

func newTestApp(records []string) *fiber.App {
	resolver := &stubResolver{records: records}
	verifier := utils.NewVerifier(utils.DefaultLookupTables(), resolver, &stubScorer{})
	vc := controller.NewVerificationController(verifier, resolver)

	app := fiber.New()
	app.Post("/api/v1/verify/email", vc.VerifyEmail)
	app.Get("/api/v1/verify/email", vc.VerifyEmailQuery)
	return app
}

func TestVerifyEmail_Post(t *testing.T) {
	app := newTestApp([]string{"10 mx.example.com."})

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/verify/email",
		strings.NewReader(`{"email": "Admin@Gmail.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result models.VerificationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, "Admin@Gmail.com", result.Email)
	assert.Equal(t, "admin", result.User)
	assert.Equal(t, "gmail.com", result.Domain)
	assert.True(t, result.FormatValid)
	assert.True(t, result.MxFound)
	assert.True(t, result.RoleAccount)
	assert.Equal(t, 80, result.Score)
	assert.Equal(t, models.StatusValid, result.Status)
}

func TestVerifyEmail_PostFieldNames(t *testing.T) {
	app := newTestApp([]string{"10 mx.example.com."})

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/verify/email",
		strings.NewReader(`{"email": "user@example.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	for _, field := range []string{
		"email", "user", "domain", "formatValid", "mxFound",
		"mxRecords", "disposable", "roleAccount", "score", "status",
	} {
		assert.Contains(t, raw, field)
	}
}

func TestVerifyEmail_PostMissingEmail(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/verify/email",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVerifyEmail_PostMalformedBody(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/verify/email",
		strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVerifyEmail_QueryVariant(t *testing.T) {
	app := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet,
		"/api/v1/verify/email?email=user%40example.org", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result models.VerificationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.MxFound)
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, models.StatusInvalid, result.Status)
}

func TestVerifyEmail_QueryMissingParam(t *testing.T) {
	app := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/verify/email", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVerifyEmail_InvalidFormatStillOK(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/verify/email",
		strings.NewReader(`{"email": "not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "an invalid address is a verdict, not an error")

	var result models.VerificationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.FormatValid)
	assert.Equal(t, models.StatusInvalid, result.Status)
}
