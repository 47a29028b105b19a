package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"procure-ops-backend/models"
	apimodels "procure-ops-backend/models/api"
)

func sendErrorResponse(t *testing.T, err error, hMsg string) (int, apimodels.Response) {
	t.Helper()
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/fail", func(ctx *fiber.Ctx) error {
		return c.SendError(ctx, c.GetLogger(ctx), err, hMsg)
	})
	resp, reqErr := app.Test(httptest.NewRequest(fiber.MethodGet, "/fail", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	payload := apimodels.Response{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

func TestSendError(t *testing.T) {
	t.Run("not found sentinel maps to 404", func(t *testing.T) {
		status, payload := sendErrorResponse(t, errors.Wrap(models.ErrNotFound, "task lookup failed"), "Task retrieval failed")
		require.Equal(t, fiber.StatusNotFound, status)
		require.Equal(t, "fail", payload.Status)
	})

	t.Run("conflict sentinel maps to 409", func(t *testing.T) {
		status, _ := sendErrorResponse(t, models.ErrConflict, "Approval decision processing failed")
		require.Equal(t, fiber.StatusConflict, status)
	})

	t.Run("unknown errors carry the cause on 500", func(t *testing.T) {
		cause := errors.Wrap(errors.New("quota exceeded: rate limit reached"), "recommender call failed")
		status, payload := sendErrorResponse(t, cause, "Task assignment failed")
		require.Equal(t, fiber.StatusInternalServerError, status)
		require.Contains(t, payload.Message, "Task assignment failed")
		require.Contains(t, payload.Message, "quota exceeded")
	})
}
