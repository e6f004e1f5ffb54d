package errorhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorHandler(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "not found",
			err:             errs.NewPublicErrorKind(errs.NotFound, "asset not found"),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "asset not found",
		},
		{
			name:            "unauthorized",
			err:             errors.WithStack(errs.WithPublicMessage(errors.Wrap(errs.Unauthorized, "caller is not allowed"), "")),
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "caller is not allowed: Unauthorized",
		},
		{
			name:            "malformed rate",
			err:             errs.WithPublicMessage(errors.Wrap(errs.MalformedRate, "rate 10000001"), "validation error"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "validation error: rate 10000001: Malformed Rate",
		},
		{
			name:            "conflict",
			err:             errs.NewPublicErrorKind(errs.Conflict, "asset already exists"),
			expectedStatus:  http.StatusConflict,
			expectedMessage: "asset already exists",
		},
		{
			name:            "public without kind",
			err:             errs.NewPublicError("bad request"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "bad request",
		},
		{
			name:            "fiber error",
			err:             fiber.ErrMethodNotAllowed,
			expectedStatus:  http.StatusMethodNotAllowed,
			expectedMessage: "Method Not Allowed",
		},
		{
			name:            "internal",
			err:             errors.New("database is down"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal Server Error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: NewHTTPErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			var body common.HttpResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.expectedMessage, *body.Error)
			assert.Nil(t, body.Result)
		})
	}
}
