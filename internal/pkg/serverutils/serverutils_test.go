package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/me", NewJwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		userId, err := UserId(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", userId.String()))
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	app := newTestApp()
	userId := uuid.New()

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "missing header", header: "", wantCode: 401},
		{name: "wrong secret", header: "Bearer " + signToken(t, jwt.MapClaims{"user_id": userId.String()}, "other"), wantCode: 401},
		{name: "missing claim", header: "Bearer " + signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}, testSecret), wantCode: 401},
		{name: "bad uuid", header: "Bearer " + signToken(t, jwt.MapClaims{"user_id": "nope"}, testSecret), wantCode: 401},
		{name: "valid", header: "Bearer " + signToken(t, jwt.MapClaims{"user_id": userId.String()}, testSecret), wantCode: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			if tt.wantCode == 200 {
				var body BaseResponse[string]
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, userId.String(), body.Data)
			}
		})
	}
}

type colorRequest struct {
	NoteType string `json:"note_type" validate:"required,notetype"`
	BgColor  string `json:"bg_color" validate:"required,notecolor"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(colorRequest{NoteType: "notes", BgColor: "#fff"}))

	err := ValidateRequest(colorRequest{NoteType: "trash", BgColor: "red"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "NoteType")
	assert.Contains(t, verr.Fields, "BgColor")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return ValidateRequest(colorRequest{})
	})
	app.Get("/notfound", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("boom")
	})

	cases := map[string]int{"/validation": 400, "/notfound": 404, "/boom": 500}
	for path, code := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, code, resp.StatusCode, path)

		var body BaseResponse[json.RawMessage]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, code, body.Code)
	}
}
