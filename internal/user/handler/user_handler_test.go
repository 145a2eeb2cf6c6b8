package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codeOfTheFuture/mern-stack-authentication/config"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/mocks"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/domain"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/dto"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/handler"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/service"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	app    *fiber.App
	repo   *mocks.MockUserRepository
	tokens *service.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{Env: "development", BcryptCost: bcrypt.MinCost}
	tokens := service.NewTokenService(testSecret, 30)
	userService := service.NewUserService(mockRepo, cfg)
	h := handler.NewUserHandler(userService, tokens, cfg)

	return &testEnv{
		app:    handler.NewApp(cfg, h, nil),
		repo:   mockRepo,
		tokens: tokens,
	}
}

func jsonRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "jwt" {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRegister(t *testing.T) {
	t.Run("success sets session cookie", func(t *testing.T) {
		env := newTestEnv(t)
		input := dto.RegisterInput{Name: "Test User", Email: "test@example.com", Password: "password123"}

		env.repo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		env.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := env.app.Test(jsonRequest("POST", "/api/users", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body dto.CredentialsOutput
		decodeBody(t, resp, &body)
		assert.Equal(t, input.Name, body.Name)
		assert.Equal(t, input.Email, body.Email)
		assert.NotEmpty(t, body.ID)

		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.False(t, cookie.Secure, "secure flag stays off in development")

		// the signed payload resolves to the registered user
		claims, err := env.tokens.Verify(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, body.ID, claims.UserID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		input := dto.RegisterInput{Name: "Test User", Email: "taken@example.com", Password: "password123"}

		env.repo.EXPECT().GetByEmail(gomock.Any(), input.Email).
			Return(&domain.User{ID: "existing", Email: input.Email}, nil)

		resp, err := env.app.Test(jsonRequest("POST", "/api/users", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "email already in use", body["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.app.Test(jsonRequest("POST", "/api/users", dto.RegisterInput{Email: "test@example.com"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest("POST", "/api/users", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	password := "password123"

	storedUser := func(t *testing.T) *domain.User {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		return &domain.User{
			ID:           "user-123",
			Name:         "Test User",
			Email:        "test@example.com",
			PasswordHash: string(hash),
		}
	}

	t.Run("success sets session cookie", func(t *testing.T) {
		env := newTestEnv(t)
		user := storedUser(t)

		env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		resp, err := env.app.Test(jsonRequest("POST", "/api/users/auth", dto.LoginInput{Email: user.Email, Password: password}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)

		claims, err := env.tokens.Verify(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("wrong password yields 401 and no cookie", func(t *testing.T) {
		env := newTestEnv(t)
		user := storedUser(t)

		env.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		resp, err := env.app.Test(jsonRequest("POST", "/api/users/auth", dto.LoginInput{Email: user.Email, Password: "wrong"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Nil(t, sessionCookie(resp))

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid email or password", body["message"])
	})

	t.Run("unknown email yields same 401", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().GetByEmail(gomock.Any(), "missing@example.com").Return(nil, nil)

		resp, err := env.app.Test(jsonRequest("POST", "/api/users/auth", dto.LoginInput{Email: "missing@example.com", Password: password}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid email or password", body["message"])
	})
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(jsonRequest("POST", "/api/users/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "user logged out", body["message"])

	// the cookie is overwritten with an already-expired empty value
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
}

func TestGetProfile(t *testing.T) {
	t.Run("no cookie", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.app.Test(jsonRequest("GET", "/api/users/profile", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "not authorized: no token", body["message"])
	})

	t.Run("invalid token", func(t *testing.T) {
		env := newTestEnv(t)

		req := jsonRequest("GET", "/api/users/profile", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: "garbage"})

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "not authorized: invalid token", body["message"])
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		env := newTestEnv(t)

		forged, err := service.NewTokenService("attacker-secret", 30).Issue("user-123")
		require.NoError(t, err)

		req := jsonRequest("GET", "/api/users/profile", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: forged})

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token returns public fields only", func(t *testing.T) {
		env := newTestEnv(t)
		user := &domain.User{
			ID:           "user-123",
			Name:         "Test User",
			Email:        "test@example.com",
			PasswordHash: "secret-hash",
			CreatedAt:    time.Now().Add(-time.Hour),
			UpdatedAt:    time.Now(),
		}

		env.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		token, err := env.tokens.Issue(user.ID)
		require.NoError(t, err)

		req := jsonRequest("GET", "/api/users/profile", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "secret-hash")

		var body dto.UserOutput
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, user.ID, body.ID)
		assert.Equal(t, user.Name, body.Name)
		assert.Equal(t, user.Email, body.Email)
		assert.False(t, body.CreatedAt.IsZero())
		assert.False(t, body.UpdatedAt.IsZero())
	})

	t.Run("valid token but account deleted", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().GetByID(gomock.Any(), "gone-id").Return(nil, nil)

		token, err := env.tokens.Issue("gone-id")
		require.NoError(t, err)

		req := jsonRequest("GET", "/api/users/profile", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUpdateProfile(t *testing.T) {
	user := &domain.User{
		ID:           "user-123",
		Name:         "Old Name",
		Email:        "test@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().Add(-time.Hour),
		UpdatedAt:    time.Now().Add(-time.Hour),
	}

	t.Run("applies provided fields", func(t *testing.T) {
		env := newTestEnv(t)

		// middleware resolves the user, then the service re-reads it
		env.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil).Times(2)
		env.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		token, err := env.tokens.Issue(user.ID)
		require.NoError(t, err)

		req := jsonRequest("PUT", "/api/users/profile", dto.UpdateProfileInput{Name: "New Name"})
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.UserOutput
		decodeBody(t, resp, &body)
		assert.Equal(t, "New Name", body.Name)
		assert.Equal(t, user.Email, body.Email)
	})

	t.Run("user deleted between middleware and update", func(t *testing.T) {
		env := newTestEnv(t)

		gomock.InOrder(
			env.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil),
			env.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(nil, nil),
		)

		token, err := env.tokens.Issue(user.ID)
		require.NoError(t, err)

		req := jsonRequest("PUT", "/api/users/profile", dto.UpdateProfileInput{Name: "New Name"})
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("requires authentication", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.app.Test(jsonRequest("PUT", "/api/users/profile", dto.UpdateProfileInput{Name: "New Name"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(jsonRequest("GET", "/api/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "not found - /api/unknown", body["message"])
}

func TestErrorStackSuppressedOutsideDevelopment(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{Env: "production", BcryptCost: bcrypt.MinCost}
	tokens := service.NewTokenService(testSecret, 30)
	userService := service.NewUserService(mockRepo, cfg)
	h := handler.NewUserHandler(userService, tokens, cfg)
	app := handler.NewApp(cfg, h, nil)

	resp, err := app.Test(jsonRequest("GET", "/api/users/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_, hasStack := body["stack"]
	assert.False(t, hasStack)
}
