package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("creates a user and returns tokens", func(t *testing.T) {
		env := newTestEnv(t)

		recorder := env.do(t, http.MethodPost, "/auth/register",
			map[string]interface{}{"username": "testuser", "password": "Test123!"}, "")

		require.Equal(t, http.StatusCreated, recorder.Code)
		payload := decodeResponse(t, recorder)
		assert.Equal(t, "User created successfully", payload["message"])
		assert.NotEmpty(t, payload["accessToken"])
		assert.NotEmpty(t, payload["refreshToken"])

		user := payload["user"].(map[string]interface{})
		assert.Equal(t, "testuser", user["username"])
		assert.NotContains(t, user, "password")
		assert.NotContains(t, user, "passwordHash")
	})

	t.Run("duplicate username is 400 and creates no second row", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t, "testuser")

		recorder := env.do(t, http.MethodPost, "/auth/register",
			map[string]interface{}{"username": "testuser", "password": "Other123!"}, "")

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Username already exists", decodeResponse(t, recorder)["message"])

		// Only one account exists, so the next registration takes id 2.
		id, _ := env.register(t, "someoneelse")
		assert.Equal(t, int64(2), id)
	})

	t.Run("validation failures are 400 with structured errors", func(t *testing.T) {
		env := newTestEnv(t)

		bodies := []map[string]interface{}{
			{"username": "test"},                                            // missing password
			{"password": "Test123!"},                                        // missing username
			{},                                                              // missing both
			{"id": 1, "username": "testuser", "password": "Test123!"},       // id not allowed
			{"username": "ab", "password": "Test123!"},                      // username too short
			{"username": "testuser", "password": "short"},                   // password too short
			{"username": "this-username-is-way-too-long-to-be-accepted", "password": "Test123!"},
		}
		for _, body := range bodies {
			recorder := env.do(t, http.MethodPost, "/auth/register", body, "")
			require.Equal(t, http.StatusBadRequest, recorder.Code, "body=%v", body)
			payload := decodeResponse(t, recorder)
			assert.Equal(t, "Invalid input", payload["message"])
			assert.Contains(t, payload, "errors")
		}
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "testuser")

	t.Run("valid credentials", func(t *testing.T) {
		recorder := env.do(t, http.MethodPost, "/auth/login",
			map[string]interface{}{"username": "testuser", "password": "password1"}, "")

		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeResponse(t, recorder)
		assert.Equal(t, "Login successful", payload["message"])
		assert.NotEmpty(t, payload["accessToken"])
		assert.NotEmpty(t, payload["refreshToken"])
	})

	t.Run("wrong password and unknown user return the identical 401", func(t *testing.T) {
		wrongPassword := env.do(t, http.MethodPost, "/auth/login",
			map[string]interface{}{"username": "testuser", "password": "wrong-password"}, "")
		unknownUser := env.do(t, http.MethodPost, "/auth/login",
			map[string]interface{}{"username": "ghost", "password": "password1"}, "")

		require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
		assert.Equal(t,
			decodeResponse(t, wrongPassword)["message"],
			decodeResponse(t, unknownUser)["message"])
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		recorder := env.do(t, http.MethodPost, "/auth/login",
			map[string]interface{}{"username": "testuser"}, "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("valid refresh token yields a fresh pair", func(t *testing.T) {
		env := newTestEnv(t)
		recorder := env.do(t, http.MethodPost, "/auth/register",
			map[string]interface{}{"username": "testuser", "password": "Test123!"}, "")
		require.Equal(t, http.StatusCreated, recorder.Code)
		refreshToken := decodeResponse(t, recorder)["refreshToken"].(string)

		refreshed := env.do(t, http.MethodPost, "/auth/refresh-token",
			map[string]interface{}{"refreshToken": refreshToken}, "")

		require.Equal(t, http.StatusOK, refreshed.Code)
		payload := decodeResponse(t, refreshed)
		assert.NotEmpty(t, payload["accessToken"])
		assert.NotEmpty(t, payload["refreshToken"])
	})

	t.Run("missing or invalid token is 401", func(t *testing.T) {
		env := newTestEnv(t)

		missing := env.do(t, http.MethodPost, "/auth/refresh-token", map[string]interface{}{}, "")
		assert.Equal(t, http.StatusUnauthorized, missing.Code)

		invalid := env.do(t, http.MethodPost, "/auth/refresh-token",
			map[string]interface{}{"refreshToken": "garbage"}, "")
		assert.Equal(t, http.StatusUnauthorized, invalid.Code)
		assert.Equal(t, "Invalid refresh token", decodeResponse(t, invalid)["message"])
	})

	t.Run("token for a vanished user is 404", func(t *testing.T) {
		// Sign the token against one store, refresh against an empty one.
		donor := newTestEnv(t)
		_, tokens, err := donor.authService.Register(context.Background(), "ghost", "password1")
		require.NoError(t, err)

		env := newTestEnv(t)
		recorder := env.do(t, http.MethodPost, "/auth/refresh-token",
			map[string]interface{}{"refreshToken": tokens.RefreshToken}, "")

		require.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "User not found", decodeResponse(t, recorder)["message"])
	})
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.register(t, "testuser")

	t.Run("returns the token identity", func(t *testing.T) {
		recorder := env.do(t, http.MethodGet, "/auth/me", nil, token)
		require.Equal(t, http.StatusOK, recorder.Code)
		payload := decodeResponse(t, recorder)
		assert.Equal(t, float64(id), payload["userId"])
		assert.Equal(t, "testuser", payload["username"])
	})

	t.Run("requires authentication", func(t *testing.T) {
		recorder := env.do(t, http.MethodGet, "/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
