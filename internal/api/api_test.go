package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"exercise-api/internal/repository/memory"
	"exercise-api/internal/service"
	"exercise-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router          *gin.Engine
	store           *memory.Store
	authService     service.AuthService
	exerciseService service.ExerciseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	authService := service.NewAuthService(store.Users(), logger.Nop(), "test-secret", 15*time.Minute, 7*24*time.Hour)
	exerciseService := service.NewExerciseService(store.Exercises(), logger.Nop())

	router := gin.New()
	SetupRoutes(router, logger.Nop(), authService, exerciseService)

	return &testEnv{
		router:          router,
		store:           store,
		authService:     authService,
		exerciseService: exerciseService,
	}
}

// register creates a user through the service layer and returns its id and a
// valid access token.
func (e *testEnv) register(t *testing.T, username string) (int64, string) {
	t.Helper()
	user, tokens, err := e.authService.Register(context.Background(), username, "password1")
	require.NoError(t, err)
	return user.ID, tokens.AccessToken
}

// seedExercises creates the canonical fixture: ids 1,2 public owned by user1;
// id 3 private owned by user2; id 4 public owned by user2.
func (e *testEnv) seedExercises(t *testing.T, user1, user2 int64) {
	t.Helper()
	ctx := context.Background()

	fixtures := []struct {
		owner    int64
		name     string
		desc     string
		diff     int
		isPublic bool
	}{
		{user1, "Pushups", "Upper body basics", 2, true},
		{user1, "Squats", "Lower body basics", 3, true},
		{user2, "Secret routine", "Private plan", 5, false},
		{user2, "Plank", "Core hold", 2, true},
	}
	for _, f := range fixtures {
		_, err := e.exerciseService.Create(ctx, f.owner, service.CreateExerciseInput{
			Name: f.name, Description: f.desc, Difficulty: f.diff, IsPublic: f.isPublic,
		})
		require.NoError(t, err)
	}
}

// do performs a request against the test router. A non-nil body is JSON
// encoded; a non-empty token goes into the Authorization header.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

// exerciseIDs pulls the id sequence out of a list response.
func exerciseIDs(t *testing.T, recorder *httptest.ResponseRecorder) []int64 {
	t.Helper()
	payload := decodeResponse(t, recorder)
	raw, ok := payload["exercises"].([]interface{})
	require.True(t, ok, "response has no exercises array")

	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		exercise := item.(map[string]interface{})
		ids = append(ids, int64(exercise["id"].(float64)))
	}
	return ids
}
