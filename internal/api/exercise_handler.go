package api

import (
	"errors"
	"net/http"
	"strconv"

	"exercise-api/internal/repository"
	"exercise-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Handler Methods ---

// List returns the exercises visible to the caller, filtered and ordered per
// query parameters. Anonymous callers see public exercises only.
func (h *ExerciseHandler) List(c *gin.Context) {
	filter := repository.ExerciseFilter{
		Name:        c.Query("name"),
		Description: c.Query("description"),
	}

	if raw := c.Query("difficulty"); raw != "" {
		if difficulty, err := strconv.Atoi(raw); err == nil {
			filter.Difficulty = &difficulty
		}
	}
	if c.Query("sortBy") == "difficulty" {
		filter.SortBy = repository.SortByDifficulty
	}
	if c.Query("sortOrder") == "desc" {
		filter.SortOrder = repository.SortDesc
	} else {
		filter.SortOrder = repository.SortAsc
	}

	if identity, ok := identityFromContext(c); ok {
		filter = filter.WithViewer(identity.UserID)
	}

	exercises, err := h.exerciseService.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}

	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

// Get returns a single exercise. Private exercises are only visible to their
// owner.
func (h *ExerciseHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Exercise not found")
		return
	}

	exercise, err := h.exerciseService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to get exercise")
		}
		return
	}

	if !exercise.IsPublic {
		identity, ok := identityFromContext(c)
		if !ok || identity.UserID != exercise.OwnerID {
			abortWithError(c, http.StatusForbidden, "You don't have permission to view this exercise")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"exercise": exercise})
}

// Create stores a new exercise owned by the caller. Any client-supplied owner
// is discarded.
func (h *ExerciseHandler) Create(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication token required")
		return
	}

	body, ok := decodeBody(c)
	if !ok {
		return
	}
	input, errs := validateCreateExerciseBody(body)
	if len(errs) > 0 {
		abortWithValidationErrors(c, errs)
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), identity.UserID, input)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Exercise created successfully",
		"exercise": exercise,
	})
}

// Modify applies a partial update. The permission guard has already decided
// the caller may touch this exercise.
func (h *ExerciseHandler) Modify(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Exercise not found")
		return
	}

	body, ok := decodeBody(c)
	if !ok {
		return
	}
	update, errs := validateUpdateExerciseBody(body)
	if len(errs) > 0 {
		abortWithValidationErrors(c, errs)
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to modify exercise")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Exercise modified successfully",
		"exercise": exercise,
	})
}

// Delete removes an exercise. Strictly owner-only; unlike the modify route
// there is no configurable rule set here.
func (h *ExerciseHandler) Delete(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication token required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Exercise not found")
		return
	}

	exercise, err := h.exerciseService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to get exercise")
		}
		return
	}

	if exercise.OwnerID != identity.UserID {
		abortWithError(c, http.StatusForbidden, "You are not the owner of this exercise")
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Exercise deleted successfully",
		"exerciseId": id,
	})
}
