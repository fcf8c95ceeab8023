package api

import (
	"encoding/json"
	"net/http"

	"exercise-api/internal/domain"
	"exercise-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ValidationErrors maps a field name to its failure messages.
type ValidationErrors map[string][]string

func (e ValidationErrors) add(field, message string) {
	e[field] = append(e[field], message)
}

// decodeBody reads the request body into a generic object. Numbers are kept
// as json.Number so integer fields can reject fractional values.
func decodeBody(c *gin.Context) (map[string]interface{}, bool) {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()

	var body map[string]interface{}
	if err := decoder.Decode(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return nil, false
	}
	return body, true
}

// abortWithValidationErrors writes the structured 400 payload.
func abortWithValidationErrors(c *gin.Context, errs ValidationErrors) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"message": "Invalid input",
		"errors":  errs,
	})
}

func stringField(body map[string]interface{}, field string) (string, bool) {
	raw, present := body[field]
	if !present {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return s, true
}

// intField returns the field as an integer. ok is false when the value is
// missing, not a number, or carries a fractional part.
func intField(body map[string]interface{}, field string) (int, bool) {
	raw, present := body[field]
	if !present {
		return 0, false
	}
	n, ok := raw.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(i), true
}

// boolField coerces a boolean-or-{0,1} value.
func boolField(body map[string]interface{}, field string) (value, valid bool) {
	raw, present := body[field]
	if !present {
		return false, true
	}
	switch v := raw.(type) {
	case bool:
		return v, true
	case json.Number:
		if i, err := v.Int64(); err == nil && (i == 0 || i == 1) {
			return i == 1, true
		}
	}
	return false, false
}

func validateRegisterBody(body map[string]interface{}) (username, password string, errs ValidationErrors) {
	errs = make(ValidationErrors)

	if _, present := body["id"]; present {
		errs.add("id", "Id is not allowed")
	}

	username, ok := stringField(body, "username")
	if !ok || username == "" {
		errs.add("username", "Username is required")
	} else if len(username) < 3 || len(username) > 20 {
		errs.add("username", "Username must be between 3 and 20 characters")
	}

	password, ok = stringField(body, "password")
	if !ok || password == "" {
		errs.add("password", "Password is required")
	} else if len(password) < 6 || len(password) > 100 {
		errs.add("password", "Password must be between 6 and 100 characters")
	}

	return username, password, errs
}

func validateLoginBody(body map[string]interface{}) (username, password string, errs ValidationErrors) {
	errs = make(ValidationErrors)

	username, ok := stringField(body, "username")
	if !ok || username == "" {
		errs.add("username", "Username is required")
	}
	password, ok = stringField(body, "password")
	if !ok || password == "" {
		errs.add("password", "Password is required")
	}

	return username, password, errs
}

func validateCreateExerciseBody(body map[string]interface{}) (service.CreateExerciseInput, ValidationErrors) {
	errs := make(ValidationErrors)
	var input service.CreateExerciseInput

	if _, present := body["id"]; present {
		errs.add("id", "Id is not allowed")
	}

	name, ok := stringField(body, "name")
	if !ok || name == "" {
		errs.add("name", "Name is required")
	} else if len(name) > 100 {
		errs.add("name", "Name must be between 1 and 100 characters")
	}
	input.Name = name

	description, ok := stringField(body, "description")
	if !ok || description == "" {
		errs.add("description", "Description is required")
	} else if len(description) > 1000 {
		errs.add("description", "Description must be between 1 and 1000 characters")
	}
	input.Description = description

	difficulty, ok := intField(body, "difficulty")
	if !ok || difficulty < 1 || difficulty > 5 {
		errs.add("difficulty", "Difficulty must be an integer between 1 and 5")
	}
	input.Difficulty = difficulty

	isPublic, valid := boolField(body, "isPublic")
	if !valid {
		errs.add("isPublic", "IsPublic must be a boolean or 0/1")
	}
	input.IsPublic = isPublic

	// ownerId in the body is ignored; ownership comes from the token.
	return input, errs
}

// validateUpdateExerciseBody accepts the partial modify schema. isPublic and
// ownerId keys are ignored outright; those fields are immutable.
func validateUpdateExerciseBody(body map[string]interface{}) (domain.ExerciseUpdate, ValidationErrors) {
	errs := make(ValidationErrors)
	var update domain.ExerciseUpdate

	if _, present := body["name"]; present {
		name, ok := stringField(body, "name")
		if !ok || name == "" || len(name) > 100 {
			errs.add("name", "Name must be between 1 and 100 characters")
		} else {
			update.Name = &name
		}
	}
	if _, present := body["description"]; present {
		description, ok := stringField(body, "description")
		if !ok || description == "" || len(description) > 1000 {
			errs.add("description", "Description must be between 1 and 1000 characters")
		} else {
			update.Description = &description
		}
	}
	if _, present := body["difficulty"]; present {
		difficulty, ok := intField(body, "difficulty")
		if !ok || difficulty < 1 || difficulty > 5 {
			errs.add("difficulty", "Difficulty must be an integer between 1 and 5")
		} else {
			update.Difficulty = &difficulty
		}
	}

	return update, errs
}
