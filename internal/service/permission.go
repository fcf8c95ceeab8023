package service

import "exercise-api/internal/domain"

// PermissionRules governs whether non-owners may modify an exercise. Each
// route supplies its own rule set; callers never do.
type PermissionRules struct {
	// AnyoneCanModifyPublicExercises allows any authenticated user to modify
	// public exercises. Without it, public exercises stay owner-only.
	AnyoneCanModifyPublicExercises bool
	// AllowNonOwnerModification allows users to modify exercises they do not
	// own, still subject to the public/private rule above.
	AllowNonOwnerModification bool
}

// Decision is the outcome of a permission evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

// EvaluateModifyPermission decides whether the caller may modify the
// exercise. Pure function; the branches run in a fixed order and the first
// match wins.
//
// Private exercises are never modifiable by non-owners, whatever the rule set
// says about public ones.
func EvaluateModifyPermission(callerID int64, exercise domain.Exercise, rules PermissionRules) Decision {
	if exercise.OwnerID == callerID {
		return Decision{Allowed: true, Reason: "User is the owner"}
	}
	if !rules.AllowNonOwnerModification {
		return Decision{Allowed: false, Reason: "Only the owner can modify this exercise"}
	}
	if exercise.IsPublic && !rules.AnyoneCanModifyPublicExercises {
		return Decision{Allowed: false, Reason: "Public exercises are not allowed to be modified"}
	}
	if !exercise.IsPublic {
		return Decision{Allowed: false, Reason: "Only the owner can modify their own non-public exercises"}
	}
	return Decision{Allowed: true, Reason: "All checks passed, user is allowed to modify exercise"}
}
