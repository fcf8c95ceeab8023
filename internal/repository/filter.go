package repository

import (
	"sort"
	"strings"

	"exercise-api/internal/domain"
)

// SortField names a column the exercise listing may be ordered by.
type SortField string

// SortOrder is the direction of an ordered listing.
type SortOrder string

const (
	SortByNone       SortField = ""
	SortByDifficulty SortField = "difficulty"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ExerciseFilter accumulates the typed predicates of an exercise listing.
// Storage implementations compile it into their own query form; the semantics
// live here so every backend answers identically.
//
// Visibility: when ViewerID is set the listing contains public exercises plus
// the viewer's own; otherwise public only. The remaining predicates are ANDed
// onto visibility. Ordering is always deterministic: ties and unsorted
// listings fall back to ascending id.
type ExerciseFilter struct {
	Name        string // case-insensitive substring, empty = no predicate
	Description string // case-insensitive substring, empty = no predicate
	Difficulty  *int   // exact match
	ViewerID    *int64
	SortBy      SortField
	SortOrder   SortOrder
}

// WithViewer returns a copy of the filter scoped to the given caller.
func (f ExerciseFilter) WithViewer(userID int64) ExerciseFilter {
	f.ViewerID = &userID
	return f
}

// Matches reports whether a single exercise satisfies the visibility and
// filter predicates. Used by in-memory backends; the SQL backend compiles the
// same predicates into WHERE clauses.
func (f ExerciseFilter) Matches(ex domain.Exercise) bool {
	visible := ex.IsPublic
	if f.ViewerID != nil && ex.OwnerID == *f.ViewerID {
		visible = true
	}
	if !visible {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(ex.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Description != "" && !strings.Contains(strings.ToLower(ex.Description), strings.ToLower(f.Description)) {
		return false
	}
	if f.Difficulty != nil && ex.Difficulty != *f.Difficulty {
		return false
	}
	return true
}

// Sort orders exercises in place according to the filter. The secondary key
// is always ascending id so equal-difficulty rows keep a reproducible order.
func (f ExerciseFilter) Sort(exercises []domain.Exercise) {
	sort.SliceStable(exercises, func(i, j int) bool {
		a, b := exercises[i], exercises[j]
		if f.SortBy == SortByDifficulty && a.Difficulty != b.Difficulty {
			if f.SortOrder == SortDesc {
				return a.Difficulty > b.Difficulty
			}
			return a.Difficulty < b.Difficulty
		}
		return a.ID < b.ID
	})
}
