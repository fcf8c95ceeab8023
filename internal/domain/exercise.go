package domain

// Exercise represents a single exercise owned by a user.
//
// OwnerID is set from the authenticated caller at creation and never changes.
// IsPublic is likewise fixed at creation; the update path only touches name,
// description and difficulty.
type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`        // 1-100 characters
	Description string `json:"description"` // 1-1000 characters
	Difficulty  int    `json:"difficulty"`  // 1 (easiest) to 5 (hardest)
	IsPublic    bool   `json:"isPublic"`
	OwnerID     int64  `json:"ownerId"`
}

// ExerciseUpdate carries the mutable subset of an exercise. Nil fields are
// left untouched. IsPublic and OwnerID are deliberately absent.
type ExerciseUpdate struct {
	Name        *string
	Description *string
	Difficulty  *int
}

// IsEmpty reports whether the update would change nothing.
func (u ExerciseUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Difficulty == nil
}
