package task

import (
	"strings"
	"time"
	"unicode/utf8"
)

const NameMaxLength = 255

// Task is the soft-deletable task entity. A non-nil DeletedAt hides the row
// from every read.
type Task struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	IsCompleted bool       `json:"isCompleted" db:"is_completed"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt   *time.Time `json:"deletedAt" db:"deleted_at"`
}

func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

// NameProblem returns an empty string when name is acceptable. A name made
// only of whitespace counts as empty.
func NameProblem(name string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return "name must be at most 255 characters"
	}
	return ""
}
