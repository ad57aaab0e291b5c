package dto

import (
	"encoding/json"

	"dateTracker/internal/models/task"
)

type CreateTaskRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=255"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"isCompleted"`
}

// Completed defaults to false when the flag was omitted.
func (r CreateTaskRequest) Completed() bool {
	return r.IsCompleted != nil && *r.IsCompleted
}

// NullableString tells an omitted field (Set is false) from an explicit
// null (Set is true, Value is nil).
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// UpdateTaskRequest carries a partial update: omitted fields keep the stored
// value. A null description clears it; a null name or flag is ignored.
type UpdateTaskRequest struct {
	Name        *string        `json:"name"`
	Description NullableString `json:"description"`
	IsCompleted *bool          `json:"isCompleted"`
}

func (r UpdateTaskRequest) Options() []task.TaskOption {
	var options []task.TaskOption
	if r.Name != nil {
		options = append(options, task.WithName(*r.Name))
	}
	if r.Description.Set {
		if r.Description.Value == nil {
			options = append(options, task.WithoutDescription())
		} else {
			options = append(options, task.WithDescription(*r.Description.Value))
		}
	}
	if r.IsCompleted != nil {
		options = append(options, task.WithCompleted(*r.IsCompleted))
	}
	return options
}
