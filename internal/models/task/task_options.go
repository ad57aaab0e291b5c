package task

// TaskOption changes one mutable field. Only name, description and the
// completion flag can be changed after creation.
type TaskOption func(*Task)

func WithName(name string) TaskOption {
	return func(task *Task) {
		task.Name = name
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = &description
	}
}

func WithoutDescription() TaskOption {
	return func(task *Task) {
		task.Description = nil
	}
}

func WithCompleted(completed bool) TaskOption {
	return func(task *Task) {
		task.IsCompleted = completed
	}
}

// Apply skips nil options so callers can build the list conditionally.
func (t *Task) Apply(options ...TaskOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}
