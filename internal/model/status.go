package model

// TaskStatus is the lifecycle state of a download or conversion task.
type TaskStatus string

// Pending and Starting precede the work, Downloading and Converting name it,
// Stopping is a requested cancel. Stopped, Completed and Error are final.
const (
	TaskStatusPending     TaskStatus = "Pending"
	TaskStatusStarting    TaskStatus = "Starting"
	TaskStatusDownloading TaskStatus = "Downloading"
	TaskStatusConverting  TaskStatus = "Converting"
	TaskStatusStopping    TaskStatus = "Stopping"
	TaskStatusStopped     TaskStatus = "Stopped"
	TaskStatusCompleted   TaskStatus = "Completed"
	TaskStatusError       TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive reports whether work is under way or being cancelled.
func (ts TaskStatus) IsActive() bool {
	switch ts {
	case TaskStatusStarting, TaskStatusDownloading, TaskStatusConverting, TaskStatusStopping:
		return true
	}
	return false
}

// IsFinished reports whether the task reached a final state.
func (ts TaskStatus) IsFinished() bool {
	switch ts {
	case TaskStatusCompleted, TaskStatusStopped, TaskStatusError:
		return true
	}
	return false
}
