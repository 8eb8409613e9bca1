package models

import (
	"encoding/json"
	"time"
)

// TaskStatus is the server-side state of an asynchronous task.
type TaskStatus string

const (
	TaskStatusEnqueued   TaskStatus = "enqueued"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusSucceeded  TaskStatus = "succeeded"
	TaskStatusFailed     TaskStatus = "failed"
	TaskStatusCanceled   TaskStatus = "canceled"
)

// IsTerminal reports whether no further status transitions can occur.
// Statuses this client does not know about are treated as non-terminal so
// that a newer server value keeps the poller going instead of stalling it.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusSucceeded, TaskStatusFailed, TaskStatusCanceled:
		return true
	}
	return false
}

// TaskUID identifies a task on the server.
type TaskUID int64

// TaskError is the error payload attached to a failed task.
type TaskError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
	Link    string `json:"link"`
}

// Task is a point-in-time snapshot of a server-side asynchronous job.
// The server owns the task; a snapshot is never mutated by the client.
type Task struct {
	UID        TaskUID         `json:"uid"`
	IndexUID   string          `json:"indexUid,omitempty"`
	Status     TaskStatus      `json:"status"`
	Type       string          `json:"type"`
	Details    json.RawMessage `json:"details,omitempty"`
	Error      *TaskError      `json:"error,omitempty"`
	CanceledBy *TaskUID        `json:"canceledBy,omitempty"`
	Duration   string          `json:"duration,omitempty"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
	StartedAt  *time.Time      `json:"startedAt,omitempty"`
	FinishedAt *time.Time      `json:"finishedAt,omitempty"`
}

// TaskInfo is the summary returned by every write operation. The full task
// record is available from the tasks endpoint using TaskUID.
type TaskInfo struct {
	TaskUID    TaskUID    `json:"taskUid"`
	IndexUID   string     `json:"indexUid,omitempty"`
	Status     TaskStatus `json:"status"`
	Type       string     `json:"type"`
	EnqueuedAt time.Time  `json:"enqueuedAt"`
}

// TasksResults is one page of the task list.
type TasksResults struct {
	Results []Task  `json:"results"`
	Limit   int64   `json:"limit"`
	From    TaskUID `json:"from"`
	Next    TaskUID `json:"next"`
	Total   int64   `json:"total"`
}
