package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kelsos/meili-go/internal/logger"
	"github.com/kelsos/meili-go/internal/storage"
	"github.com/kelsos/meili-go/models"
	"github.com/kelsos/meili-go/tasks"
)

// TaskWatcher drives the monitor: it polls the task list on an interval and
// feeds snapshots into the bubbletea program. The library itself never
// polls in the background; this loop is CLI-only.
type TaskWatcher struct {
	service  *tasks.Service
	host     string
	interval time.Duration
	program  *tea.Program
}

func NewTaskWatcher(service *tasks.Service, host string, interval time.Duration) *TaskWatcher {
	return &TaskWatcher{
		service:  service,
		host:     host,
		interval: interval,
	}
}

func (tw *TaskWatcher) AddLog(message string) {
	if tw.program != nil {
		tw.program.Send(LogMessage{
			Message: message,
		})
	}
}

// poll fetches the latest task page and pushes every snapshot to the view.
// Snapshots replace prior state wholesale.
func (tw *TaskWatcher) poll(ctx context.Context, lastSeen models.TaskUID) (models.TaskUID, error) {
	results, err := tw.service.GetTasks(ctx, &tasks.Query{Limit: 50})
	if err != nil {
		return lastSeen, err
	}

	for i := len(results.Results) - 1; i >= 0; i-- {
		task := results.Results[i]
		tw.program.Send(TaskUpdate{Task: task})

		if task.UID > lastSeen {
			lastSeen = task.UID
			if task.Status.IsTerminal() {
				tw.AddLog(fmt.Sprintf("Task #%d (%s) finished: %s", task.UID, task.Type, task.Status))
			}
		}
	}

	return lastSeen, nil
}

func (tw *TaskWatcher) watchLoop(ctx context.Context) {
	lastSeen, err := storage.GetWatchState(tw.host)
	if err != nil {
		logger.Warn("Could not load watch state: %v", err)
	}
	if lastSeen > 0 {
		tw.AddLog(fmt.Sprintf("Resuming watch from task #%d", lastSeen))
	}

	ticker := time.NewTicker(tw.interval)
	defer ticker.Stop()

	for {
		updated, err := tw.poll(ctx, lastSeen)
		if err != nil {
			tw.AddLog(fmt.Sprintf("Poll failed: %v", err))
			logger.Error("Failed to fetch tasks: %v", err)
		} else if updated != lastSeen {
			lastSeen = updated
			if err := storage.SaveWatchState(tw.host, lastSeen); err != nil {
				logger.Warn("Could not save watch state: %v", err)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Run starts the monitor and blocks until the user quits.
func (tw *TaskWatcher) Run() error {
	model := NewModel(tw.host)
	tw.program = tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go tw.watchLoop(ctx)

	if _, err := tw.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
