package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/kelsos/meili-go/internal/logger"
	"github.com/kelsos/meili-go/models"
)

const (
	// DefaultPollInterval is the delay between status checks when
	// PollConfig.Interval is zero.
	DefaultPollInterval = 50 * time.Millisecond

	// DefaultPollTimeout is the wait budget when PollConfig.Timeout is
	// zero.
	DefaultPollTimeout = 5 * time.Second

	// minPollInterval keeps an explicit zero interval from hammering the
	// server without ever yielding.
	minPollInterval = time.Millisecond
)

// PollConfig controls one WaitForTask call. The zero value uses the
// defaults above; callers that need an unbounded wait should rely on
// context cancellation instead of a large timeout.
type PollConfig struct {
	// Interval is the delay between status checks.
	Interval time.Duration
	// Timeout is the wall-clock budget, measured from the first poll.
	Timeout time.Duration
}

func (cfg PollConfig) withDefaults() PollConfig {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.Interval < minPollInterval {
		cfg.Interval = minPollInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPollTimeout
	}
	return cfg
}

// TimeoutError reports that a task did not reach a terminal status within
// the wait budget. The server-side task keeps running; the caller can poll
// again with the same uid. LastTask is the most recent snapshot, nil when
// the first poll never completed.
type TimeoutError struct {
	TaskUID  models.TaskUID
	Elapsed  time.Duration
	LastTask *models.Task
}

func (e *TimeoutError) Error() string {
	last := "none"
	if e.LastTask != nil {
		last = string(e.LastTask.Status)
	}
	return fmt.Sprintf("timed out after %v waiting for task %d (last status: %s)", e.Elapsed, e.TaskUID, last)
}

// WaitForTask polls the task until it reaches a terminal status and returns
// the final snapshot. A task that ends up failed or canceled is still a
// normal return; the caller branches on Task.Status and Task.Error. Only
// transport, decode, API and timeout problems come back as errors, and none
// of them are retried.
//
// Each call owns its loop state, so independent waits can run concurrently.
// Canceling ctx abandons the wait without touching the server-side task.
func (s *Service) WaitForTask(ctx context.Context, uid models.TaskUID, cfg PollConfig) (*models.Task, error) {
	cfg = cfg.withDefaults()
	start := time.Now()

	timer := time.NewTimer(cfg.Interval)
	defer timer.Stop()

	var lastTask *models.Task

	for {
		task, err := s.GetTask(ctx, uid)
		if err != nil {
			return nil, err
		}
		lastTask = task

		if task.Status.IsTerminal() {
			return task, nil
		}
		logger.Debug("Task %d still %s, polling again in %v", uid, task.Status, cfg.Interval)

		elapsed := time.Since(start)
		if elapsed+cfg.Interval > cfg.Timeout {
			return nil, &TimeoutError{TaskUID: uid, Elapsed: elapsed, LastTask: lastTask}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(cfg.Interval)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
