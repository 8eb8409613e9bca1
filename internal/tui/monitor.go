package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kelsos/meili-go/models"
)

const maxVisibleTasks = 15

type Model struct {
	host          string
	tasks         map[models.TaskUID]models.Task
	order         []models.TaskUID
	logs          []string
	spinner       spinner.Model
	progress      progress.Model
	width         int
	height        int
	quit          bool
	successCount  int
	errorCount    int
	canceledCount int
}

type TasksLoaded struct {
	Tasks []models.Task
}

type TaskUpdate struct {
	Task models.Task
}

type LogMessage struct {
	Message string
}

func NewModel(host string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	pr := progress.New(progress.WithDefaultGradient())

	return Model{
		host:     host,
		tasks:    make(map[models.TaskUID]models.Task),
		order:    []models.TaskUID{},
		logs:     []string{},
		spinner:  sp,
		progress: pr,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.handleKeyMsg(msg) {
			m.quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m = m.handleWindowSizeMsg(msg)

	case TasksLoaded:
		m = m.handleTasksLoaded(msg)

	case TaskUpdate:
		m = m.handleTaskUpdate(msg)

	case LogMessage:
		m = m.handleLogMessage(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		if progressModel, ok := progressModel.(progress.Model); ok {
			m.progress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

func (m Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.progress.Width = msg.Width - 40
	return m
}

func (m Model) handleTasksLoaded(msg TasksLoaded) Model {
	for _, task := range msg.Tasks {
		m = m.upsertTask(task, false)
	}
	return m
}

func (m Model) handleTaskUpdate(msg TaskUpdate) Model {
	return m.upsertTask(msg.Task, true)
}

// upsertTask replaces the stored snapshot wholesale; counters only move
// when a task is first seen in a terminal status.
func (m Model) upsertTask(task models.Task, countTerminal bool) Model {
	previous, known := m.tasks[task.UID]
	if !known {
		m.order = append(m.order, task.UID)
		sort.Slice(m.order, func(a, b int) bool {
			return m.order[a] > m.order[b]
		})
	}

	if countTerminal && task.Status.IsTerminal() && (!known || !previous.Status.IsTerminal()) {
		switch task.Status {
		case models.TaskStatusSucceeded:
			m.successCount++
		case models.TaskStatusFailed:
			m.errorCount++
		case models.TaskStatusCanceled:
			m.canceledCount++
		}
	}

	m.tasks[task.UID] = task
	return m
}

func (m Model) handleLogMessage(msg LogMessage) Model {
	m.logs = append(m.logs, fmt.Sprintf("[%s] %s",
		time.Now().Format("15:04:05"), msg.Message))
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
	return m
}

func (m Model) pendingCount() int {
	pending := 0
	for _, task := range m.tasks {
		if !task.Status.IsTerminal() {
			pending++
		}
	}
	return pending
}

func (m Model) View() string {
	if m.quit {
		return "Shutting down...\n"
	}

	var s strings.Builder

	// Header
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	s.WriteString(headerStyle.Render(fmt.Sprintf("🔎 Task Monitor — %s", m.host)))
	s.WriteString("\n\n")

	// Summary
	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	summary := fmt.Sprintf("Tasks: %d | ✅ Succeeded: %d | ❌ Failed: %d | 🚫 Canceled: %d | ⏳ Pending: %d",
		len(m.tasks), m.successCount, m.errorCount, m.canceledCount, m.pendingCount())
	s.WriteString(summaryStyle.Render(summary))
	s.WriteString("\n")

	terminal := m.successCount + m.errorCount + m.canceledCount
	if total := terminal + m.pendingCount(); total > 0 {
		s.WriteString(m.progress.ViewAs(float64(terminal) / float64(total)))
	}
	s.WriteString("\n\n")

	// Task status
	taskSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1).
		Width(m.width - 2)

	var taskStatus strings.Builder
	taskStatus.WriteString("📋 Recent Tasks\n")
	taskStatus.WriteString(strings.Repeat("─", 60) + "\n")

	visible := m.order
	if len(visible) > maxVisibleTasks {
		visible = visible[:maxVisibleTasks]
	}

	for _, uid := range visible {
		task, exists := m.tasks[uid]
		if !exists {
			continue
		}

		statusIcon := getStatusIcon(task.Status)
		statusColor := getStatusColor(task.Status)

		taskLine := fmt.Sprintf("%s #%-8d %-20s %-12s",
			statusIcon,
			task.UID,
			truncate(task.Type, 20),
			task.Status)

		if !task.Status.IsTerminal() {
			taskLine += " " + m.spinner.View()
		}

		if task.IndexUID != "" {
			indexStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
			taskLine += " " + indexStyle.Render(truncate(task.IndexUID, 20))
		}

		if task.Error != nil {
			errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
			taskLine += " " + errorStyle.Render(truncate(task.Error.Message, 40))
		}

		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor))
		taskStatus.WriteString(statusStyle.Render(taskLine) + "\n")
	}

	s.WriteString(taskSectionStyle.Render(taskStatus.String()))
	s.WriteString("\n\n")

	// Logs section
	logSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(m.width - 2).
		Height(8)

	var logSection strings.Builder
	logSection.WriteString("📝 Recent Logs\n")
	for _, log := range m.logs {
		logSection.WriteString(log + "\n")
	}

	s.WriteString(logSectionStyle.Render(logSection.String()))
	s.WriteString("\n\n")

	// Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	footer := "Press 'q' to quit | Logs: logs/meili-go_*.log"
	s.WriteString(footerStyle.Render(footer))

	return s.String()
}

func getStatusIcon(status models.TaskStatus) string {
	switch status {
	case models.TaskStatusEnqueued:
		return "⏸"
	case models.TaskStatusProcessing:
		return "🔄"
	case models.TaskStatusSucceeded:
		return "✅"
	case models.TaskStatusFailed:
		return "❌"
	case models.TaskStatusCanceled:
		return "🚫"
	default:
		return "❓"
	}
}

func getStatusColor(status models.TaskStatus) string {
	switch status {
	case models.TaskStatusSucceeded:
		return "82"
	case models.TaskStatusFailed:
		return "196"
	case models.TaskStatusCanceled:
		return "244"
	default:
		return "39"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
