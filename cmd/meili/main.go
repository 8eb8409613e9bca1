package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kelsos/meili-go/client"
	"github.com/kelsos/meili-go/indexes"
	"github.com/kelsos/meili-go/internal/config"
	"github.com/kelsos/meili-go/internal/logger"
	"github.com/kelsos/meili-go/internal/tui"
	"github.com/kelsos/meili-go/internal/utils"
	"github.com/kelsos/meili-go/keys"
	"github.com/kelsos/meili-go/models"
	"github.com/kelsos/meili-go/tasks"
)

type app struct {
	cfg     *config.Config
	client  *client.Client
	indexes *indexes.Service
	tasks   *tasks.Service
	keys    *keys.Service
}

func newApp(cfg *config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := client.New(cfg.Host, cfg.APIKey, client.WithTimeout(cfg.RequestTimeout))

	return &app{
		cfg:     cfg,
		client:  c,
		indexes: indexes.NewService(c),
		tasks:   tasks.NewService(c),
		keys:    keys.NewService(c),
	}, nil
}

func (a *app) pollConfig() tasks.PollConfig {
	return tasks.PollConfig{
		Interval: a.cfg.WaitInterval,
		Timeout:  a.cfg.WaitTimeout,
	}
}

// waitAndReport blocks on the task behind info and logs the outcome. A task
// that failed server-side is reported but is not a CLI error.
func (a *app) waitAndReport(ctx context.Context, info *models.TaskInfo) error {
	task, err := a.tasks.WaitForTask(ctx, info.TaskUID, a.pollConfig())
	if err != nil {
		return fmt.Errorf("failed waiting for task %d: %w", info.TaskUID, err)
	}

	switch task.Status {
	case models.TaskStatusSucceeded:
		logger.Info("Task %d (%s) succeeded", task.UID, task.Type)
	case models.TaskStatusFailed:
		if task.Error != nil {
			logger.Error("Task %d (%s) failed: %s", task.UID, task.Type, task.Error.Message)
		} else {
			logger.Error("Task %d (%s) failed", task.UID, task.Type)
		}
	case models.TaskStatusCanceled:
		logger.Warn("Task %d (%s) was canceled", task.UID, task.Type)
	}

	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	logger.Init()
	utils.LoadEnvironment()

	cfg := config.NewConfig()
	cfg.LoadFromEnvironment()

	var noWait bool

	rootCmd := &cobra.Command{
		Use:   "meili",
		Short: "A CLI for administering a Meilisearch server",
		Long:  `meili is a CLI for inspecting and administering a Meilisearch server: indexes, documents, keys and asynchronous tasks.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.Host, "host", cfg.Host, "Server URL")
	rootCmd.PersistentFlags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "API key (or MEILI_API_KEY)")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check server availability",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			health, err := a.client.Health(cmd.Context())
			if err != nil {
				logger.Fatal("Health check failed: %v", err)
			}
			logger.Info("Server is %s", health.Status)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show the server version",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			version, err := a.client.Version(cmd.Context())
			if err != nil {
				logger.Fatal("Failed to fetch version: %v", err)
			}
			if err := printJSON(version); err != nil {
				logger.Fatal("%v", err)
			}
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show instance-wide statistics",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			stats, err := a.client.Stats(cmd.Context())
			if err != nil {
				logger.Fatal("Failed to fetch stats: %v", err)
			}
			if err := printJSON(stats); err != nil {
				logger.Fatal("%v", err)
			}
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Manage dumps",
	}

	dumpCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Export the instance into a dump file",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			info, err := a.client.CreateDump(cmd.Context())
			if err != nil {
				logger.Fatal("Failed to create dump: %v", err)
			}
			logger.Info("Dump enqueued as task %d", info.TaskUID)
			if !noWait {
				if err := a.waitAndReport(cmd.Context(), info); err != nil {
					logger.Fatal("%v", err)
				}
			}
		},
	}

	dumpCmd.AddCommand(dumpCreateCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage snapshots",
	}

	snapshotCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the instance database",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			info, err := a.client.CreateSnapshot(cmd.Context())
			if err != nil {
				logger.Fatal("Failed to create snapshot: %v", err)
			}
			logger.Info("Snapshot enqueued as task %d", info.TaskUID)
			if !noWait {
				if err := a.waitAndReport(cmd.Context(), info); err != nil {
					logger.Fatal("%v", err)
				}
			}
		},
	}

	snapshotCmd.AddCommand(snapshotCreateCmd)

	// index subcommands
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Manage indexes",
	}

	indexListCmd := &cobra.Command{
		Use:   "list",
		Short: "List indexes",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			results, err := a.indexes.List(cmd.Context(), nil)
			if err != nil {
				logger.Fatal("Failed to list indexes: %v", err)
			}
			if err := printJSON(results); err != nil {
				logger.Fatal("%v", err)
			}
		},
	}

	var primaryKey string
	indexCreateCmd := &cobra.Command{
		Use:   "create <uid>",
		Short: "Create an index",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			info, err := a.indexes.Create(cmd.Context(), args[0], primaryKey)
			if err != nil {
				logger.Fatal("Failed to create index: %v", err)
			}
			logger.Info("Index creation enqueued as task %d", info.TaskUID)
			if !noWait {
				if err := a.waitAndReport(cmd.Context(), info); err != nil {
					logger.Fatal("%v", err)
				}
			}
		},
	}
	indexCreateCmd.Flags().StringVarP(&primaryKey, "primary-key", "k", "", "Primary key of the index")

	indexDeleteCmd := &cobra.Command{
		Use:   "delete <uid>",
		Short: "Delete an index",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			info, err := a.indexes.Delete(cmd.Context(), args[0])
			if err != nil {
				logger.Fatal("Failed to delete index: %v", err)
			}
			logger.Info("Index deletion enqueued as task %d", info.TaskUID)
			if !noWait {
				if err := a.waitAndReport(cmd.Context(), info); err != nil {
					logger.Fatal("%v", err)
				}
			}
		},
	}

	indexCmd.AddCommand(indexListCmd)
	indexCmd.AddCommand(indexCreateCmd)
	indexCmd.AddCommand(indexDeleteCmd)

	// documents subcommands
	documentsCmd := &cobra.Command{
		Use:   "documents",
		Short: "Manage documents of an index",
	}

	documentsAddCmd := &cobra.Command{
		Use:   "add <index> <file.json>",
		Short: "Add documents from a JSON file",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			documents, err := utils.ReadDocumentsFile(args[1])
			if err != nil {
				logger.Fatal("%v", err)
			}
			info, err := a.indexes.Index(args[0]).AddDocuments(cmd.Context(), documents, primaryKey)
			if err != nil {
				logger.Fatal("Failed to add documents: %v", err)
			}
			logger.Info("Added %d documents to %s as task %d", len(documents), args[0], info.TaskUID)
			if !noWait {
				if err := a.waitAndReport(cmd.Context(), info); err != nil {
					logger.Fatal("%v", err)
				}
			}
		},
	}
	documentsAddCmd.Flags().StringVarP(&primaryKey, "primary-key", "k", "", "Primary key of the documents")

	documentsDeleteAllCmd := &cobra.Command{
		Use:   "delete-all <index>",
		Short: "Delete every document of an index",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			info, err := a.indexes.Index(args[0]).DeleteAllDocuments(cmd.Context())
			if err != nil {
				logger.Fatal("Failed to delete documents: %v", err)
			}
			logger.Info("Document deletion enqueued as task %d", info.TaskUID)
			if !noWait {
				if err := a.waitAndReport(cmd.Context(), info); err != nil {
					logger.Fatal("%v", err)
				}
			}
		},
	}

	documentsCmd.AddCommand(documentsAddCmd)
	documentsCmd.AddCommand(documentsDeleteAllCmd)

	// task subcommands
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect asynchronous tasks",
	}

	taskGetCmd := &cobra.Command{
		Use:   "get <uid>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			parsed, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				logger.Fatal("Invalid task uid: %s", args[0])
			}
			uid := models.TaskUID(parsed)
			task, err := a.tasks.GetTask(cmd.Context(), uid)
			if err != nil {
				logger.Fatal("Failed to fetch task: %v", err)
			}
			if err := printJSON(task); err != nil {
				logger.Fatal("%v", err)
			}
		},
	}

	taskListCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent tasks",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			results, err := a.tasks.GetTasks(cmd.Context(), &tasks.Query{Limit: 20})
			if err != nil {
				logger.Fatal("Failed to list tasks: %v", err)
			}
			if err := printJSON(results); err != nil {
				logger.Fatal("%v", err)
			}
		},
	}

	var waitInterval, waitTimeout int
	taskWaitCmd := &cobra.Command{
		Use:   "wait <uid>",
		Short: "Block until a task reaches a terminal status",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if waitInterval > 0 {
				cfg.WaitInterval = durationMs(waitInterval)
			}
			if waitTimeout > 0 {
				cfg.WaitTimeout = durationMs(waitTimeout)
			}
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			parsed, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				logger.Fatal("Invalid task uid: %s", args[0])
			}
			uid := models.TaskUID(parsed)
			task, err := a.tasks.WaitForTask(cmd.Context(), uid, a.pollConfig())
			if err != nil {
				logger.Fatal("Wait failed: %v", err)
			}
			if err := printJSON(task); err != nil {
				logger.Fatal("%v", err)
			}
		},
	}
	taskWaitCmd.Flags().IntVarP(&waitInterval, "interval", "i", 0, "Poll interval in milliseconds")
	taskWaitCmd.Flags().IntVarP(&waitTimeout, "timeout", "t", 0, "Wait timeout in milliseconds")

	taskWatchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Live task monitor",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.InitFileOnly(); err != nil {
				logger.Fatal("Failed to set up file logging: %v", err)
			}
			defer logger.Close()

			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			watcher := tui.NewTaskWatcher(a.tasks, cfg.Host, cfg.WatchInterval)
			if err := watcher.Run(); err != nil {
				logger.Fatal("Watch failed: %v", err)
			}
		},
	}

	taskCmd.AddCommand(taskGetCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskWaitCmd)
	taskCmd.AddCommand(taskWatchCmd)

	// key subcommands
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage API keys",
	}

	keyListCmd := &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cfg)
			if err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}
			results, err := a.keys.List(cmd.Context(), nil)
			if err != nil {
				logger.Fatal("Failed to list keys: %v", err)
			}
			if err := printJSON(results); err != nil {
				logger.Fatal("%v", err)
			}
		},
	}

	keyCmd.AddCommand(keyListCmd)

	rootCmd.PersistentFlags().BoolVar(&noWait, "no-wait", false, "Do not wait for enqueued tasks to finish")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(keyCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}

func durationMs(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
