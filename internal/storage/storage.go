package storage

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelsos/meili-go/models"
)

// WatchState remembers where a task watch left off for one host, so a
// restarted watch resumes from the last seen task instead of replaying the
// whole history.
type WatchState struct {
	LastTaskUID models.TaskUID `json:"last_task_uid"`
	UpdatedAt   int64          `json:"updated_at"`
}

// GetAppDataDir returns the application data directory
func GetAppDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	appDataDir := filepath.Join(homeDir, ".meili-go")
	if err := os.MkdirAll(appDataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create app data directory: %w", err)
	}

	return appDataDir, nil
}

// GetWatchStateFilePath returns the path to the watch-state file for a
// specific host
func GetWatchStateFilePath(host string) (string, error) {
	appDataDir, err := GetAppDataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(appDataDir, fmt.Sprintf("%s_watch.json", hostSlug(host))), nil
}

// SaveWatchState saves the last seen task uid for a host
func SaveWatchState(host string, lastTaskUID models.TaskUID) error {
	filePath, err := GetWatchStateFilePath(host)
	if err != nil {
		return err
	}

	data := WatchState{
		LastTaskUID: lastTaskUID,
		UpdatedAt:   time.Now().Unix(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal watch state: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write watch state file: %w", err)
	}

	return nil
}

// GetWatchState gets the last seen task uid for a host. A missing file is
// not an error; watching simply starts from scratch.
func GetWatchState(host string) (models.TaskUID, error) {
	filePath, err := GetWatchStateFilePath(host)
	if err != nil {
		return 0, err
	}

	if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
		return 0, nil
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read watch state file: %w", err)
	}

	var data WatchState
	if err := json.Unmarshal(fileData, &data); err != nil {
		return 0, fmt.Errorf("failed to unmarshal watch state: %w", err)
	}

	return data.LastTaskUID, nil
}

// hostSlug turns a host URL into a filename-safe token.
func hostSlug(host string) string {
	if parsed, err := url.Parse(host); err == nil && parsed.Host != "" {
		host = parsed.Host
	}

	replacer := strings.NewReplacer(":", "_", ".", "_", "/", "_")
	return replacer.Replace(host)
}
