package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadDocumentsFile reads a JSON file containing an array of documents. A
// file holding a single object is wrapped into a one-element array so it
// can be fed to the documents endpoint as-is.
func ReadDocumentsFile(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents file: %w", err)
	}

	var documents []json.RawMessage
	if err := json.Unmarshal(data, &documents); err == nil {
		return documents, nil
	}

	var single json.RawMessage
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("documents file is not valid JSON: %w", err)
	}

	return []json.RawMessage{single}, nil
}
