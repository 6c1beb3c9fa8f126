package bbmodel

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses a .bbmodel file from raw bytes. Individual malformed
// elements are kept (the converter skips them with a report entry);
// only a structurally unreadable file fails.
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableModel, err)
	}
	if m.Elements == nil {
		return nil, fmt.Errorf("%w: model has no elements array", ErrMissingField)
	}
	if m.Name == "" {
		m.Name = "Converted Model"
	}
	return &m, nil
}

// Open reads and parses a .bbmodel file from disk.
func Open(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableModel, err)
	}
	return Parse(data)
}
