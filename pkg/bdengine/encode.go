package bdengine

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Encode serializes a project to the on-disk text form: compact JSON
// of the [root] array, gzipped, then base64.
func Encode(root *CollectionNode) (string, error) {
	raw, err := json.Marshal(Project{root})
	if err != nil {
		return "", fmt.Errorf("bdengine: marshaling project: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("bdengine: compressing project: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("bdengine: compressing project: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode parses the on-disk text form back into the root collection.
func Decode(encoded string) (*CollectionNode, error) {
	compressed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotProject, err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotProject, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotProject, err)
	}

	var project Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotProject, err)
	}
	if len(project) == 0 || project[0] == nil {
		return nil, fmt.Errorf("%w: empty project array", ErrNotProject)
	}
	return project[0], nil
}

// WriteFile encodes the project and writes it to path. With overwrite
// disabled an existing file is an error rather than a silent replace.
func WriteFile(path string, root *CollectionNode, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	}

	encoded, err := Encode(root)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(encoded), 0644); err != nil {
		return fmt.Errorf("bdengine: writing %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes a project file from disk.
func ReadFile(path string) (*CollectionNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bdengine: reading %s: %w", path, err)
	}
	return Decode(string(data))
}

// OutputPath derives the output file name from the input model path:
// same base name with the .bdengine extension, placed in dir when dir
// is non-empty, next to the input otherwise.
func OutputPath(inputPath, dir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := base + ".bdengine"
	if dir != "" {
		return filepath.Join(dir, name)
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}
