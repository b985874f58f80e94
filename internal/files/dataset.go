// Package files loads operator-supplied catalog files and watches them for
// edits so a running server can pick up changes without a restart.
package files

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"serpentaware/internal/catalog"
)

// LoadDataset reads a JSON or YAML catalog file. Records without an id or
// creation time get one; the result is validated before it is returned.
func LoadDataset(path string) (catalog.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	d, err := DecodeDataset(filepath.Ext(path), data)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// DecodeDataset decodes data according to the file extension ext.
func DecodeDataset(ext string, data []byte) (catalog.Dataset, error) {
	var d catalog.Dataset
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &d); err != nil {
			return catalog.Dataset{}, fmt.Errorf("decode json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &d); err != nil {
			return catalog.Dataset{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return catalog.Dataset{}, fmt.Errorf("unsupported dataset extension %q", ext)
	}
	catalog.Stamp(&d, time.Now().UTC(), false)
	if err := catalog.Validate(d); err != nil {
		return catalog.Dataset{}, fmt.Errorf("invalid dataset: %w", err)
	}
	return d, nil
}

// FileExists reports whether path names a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
