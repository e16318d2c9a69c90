// Package seed decodes CRM snapshots from YAML. A default demo data set is
// embedded in the binary.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/realestate-crm/internal/persistence"
)

//go:embed mockdata.yaml
var defaultData []byte

// Decode reads one YAML document into a validated snapshot. Unknown keys are
// rejected so typos in hand-edited seed files surface early.
func Decode(r io.Reader) (persistence.Snapshot, error) {
	var snapshot persistence.Snapshot
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&snapshot); err != nil {
		if errors.Is(err, io.EOF) {
			return persistence.Snapshot{}, fmt.Errorf("seed: empty document: %w", persistence.ErrInvalidSnapshot)
		}
		return persistence.Snapshot{}, fmt.Errorf("seed: decode: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		return persistence.Snapshot{}, fmt.Errorf("seed: %w", err)
	}
	return snapshot, nil
}

// Default returns the embedded demo snapshot.
func Default() (persistence.Snapshot, error) {
	return Decode(bytes.NewReader(defaultData))
}

// LoadFile decodes the snapshot stored at path.
func LoadFile(path string) (persistence.Snapshot, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return persistence.Snapshot{}, fmt.Errorf("seed: %s: %w", path, persistence.ErrNotFound)
	}
	if err != nil {
		return persistence.Snapshot{}, fmt.Errorf("seed: open %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file)
}

// Source loads a snapshot from Path, or the embedded data set when Path is empty.
type Source struct {
	Path string
}

// LoadSnapshot implements persistence.SnapshotSource.
func (s Source) LoadSnapshot(ctx context.Context) (persistence.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return persistence.Snapshot{}, err
	}
	if s.Path == "" {
		return Default()
	}
	return LoadFile(s.Path)
}
