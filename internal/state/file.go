package state

import (
	"fmt"
	"os"
	"path"

	json "github.com/goccy/go-json"
)

const stateFileName = "unity_state.json"

// FileStore keeps state as one JSON document per target,
// <dir>/<target>/unity_state.json. Writes go through a temporary file and a
// rename so a crash never leaves a half-written document behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir, target string) *FileStore {
	return &FileStore{dir: path.Join(dir, target)}
}

func (f *FileStore) Load() (map[string]MetricState, error) {
	data, err := os.ReadFile(path.Join(f.dir, stateFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]MetricState{}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	states := map[string]MetricState{}
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return states, nil
}

func (f *FileStore) Save(states map[string]MetricState) error {
	if err := os.MkdirAll(f.dir, 0o750); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.Marshal(states)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, stateFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path.Join(f.dir, stateFileName)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}
