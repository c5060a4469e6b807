// Package file implements the repositories on top of flat files, matching
// the legacy on-disk formats: a pretty-printed JSON doctor directory,
// newline-delimited JSON ledgers and a delimited-block summary log.
package file

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/pkg/errors"
)

// DirectoryRepository reads and rewrites the doctor directory document.
// Every Load parses the file fresh, so callers get independent snapshots;
// Save replaces the whole document.
type DirectoryRepository struct {
	mu   sync.RWMutex
	path string
}

func NewDirectoryRepository(path string) *DirectoryRepository {
	return &DirectoryRepository{path: path}
}

func (r *DirectoryRepository) Load(ctx context.Context) (model.Directory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Storage("doctor directory file not found", err)
		}
		return nil, errors.Storage("failed to read doctor directory", err)
	}

	var dir model.Directory
	if err := json.Unmarshal(data, &dir); err != nil {
		return nil, errors.Storage("failed to parse doctor directory", err)
	}
	return dir, nil
}

func (r *DirectoryRepository) Save(ctx context.Context, dir model.Directory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// indent matches the legacy writer so diffs against old datasets stay
	// readable
	data, err := json.MarshalIndent(dir, "", "    ")
	if err != nil {
		return errors.Storage("failed to encode doctor directory", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return errors.Storage("failed to write doctor directory", err)
	}
	return nil
}
