package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// ArtifactInfo contains metadata about a stored artifact.
type ArtifactInfo struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	SizeBytes int       `json:"size_bytes"`
	StoredAt  time.Time `json:"stored_at"`
	Path      string    `json:"path,omitempty"` // set once flushed to disk
}

type artifactEntry struct {
	Info ArtifactInfo
	Data []byte
}

// ArtifactStore holds rendered outputs in memory until Flush writes them.
type ArtifactStore struct {
	mu        sync.RWMutex
	artifacts map[string]*artifactEntry
}

// NewArtifactStore creates an empty ArtifactStore.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		artifacts: make(map[string]*artifactEntry),
	}
}

// Store saves data under id, to be written as fileName. Storing an existing
// id replaces it. A file name already claimed by another id is rejected.
func (s *ArtifactStore) Store(id, fileName string, data []byte) (*ArtifactInfo, error) {
	if id == "" {
		return nil, errors.New("artifact id must not be empty")
	}
	if fileName == "" || filepath.Base(fileName) != fileName {
		return nil, fmt.Errorf("artifact %s: file name %q must be a bare file name", id, fileName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for other, entry := range s.artifacts {
		if other != id && entry.Info.FileName == fileName {
			return nil, fmt.Errorf("artifact %s: file name %q is already used by artifact %s", id, fileName, other)
		}
	}

	info := ArtifactInfo{
		ID:        id,
		FileName:  fileName,
		SizeBytes: len(data),
		StoredAt:  time.Now(),
	}
	s.artifacts[id] = &artifactEntry{Info: info, Data: slices.Clone(data)}
	return &info, nil
}

// Retrieve returns the data stored under id.
func (s *ArtifactStore) Retrieve(id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.artifacts[id]
	if !ok {
		return nil, errors.New("artifact not found: " + id)
	}
	return slices.Clone(entry.Data), nil
}

// Has returns true if an artifact with the given ID exists.
func (s *ArtifactStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.artifacts[id]
	return ok
}

// List returns metadata for all stored artifacts, ordered by ID.
func (s *ArtifactStore) List() []ArtifactInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ArtifactInfo, 0, len(s.artifacts))
	for _, entry := range s.artifacts {
		result = append(result, entry.Info)
	}
	slices.SortFunc(result, func(a, b ArtifactInfo) int { return strings.Compare(a.ID, b.ID) })
	return result
}

// Flush writes every artifact into dir. Each artifact is first written to a
// temporary file and the final names only appear once all temporaries exist.
// If a rename fails, the files already moved into place are removed again, so
// a failed flush leaves no artifact behind. A file it replaced is not restored.
func (s *ArtifactStore) Flush(dir string) ([]ArtifactInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(s.artifacts))
	for id := range s.artifacts {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	temps := make([]string, 0, len(ids))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}
	for _, id := range ids {
		entry := s.artifacts[id]
		f, err := os.CreateTemp(dir, "."+entry.Info.FileName+".*")
		if err != nil {
			cleanup()
			return nil, err
		}
		temps = append(temps, f.Name())
		if err := f.Chmod(0644); err != nil {
			_ = f.Close()
			cleanup()
			return nil, err
		}
		if _, err := f.Write(entry.Data); err != nil {
			_ = f.Close()
			cleanup()
			return nil, fmt.Errorf("writing artifact %s: %w", id, err)
		}
		if err := f.Close(); err != nil {
			cleanup()
			return nil, fmt.Errorf("writing artifact %s: %w", id, err)
		}
	}

	written := make([]ArtifactInfo, 0, len(ids))
	for i, id := range ids {
		entry := s.artifacts[id]
		path := filepath.Join(dir, entry.Info.FileName)
		if err := os.Rename(temps[i], path); err != nil {
			cleanup()
			for _, info := range written {
				_ = os.Remove(info.Path)
			}
			return nil, fmt.Errorf("writing artifact %s: %w", id, err)
		}
		written = append(written, entry.Info)
		written[len(written)-1].Path = path
	}
	for _, info := range written {
		s.artifacts[info.ID].Info.Path = info.Path
	}
	return written, nil
}
