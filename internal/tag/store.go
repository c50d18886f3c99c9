// Package tag persists the per-session user annotation: a single optional
// tag string kept in a small sidecar file next to the immutable log. The
// absence of the sidecar is the canonical "no tag" state.
package tag

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sidecarSuffix replaces the .jsonl extension of the session file.
const sidecarSuffix = ".tag.json"

// Store reads and writes session annotations, keyed by the session's log
// file path. Writing an empty value deletes the annotation.
type Store interface {
	Read(sessionPath string) (string, error)
	Write(sessionPath, value string) error
}

// SidecarStore keeps one JSON sidecar file per tagged session.
type SidecarStore struct{}

// NewSidecarStore returns the default file-based store.
func NewSidecarStore() *SidecarStore {
	return &SidecarStore{}
}

type sidecar struct {
	Tag string `json:"tag"`
}

// SidecarPath returns the annotation file path for a session log.
func SidecarPath(sessionPath string) string {
	return strings.TrimSuffix(sessionPath, ".jsonl") + sidecarSuffix
}

// Read returns the session's tag. A missing sidecar means no tag, not an
// error.
func (s *SidecarStore) Read(sessionPath string) (string, error) {
	data, err := os.ReadFile(SidecarPath(sessionPath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading tag sidecar: %w", err)
	}

	var sc sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return "", fmt.Errorf("parsing tag sidecar: %w", err)
	}
	return sc.Tag, nil
}

// Write persists a non-empty tag, or deletes the sidecar when the value
// is empty. Both directions are idempotent. Failures are returned to the
// caller: tag edits are user-intentional and must not fail silently.
func (s *SidecarStore) Write(sessionPath, value string) error {
	path := SidecarPath(sessionPath)

	if strings.TrimSpace(value) == "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing tag sidecar: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(sidecar{Tag: value})
	if err != nil {
		return fmt.Errorf("marshaling tag: %w", err)
	}

	// Write-temp-then-rename so a crash mid-write never leaves a
	// half-written sidecar behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tag-*")
	if err != nil {
		return fmt.Errorf("creating temp sidecar: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing tag sidecar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing tag sidecar: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing tag sidecar: %w", err)
	}
	return nil
}
