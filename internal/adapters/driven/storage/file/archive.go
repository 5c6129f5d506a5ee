// Package file provides a filesystem-backed archive for collection
// artifacts.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
)

// Ensure ArchiveStore implements the interface.
var _ driven.ArchiveStore = (*ArchiveStore)(nil)

// ArchiveStore persists collections as JSON files in a data directory.
// Two artifacts are written per collection: the full document and a
// bare array of source records for downstream tooling.
type ArchiveStore struct {
	dir string
}

// NewArchiveStore creates an archive store rooted at dir. If dir is
// empty it defaults to ~/.florascribe/research.
func NewArchiveStore(dir string) (*ArchiveStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".florascribe", "research")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	return &ArchiveStore{dir: dir}, nil
}

// Dir returns the archive directory.
func (s *ArchiveStore) Dir() string {
	return s.dir
}

// Save writes both artifacts for the collection.
func (s *ArchiveStore) Save(_ context.Context, col *domain.Collection) error {
	if col == nil || strings.TrimSpace(col.Subject) == "" {
		return domain.ErrInvalidInput
	}

	slug := subjectSlug(col.Subject)

	full, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, slug+"_sources.json"), full, 0o644); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}

	bare, err := json.MarshalIndent(col.Sources, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, slug+"_sources_only.json"), bare, 0o644); err != nil {
		return fmt.Errorf("write sources: %w", err)
	}

	return nil
}

// Load reads a previously saved collection by subject.
func (s *ArchiveStore) Load(_ context.Context, subject string) (*domain.Collection, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, domain.ErrInvalidInput
	}

	path := filepath.Join(s.dir, subjectSlug(subject)+"_sources.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("collection for %q: %w", subject, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read collection: %w", err)
	}

	var col domain.Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	return &col, nil
}

// subjectSlug makes a filesystem-safe name from a subject.
func subjectSlug(subject string) string {
	slug := strings.ToLower(strings.TrimSpace(subject))
	slug = strings.ReplaceAll(slug, " ", "_")
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
