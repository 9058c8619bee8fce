// Package manifest reads scaffold manifests: ordered lists of directories
// and files to create through any chisel.Adapter. A manifest is the
// declarative half of a scaffolding run; the mutation engine covers edits to
// files that already exist.
package manifest

import (
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/chiselfs/chisel"
	"github.com/chiselfs/chisel/internal/util"
)

// EntryDTO is the YAML representation of a single manifest entry. Pointer
// fields distinguish unset from zero.
type EntryDTO struct {
	Path    string  `yaml:"path"`
	Dir     bool    `yaml:"dir,omitempty"`
	Content *string `yaml:"content,omitempty"`
	Perms   *uint32 `yaml:"perms,omitempty"` // i.e. 0755
	UUID    *string `yaml:"uuid,omitempty"`  // Optional UUID to enable log correlation
}

// Entry is one resolved manifest entry with defaults applied.
type Entry struct {
	Path    string
	Dir     bool
	Content string
	Perms   *fs.FileMode // nil means the adapter's default mode
	UUID    string
}

// Manifest is an ordered sequence of entries, applied top to bottom.
type Manifest struct {
	Entries []Entry
}

// Parse decodes a YAML manifest and applies defaults: entries with no UUID
// get a generated one, directory entries may not carry content.
func Parse(data []byte) (*Manifest, error) {
	var dtos []EntryDTO
	if err := yaml.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	m := &Manifest{Entries: make([]Entry, 0, len(dtos))}
	for i, dto := range dtos {
		if dto.Path == "" {
			return nil, fmt.Errorf("manifest entry %d: missing path", i)
		}
		if dto.Dir && dto.Content != nil {
			return nil, fmt.Errorf("manifest entry %d (%s): directory with content", i, dto.Path)
		}
		entry := Entry{
			Path: dto.Path,
			Dir:  dto.Dir,
			UUID: valueOrDefault(dto.UUID, uuid.New().String()),
		}
		if dto.Content != nil {
			entry.Content = *dto.Content
		}
		if dto.Perms != nil {
			perms := fs.FileMode(*dto.Perms) & fs.ModePerm
			entry.Perms = &perms
		}
		m.Entries = append(m.Entries, entry)
	}
	return m, nil
}

// Apply creates every manifest entry in order through the adapter:
// directories via Mkdir, files via Write, followed by Chmod when the entry
// carries explicit permissions. Application stops at the first failure.
func Apply(fsys chisel.Adapter, m *Manifest) error {
	logger := util.GetLogger("manifest")

	for _, entry := range m.Entries {
		var err error
		if entry.Dir {
			err = fsys.Mkdir(entry.Path)
		} else {
			err = fsys.Write(entry.Path, []byte(entry.Content))
		}
		if err != nil {
			logger.Error().Err(err).Str("uuid", entry.UUID).Str("path", entry.Path).Msg("Failed to apply entry")
			return err
		}
		if entry.Perms != nil {
			if err := fsys.Chmod(entry.Path, *entry.Perms); err != nil {
				logger.Error().Err(err).Str("uuid", entry.UUID).Str("path", entry.Path).Msg("Failed to set permissions")
				return err
			}
		}
		logger.Debug().Str("uuid", entry.UUID).Str("path", entry.Path).Bool("dir", entry.Dir).Msg("Applied entry")
	}
	return nil
}

func valueOrDefault[T any](ptr *T, def T) T {
	if ptr != nil {
		return *ptr
	}
	return def
}
