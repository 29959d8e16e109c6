package types

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// FileMetadata is a derived, read-only view of a filesystem entry. It is
// consumed by the advanced-query and shorthand match branches.
type FileMetadata struct {
	// Path is the path the entry was stat'ed at
	Path string

	// Name is the base name of the entry
	Name string

	// Extension is the lowercased extension without the leading dot
	Extension string

	// SizeBytes is the entry size in bytes
	SizeBytes int64

	// Modified is the last modification time
	Modified time.Time

	// Created approximates the creation time (mtime where the platform
	// exposes nothing better)
	Created time.Time

	// Accessed is the last access time where available, else Modified
	Accessed time.Time

	// IsHidden is true for dotfiles
	IsHidden bool

	// IsReadOnly is true when the entry has no write bits set
	IsReadOnly bool

	// IsDir is true for directories
	IsDir bool
}

// FileMetadataFromPath stats path on fs and builds its metadata view
func FileMetadataFromPath(fs afero.Fs, path string) (*FileMetadata, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")

	meta := &FileMetadata{
		Path:       path,
		Name:       name,
		Extension:  ext,
		SizeBytes:  info.Size(),
		Modified:   info.ModTime(),
		Created:    info.ModTime(),
		Accessed:   info.ModTime(),
		IsHidden:   strings.HasPrefix(name, "."),
		IsReadOnly: info.Mode().Perm()&0222 == 0,
		IsDir:      info.IsDir(),
	}

	return meta, nil
}
