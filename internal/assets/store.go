// Package assets stores uploaded image files under a configured
// directory and hands back the stored filename for persistence.
package assets

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyFilename is returned when sanitizing leaves nothing usable.
	ErrEmptyFilename = errors.New("empty filename")
	// ErrUnsupportedType is returned for non-image file extensions.
	ErrUnsupportedType = errors.New("unsupported file type")
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Store writes uploaded assets to a base directory on the local
// filesystem. Writes go through a temp file that is removed on any
// failure, so a failed upload never leaves a partial asset behind.
type Store struct {
	baseDir string
	logger  *log.Logger
}

// NewStore creates the base directory if needed.
func NewStore(baseDir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &Store{baseDir: baseDir, logger: logger}, nil
}

// Save stores the reader contents under a sanitized version of the
// client-supplied filename and returns the name actually used. Name
// collisions get a random suffix instead of overwriting.
func (s *Store) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}
	name, err = s.uniqueName(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.baseDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close asset: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.baseDir, name)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("place asset: %w", err)
	}

	s.logger.Printf("assets: stored %s", name)
	return name, nil
}

// Remove deletes a stored asset. Missing files are not an error.
func (s *Store) Remove(name string) error {
	clean, err := sanitizeFilename(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove asset: %w", err)
	}
	return nil
}

// Path returns the on-disk path of a stored asset name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.baseDir, filepath.Base(name))
}

// BaseDir returns the storage root, e.g. for static file serving.
func (s *Store) BaseDir() string {
	return s.baseDir
}

func (s *Store) uniqueName(name string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.baseDir, name)); os.IsNotExist(err) {
		return name, nil
	}
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base + "-" + hex.EncodeToString(buf[:]) + ext, nil
}

// sanitizeFilename reduces a client-supplied filename to a safe base
// name: path components stripped, disallowed runes replaced, image
// extension required.
func sanitizeFilename(filename string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))

	ext := strings.ToLower(filepath.Ext(name))
	if !imageExtensions[ext] {
		return "", ErrUnsupportedType
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '.':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyFilename
	}
	return b.String() + ext, nil
}
