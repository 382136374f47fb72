// Package files stores uploaded car images on disk and resolves their public
// URLs. Stored filenames are prefixed with a random id so repeated uploads of
// the same original name never collide.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const urlPrefix = "/api/v1/files/cars"

type Store struct {
	root string
}

// NewStore creates the image root under dataFolder.
func NewStore(dataFolder string) (*Store, error) {
	root := filepath.Join(dataFolder, "images")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image folder: %w", err)
	}
	return &Store{root: root}, nil
}

// Save writes one uploaded image for a car and returns the stored filename.
func (s *Store) Save(carID, originalName string, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, carID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	stored := uuid.NewString()[:8] + "_" + sanitize(originalName)
	f, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return stored, nil
}

func (s *Store) Remove(carID, filename string) error {
	err := os.Remove(filepath.Join(s.root, carID, filepath.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveAll deletes every stored image of a car, used on car deletion.
func (s *Store) RemoveAll(carID string) error {
	return os.RemoveAll(filepath.Join(s.root, carID))
}

// Path returns the on-disk location of a stored image, for serving.
func (s *Store) Path(carID, filename string) string {
	return filepath.Join(s.root, carID, filepath.Base(filename))
}

// URL resolves the public URL of a stored image.
func URL(carID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", urlPrefix, carID, filename)
}

func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}
