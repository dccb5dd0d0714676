package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the upload limit for profile images.
const MaxImageSize = 5 * 1024 * 1024

// ErrInvalidImage is returned for disallowed file types or oversized uploads.
var ErrInvalidImage = errors.New("only image files are allowed (jpeg, jpg, png, gif)")

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// ImageStore saves uploaded profile images to a local directory.
type ImageStore struct {
	dir string
}

// NewImageStore creates the upload directory if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save validates and stores the uploaded image, returning the public
// path under /uploads.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", ErrInvalidImage
	}
	if file.Size > MaxImageSize {
		return "", ErrInvalidImage
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("profile-%s%s", uuid.New().String(), ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/uploads/" + name, nil
}
