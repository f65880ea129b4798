package service

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

// Public path prefix for uploaded blog images, mirrored on disk under the
// static root.
const blogImageURLPrefix = "/images/blog/"

var errImageOutsideRoot = errors.New("image path escapes static root")

// ImageStore saves blog images under <staticRoot>/images/blog with random
// filenames and maps them to public /images/blog/... paths.
type ImageStore struct {
	staticRoot string
}

// NewImageStore creates an ImageStore rooted at staticRoot.
func NewImageStore(staticRoot string) *ImageStore {
	return &ImageStore{staticRoot: staticRoot}
}

// Save streams an uploaded file to disk under a fresh random name, keeping
// the original extension, and returns the public path.
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	id := uuid.New()
	name := fmt.Sprintf("%x%s", id[:], filepath.Ext(fh.Filename))

	dir := filepath.Join(s.staticRoot, "images", "blog")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return blogImageURLPrefix + name, nil
}

// Remove deletes the file behind a public image path. A missing file is
// not an error; callers treat removal as best-effort.
func (s *ImageStore) Remove(publicPath string) error {
	trimmed := strings.TrimSpace(publicPath)
	if trimmed == "" {
		return nil
	}

	local, err := s.localPath(trimmed)
	if err != nil {
		return err
	}

	if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether the file behind a public image path is on disk.
func (s *ImageStore) Exists(publicPath string) bool {
	local, err := s.localPath(publicPath)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(local)
	return statErr == nil
}

func (s *ImageStore) localPath(publicPath string) (string, error) {
	rel := strings.TrimPrefix(publicPath, "/")
	local := filepath.Join(s.staticRoot, filepath.FromSlash(rel))

	root, err := filepath.Abs(s.staticRoot)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(local)
	if err != nil {
		return "", err
	}
	if abs != root && !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", errImageOutsideRoot
	}
	return local, nil
}
