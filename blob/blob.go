// Package blob stores uploaded images and hands back the URL they are served from.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload
const MaxImageSize = 5 * 1024 * 1024

// AllowedImageTypes defines the allowed image file extensions
var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrTooLarge    = errors.New("file size exceeds 5MB limit")
	ErrInvalidType = errors.New("invalid file type. Allowed types: jpg, jpeg, png, gif, webp")
)

// Store keeps image bytes somewhere addressable by URL
type Store interface {
	Put(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// ValidateImage checks the name and size of an upload
func ValidateImage(filename string, size int64) error {
	if size > MaxImageSize {
		return ErrTooLarge
	}
	if !AllowedImageTypes[strings.ToLower(filepath.Ext(filename))] {
		return ErrInvalidType
	}
	return nil
}

// LocalStore writes files under Dir and serves them below URLPrefix
type LocalStore struct {
	Dir       string
	URLPrefix string
}

func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Put saves r under folder with a fresh uuid name that keeps the extension
func (s *LocalStore) Put(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedImageTypes[ext] {
		return "", ErrInvalidType
	}
	folder = cleanFolder(folder)

	dir := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if written > MaxImageSize {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", ErrTooLarge
	}

	return path.Join(s.URLPrefix, folder, name), nil
}

// Delete removes a file previously returned by Put. Missing files are ignored.
func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel := strings.TrimPrefix(url, s.URLPrefix+"/")
	if rel == url || strings.Contains(rel, "..") {
		return fmt.Errorf("not a stored file: %s", url)
	}
	if err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// cleanFolder confines folder below the store root
func cleanFolder(folder string) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" {
		return "images"
	}
	return folder
}
