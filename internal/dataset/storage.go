// Package dataset stores raw uploads on the local filesystem.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"datasight/domain/core"
)

// StorageConfig holds configuration for file storage
type StorageConfig struct {
	BasePath    string // Base directory for uploads
	MaxFileSize int64  // Maximum file size in bytes; 0 means unlimited
	ChunkSize   int    // Copy buffer size
}

// DefaultStorageConfig returns sensible defaults
func DefaultStorageConfig() *StorageConfig {
	return &StorageConfig{
		BasePath:    ".tmp/uploads",
		MaxFileSize: 50 * 1024 * 1024, // 50MB
		ChunkSize:   1024 * 1024,      // 1MB
	}
}

// ErrFileTooLarge is returned when an upload exceeds MaxFileSize
var ErrFileTooLarge = errors.New("file exceeds the upload size limit")

// LocalFileStorage implements ports.FileStorage using the local filesystem.
// Files are named <file_id>.<ext> under BasePath.
type LocalFileStorage struct {
	config *StorageConfig
}

// NewLocalFileStorage creates a new local file storage instance
func NewLocalFileStorage(config *StorageConfig) *LocalFileStorage {
	if config == nil {
		config = DefaultStorageConfig()
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = 32 * 1024
	}
	return &LocalFileStorage{config: config}
}

// NewLocalFileStorageWithPath creates a new local file storage with a simple path
func NewLocalFileStorageWithPath(basePath string) *LocalFileStorage {
	config := DefaultStorageConfig()
	config.BasePath = basePath
	return NewLocalFileStorage(config)
}

// Path returns where the file for id is kept
func (s *LocalFileStorage) Path(id core.FileID, ext string) (string, error) {
	if _, err := core.ParseFileID(id.String()); err != nil {
		return "", err
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" || strings.ContainsAny(ext, `/\.`) {
		return "", fmt.Errorf("%w: invalid extension %q", core.ErrUnsupportedFormat, ext)
	}
	return filepath.Join(s.config.BasePath, id.String()+"."+ext), nil
}

// Store saves r to the local filesystem. A partially written file is removed
// on failure.
func (s *LocalFileStorage) Store(ctx context.Context, id core.FileID, ext string, r io.Reader) (string, error) {
	path, err := s.Path(id, ext)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Create uploads directory if it doesn't exist
	if err := os.MkdirAll(s.config.BasePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	destFile, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	src := r
	if s.config.MaxFileSize > 0 {
		src = io.LimitReader(r, s.config.MaxFileSize+1)
	}
	buf := make([]byte, s.config.ChunkSize)
	written, err := io.CopyBuffer(destFile, src, buf)
	closeErr := destFile.Close()

	switch {
	case err != nil:
		os.Remove(path)
		return "", fmt.Errorf("failed to copy file contents: %w", err)
	case closeErr != nil:
		os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	case s.config.MaxFileSize > 0 && written > s.config.MaxFileSize:
		os.Remove(path)
		return "", ErrFileTooLarge
	}
	return path, nil
}

// Open returns a reader for the stored file
func (s *LocalFileStorage) Open(ctx context.Context, id core.FileID, ext string) (io.ReadCloser, error) {
	path, err := s.Path(id, ext)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, core.NewNotFoundError("file", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes a file from storage
func (s *LocalFileStorage) Delete(ctx context.Context, id core.FileID, ext string) error {
	path, err := s.Path(id, ext)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
