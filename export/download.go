// ABOUTME: Saves exported CSV artifacts to the download directory
// ABOUTME: Writes through a uniquely named temp file that is renamed into place

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileDownloader writes artifacts into Dir
type FileDownloader struct {
	Dir string
}

// NewFileDownloader creates a downloader for dir, "." if empty
func NewFileDownloader(dir string) *FileDownloader {
	if dir == "" {
		dir = "."
	}

	return &FileDownloader{Dir: dir}
}

// Download saves the artifact bytes unchanged and returns the final path.
// An existing file with the same name is replaced.
func (d *FileDownloader) Download(a Artifact) (string, error) {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate temp name: %w", err)
	}

	target := filepath.Join(d.Dir, SafeFilename(a.Name))
	tmpPath := filepath.Join(d.Dir, "."+id.String()+".part")

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(a.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)

		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}

	// Release the handle before the rename so nothing stays open across exports
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)

		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)

		return "", fmt.Errorf("failed to move download into place: %w", err)
	}

	return target, nil
}

// SafeFilename reduces a server-supplied name to a single path element
func SafeFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	name = filepath.Base(name)

	if name == "" || name == "." || name == ".." || name == "/" {
		return DefaultFilename
	}

	return name
}
