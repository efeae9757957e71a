// Package filex contains local filesystem helpers used by uploads and
// downloads.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dmitrijs2005/swish/internal/client/models"
	"github.com/dmitrijs2005/swish/internal/common"
)

// EnsureDir creates dir (and parents) when missing and returns its cleaned
// path. An empty dir means the working directory.
func EnsureDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	dir = filepath.Clean(dir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &common.FileError{Op: "mkdir", Path: dir, Err: err}
	}

	return dir, nil
}

// CollectLocalFiles lists what an upload of path would send: the file
// itself, or the regular files directly inside a directory sorted by name.
func CollectLocalFiles(path string) ([]models.LocalFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, &common.FileError{Op: "stat", Path: path, Err: err}
	}

	if fi.Mode().IsRegular() {
		return []models.LocalFile{{Path: path, Name: fi.Name(), Size: fi.Size()}}, nil
	}
	if !fi.IsDir() {
		return nil, &common.FileError{Op: "collect", Path: path, Err: fmt.Errorf("not a regular file or directory")}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &common.FileError{Op: "readdir", Path: path, Err: err}
	}

	files := make([]models.LocalFile, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, &common.FileError{Op: "stat", Path: filepath.Join(path, e.Name()), Err: err}
		}
		files = append(files, models.LocalFile{
			Path: filepath.Join(path, e.Name()),
			Name: e.Name(),
			Size: info.Size(),
		})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", path, common.ErrNoFiles)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
