package site

import (
	"io/fs"
	"path/filepath"
)

// filepathWalk walks root, invoking visit(path, isDir) for every entry.
func filepathWalk(root string, visit func(path string, isDir bool)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		visit(path, d.IsDir())

		return nil
	})
}
