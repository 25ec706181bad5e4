package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"enumclass/internal/source"
)

// listSources returns the .ec files under dir in a deterministic order.
// Hidden directories are skipped.
func listSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// loadSources fills a FileSet from path, which is a file or a directory.
// Files that cannot be read are added empty and returned in failed. The
// FileSet is not safe for concurrent use, so loading is sequential.
func loadSources(path string) (fileSet *source.FileSet, ids []source.FileID, failed map[source.FileID]error, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, nil, err
	}
	var paths []string
	if info.IsDir() {
		paths, err = listSources(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("walk %s: %w", path, err)
		}
		if len(paths) == 0 {
			return nil, nil, nil, fmt.Errorf("%s: %w", path, ErrNoSources)
		}
		fileSet = source.NewFileSetWithBase(path)
	} else {
		paths = []string{path}
		fileSet = source.NewFileSet()
	}

	failed = make(map[source.FileID]error)
	for _, p := range paths {
		id, loadErr := fileSet.Load(p)
		if loadErr != nil {
			id = fileSet.Add(p, nil, source.FileVirtual)
			failed[id] = loadErr
		}
		ids = append(ids, id)
	}
	return fileSet, ids, failed, nil
}
