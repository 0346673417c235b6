// Package discover finds the JavaScript source files a check run should
// cover. Explicit file arguments are taken as-is; directories are walked and
// filtered by language detection.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/src-d/enry/v2"
)

// languageJavaScript is the enry language name accepted by the walk.
const languageJavaScript = "JavaScript"

// Files expands the given paths into the sorted, de-duplicated list of
// JavaScript files to check. Permission errors and vanished entries during a
// walk are skipped, not fatal.
func Files(paths []string) ([]string, error) {
	seen := make(map[string]struct{})

	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				files = append(files, path)
			}

			continue
		}

		walked, err := walkDir(path, seen)
		if err != nil {
			return nil, err
		}

		files = append(files, walked...)
	}

	sort.Strings(files)

	return files, nil
}

func walkDir(root string, seen map[string]struct{}) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) || errors.Is(walkErr, fs.ErrNotExist) {
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			return walkErr
		}

		if entry.IsDir() {
			if enry.IsVendor(path) {
				return filepath.SkipDir
			}

			return nil
		}

		if !isJavaScript(path) {
			return nil
		}

		if _, dup := seen[path]; !dup {
			seen[path] = struct{}{}
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// isJavaScript detects the file language by name, falling back to content
// sniffing only for ambiguous extensions.
func isJavaScript(path string) bool {
	lang := enry.GetLanguage(filepath.Base(path), nil)
	if lang == languageJavaScript {
		return true
	}

	if lang != "" {
		return false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	return enry.GetLanguage(filepath.Base(path), content) == languageJavaScript
}
