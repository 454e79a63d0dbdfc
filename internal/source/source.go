// Package source supplies the images a generation run works on: it lists
// candidate files, normalizes them into the request workspace, and can
// synthesize extra slides.
package source

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoImages = errors.New("source: no images found")

// accepted upload formats; everything else is skipped.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// List returns the image files in dir, sorted by name. Non-image entries
// are skipped silently, matching upload-filter behavior.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, ErrNoImages
	}

	sort.Strings(paths)
	return paths, nil
}
