package infrastructure

import (
	"os"
	"path/filepath"
)

// writeTempHTML stores the document in a fresh temp dir so the browser can
// load it over file://. The returned cleanup removes the directory.
func writeTempHTML(html string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "portfolio-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
