package app

import (
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// dirDownloader writes exports into a directory on disk. An empty dir means
// the current working directory.
type dirDownloader struct {
	dir string
}

func (d dirDownloader) Download(filename string, data []byte) (string, error) {
	dir := d.dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// systemClipboard copies through the OS clipboard
type systemClipboard struct{}

func (systemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}
