// Package assets holds the sprite manifest and PNGs, embedded or read from an
// assets root on disk.
package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ManifestName is the manifest path inside an assets root.
const ManifestName = "manifest.yaml"

//go:embed manifest.yaml sprites/*.png
var embedded embed.FS

// Embedded returns the assets compiled into the binary.
func Embedded() fs.FS {
	return embedded
}

// Open returns the assets rooted at dir, or the embedded assets when dir is
// empty.
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return embedded, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrInvalid}
	}
	return os.DirFS(dir), nil
}

// cleanAssetPath turns a manifest file entry into an fs.FS path.
func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "./")
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	return s
}
