package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// File is a video file found under the scan root
type File struct {
	Path string // full path
	Dir  string // containing directory
	Name string // base name, "Movie.2010.mkv"
	Stem string // base name without extension, "Movie.2010"
	Ext  string // extension with dot, original case, ".mkv"
	Size int64
}

// NewFile describes the file at path.
func NewFile(path string, size int64) File {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return File{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: name,
		Stem: strings.TrimSuffix(name, ext),
		Ext:  ext,
		Size: size,
	}
}

// Scanner finds video files by extension
type Scanner struct {
	fs   afero.Fs
	exts map[string]bool
}

// New creates a scanner that accepts the given extensions, compared
// case-insensitively.
func New(fs afero.Fs, extensions []string) *Scanner {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return &Scanner{fs: fs, exts: exts}
}

// IsVideoFile reports whether path has an accepted extension.
func (s *Scanner) IsVideoFile(path string) bool {
	return s.exts[strings.ToLower(filepath.Ext(path))]
}

// Stat returns the File at path if it is a regular video file.
func (s *Scanner) Stat(path string) (File, bool) {
	if !s.IsVideoFile(path) {
		return File{}, false
	}
	info, err := s.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return File{}, false
	}
	return NewFile(path, info.Size()), true
}

// Walk calls fn for every regular video file under root, one at a time, in
// lexical order. Entries that cannot be read are skipped. Walk stops early
// when ctx is cancelled or fn returns an error.
func (s *Scanner) Walk(ctx context.Context, root string, fn func(File) error) error {
	info, err := s.fs.Stat(root)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scanning %s: %w", root, ErrNotDirectory)
	}

	return afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			// Unreadable directory, or a file renamed away after its
			// directory was listed.
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if !s.IsVideoFile(path) {
			return nil
		}

		// Symlinks count when they point at a regular file.
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := s.fs.Stat(path)
			if err != nil {
				return nil
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		return fn(NewFile(path, info.Size()))
	})
}
