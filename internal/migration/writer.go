package migration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrFileExists is returned when a migration file is already present.
var ErrFileExists = errors.New("migration file already exists")

// Writer writes rendered migrations into Dir on Fs.
type Writer struct {
	Fs  afero.Fs
	Dir string
}

// NewWriter returns a Writer for dir on fs. A nil fs means the OS
// filesystem.
func NewWriter(fs afero.Fs, dir string) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{Fs: fs, Dir: dir}
}

// Write creates Dir if needed and writes each file. Existing files are never
// overwritten; all target paths are checked before anything is written.
func (w *Writer) Write(files []File) ([]string, error) {
	if err := w.Fs.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migration dir %s: %w", w.Dir, err)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		p := filepath.Join(w.Dir, f.Name)
		ok, err := afero.Exists(w.Fs, p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if ok {
			return nil, fmt.Errorf("%s: %w", p, ErrFileExists)
		}
		paths[i] = p
	}

	for i, f := range files {
		fh, err := w.Fs.OpenFile(paths[i], os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return paths[:i], fmt.Errorf("write %s: %w", paths[i], err)
		}
		if _, err := fh.WriteString(f.Content); err != nil {
			fh.Close()
			return paths[:i], fmt.Errorf("write %s: %w", paths[i], err)
		}
		if err := fh.Close(); err != nil {
			return paths[:i], fmt.Errorf("write %s: %w", paths[i], err)
		}
	}
	return paths, nil
}
