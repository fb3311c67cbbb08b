package maildir

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-maildir"

	mserrors "github.com/infodancer/mailseed/errors"
)

// writeBufferSize is large enough to hold any synthesized message, so each
// message reaches the file in a single write.
const writeBufferSize = 1 << 20

// Maildir represents a single maildir directory.
type Maildir struct {
	path string
}

// New creates a Maildir instance for the given path.
// It does not create the directory; use Create() for that.
func New(path string) *Maildir {
	return &Maildir{path: path}
}

// Path returns the maildir path.
func (m *Maildir) Path() string {
	return m.path
}

// Create creates the maildir directory structure (new, cur, tmp) and any
// missing parents. It is safe to call on an existing maildir.
func (m *Maildir) Create() error {
	if err := os.MkdirAll(m.path, 0700); err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(m.path, "cur")); os.IsNotExist(err) {
		// Another writer sharing the root may win the race.
		if err := maildir.Dir(m.path).Init(); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	// A partial layout may predate us.
	for _, sub := range []string{"new", "tmp"} {
		if err := os.MkdirAll(filepath.Join(m.path, sub), 0700); err != nil {
			return err
		}
	}
	return nil
}

// Exists checks if the maildir exists and has the required structure.
func (m *Maildir) Exists() bool {
	dirs := []string{
		filepath.Join(m.path, "new"),
		filepath.Join(m.path, "cur"),
		filepath.Join(m.path, "tmp"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}

// Deliver writes data to new/filename using the safe delivery process.
// It writes to tmp/ first, then links into new/. An existing file is never
// replaced: ErrMessageExists is returned instead.
func (m *Maildir) Deliver(filename string, data []byte) error {
	if filename == "" || strings.ContainsAny(filename, "/:") {
		return mserrors.ErrInvalidPath
	}
	if !m.Exists() {
		return mserrors.ErrMaildirNotFound
	}

	tmpPath := filepath.Join(m.path, "tmp", filename)
	newPath := filepath.Join(m.path, "new", filename)

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return mserrors.ErrMessageExists
		}
		return err
	}

	w := bufio.NewWriterSize(f, writeBufferSize)
	_, err = w.Write(data)
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := publish(tmpPath, newPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// publish moves tmpPath to newPath without replacing an existing file.
func publish(tmpPath, newPath string) error {
	err := os.Link(tmpPath, newPath)
	if err == nil {
		// The message is already visible in new/.
		_ = os.Remove(tmpPath)
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		return mserrors.ErrMessageExists
	}

	// Filesystem without hard links.
	if _, statErr := os.Lstat(newPath); statErr == nil {
		return mserrors.ErrMessageExists
	}
	return os.Rename(tmpPath, newPath)
}

// ListNew returns the filenames of messages in new/.
func (m *Maildir) ListNew() ([]string, error) {
	dir := filepath.Join(m.path, "new")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mserrors.ErrMaildirNotFound
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
