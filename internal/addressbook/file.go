package addressbook

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smileynet/addressbook/internal/contact"
)

// SaveToFile writes one line per contact, in current order, replacing the
// contents of path. A contact whose values the line format cannot hold is
// rejected with ErrInvalidArgument before anything is written.
//
// The book is written to a temporary file beside the target and renamed into
// place, so a failed save leaves any previous file intact. A symlinked path
// replaces the file it points to, and an existing file keeps its permissions.
func (b *Book) SaveToFile(path string) (err error) {
	for _, c := range b.contacts {
		if err := checkStorable(c); err != nil {
			return fmt.Errorf("addressbook: saving %s: %w", path, err)
		}
	}

	target, mode, err := resolveTarget(path)
	if err != nil {
		return fmt.Errorf("%w: resolving %s: %w", ErrIO, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIO, path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, c := range b.contacts {
		if _, err := w.WriteString(FormatLine(c) + "\n"); err != nil {
			return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrIO, path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", ErrIO, path, err)
	}
	return nil
}

// resolveTarget follows symlinks in path and returns the file to replace
// along with the permissions it should end up with. A file that does not
// exist yet is created with mode 0o644.
func resolveTarget(path string) (string, os.FileMode, error) {
	target, err := filepath.EvalSymlinks(path)
	if errors.Is(err, os.ErrNotExist) {
		return path, 0o644, nil
	}
	if err != nil {
		return "", 0, err
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", 0, err
	}
	return target, info.Mode().Perm(), nil
}

// LoadFromFile appends the contacts stored in path, one per line, and returns
// how many were read. Blank lines are skipped. Every line is parsed before
// the book is touched: a malformed line yields a *ParseError and no contacts
// are added.
func (b *Book) LoadFromFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: opening %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	var loaded []contact.Contact
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := ParseLine(line)
		if err != nil {
			return 0, &ParseError{Path: path, Line: n, Text: line, Err: err}
		}
		loaded = append(loaded, c)
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}

	for _, c := range loaded {
		b.contacts = append(b.contacts, c)
		b.count++
	}
	return len(loaded), nil
}

// Open returns a Book loaded from path. A missing file yields an empty Book.
func Open(path string) (*Book, error) {
	b := New()
	if _, err := b.LoadFromFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return b, nil
		}
		return nil, err
	}
	return b, nil
}
